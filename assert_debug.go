//go:build tbd_debug

package tbd

import "github.com/pkg/errors"

// debugAssert panics with a stack-carrying error if cond is false. Only
// compiled in under the tbd_debug build tag; see assert_release.go for the
// default no-op.
func debugAssert(cond bool, msg string) {
	if !cond {
		panic(errors.Errorf("tbd: assertion failed: %s", msg))
	}
}
