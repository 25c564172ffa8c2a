//go:build !tbd_debug

package tbd

// debugAssert is a no-op in release builds. A false condition here is a
// precondition violation the caller was responsible for; behavior beyond
// this point is undefined, not a checked error.
func debugAssert(cond bool, msg string) {}
