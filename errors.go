package tbd

import "github.com/pkg/errors"

// Code is the closed set of result codes CRUD and collector operations
// return. It mirrors the reference implementation's negative error scheme
// rather than Go's usual error interface, since the caller is expected to
// switch on a small fixed vocabulary rather than inspect arbitrary errors.
type Code int

const (
	NoError     Code = 0
	Error       Code = -1
	KeyNotFound Code = -2
	KeyExists   Code = -3
	BadSize     Code = -4
)

// IsError reports whether code represents a failure.
func IsError(code Code) bool { return code < 0 }

func (c Code) String() string {
	switch c {
	case NoError:
		return "ok"
	case Error:
		return "error"
	case KeyNotFound:
		return "key not found"
	case KeyExists:
		return "key exists"
	case BadSize:
		return "bad size"
	default:
		return "unknown code"
	}
}

var (
	errInvalidBuffer = errors.New("tbd: invalid buffer, size, hunk size, or max key length")
	errCapacity      = errors.New("tbd: arena has no room for this hunk")
)

func wrapBadBuffer(msg string) error {
	return errors.Wrap(errInvalidBuffer, msg)
}

// Logger receives internal diagnostic errors, such as capacity failures,
// that don't cross the Code-based CRUD contract. Arena has none installed
// by default; SetLogger wires one in (cmd/tbdctl wires internal/tbdlog).
type Logger interface {
	Errorf(format string, args ...interface{})
}

func (a *Arena) SetLogger(l Logger) { a.logger = l }

func (a *Arena) logCapacityError(op, key string) {
	if a.logger == nil {
		return
	}
	err := errors.Wrapf(errCapacity, "%s %q", op, key)
	a.logger.Errorf("%+v", err)
}
