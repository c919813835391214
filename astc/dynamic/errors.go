package dynamic

import (
	"errors"
	"fmt"

	"github.com/arm-software/astcenc-dynamic/astc"
)

// Kind classifies a failure of the dispatch layer.
type Kind uint8

const (
	// KindConfig is an invalid block size, profile, quality, flag or thread count
	// combination. Only reported by NewContext.
	KindConfig Kind = iota + 1

	// KindAlloc is resource exhaustion while allocating the codec context.
	KindAlloc

	// KindArgument is a missing input or output buffer, a closed context, or image
	// dimensions that do not fit the buffers. No work is dispatched.
	KindArgument

	// KindEncoder is any failure reported by the block encoder during compression.
	KindEncoder
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindAlloc:
		return "alloc"
	case KindArgument:
		return "argument"
	case KindEncoder:
		return "encoder"
	default:
		return "unknown"
	}
}

// Error is returned by every operation of this package. It wraps the codec's *astc.Error, so
// astc.ErrorCodeOf recovers the numeric status.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("dynamic: %s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the numeric status for err as exposed at the C boundary: 0 for nil,
// otherwise the codec error code carried by err.
func Status(err error) int {
	return int(astc.ErrorCodeOf(err))
}

// KindOf returns the Kind of a dispatch error, or 0 if err was not produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func codecError(code astc.ErrorCode, msg string) error {
	return &astc.Error{Code: code, Msg: msg}
}
