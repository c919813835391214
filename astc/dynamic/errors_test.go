package dynamic_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arm-software/astcenc-dynamic/astc"
	"github.com/arm-software/astcenc-dynamic/astc/dynamic"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "config", dynamic.KindConfig.String())
	assert.Equal(t, "alloc", dynamic.KindAlloc.String())
	assert.Equal(t, "argument", dynamic.KindArgument.String())
	assert.Equal(t, "encoder", dynamic.KindEncoder.String())
	assert.Equal(t, "unknown", dynamic.Kind(0).String())
}

func TestError_WrapsCodecError(t *testing.T) {
	inner := &astc.Error{Code: astc.ErrBadSwizzle, Msg: "astc: invalid swizzle"}
	err := fmt.Errorf("outer: %w", &dynamic.Error{Op: "compress", Kind: dynamic.KindEncoder, Err: inner})

	assert.Equal(t, int(astc.ErrBadSwizzle), dynamic.Status(err))
	assert.Equal(t, dynamic.KindEncoder, dynamic.KindOf(err))
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "compress: encoder: astc: invalid swizzle")
}

func TestStatus(t *testing.T) {
	assert.Equal(t, 0, dynamic.Status(nil))
	assert.Equal(t, int(astc.ErrBadParam), dynamic.Status(errors.New("plain")))
	assert.Equal(t, dynamic.Kind(0), dynamic.KindOf(errors.New("plain")))
}
