package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOfUnwrapsChain(t *testing.T) {
	base := New(CodeForbidden, "Not authorized to delete this borewell")
	wrapped := fmt.Errorf("delete borewell: %w", base)

	require.Equal(t, CodeForbidden, CodeOf(wrapped))
	require.True(t, IsCode(wrapped, CodeForbidden))
	require.Equal(t, "Not authorized to delete this borewell", MessageOf(wrapped))
}

func TestCodeOfPlainError(t *testing.T) {
	err := errors.New("boom")
	require.Equal(t, CodeUnknown, CodeOf(err))
	require.Empty(t, MessageOf(err))
	require.False(t, IsCode(nil, CodeInternal))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "get entity failed")

	require.ErrorIs(t, err, cause)
	require.Equal(t, "internal: get entity failed: connection reset", err.Error())
	require.Equal(t, "invalid: bad", Wrap(nil, CodeInvalid, "bad").Error())
}

func TestWithMeta(t *testing.T) {
	err := New(CodeInvalid, "bad input").WithMeta("field", "latitude")
	require.Equal(t, "latitude", err.Meta["field"])
}
