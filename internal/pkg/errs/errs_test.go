//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"tablebook/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("sentinel")
	cause := errs.New("cause")

	t.Run("sentinel and cause both match with errors.Is", func(t *testing.T) {
		marked := errs.Mark(cause, sentinel)
		assert.ErrorIs(t, marked, sentinel)
		assert.ErrorIs(t, marked, cause)
	})

	t.Run("wrapped marks stay matchable", func(t *testing.T) {
		marked := errs.Wrap(errs.Mark(cause, sentinel), "outer context")
		assert.ErrorIs(t, marked, sentinel)
		assert.ErrorIs(t, marked, cause)
	})

	t.Run("nil cause yields the bare sentinel", func(t *testing.T) {
		assert.Equal(t, sentinel, errs.Mark(nil, sentinel))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, errs.Wrap(nil, "context"))
	})

	t.Run("message and cause are kept", func(t *testing.T) {
		cause := errs.New("cause")
		wrapped := errs.Wrap(cause, "context")
		require.Error(t, wrapped)
		assert.ErrorIs(t, wrapped, cause)
		assert.Contains(t, wrapped.Error(), "context")
	})
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 5))

	lines := errs.ExtractStackLines(errs.New("boom"), 2)
	require.NotEmpty(t, lines)
	assert.LessOrEqual(t, len(lines), 2)
	assert.Equal(t, "boom", lines[0])

	var sentinel = errors.New("plain")
	assert.NotEmpty(t, errs.ExtractStackLines(sentinel, 0))
}
