package secure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithExposesSecret(t *testing.T) {
	buf := NewBufferFromString("hunter2")
	defer buf.Destroy()

	var seen string
	err := buf.With(func(secret []byte) error {
		seen = string(secret)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hunter2", seen)
}

func TestWithIsRepeatable(t *testing.T) {
	buf := NewBufferFromString("hunter2")
	defer buf.Destroy()

	for i := 0; i < 3; i++ {
		err := buf.WithString(func(secret string) error {
			assert.Equal(t, "hunter2", secret)
			return nil
		})
		require.NoError(t, err)
	}
}

func TestWithPropagatesCallbackError(t *testing.T) {
	buf := NewBufferFromString("x")
	defer buf.Destroy()

	sentinel := errors.New("boom")
	err := buf.With(func([]byte) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestUseAfterDestroy(t *testing.T) {
	buf := NewBufferFromString("x")
	buf.Destroy()
	buf.Destroy() // idempotent

	err := buf.With(func([]byte) error { return nil })
	assert.ErrorIs(t, err, ErrDestroyed)
}
