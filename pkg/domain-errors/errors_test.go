package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct error", func(t *testing.T) {
		err := New(CodeUnavailable, "session not ready")
		assert.True(t, HasCode(err, CodeUnavailable))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeValidation, "empty batch"))
		assert.True(t, HasCode(err, CodeValidation))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to list results")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to list results: connection refused", err.Error())
	assert.Nil(t, Wrap(nil, CodeInternal, "unused"))
}
