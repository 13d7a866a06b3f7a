package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"username": "is required",
		"name":     "is required",
	}}

	// Fields are listed alphabetically regardless of map order.
	assert.Equal(t, "validation failed: name: is required; username: is required", err.Error())
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := NewValidationError("username", "is required")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "is required", err.Fields["username"])
}

func TestValidationErrorEmptyFields(t *testing.T) {
	err := &ValidationError{}
	assert.Equal(t, ErrValidation.Error(), err.Error())
	assert.True(t, errors.Is(err, ErrValidation))
}
