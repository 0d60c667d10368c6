package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Run("matches validation sentinel and cause", func(t *testing.T) {
		err := fmt.Errorf("compile filters: %w", NewValidationError("spec", "expected key:value", ErrMalformedFilter))

		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, ErrMalformedFilter)
		assert.NotErrorIs(t, err, ErrNotFound)

		var ve *ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Equal(t, "spec", ve.Param)
	})

	t.Run("message names the parameter", func(t *testing.T) {
		err := NewValidationError("price_min", "not a number", nil)
		assert.Equal(t, "invalid price_min: not a number", err.Error())
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestNotFoundErrorsWrapSentinel(t *testing.T) {
	for _, err := range []error{ErrCarNotFound, ErrDealerNotFound, ErrCategoryNotFound, ErrSectionNotFound, ErrSubsectionNotFound} {
		assert.ErrorIs(t, err, ErrNotFound, err.Error())
	}
	assert.Equal(t, "car not found", ErrCarNotFound.Error())
}
