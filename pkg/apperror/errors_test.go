package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found sentinel", ErrNotFound, http.StatusNotFound},
		{"wrapped unauthorized", fmt.Errorf("session: %w", ErrUnauthorized), http.StatusUnauthorized},
		{"forbidden helper", Forbidden("Insufficient permissions"), http.StatusForbidden},
		{"conflict is bad request", Conflict("User with this email already exists"), http.StatusBadRequest},
		{"validation", Validation("Name is required"), http.StatusBadRequest},
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatus(tc.err))
		})
	}
}

func TestAppErrorKeepsSentinel(t *testing.T) {
	err := NotFound("Store not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Store not found", err.Error())
}

func TestValidationErrorCarriesMessages(t *testing.T) {
	err := error(Validation("Name is required", "Rating must be between 1 and 5"))

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Errors, 2)
	assert.True(t, errors.Is(err, ErrValidation))
}
