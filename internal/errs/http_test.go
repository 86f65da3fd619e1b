package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsSetStatusAndCode(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"unauthorized", NewUnauthorizedError("no", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("no", false), http.StatusForbidden, "FORBIDDEN"},
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("gone", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"empty not found", NewEmptyNotFoundError(), http.StatusNotFound, "NOT_FOUND"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"too many requests", NewTooManyRequestsError(), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestCustomCode(t *testing.T) {
	code := "FILM_ALREADY_EXISTS"
	err := NewBadRequestError("dup", true, &code, nil, nil)
	assert.Equal(t, code, err.Code)
}

func TestEmptyNotFoundHasNoMessage(t *testing.T) {
	err := NewEmptyNotFoundError()
	assert.True(t, err.Empty)
	assert.Empty(t, err.Message)
	assert.Equal(t, "NOT_FOUND", err.Error())
}

func TestFieldValidationErrorMessage(t *testing.T) {
	err := FieldValidationError([]FieldError{
		{Field: "title", Error: "is required"},
		{Field: "rating", Error: "must not exceed 10"},
	})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed: title is required; rating must not exceed 10", err.Message)
	assert.Len(t, err.Errors, 2)
}

func TestHTTPErrorIsMatchesType(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewEmptyNotFoundError())

	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.True(t, httpErr.Empty)
}

func TestWithMessageCopies(t *testing.T) {
	orig := NewNotFoundError("film not found", false, nil)
	changed := orig.WithMessage("actor not found")

	assert.Equal(t, "film not found", orig.Message)
	assert.Equal(t, "actor not found", changed.Message)
	assert.Equal(t, orig.Status, changed.Status)
}
