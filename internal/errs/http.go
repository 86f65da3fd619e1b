package errs

import (
	"net/http"
	"strings"
)

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
//
// override lets the client show message verbatim.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnauthorized)),
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusForbidden)),
		Message:  message,
		Status:   http.StatusForbidden,
		Override: override,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code defaults to "BAD_REQUEST" when nil; errors carries per-field
// validation detail.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError with a JSON body.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewEmptyNotFoundError creates a 404 that is written without a body.
//
// Resource lookups by uuid use it: clients tell "absent" from "error"
// by status code alone.
func NewEmptyNotFoundError() *HTTPError {
	return &HTTPError{
		Code:   MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Status: http.StatusNotFound,
		Empty:  true,
	}
}

// NewInternalServerError creates a generic 500. The real cause is logged,
// never sent to the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError converts a plain error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}

// FieldValidationError builds the 400 returned when request fields fail
// validation. The message lists every failing field so that clients which
// only read "message" still see the detail:
//
//	Validation failed: title is required; rating must not exceed 10
func FieldValidationError(fieldErrors []FieldError) *HTTPError {
	parts := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		parts = append(parts, fe.Field+" "+fe.Error)
	}

	message := "Validation failed"
	if len(parts) > 0 {
		message += ": " + strings.Join(parts, "; ")
	}

	return NewBadRequestError(message, true, nil, fieldErrors, nil)
}

// NewTooManyRequestsError creates a 429 returned by the rate limiter.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message:  "Rate limit exceeded, slow down",
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}
