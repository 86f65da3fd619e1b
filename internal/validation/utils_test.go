package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balbesina228/films-api/internal/errs"
)

var testValidator = New()

type sampleRequest struct {
	ID          string `param:"id" json:"-"`
	Title       string `json:"title" validate:"required,max=10"`
	ReleaseYear *int   `json:"release_year" validate:"omitempty,gte=1888"`
}

func (r *sampleRequest) Validate() error {
	return testValidator.Struct(r)
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidateSuccess(t *testing.T) {
	req := &sampleRequest{}
	require.NoError(t, BindAndValidate(newContext(`{"title":"Alien","release_year":1979}`), req))
	assert.Equal(t, "Alien", req.Title)
	require.NotNil(t, req.ReleaseYear)
	assert.Equal(t, 1979, *req.ReleaseYear)
}

func TestBindAndValidateMissingRequired(t *testing.T) {
	err := BindAndValidate(newContext(`{"release_year":1979}`), &sampleRequest{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed: title is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)
}

func TestBindAndValidateUsesJSONFieldNames(t *testing.T) {
	err := BindAndValidate(newContext(`{"title":"Alien","release_year":1000}`), &sampleRequest{})

	httpErr := requireHTTPError(t, err)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "release_year", httpErr.Errors[0].Field)
	assert.Equal(t, "must be greater than or equal to 1888", httpErr.Errors[0].Error)
}

func TestBindAndValidateMaxLength(t *testing.T) {
	err := BindAndValidate(newContext(`{"title":"A title that is too long"}`), &sampleRequest{})

	httpErr := requireHTTPError(t, err)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "must not exceed 10 characters", httpErr.Errors[0].Error)
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	err := BindAndValidate(newContext(`{"title":`), &sampleRequest{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
}

func TestExtractFieldErrorsCustom(t *testing.T) {
	fieldErrors := ExtractFieldErrors(CustomValidationErrors{
		{Field: "release_date", Message: "must look like \"April 01 2010\""},
	})

	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "release_date", fieldErrors[0].Field)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("4b0e7e9c-4c0e-4b7e-9f8e-2f0f1d3c0a11"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}
