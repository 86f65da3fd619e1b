package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/balbesina228/films-api/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,max=120"`)
//   - Implement Validate() error that runs validator.Struct(req)
//   - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field
// that cannot be expressed via validator tags (e.g. an unparsable date).
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Path params, query params and the JSON body are all bound by echo's
// DefaultBinder; a failure in either step is returned as a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}

	if fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.FieldValidationError(fieldErrors)
	}

	return nil
}

// bindErrorMessage extracts the client-facing part of an echo binding error.
func bindErrorMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg := fmt.Sprint(he.Message); msg != "" {
			return msg
		}
	}
	return "Invalid request body"
}

func validateStruct(v Validatable) []errs.FieldError {
	if err := v.Validate(); err != nil {
		return ExtractFieldErrors(err)
	}
	return nil
}

// ExtractFieldErrors converts validator.ValidationErrors and
// CustomValidationErrors into client-facing field errors. Any other error
// becomes a single field-less entry.
func ExtractFieldErrors(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, ce := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: ce.Field, Error: ce.Message})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fieldName(fe),
			Error: tagMessage(fe),
		})
	}

	return fieldErrors
}

// fieldName prefers the json tag name recorded via RegisterTagNameFunc, so
// errors refer to "release_date" rather than "ReleaseDate".
func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field())
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())

	case "lte":
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "email":
		return "must be a valid email address"

	case "alphanum":
		return "must contain only letters and digits"

	case "uuid":
		return "must be a valid UUID"

	case "dive":
		return "some items are invalid"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
		}
		return fe.Tag()
	}
}

// New returns a validator that reports fields by their json names.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// IsValidUUID checks whether s parses as a UUID.
func IsValidUUID(s string) bool {
	return uuid.Validate(s) == nil
}
