// Package validation binds request data and validates it.
//
// Rules live in `validate` struct tags on request types; failures are
// converted into errs.FieldError entries reported under the json field
// names the client sent.
package validation
