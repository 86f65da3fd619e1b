package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/balbesina228/films-api/internal/errs"
)

// uniqueKeyRe matches Postgres' default unique constraint names,
// e.g. users_username_key.
var uniqueKeyRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the mapped Code for a given error.
//
// Behavior:
//   - If err unwraps into *Error, its Code is returned.
//   - Otherwise Other is returned.
//
// Useful once errors have been normalized into *Error and only their
// category matters.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a raw pgconn.PgError into an *Error.
//
// pgconn.PgError carries Postgres-specific fields such as:
//   - Code (SQLSTATE)
//   - Severity
//   - TableName, ColumnName and ConstraintName
//
// SQLSTATE and severity are mapped into Code and Severity for switching;
// the original error stays reachable through Unwrap.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds a machine-readable error code.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Examples:
//
//	users + UniqueViolation         => USER_ALREADY_EXISTS
//	film_actors + ForeignKeyViolation => FILM_ACTOR_NOT_FOUND
//	"" + CheckViolation             => RECORD_INVALID
//
// Rules:
//   - DOMAIN is the uppercased table name with a trailing "S" dropped.
//   - ACTION depends on the violation type; unknown types yield ERROR.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage builds the message returned to clients.
//
// It is meant for API consumers, not logs, and phrases the violation
// using the table and column names:
//
//	ForeignKeyViolation on actor_id => "The referenced Actor does not exist"
//	NotNullViolation on name        => "The Name is required"
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced by the column name when it can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName picks the entity a message refers to.
//
// Priority rules:
//  1. A column ending in "_id" names the referenced entity.
//     e.g. "actor_id" -> "Actor"
//  2. Otherwise the table name, singularized if it ends with "s".
//     e.g. "films" -> "Film"
//  3. Otherwise "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case into Title Case using x/text/cases,
// e.g. "release_date" -> "Release Date".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column name from a unique
// constraint name.
//
// It supports two conventions:
//
//  1. "unique_<table>_<column>"
//     Example: unique_users_username -> "username"
//
//  2. "<table>_<column>_(key|ukey)"
//     Example: users_username_key -> "username"
//
// An empty string is returned when neither matches.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyRe.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a database error into an application error.
//
// Mapping:
//   - *errs.HTTPError: returned unchanged, it is already client-facing.
//   - *pgconn.PgError: constraint violations become 400s carrying a code
//     from generateErrorCode, anything else becomes a 500.
//   - pgx.ErrNoRows or sql.ErrNoRows: 404.
//   - anything else: 500.
//
// Example: registering an existing username violates users_username_key
// and yields
//
//	400 {"code":"USER_ALREADY_EXISTS","message":"A User with this Username already exists"}
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
