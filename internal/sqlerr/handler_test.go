package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balbesina228/films-api/internal/errs"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "users",
		ConstraintName: "users_username_key",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("insert user: %w", pgErr)))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Username already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		TableName:  "films_actors",
		ColumnName: "actor_id",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "The referenced Actor does not exist", httpErr.Message)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		TableName:  "films",
		ColumnName: "title",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, "FILM_REQUIRED", httpErr.Code)
	assert.Equal(t, "The Title is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)
}

func TestHandleErrorUnknownPgError(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(&pgconn.PgError{Code: "XX000"}))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestHandleErrorNoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(fmt.Errorf("get film: %w", pgx.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	orig := errs.NewEmptyNotFoundError()
	assert.Same(t, orig, HandleError(orig))
}

func TestHandleErrorFallback(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Internal Server Error", httpErr.Message)
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23514", Severity: "ERROR"})
	assert.Equal(t, CheckViolation, ErrCode(fmt.Errorf("wrap: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "uuid", extractColumnForUniqueViolation("films_uuid_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("films_pkey"))
}
