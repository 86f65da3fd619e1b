// Package sqlerr normalizes database driver errors.
//
// It parses Postgres SQLSTATE codes reported by pgx and converts
// them into client-facing errors.
//
// Flow:
//   - The repository returns the raw driver error (*pgconn.PgError or
//     pgx.ErrNoRows).
//   - HandleError maps it onto an *errs.HTTPError with a status, a
//     machine-readable code and a human message.
//   - The global error handler serializes that error as JSON.
//
// Example: a duplicate username becomes
//
//	400 USER_ALREADY_EXISTS "A User with this Username already exists"
package sqlerr
