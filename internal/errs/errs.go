// Package errs defines the error shapes returned to API clients.
//
// Handlers and services return *HTTPError values; the global error
// handler renders them as JSON (or as a bare status for body-less
// errors such as a missing film).
package errs
