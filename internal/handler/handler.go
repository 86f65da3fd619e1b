// Package handler is the HTTP layer of the API.
//
// Handlers receive requests that the base pipeline has already bound and
// validated, call the service layer and convert the result to its wire
// schema. Errors are returned unchanged and rendered by the global error
// handler.
package handler
