// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// bearer token authentication, request logging, CORS, rate limiting,
// metrics, tracing and panic recovery.
package middleware
