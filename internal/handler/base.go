package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/balbesina228/films-api/internal/middleware"
	"github.com/balbesina228/films-api/internal/server"
	"github.com/balbesina228/films-api/internal/validation"
)

// Handler holds the dependencies shared by every concrete handler.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Request is satisfied by a pointer to a request schema. The pipeline
// allocates a fresh Req for every call so concurrent requests never share
// bound state.
type Request[T any] interface {
	*T
	validation.Validatable
}

// HandlerFunc receives a bound, validated request and returns the response
// body.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// HandlerFuncNoContent is HandlerFunc for endpoints without a response body.
type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// ResponseHandler writes a successful result and decorates the New Relic
// transaction for it.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result any)
}

type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

// http.status_code is set by EnhanceTracing.
func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {}

type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result any) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {}

// handleRequest binds and validates req, runs handler and writes the
// result, logging and tracing each phase. Errors are returned unchanged
// for GlobalErrorHandler to render.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}
		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler returned an error")

		if txn != nil {
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)
	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler in the bind/validate/log/trace pipeline and
// writes its result as JSON with status:
//
//	films.GET("/:uuid", handler.Handle(h.Handler, h.GetFilm, http.StatusOK))
func Handle[T any, Req Request[T], Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// ExistsFunc reports a missing resource, given the raw {uuid} path
// parameter, with the error to return to the client.
type ExistsFunc func(ctx context.Context, rawUUID string) error

// HandleExisting is Handle for endpoints that modify the resource named by
// the {uuid} path parameter. exists runs before the body is bound or
// validated, so a missing resource is answered with its 404 whatever the
// body holds:
//
//	films.PUT("/:uuid", handler.HandleExisting(h.Handler, h.FilmExists, h.UpdateFilm, http.StatusOK))
func HandleExisting[T any, Req Request[T], Res any](
	h Handler,
	exists ExistsFunc,
	handler HandlerFunc[Req, Res],
	status int,
) echo.HandlerFunc {
	inner := Handle[T, Req, Res](h, handler, status)
	return func(c echo.Context) error {
		if err := exists(c.Request().Context(), c.Param("uuid")); err != nil {
			middleware.GetLogger(c).Debug().
				Err(err).
				Str("route", c.Path()).
				Msg("target resource lookup failed")
			return err
		}
		return inner(c)
	}
}

// HandleNoContent is Handle for endpoints that answer with a bare status,
// such as DELETE returning 204.
func HandleNoContent[T any, Req Request[T]](
	h Handler,
	handler HandlerFuncNoContent[Req],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (any, error) {
			return nil, handler(c, req)
		}, NoContentResponseHandler{status: status})
	}
}
