package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balbesina228/films-api/internal/config"
	"github.com/balbesina228/films-api/internal/errs"
	"github.com/balbesina228/films-api/internal/metrics"
	"github.com/balbesina228/films-api/internal/server"
	"github.com/balbesina228/films-api/internal/service"
)

type stubVerifier struct {
	claims *service.Claims
	err    error
}

func (v stubVerifier) ParseToken(token string) (*service.Claims, error) {
	if token != "good-token" {
		return nil, errors.New("bad token")
	}
	return v.claims, v.err
}

func newTestServer(rateLimit float64) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          rateLimit,
			},
		},
		Logger:  &logger,
		Metrics: metrics.New(),
	}
}

func newEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequestIDGenerated(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, rec.Header().Get(RequestIDHeader), rec.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := serve(e, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRequireAuth(t *testing.T) {
	s := newTestServer(0)
	auth := NewAuthMiddleware(s, stubVerifier{claims: &service.Claims{UserID: "u-1", Username: "alice"}})

	e := newEcho(s)
	e.POST("/films", func(c echo.Context) error {
		return c.String(http.StatusCreated, GetUserID(c)+":"+c.Get(UsernameKey).(string))
	}, auth.RequireAuth)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good-token", status: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer forged", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good-token", status: http.StatusCreated},
		{name: "lowercase scheme", header: "bearer good-token", status: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/films", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := serve(e, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusCreated {
				assert.Equal(t, "u-1:alice", rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"code":"UNAUTHORIZED"`)
			}
		})
	}
}

func TestGlobalErrorHandlerEmptyNotFound(t *testing.T) {
	e := newEcho(newTestServer(0))
	e.GET("/films/:uuid", func(c echo.Context) error {
		return errs.NewEmptyNotFoundError()
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/films/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGlobalErrorHandlerUnknownRoute(t *testing.T) {
	e := newEcho(newTestServer(0))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"Route not found","status":404,"override":false,"errors":null,"action":null}`, rec.Body.String())
}

func TestGlobalErrorHandlerHidesInternalErrors(t *testing.T) {
	e := newEcho(newTestServer(0))
	e.GET("/", func(c echo.Context) error {
		return errors.New("connection refused to 10.0.0.3")
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
	assert.Contains(t, rec.Body.String(), `"message":"Internal Server Error"`)
}

func TestGlobalErrorHandlerValidation(t *testing.T) {
	e := newEcho(newTestServer(0))
	e.POST("/", func(c echo.Context) error {
		return errs.FieldValidationError([]errs.FieldError{{Field: "title", Error: "is required"}})
	})

	rec := serve(e, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Validation failed: title is required"`)
	assert.Contains(t, rec.Body.String(), `"override":true`)
}

func TestRateLimiter(t *testing.T) {
	s := newTestServer(1)
	e := newEcho(s)
	e.Use(NewRateLimitMiddleware(s).Limiter())
	e.GET("/films", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/films", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		codes = append(codes, serve(e, req).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	count, err := testutil.GatherAndCount(s.Metrics.Registry, "films_api_http_rate_limited_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetricsInstrument(t *testing.T) {
	s := newTestServer(0)
	e := newEcho(s)
	e.Use(NewMetricsMiddleware(s).Instrument())
	e.GET("/films/:uuid", func(c echo.Context) error { return errs.NewEmptyNotFoundError() })

	serve(e, httptest.NewRequest(http.MethodGet, "/films/a", nil))
	serve(e, httptest.NewRequest(http.MethodGet, "/films/b", nil))

	count, err := testutil.GatherAndCount(s.Metrics.Registry, "films_api_http_requests_total")
	require.NoError(t, err)
	// Both requests share one route/status series.
	assert.Equal(t, 1, count)
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	_, ok = bearerToken("abc.def")
	assert.False(t, ok)
}
