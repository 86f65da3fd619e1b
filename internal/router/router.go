// Package router builds the Echo instance: global middleware in order,
// the error handler and every route group.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/balbesina228/films-api/internal/handler"
	"github.com/balbesina228/films-api/internal/middleware"
	"github.com/balbesina228/films-api/internal/server"
	"github.com/balbesina228/films-api/internal/service"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Auth)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Instrument(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.RateLimit.Limiter(),
	)

	registerSystemRoutes(router, s, h)

	requireAuth := middlewares.Auth.RequireAuth
	registerFilmRoutes(router, h.Films, requireAuth)
	registerActorRoutes(router, h.Actors, requireAuth)
	registerAuthRoutes(router, h.Auth)

	router.GET("/aggregations", handler.Handle(h.Aggregations.Handler, h.Aggregations.FilmStats, http.StatusOK))

	return router
}

func registerFilmRoutes(r *echo.Echo, h *handler.FilmHandler, requireAuth echo.MiddlewareFunc) {
	films := r.Group("/films")

	films.GET("", handler.Handle(h.Handler, h.ListFilms, http.StatusOK))
	films.GET("/:uuid", handler.Handle(h.Handler, h.GetFilm, http.StatusOK))

	films.POST("", handler.Handle(h.Handler, h.CreateFilm, http.StatusCreated), requireAuth)
	films.PUT("/:uuid", handler.HandleExisting(h.Handler, h.FilmExists, h.UpdateFilm, http.StatusOK), requireAuth)
	films.PATCH("/:uuid", handler.HandleExisting(h.Handler, h.FilmExists, h.PatchFilm, http.StatusOK), requireAuth)
	films.DELETE("/:uuid", handler.HandleNoContent(h.Handler, h.DeleteFilm, http.StatusNoContent), requireAuth)
}

func registerActorRoutes(r *echo.Echo, h *handler.ActorHandler, requireAuth echo.MiddlewareFunc) {
	actors := r.Group("/actors")

	actors.GET("", handler.Handle(h.Handler, h.ListActors, http.StatusOK))
	actors.GET("/:uuid", handler.Handle(h.Handler, h.GetActor, http.StatusOK))

	actors.POST("", handler.Handle(h.Handler, h.CreateActor, http.StatusCreated), requireAuth)
	actors.PUT("/:uuid", handler.HandleExisting(h.Handler, h.ActorExists, h.UpdateActor, http.StatusOK), requireAuth)
	actors.DELETE("/:uuid", handler.HandleNoContent(h.Handler, h.DeleteActor, http.StatusNoContent), requireAuth)

	actors.PUT("/:uuid/films/:film_uuid", handler.HandleNoContent(h.Handler, h.LinkFilm, http.StatusNoContent), requireAuth)
	actors.DELETE("/:uuid/films/:film_uuid", handler.HandleNoContent(h.Handler, h.UnlinkFilm, http.StatusNoContent), requireAuth)
}

func registerAuthRoutes(r *echo.Echo, h *handler.AuthHandler) {
	r.POST("/register", handler.Handle(h.Handler, h.Register, http.StatusCreated))
	r.POST("/login", handler.Handle(h.Handler, h.Login, http.StatusOK))
}
