package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/balbesina228/films-api/internal/config"
	"github.com/balbesina228/films-api/internal/database"
	"github.com/balbesina228/films-api/internal/handler"
	"github.com/balbesina228/films-api/internal/logger"
	"github.com/balbesina228/films-api/internal/repository"
	"github.com/balbesina228/films-api/internal/router"
	"github.com/balbesina228/films-api/internal/server"
	"github.com/balbesina228/films-api/internal/service"
)

const shutdownTimeout = 30 * time.Second

var cli struct {
	Serve   ServeCmd   `cmd:"" default:"withargs" help:"Run the HTTP API (default)."`
	Migrate MigrateCmd `cmd:"" help:"Apply database migrations and exit."`
}

// app is what every command needs: validated config and loggers.
type app struct {
	cfg           *config.Config
	log           zerolog.Logger
	loggerService *logger.LoggerService
}

func (r *app) close() {
	r.loggerService.Shutdown()
}

type ServeCmd struct {
	SkipMigrate bool `help:"Do not apply migrations on startup." env:"FILMS_SKIP_MIGRATE"`
}

func (cmd *ServeCmd) Run(rt *app) error {
	log := rt.log
	ctx := context.Background()

	if !cmd.SkipMigrate {
		if err := database.Migrate(ctx, &log, rt.cfg); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	srv, err := server.New(rt.cfg, &log, rt.loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewService(srv, repos)
	if err != nil {
		_ = srv.Shutdown(ctx)
		return fmt.Errorf("could not create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers, services)
	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = srv.Shutdown(context.Background())
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}

type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(rt *app) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, &rt.log, rt.cfg); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	rt.log.Info().Msg("migrations applied")
	return nil
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("films-api"),
		kong.Description("REST API over films and actors."),
		kong.UsageOnError(),
	)

	cfg, err := config.LoadConfig()
	if err != nil {
		kctx.FatalIfErrorf(err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	rt := &app{
		cfg:           cfg,
		log:           logger.NewLoggerWithService(cfg.Observability, loggerService),
		loggerService: loggerService,
	}
	defer rt.close()

	kctx.FatalIfErrorf(kctx.Run(rt))
}
