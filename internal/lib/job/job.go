// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - Tasks are enqueued (producer side) through JobService.Client.
//   - The embedded asynq.Server runs the workers (consumer side).
//
// Both share the Redis instance from config.Redis.
package job

import (
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/balbesina228/films-api/internal/config"
	"github.com/balbesina228/films-api/internal/lib/email"
)

// WelcomeSender delivers the registration welcome email.
type WelcomeSender interface {
	SendWelcomeEmail(to, username string) error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger

	// mailer is nil when no email provider is configured; welcome tasks
	// are then acknowledged without sending.
	mailer WelcomeSender
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// It builds both:
//   - an asynq.Client to push tasks
//   - an asynq.Server to process them, with 10 workers
//
// Queue weights are critical:6, default:3, low:1, so under load roughly
// six critical tasks are picked for every low priority one.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		Logger: &asynqLogger{logger: logger},
	})

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// InitHandlers wires handler dependencies from config.
//
// The mailer stays nil when no Resend API key is configured; the welcome
// handler then acknowledges tasks without sending.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if client := email.NewClient(cfg, logger); client != nil {
		j.mailer = client
	}
}

// Mux routes task types to handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	return mux
}

// Start starts the background workers. It does not block.
//
// Flow:
//   - Mux routes each task type to its handler (TaskWelcome ->
//     handleWelcomeEmailTask).
//   - The Asynq server starts polling the queues in its own goroutines.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")
	return j.server.Start(j.Mux())
}

// Stop gracefully stops the job server and closes client resources.
//
// Shutdown waits for in-flight tasks to finish; Client.Close then
// releases the Redis connections used for enqueueing.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("closing job client")
	}
}

// asynqLogger routes asynq's internal logging through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any) { l.logger.Info().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any) { l.logger.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) { l.logger.Fatal().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
