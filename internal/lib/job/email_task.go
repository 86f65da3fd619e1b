package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskWelcome is the task type for the registration welcome email.
const TaskWelcome = "email:welcome"

// WelcomeEmailPayload is the JSON payload of a welcome email task.
//
// It is serialized into bytes and stored in Redis, e.g.
//
//	{"to":"ann@example.com","username":"ann"}
type WelcomeEmailPayload struct {
	To       string `json:"to"`
	Username string `json:"username"`
}

// NewWelcomeEmailTask constructs an Asynq task for the welcome email.
//
// It serializes the payload to JSON and sets the task options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("default"): enqueue into the "default" queue
//   - Timeout(30s): cancel the handler context after 30 seconds
func NewWelcomeEmailTask(to, username string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:       to,
		Username: username,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueWelcomeEmail schedules the welcome email for a new user.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, username string) error {
	task, err := NewWelcomeEmailTask(to, username)
	if err != nil {
		return fmt.Errorf("building welcome email task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueueing welcome email task: %w", err)
	}

	j.logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("welcome email enqueued")
	return nil
}
