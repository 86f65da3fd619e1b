package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	to, username string
	err          error
}

func (r *recordingSender) SendWelcomeEmail(to, username string) error {
	r.to, r.username = to, username
	return r.err
}

func newTestService(mailer WelcomeSender) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, mailer: mailer}
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("ripley@example.com", "ripley")
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "ripley@example.com", Username: "ripley"}, p)
}

func TestHandleWelcomeEmailTaskSends(t *testing.T) {
	sender := &recordingSender{}
	task, err := NewWelcomeEmailTask("ripley@example.com", "ripley")
	require.NoError(t, err)

	require.NoError(t, newTestService(sender).Mux().ProcessTask(context.Background(), task))
	assert.Equal(t, "ripley@example.com", sender.to)
	assert.Equal(t, "ripley", sender.username)
}

func TestHandleWelcomeEmailTaskPropagatesFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("provider down")}
	task, err := NewWelcomeEmailTask("ripley@example.com", "ripley")
	require.NoError(t, err)

	assert.Error(t, newTestService(sender).handleWelcomeEmailTask(context.Background(), task))
}

func TestHandleWelcomeEmailTaskWithoutMailer(t *testing.T) {
	task, err := NewWelcomeEmailTask("ripley@example.com", "ripley")
	require.NoError(t, err)

	assert.NoError(t, newTestService(nil).handleWelcomeEmailTask(context.Background(), task))
}

func TestHandleWelcomeEmailTaskBadPayload(t *testing.T) {
	err := newTestService(&recordingSender{}).handleWelcomeEmailTask(
		context.Background(), asynq.NewTask(TaskWelcome, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
}
