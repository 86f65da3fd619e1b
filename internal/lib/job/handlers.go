package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleWelcomeEmailTask processes a welcome email task.
//
// Steps:
//   - Decode the JSON payload. A malformed payload is wrapped with
//     asynq.SkipRetry and goes straight to the archive.
//   - Skip sending when no mailer is configured.
//   - Send through the mailer. A returned error makes Asynq retry.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Malformed payloads never succeed on retry.
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().Str("type", "welcome").Str("to", p.To).Logger()

	if j.mailer == nil {
		log.Warn().Msg("No email provider configured, skipping welcome email")
		return nil
	}

	log.Info().Msg("Processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(p.To, p.Username); err != nil {
		log.Error().Err(err).Msg("Failed to send welcome email")
		return err
	}

	log.Info().Msg("Successfully sent welcome email")
	return nil
}
