// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the provider and renders bodies from the
// HTML templates embedded in the binary under templates/.
package email

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/balbesina228/films-api/internal/config"
)

const sender = "Films API <onboarding@resend.dev>"

// Client wraps the Resend client and a logger.
type Client struct {
	client *resend.Client
	logger *zerolog.Logger
}

// NewClient creates an email Client, or returns nil when no Resend API key
// is configured.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	if cfg.Integration.ResendAPIKey == "" {
		return nil
	}
	return &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		logger: logger,
	}
}

// Render executes templateName with data.
func Render(templateName Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName.file(), data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
//
// Example:
//
//	c.SendEmail("ann@example.com", "Welcome", TemplateWelcome, map[string]string{"Username": "ann"})
//
// Rendering failures are returned before anything is sent.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	sent, err := c.client.Emails.Send(&resend.SendEmailRequest{
		From:    sender,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().Str("email_id", sent.Id).Str("template", string(templateName)).Msg("email sent")
	return nil
}
