// Package mailer holds the ports.Mailer implementations.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codeblaze/portal/internal/core/ports"
)

const (
	ProviderLog      = "log"
	ProviderSendGrid = "sendgrid"
)

// Config selects and configures a provider.
type Config struct {
	Provider       string
	From           string
	FromName       string
	SendGridAPIKey string
}

// New returns the Mailer for cfg.Provider. An empty provider means "log".
func New(cfg Config, log zerolog.Logger) (ports.Mailer, error) {
	switch cfg.Provider {
	case "", ProviderLog:
		return NewLogMailer(log), nil
	case ProviderSendGrid:
		if cfg.SendGridAPIKey == "" || cfg.From == "" {
			return nil, errors.New("mailer: sendgrid requires SENDGRID_API_KEY and MAIL_FROM")
		}
		return NewSendGridMailer(cfg.SendGridAPIKey, cfg.From, cfg.FromName), nil
	default:
		return nil, fmt.Errorf("mailer: unknown provider %q", cfg.Provider)
	}
}

// LogMailer writes mails to the structured log instead of sending them.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, mail ports.Mail) error {
	m.log.Info().
		Str("to", mail.To).
		Str("subject", mail.Subject).
		Str("category", mail.Category).
		Str("body", mail.Text).
		Msg("mail")
	return nil
}
