package mailer

import (
	"context"
	"errors"
	"strings"

	"tiendax/internal/entity"
)

// ErrIncompleteConfig is returned when the stored mail settings are missing
// required fields (host, port, from address).
var ErrIncompleteConfig = errors.New("mailer: email configuration incomplete")

// Message is one outgoing HTML email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Mailer delivers messages through a configured transport.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the transport matching the configuration: the Brevo HTTP API
// when the config points at Brevo and carries an API key, SMTP otherwise.
func New(cfg *entity.DbEmailConfig) (Mailer, error) {
	if cfg == nil {
		return nil, ErrIncompleteConfig
	}
	if IsBrevoConfig(cfg) && strings.TrimSpace(cfg.APIKey) != "" {
		return NewBrevoMailer(cfg)
	}
	if strings.TrimSpace(cfg.Host) == "" || cfg.Port <= 0 || strings.TrimSpace(cfg.FromAddress) == "" {
		return nil, ErrIncompleteConfig
	}
	return NewSMTPMailer(cfg), nil
}

// IsBrevoConfig reports whether the configuration targets the Brevo API,
// either explicitly or by host name.
func IsBrevoConfig(cfg *entity.DbEmailConfig) bool {
	if cfg == nil {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Mailer), entity.MailerBrevo) {
		return true
	}
	host := strings.ToLower(cfg.Host)
	return strings.Contains(host, "brevo") || strings.Contains(host, "sendinblue")
}

func formatFrom(cfg *entity.DbEmailConfig) string {
	name := strings.TrimSpace(cfg.FromName)
	addr := strings.TrimSpace(cfg.FromAddress)
	if name == "" {
		return addr
	}
	return "\"" + name + "\" <" + addr + ">"
}

func cleanRecipients(to []string) []string {
	out := make([]string, 0, len(to))
	for _, addr := range to {
		trimmed := strings.TrimSpace(addr)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
