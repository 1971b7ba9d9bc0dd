package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tiendax/internal/entity"

	"github.com/sirupsen/logrus"
)

const brevoSendEndpoint = "https://api.brevo.com/v3/smtp/email"

type brevoRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoSendRequest struct {
	Sender      brevoRecipient   `json:"sender"`
	To          []brevoRecipient `json:"to"`
	Subject     string           `json:"subject"`
	HTMLContent string           `json:"htmlContent"`
}

// BrevoMailer sends mail through the Brevo transactional email HTTP API.
type BrevoMailer struct {
	apiKey   string
	endpoint string
	sender   brevoRecipient
	client   *http.Client
}

// NewBrevoMailer creates a Brevo API transport from the stored configuration.
func NewBrevoMailer(cfg *entity.DbEmailConfig) (*BrevoMailer, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("mailer: brevo api key is missing")
	}
	from := strings.TrimSpace(cfg.FromAddress)
	if from == "" {
		return nil, ErrIncompleteConfig
	}
	return &BrevoMailer{
		apiKey:   apiKey,
		endpoint: brevoSendEndpoint,
		sender:   brevoRecipient{Email: from, Name: strings.TrimSpace(cfg.FromName)},
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Send delivers one message via the Brevo API.
func (m *BrevoMailer) Send(ctx context.Context, msg Message) error {
	recipients := cleanRecipients(msg.To)
	if len(recipients) == 0 {
		return errors.New("mailer: no recipients")
	}

	to := make([]brevoRecipient, 0, len(recipients))
	for _, addr := range recipients {
		to = append(to, brevoRecipient{Email: addr})
	}

	payload := brevoSendRequest{
		Sender:      m.sender,
		To:          to,
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	}

	bs, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(bs))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: brevo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Error("brevo send failed")
		return fmt.Errorf("mailer: brevo http %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

var _ Mailer = (*BrevoMailer)(nil)
