package mailer

import (
	"testing"

	"tiendax/internal/entity"
)

func TestIsBrevoConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *entity.DbEmailConfig
		expected bool
	}{
		{name: "nil config", cfg: nil, expected: false},
		{name: "explicit brevo mailer", cfg: &entity.DbEmailConfig{Mailer: "brevo"}, expected: true},
		{name: "brevo host", cfg: &entity.DbEmailConfig{Mailer: "smtp", Host: "smtp-relay.brevo.com"}, expected: true},
		{name: "legacy sendinblue host", cfg: &entity.DbEmailConfig{Host: "smtp.sendinblue.com"}, expected: true},
		{name: "plain smtp", cfg: &entity.DbEmailConfig{Mailer: "smtp", Host: "smtp.gmail.com"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBrevoConfig(tt.cfg); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNewSelectsTransport(t *testing.T) {
	smtpCfg := &entity.DbEmailConfig{
		Host:        "smtp.example.com",
		Port:        587,
		FromAddress: "noreply@example.com",
		Encryption:  entity.MailEncryptionTLS,
		Mailer:      entity.MailerSMTP,
	}
	m, err := New(smtpCfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(*SMTPMailer); !ok {
		t.Fatalf("expected SMTP transport, got %T", m)
	}

	brevoCfg := &entity.DbEmailConfig{
		Host:        "smtp-relay.brevo.com",
		Port:        587,
		FromAddress: "noreply@example.com",
		Mailer:      entity.MailerBrevo,
		APIKey:      "xkeysib-test",
	}
	m, err = New(brevoCfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(*BrevoMailer); !ok {
		t.Fatalf("expected Brevo transport, got %T", m)
	}
}

func TestNewRejectsIncompleteConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *entity.DbEmailConfig
	}{
		{name: "nil config", cfg: nil},
		{name: "missing host", cfg: &entity.DbEmailConfig{Port: 587, FromAddress: "a@b.c"}},
		{name: "missing port", cfg: &entity.DbEmailConfig{Host: "smtp.example.com", FromAddress: "a@b.c"}},
		{name: "missing from", cfg: &entity.DbEmailConfig{Host: "smtp.example.com", Port: 587}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Fatal("expected error for incomplete config")
			}
		})
	}
}

func TestFormatFrom(t *testing.T) {
	cfg := &entity.DbEmailConfig{FromAddress: "noreply@example.com", FromName: "Tienda X"}
	if got := formatFrom(cfg); got != "\"Tienda X\" <noreply@example.com>" {
		t.Errorf("unexpected from header: %q", got)
	}

	cfg.FromName = ""
	if got := formatFrom(cfg); got != "noreply@example.com" {
		t.Errorf("unexpected from header: %q", got)
	}
}

func TestCleanRecipients(t *testing.T) {
	got := cleanRecipients([]string{" a@example.com ", "", "  ", "b@example.com"})
	if len(got) != 2 || got[0] != "a@example.com" || got[1] != "b@example.com" {
		t.Errorf("unexpected recipients: %v", got)
	}
}
