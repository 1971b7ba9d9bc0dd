package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"tiendax/internal/entity"
)

// SMTPMailer sends mail over SMTP. The encryption mode follows the stored
// configuration: "ssl" dials with implicit TLS, "tls" upgrades via STARTTLS,
// "none" stays in plaintext.
type SMTPMailer struct {
	host       string
	port       int
	username   string
	password   string
	encryption string
	from       string
	fromAddr   string
}

// NewSMTPMailer creates an SMTP transport from the stored configuration.
func NewSMTPMailer(cfg *entity.DbEmailConfig) *SMTPMailer {
	return &SMTPMailer{
		host:       strings.TrimSpace(cfg.Host),
		port:       cfg.Port,
		username:   strings.TrimSpace(cfg.Username),
		password:   cfg.Password,
		encryption: strings.ToLower(strings.TrimSpace(cfg.Encryption)),
		from:       formatFrom(cfg),
		fromAddr:   strings.TrimSpace(cfg.FromAddress),
	}
}

// Send delivers one message to all recipients in a single SMTP session.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	recipients := cleanRecipients(msg.To)
	if len(recipients) == 0 {
		return errors.New("mailer: no recipients")
	}

	client, err := m.dial(ctx)
	if err != nil {
		return fmt.Errorf("mailer: connect %s:%d: %w", m.host, m.port, err)
	}
	defer client.Quit()

	if m.encryption == entity.MailEncryptionTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
				return fmt.Errorf("mailer: starttls: %w", err)
			}
		}
	}

	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("mailer: auth: %w", err)
		}
	}

	if err := client.Mail(m.fromAddr); err != nil {
		return fmt.Errorf("mailer: mail from: %w", err)
	}
	for _, addr := range recipients {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("mailer: rcpt %s: %w", addr, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("mailer: data: %w", err)
	}
	if _, err := w.Write(m.buildMessage(recipients, msg)); err != nil {
		return fmt.Errorf("mailer: write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mailer: close body: %w", err)
	}
	return nil
}

func (m *SMTPMailer) dial(ctx context.Context) (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	if m.encryption == entity.MailEncryptionSSL {
		dialer := &tls.Dialer{Config: &tls.Config{ServerName: m.host}}
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, m.host)
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return smtp.NewClient(conn, m.host)
}

func (m *SMTPMailer) buildMessage(recipients []string, msg Message) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(recipients, ", ")))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

var _ Mailer = (*SMTPMailer)(nil)
