package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tiendax/internal/config"
	"tiendax/internal/entity"
	"tiendax/internal/mailer"
	"tiendax/internal/model"
)

// EmailService resolves the effective mail configuration and sends
// transactional and campaign mail through it.
type EmailService struct {
	repo model.Repository
	cfg  config.Config
}

func NewEmailService(repo model.Repository, cfg config.Config) *EmailService {
	return &EmailService{repo: repo, cfg: cfg}
}

// EffectiveConfig returns the stored mail settings, falling back to the
// environment configuration when no row has been saved yet.
func (s *EmailService) EffectiveConfig(ctx context.Context) (*entity.DbEmailConfig, error) {
	cfg, err := s.repo.GetEmailConfig(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &entity.DbEmailConfig{
		Host:        s.cfg.MailHost,
		Port:        s.cfg.MailPort,
		Username:    s.cfg.MailUsername,
		Password:    s.cfg.MailPassword,
		Encryption:  s.cfg.MailEncryption,
		FromAddress: s.cfg.MailFromAddress,
		FromName:    s.cfg.MailFromName,
		Mailer:      s.cfg.MailMailer,
		APIKey:      s.cfg.MailAPIKey,
	}, nil
}

// SaveConfig overwrites the stored mail settings wholesale.
func (s *EmailService) SaveConfig(ctx context.Context, cfg *entity.DbEmailConfig) error {
	if cfg == nil {
		return ErrValidation
	}
	if preset, ok := mailer.Preset(cfg.Mailer); ok && strings.TrimSpace(cfg.Host) == "" {
		cfg.Host = preset.Host
		if cfg.Port == 0 {
			cfg.Port = preset.Port
		}
		if strings.TrimSpace(cfg.Encryption) == "" {
			cfg.Encryption = preset.Encryption
		}
	}
	return s.repo.SaveEmailConfig(ctx, cfg)
}

// Send delivers one HTML message to the given recipients using the effective
// configuration.
func (s *EmailService) Send(ctx context.Context, to []string, subject, html string) error {
	cfg, err := s.EffectiveConfig(ctx)
	if err != nil {
		return err
	}
	transport, err := mailer.New(cfg)
	if err != nil {
		if errors.Is(err, mailer.ErrIncompleteConfig) {
			return ErrConfigIncomplete
		}
		return err
	}
	msg := mailer.Message{To: to, Subject: subject, HTML: html}
	if err := transport.Send(ctx, msg); err != nil {
		logrus.WithError(err).WithField("subject", subject).Error("email delivery failed")
		return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}
	return nil
}

// SendPasswordReset mails a reset link carrying the one-time token.
func (s *EmailService) SendPasswordReset(ctx context.Context, email, token string) error {
	link := s.appLink("/reset-password", token)
	html := fmt.Sprintf(resetEmailTemplate, link, link)
	return s.Send(ctx, []string{email}, "Restablece tu contraseña", html)
}

// SendVerification mails an account verification link carrying the one-time
// token.
func (s *EmailService) SendVerification(ctx context.Context, email, token string) error {
	link := s.appLink("/verify-email", token)
	html := fmt.Sprintf(verifyEmailTemplate, link, link)
	return s.Send(ctx, []string{email}, "Confirma tu correo", html)
}

// SendTest delivers a short probe message to check the saved configuration.
func (s *EmailService) SendTest(ctx context.Context, email string) error {
	return s.Send(ctx, []string{email}, "Correo de prueba", testEmailTemplate)
}

func (s *EmailService) appLink(path, token string) string {
	base := strings.TrimRight(s.cfg.AppBaseURL, "/")
	return base + path + "?token=" + url.QueryEscape(token)
}

const resetEmailTemplate = `<div style="font-family:Arial,sans-serif;max-width:480px;margin:0 auto">
<h2 style="color:#d63384">Restablecer contraseña</h2>
<p>Recibimos una solicitud para restablecer tu contraseña. Haz clic en el botón para continuar:</p>
<p style="text-align:center;margin:24px 0">
<a href="%s" style="background:#d63384;color:#fff;padding:12px 24px;border-radius:6px;text-decoration:none">Restablecer contraseña</a>
</p>
<p>Si el botón no funciona, copia este enlace en tu navegador:</p>
<p style="word-break:break-all;color:#666">%s</p>
<p style="color:#999;font-size:12px">Si no solicitaste este cambio, ignora este correo.</p>
</div>`

const verifyEmailTemplate = `<div style="font-family:Arial,sans-serif;max-width:480px;margin:0 auto">
<h2 style="color:#d63384">Confirma tu correo</h2>
<p>Gracias por registrarte. Confirma tu dirección de correo para activar tu cuenta:</p>
<p style="text-align:center;margin:24px 0">
<a href="%s" style="background:#d63384;color:#fff;padding:12px 24px;border-radius:6px;text-decoration:none">Confirmar correo</a>
</p>
<p>Si el botón no funciona, copia este enlace en tu navegador:</p>
<p style="word-break:break-all;color:#666">%s</p>
</div>`

const testEmailTemplate = `<div style="font-family:Arial,sans-serif">
<h2>Correo de prueba</h2>
<p>La configuración de correo funciona correctamente.</p>
</div>`
