package mailer

import (
	"strings"

	"tiendax/internal/entity"
)

// Preset returns partial mail settings for a known provider. The second
// return value is false when the name is unknown.
func Preset(name string) (entity.DbEmailConfig, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "brevo":
		return entity.DbEmailConfig{
			Host:       "smtp-relay.brevo.com",
			Port:       587,
			Encryption: entity.MailEncryptionTLS,
			Mailer:     entity.MailerBrevo,
		}, true
	case "gmail":
		return entity.DbEmailConfig{
			Host:       "smtp.gmail.com",
			Port:       465,
			Encryption: entity.MailEncryptionSSL,
			Mailer:     entity.MailerSMTP,
		}, true
	case "outlook":
		return entity.DbEmailConfig{
			Host:       "smtp-mail.outlook.com",
			Port:       587,
			Encryption: entity.MailEncryptionTLS,
			Mailer:     entity.MailerSMTP,
		}, true
	case "smtp":
		return entity.DbEmailConfig{
			Port:       25,
			Encryption: entity.MailEncryptionNone,
			Mailer:     entity.MailerSMTP,
		}, true
	default:
		return entity.DbEmailConfig{}, false
	}
}
