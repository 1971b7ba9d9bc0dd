package entity

import (
	"encoding/json"
	"time"
)

const (
	MailEncryptionNone = "none"
	MailEncryptionTLS  = "tls"
	MailEncryptionSSL  = "ssl"

	MailerSMTP  = "smtp"
	MailerBrevo = "brevo"
)

// DbEmailConfig is the single process-wide mail configuration. Saving always
// overwrites the whole row; there is no versioning. The JSON field names
// mirror the storefront's settings form.
type DbEmailConfig struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	UpdatedAt   time.Time `json:"updated_at"`
	Host        string    `gorm:"column:host;type:varchar(255)" json:"mail_host"`
	Port        int       `gorm:"column:port" json:"mail_port"`
	Username    string    `gorm:"column:username;type:varchar(255)" json:"mail_username"`
	Password    string    `gorm:"column:password;type:varchar(255)" json:"mail_password"`
	Encryption  string    `gorm:"column:encryption;type:varchar(20)" json:"mail_encryption"`
	FromAddress string    `gorm:"column:from_address;type:varchar(255)" json:"mail_from_address"`
	FromName    string    `gorm:"column:from_name;type:varchar(255)" json:"mail_from_name"`
	Mailer      string    `gorm:"column:mailer;type:varchar(50)" json:"mail_mailer"`
	APIKey      string    `gorm:"column:api_key;type:varchar(255)" json:"api_key,omitempty"`
}

// TableName overrides default pluralised name.
func (DbEmailConfig) TableName() string {
	return "email_configs"
}

// RecipientList accepts either a single address or an array of addresses in
// JSON, matching the original send API.
type RecipientList []string

// UnmarshalJSON implements json.Unmarshaler.
func (r *RecipientList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*r = nil
			return nil
		}
		*r = RecipientList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = RecipientList(many)
	return nil
}

type SendEmailRequest struct {
	To      RecipientList `json:"to" binding:"required"`
	Subject string        `json:"subject" binding:"required"`
	Message string        `json:"message" binding:"required"`
}

type SendResetEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

type SendVerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

type SendTestEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}
