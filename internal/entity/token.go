package entity

import "time"

const (
	TokenPurposeReset  = "password_reset"
	TokenPurposeVerify = "email_verify"
)

// DbAuthToken is a one-time token record for password reset and email
// verification flows. Only the SHA-256 hash of the token is stored; the plain
// value travels in the email link and is never persisted. Multiple unexpired
// tokens may be outstanding for the same user.
type DbAuthToken struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	TokenHash  string     `gorm:"column:token_hash;type:varchar(64);uniqueIndex;not null" json:"-"`
	Purpose    string     `gorm:"column:purpose;type:varchar(50);index;not null" json:"purpose"`
	UserID     uint       `gorm:"column:user_id;index;not null" json:"user_id"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null" json:"expires_at"`
	ConsumedAt *time.Time `gorm:"column:consumed_at" json:"consumed_at,omitempty"`
}

// TableName overrides default pluralised name.
func (DbAuthToken) TableName() string {
	return "auth_tokens"
}

// Usable reports whether the token can still be redeemed at the given time.
func (t *DbAuthToken) Usable(now time.Time) bool {
	if t == nil {
		return false
	}
	return t.ConsumedAt == nil && now.Before(t.ExpiresAt)
}
