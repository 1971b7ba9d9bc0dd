package entity

import "time"

const (
	UserRoleAdmin    = "admin"
	UserRoleCustomer = "customer"
)

// DbUser represents a persisted user account.
type DbUser struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Email         string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Name          string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Role          string    `gorm:"column:role;type:varchar(50);index;not null" json:"role"`
	EmailVerified bool      `gorm:"column:email_verified;not null;default:false" json:"email_verified"`
	// Protected marks the seeded store administrator, which can never be
	// deleted or demoted.
	Protected bool `gorm:"column:protected;not null;default:false" json:"protected"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// IsAdmin reports whether the account carries the admin role.
func (u *DbUser) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

// UserSummary is a lightweight user description returned to clients.
type UserSummary struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	Protected     bool      `json:"protected"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserQuery supports listing users with pagination.
type UserQuery struct {
	BaseParams
	Role    string `json:"role" form:"role" query:"role"`
	Keyword string `json:"keyword" form:"keyword" query:"keyword"`
}

// UserUpdates is a partial set of column updates for a user.
type UserUpdates = map[string]interface{}

type AuthLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthRegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type UserCreateRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Name          string `json:"name"`
	Role          string `json:"role" binding:"required"`
	EmailVerified *bool  `json:"email_verified"`
}

type UserUpdateRequest struct {
	Name          *string `json:"name,omitempty"`
	Role          *string `json:"role,omitempty"`
	Password      *string `json:"password,omitempty"`
	EmailVerified *bool   `json:"email_verified,omitempty"`
}

type UserListResponse struct {
	Users []UserSummary `json:"users"`
	Meta  *Meta         `json:"meta"`
}
