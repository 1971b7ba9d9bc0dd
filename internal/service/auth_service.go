package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tiendax/internal/auth"
	"tiendax/internal/entity"
	"tiendax/internal/model"
)

// AuthMailer is the part of the email service the auth flows depend on.
type AuthMailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
	SendVerification(ctx context.Context, email, token string) error
}

// AuthService owns account lifecycle: sessions, registration and the
// one-time token flows.
type AuthService struct {
	repo      model.Repository
	sessions  *auth.Manager
	email     AuthMailer
	activity  *ActivityService
	resetTTL  time.Duration
	verifyTTL time.Duration
}

func NewAuthService(repo model.Repository, sessions *auth.Manager, email AuthMailer, activity *ActivityService, resetTTL, verifyTTL time.Duration) *AuthService {
	if resetTTL <= 0 {
		resetTTL = 24 * time.Hour
	}
	if verifyTTL <= 0 {
		verifyTTL = 72 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		email:     email,
		activity:  activity,
		resetTTL:  resetTTL,
		verifyTTL: verifyTTL,
	}
}

// Login validates credentials and issues a session token. Accounts with an
// unverified email cannot sign in.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrBadCredentials
	}
	if !user.EmailVerified {
		return nil, ErrUnverified
	}

	token, expiresAt, err := s.sessions.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	s.activity.Log(ctx, user.ID, user.Name, "Inicio de sesión", fmt.Sprintf("Acceso como %s", user.Role))
	return &entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      Summarize(user),
	}, nil
}

// Logout only records the event; the stateless session token simply expires.
func (s *AuthService) Logout(ctx context.Context, user *entity.DbUser) {
	if user == nil {
		return
	}
	s.activity.Log(ctx, user.ID, user.Name, "Cierre de sesión", "")
}

// Register creates a customer account and sends the verification email. The
// account stays unverified until the emailed token is redeemed.
func (s *AuthService) Register(ctx context.Context, req *entity.AuthRegisterRequest) (*entity.DbUser, error) {
	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.DbUser{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         entity.UserRoleCustomer,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	s.activity.Log(ctx, user.ID, user.Name, "Registro", "Nuevo usuario registrado")

	// Verification mail failure must not lose the account; the user can
	// request a resend.
	if err := s.sendVerification(ctx, user); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Warn("could not send verification email")
	}
	return user, nil
}

// ResendVerification issues a fresh verification token for an unverified
// account.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if user.EmailVerified {
		return ErrValidation
	}
	return s.sendVerification(ctx, user)
}

func (s *AuthService) sendVerification(ctx context.Context, user *entity.DbUser) error {
	token, err := s.issueToken(ctx, user.ID, entity.TokenPurposeVerify, s.verifyTTL)
	if err != nil {
		return err
	}
	return s.email.SendVerification(ctx, user.Email, token)
}

// RequestPasswordReset issues a reset token and mails it. Earlier tokens for
// the same user stay valid until they expire or are redeemed.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	token, err := s.issueToken(ctx, user.ID, entity.TokenPurposeReset, s.resetTTL)
	if err != nil {
		return err
	}
	return s.email.SendPasswordReset(ctx, user.Email, token)
}

// CheckResetToken reports whether a reset token is still redeemable without
// consuming it.
func (s *AuthService) CheckResetToken(ctx context.Context, token string) bool {
	rec, err := s.lookupToken(ctx, token, entity.TokenPurposeReset)
	return err == nil && rec != nil
}

// ResetPassword redeems a reset token and replaces the account password.
// Redeeming also marks the email verified, since the link proves mailbox
// ownership.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	rec, err := s.lookupToken(ctx, token, entity.TokenPurposeReset)
	if err != nil {
		return err
	}
	user, err := s.repo.GetUserByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	// Consume the token before touching the password so a failure can
	// never leave a redeemable token for a reset that already happened.
	if err := s.repo.ConsumeAuthToken(ctx, rec.ID); err != nil {
		return err
	}
	updates := entity.UserUpdates{
		"password_hash":  hash,
		"email_verified": true,
	}
	if err := s.repo.UpdateUser(ctx, user.ID, updates); err != nil {
		return err
	}
	s.activity.Log(ctx, user.ID, user.Name, "Restablecimiento de contraseña", "")
	return nil
}

// VerifyEmail redeems a verification token and activates the account.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*entity.DbUser, error) {
	rec, err := s.lookupToken(ctx, token, entity.TokenPurposeVerify)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetUserByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.repo.ConsumeAuthToken(ctx, rec.ID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{"email_verified": true}); err != nil {
		return nil, err
	}
	user.EmailVerified = true
	s.activity.Log(ctx, user.ID, user.Name, "Verificación de correo", "")
	return user, nil
}

// UpdatePassword changes the password of a signed-in user after re-checking
// the current one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, current, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := auth.VerifyPassword(user.PasswordHash, current); err != nil {
		return ErrBadCredentials
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{"password_hash": hash}); err != nil {
		return err
	}
	s.activity.Log(ctx, user.ID, user.Name, "Cambio de contraseña", "")
	return nil
}

func (s *AuthService) issueToken(ctx context.Context, userID uint, purpose string, ttl time.Duration) (string, error) {
	plain, err := auth.MintOneTimeToken()
	if err != nil {
		return "", err
	}
	hash, err := auth.HashToken(plain)
	if err != nil {
		return "", err
	}
	rec := &entity.DbAuthToken{
		TokenHash: hash,
		Purpose:   purpose,
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := s.repo.CreateAuthToken(ctx, rec); err != nil {
		return "", err
	}
	// Opportunistic cleanup; expired rows are dead weight either way.
	if err := s.repo.DeleteExpiredAuthTokens(ctx); err != nil {
		logrus.WithError(err).Warn("failed to purge expired tokens")
	}
	return plain, nil
}

func (s *AuthService) lookupToken(ctx context.Context, token, purpose string) (*entity.DbAuthToken, error) {
	hash, err := auth.HashToken(token)
	if err != nil {
		return nil, ErrNotFound
	}
	rec, err := s.repo.GetAuthTokenByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rec.Purpose != purpose || !rec.Usable(time.Now().UTC()) {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Summarize strips a user down to its client-facing fields.
func Summarize(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		Protected:     user.Protected,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
