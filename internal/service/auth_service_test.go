package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tiendax/internal/auth"
	"tiendax/internal/entity"
)

type captureMailer struct {
	resetTokens  []string
	verifyTokens []string
	failWith     error
}

func (m *captureMailer) SendPasswordReset(_ context.Context, _ string, token string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.resetTokens = append(m.resetTokens, token)
	return nil
}

func (m *captureMailer) SendVerification(_ context.Context, _ string, token string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.verifyTokens = append(m.verifyTokens, token)
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeRepo, *captureMailer) {
	t.Helper()
	repo := newFakeRepo()
	sessions, err := auth.NewManager("test-secret", "test", time.Hour)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	mail := &captureMailer{}
	activity := NewActivityService(repo)
	svc := NewAuthService(repo, sessions, mail, activity, time.Hour, time.Hour)
	return svc, repo, mail
}

func mustRegister(t *testing.T, svc *AuthService, email, password, name string) *entity.DbUser {
	t.Helper()
	user, err := svc.Register(context.Background(), &entity.AuthRegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return user
}

func TestRegisterAndVerify(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)
	ctx := context.Background()

	user := mustRegister(t, svc, "ana@example.com", "secret-pass", "Ana")
	if user.Role != entity.UserRoleCustomer {
		t.Errorf("role = %q, want customer", user.Role)
	}
	if user.EmailVerified {
		t.Error("new account should start unverified")
	}
	if len(mail.verifyTokens) != 1 {
		t.Fatalf("verification emails sent = %d, want 1", len(mail.verifyTokens))
	}

	// Unverified accounts cannot sign in.
	if _, err := svc.Login(ctx, "ana@example.com", "secret-pass"); !errors.Is(err, ErrUnverified) {
		t.Errorf("Login before verification: got %v, want ErrUnverified", err)
	}

	verified, err := svc.VerifyEmail(ctx, mail.verifyTokens[0])
	if err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	if !verified.EmailVerified {
		t.Error("VerifyEmail did not mark account verified")
	}

	// Tokens are single use.
	if _, err := svc.VerifyEmail(ctx, mail.verifyTokens[0]); !errors.Is(err, ErrNotFound) {
		t.Errorf("second VerifyEmail: got %v, want ErrNotFound", err)
	}

	resp, err := svc.Login(ctx, "ana@example.com", "secret-pass")
	if err != nil {
		t.Fatalf("Login after verification: %v", err)
	}
	if resp.Token == "" {
		t.Error("Login returned empty session token")
	}
	if resp.User.Email != "ana@example.com" {
		t.Errorf("Login user email = %q", resp.User.Email)
	}

	stored, err := repo.GetUserByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if stored.PasswordHash == "secret-pass" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	mustRegister(t, svc, "ana@example.com", "secret-pass", "Ana")

	_, err := svc.Register(context.Background(), &entity.AuthRegisterRequest{
		Email:    "ana@example.com",
		Password: "other-pass",
		Name:     "Ana 2",
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("duplicate Register: got %v, want ErrDuplicateEmail", err)
	}
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)
	mail.failWith = errors.New("smtp down")

	user := mustRegister(t, svc, "ana@example.com", "secret-pass", "Ana")
	if _, err := repo.GetUserByID(context.Background(), user.ID); err != nil {
		t.Errorf("account lost after mail failure: %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, mail := newAuthFixture(t)
	ctx := context.Background()
	mustRegister(t, svc, "ana@example.com", "secret-pass", "Ana")
	if _, err := svc.VerifyEmail(ctx, mail.verifyTokens[0]); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	if _, err := svc.Login(ctx, "ana@example.com", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong password: got %v, want ErrBadCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret-pass"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown email: got %v, want ErrNotFound", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, mail := newAuthFixture(t)
	ctx := context.Background()
	mustRegister(t, svc, "ana@example.com", "secret-pass", "Ana")

	if err := svc.RequestPasswordReset(ctx, "ana@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if len(mail.resetTokens) != 1 {
		t.Fatalf("reset emails sent = %d, want 1", len(mail.resetTokens))
	}
	token := mail.resetTokens[0]

	if !svc.CheckResetToken(ctx, token) {
		t.Error("CheckResetToken rejected a fresh token")
	}
	if svc.CheckResetToken(ctx, "deadbeef") {
		t.Error("CheckResetToken accepted an unknown token")
	}

	if err := svc.ResetPassword(ctx, token, "brand-new-pass"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	// Redeeming the link proves mailbox ownership, so login works even
	// though the account never followed the verification link.
	if _, err := svc.Login(ctx, "ana@example.com", "brand-new-pass"); err != nil {
		t.Errorf("Login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, "ana@example.com", "secret-pass"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("Login with old password: got %v, want ErrBadCredentials", err)
	}

	if err := svc.ResetPassword(ctx, token, "again"); !errors.Is(err, ErrNotFound) {
		t.Errorf("token reuse: got %v, want ErrNotFound", err)
	}
}

func TestPasswordResetConcurrentTokens(t *testing.T) {
	svc, _, mail := newAuthFixture(t)
	ctx := context.Background()
	mustRegister(t, svc, "ana@example.com", "secret-pass", "Ana")

	if err := svc.RequestPasswordReset(ctx, "ana@example.com"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if err := svc.RequestPasswordReset(ctx, "ana@example.com"); err != nil {
		t.Fatalf("second request: %v", err)
	}
	// Issuing a second token does not invalidate the first.
	if !svc.CheckResetToken(ctx, mail.resetTokens[0]) {
		t.Error("first token invalidated by second request")
	}
	if !svc.CheckResetToken(ctx, mail.resetTokens[1]) {
		t.Error("second token not usable")
	}
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	if err := svc.RequestPasswordReset(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestTokenPurposeIsChecked(t *testing.T) {
	svc, _, mail := newAuthFixture(t)
	ctx := context.Background()
	mustRegister(t, svc, "ana@example.com", "secret-pass", "Ana")

	// A verification token must not work as a reset token.
	verifyToken := mail.verifyTokens[0]
	if svc.CheckResetToken(ctx, verifyToken) {
		t.Error("verification token accepted for password reset")
	}
	if err := svc.ResetPassword(ctx, verifyToken, "new-pass"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResetPassword with verify token: got %v, want ErrNotFound", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	svc, _, mail := newAuthFixture(t)
	ctx := context.Background()
	user := mustRegister(t, svc, "ana@example.com", "secret-pass", "Ana")
	if _, err := svc.VerifyEmail(ctx, mail.verifyTokens[0]); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	if err := svc.UpdatePassword(ctx, user.ID, "wrong", "new-pass"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong current password: got %v, want ErrBadCredentials", err)
	}
	if err := svc.UpdatePassword(ctx, user.ID, "secret-pass", "new-pass"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if _, err := svc.Login(ctx, "ana@example.com", "new-pass"); err != nil {
		t.Errorf("Login after password change: %v", err)
	}
}

func TestResendVerification(t *testing.T) {
	svc, _, mail := newAuthFixture(t)
	ctx := context.Background()
	mustRegister(t, svc, "ana@example.com", "secret-pass", "Ana")

	if err := svc.ResendVerification(ctx, "ana@example.com"); err != nil {
		t.Fatalf("ResendVerification: %v", err)
	}
	if len(mail.verifyTokens) != 2 {
		t.Fatalf("verification emails sent = %d, want 2", len(mail.verifyTokens))
	}

	if _, err := svc.VerifyEmail(ctx, mail.verifyTokens[1]); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	// Already-verified accounts cannot request another token.
	if err := svc.ResendVerification(ctx, "ana@example.com"); !errors.Is(err, ErrValidation) {
		t.Errorf("resend for verified account: got %v, want ErrValidation", err)
	}
}

func TestResetPasswordConsumesTokenBeforeUpdate(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)
	ctx := context.Background()
	mustRegister(t, svc, "ana@example.com", "secret-pass", "Ana")

	if err := svc.RequestPasswordReset(ctx, "ana@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	token := mail.resetTokens[0]

	repo.updateUserErr = errors.New("write timeout")
	if err := svc.ResetPassword(ctx, token, "brand-new-pass"); err == nil {
		t.Fatal("expected ResetPassword to surface the storage error")
	}
	repo.updateUserErr = nil

	// The token was burned before the failed write, so it can never be
	// redeemed a second time.
	if svc.CheckResetToken(ctx, token) {
		t.Error("token still redeemable after a failed reset attempt")
	}
	if err := svc.ResetPassword(ctx, token, "another-pass"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second redeem: got %v, want ErrNotFound", err)
	}
}
