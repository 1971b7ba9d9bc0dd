package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tiendax/internal/entity"
	"tiendax/internal/service"
)

const handlerTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), handlerTimeout)
}

// Register creates a customer account and kicks off email verification.
func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.Register(ctx, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":    service.Summarize(user),
		"message": "verification email sent",
	})
}

// Login checks credentials and issues a session. The token is returned in
// the body and also set as a cookie for browser clients.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.authService.Login(ctx, strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		ServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token, int(h.authManager.Expiry().Seconds()))
	c.JSON(http.StatusOK, resp)
}

// Logout clears the session cookie. The stateless token itself simply ages
// out.
func (h *HTTPHandler) Logout(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	h.authService.Logout(ctx, CurrentUser(c))
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, entity.Response{Success: true})
}

// AuthStatus reports whether the request carries a live session. Unlike the
// middleware it never rejects; it is meant for the storefront shell to decide
// what to render.
func (h *HTTPHandler) AuthStatus(c *gin.Context) {
	token := extractSessionToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	claims, err := h.authManager.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          service.Summarize(user),
	})
}

// Me returns the authenticated user.
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": service.Summarize(user)})
}

// ForgotPassword issues a reset token and mails the reset link.
func (h *HTTPHandler) ForgotPassword(c *gin.Context) {
	var req entity.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.RequestPasswordReset(ctx, strings.ToLower(strings.TrimSpace(req.Email))); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Response{Success: true, Message: "reset email sent"})
}

// CheckResetToken reports whether a reset token is still redeemable.
func (h *HTTPHandler) CheckResetToken(c *gin.Context) {
	var req entity.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{"valid": h.authService.CheckResetToken(ctx, req.Token)})
}

// ResetPassword redeems a reset token and sets a new password.
func (h *HTTPHandler) ResetPassword(c *gin.Context) {
	var req entity.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.ResetPassword(ctx, req.Token, req.Password); err != nil {
		if err == service.ErrNotFound {
			BadRequest(c, ErrCodeTokenInvalid, "token invalid or expired")
			return
		}
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Response{Success: true, Message: "password updated"})
}

// VerifyEmail redeems a verification token and activates the account.
func (h *HTTPHandler) VerifyEmail(c *gin.Context) {
	var req entity.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.VerifyEmail(ctx, req.Token)
	if err != nil {
		if err == service.ErrNotFound {
			BadRequest(c, ErrCodeTokenInvalid, "token invalid or expired")
			return
		}
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": service.Summarize(user)})
}

// ResendVerification sends a fresh verification email.
func (h *HTTPHandler) ResendVerification(c *gin.Context) {
	var req entity.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.ResendVerification(ctx, strings.ToLower(strings.TrimSpace(req.Email))); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Response{Success: true, Message: "verification email sent"})
}

// UpdatePassword changes the signed-in user's password.
func (h *HTTPHandler) UpdatePassword(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.UpdatePassword(ctx, user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Response{Success: true, Message: "password updated"})
}

func (h *HTTPHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", false, true)
}
