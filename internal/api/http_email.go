package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tiendax/internal/entity"
	"tiendax/internal/mailer"
)

// GetEmailConfig returns the effective mail settings with secrets masked.
func (h *HTTPHandler) GetEmailConfig(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	cfg, err := h.emailService.EffectiveConfig(ctx)
	if err != nil {
		ServiceError(c, err)
		return
	}
	masked := *cfg
	if masked.Password != "" {
		masked.Password = "********"
	}
	if masked.APIKey != "" {
		masked.APIKey = "********"
	}
	c.JSON(http.StatusOK, gin.H{"config": masked})
}

// SaveEmailConfig overwrites the stored mail settings.
func (h *HTTPHandler) SaveEmailConfig(c *gin.Context) {
	var cfg entity.DbEmailConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.emailService.SaveConfig(ctx, &cfg); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Response{Success: true, Message: "configuration saved"})
}

// GetEmailPreset returns suggested settings for a known mail provider.
func (h *HTTPHandler) GetEmailPreset(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	preset, ok := mailer.Preset(name)
	if !ok {
		NotFound(c, ErrCodeNotFound, "unknown preset")
		return
	}
	c.JSON(http.StatusOK, gin.H{"preset": preset})
}

// SendEmail delivers a campaign message to one or more recipients.
func (h *HTTPHandler) SendEmail(c *gin.Context) {
	var req entity.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if len(req.To) == 0 {
		MissingField(c, "to")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.emailService.Send(ctx, req.To, req.Subject, req.Message); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Response{Success: true, Message: "email sent"})
}

// SendTestEmail delivers a probe message to check the saved configuration.
func (h *HTTPHandler) SendTestEmail(c *gin.Context) {
	var req entity.SendTestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.emailService.SendTest(ctx, req.Email); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Response{Success: true, Message: "test email sent"})
}
