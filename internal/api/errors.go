package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendax/internal/service"
)

// Error codes returned in API error envelopes.
const (
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeEmailExists        = "ERR_EMAIL_EXISTS"
	ErrCodeEmailNotVerified   = "ERR_EMAIL_NOT_VERIFIED"
	ErrCodeSessionExpired     = "ERR_SESSION_EXPIRED"
	ErrCodeUserNotFound       = "ERR_USER_NOT_FOUND"

	ErrCodeProductNotFound = "ERR_PRODUCT_NOT_FOUND"
	ErrCodeCartItemMissing = "ERR_CART_ITEM_MISSING"
	ErrCodeTokenInvalid    = "ERR_TOKEN_INVALID"

	ErrCodeMissingField  = "ERR_MISSING_FIELD"
	ErrCodeMailNotSetUp  = "ERR_MAIL_NOT_CONFIGURED"
	ErrCodeMailSendError = "ERR_MAIL_SEND_FAILED"
	ErrCodeFileTooLarge  = "ERR_FILE_TOO_LARGE"
	ErrCodeFileType      = "ERR_FILE_TYPE_NOT_ALLOWED"
)

// APIError is the uniform error response envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse writes a uniform error response.
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ErrorResponseWithDetails writes an error response with extra details.
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden writes a 403 response.
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// InternalError writes a 500 response.
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// MissingField writes a 400 response naming the missing field.
func MissingField(c *gin.Context, field string) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeMissingField, field+" is required", gin.H{"field": field})
}

// InvalidPayload writes a 400 response for an unreadable request body.
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}

// ServiceError maps service-layer sentinel errors onto HTTP responses.
// Unknown errors become a generic 500 so internals never leak to clients.
func ServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, ErrCodeNotFound, "resource not found")
	case errors.Is(err, service.ErrBadCredentials):
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
	case errors.Is(err, service.ErrUnverified):
		ErrorResponse(c, http.StatusForbidden, ErrCodeEmailNotVerified, "email address not verified")
	case errors.Is(err, service.ErrDuplicateEmail):
		BadRequest(c, ErrCodeEmailExists, "email already registered")
	case errors.Is(err, service.ErrForbidden):
		Forbidden(c, "operation not allowed")
	case errors.Is(err, service.ErrValidation):
		BadRequest(c, ErrCodeInvalidRequest, "invalid request")
	case errors.Is(err, service.ErrConfigIncomplete):
		ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeMailNotSetUp, "email is not configured")
	case errors.Is(err, service.ErrDeliveryFailure):
		ErrorResponse(c, http.StatusBadGateway, ErrCodeMailSendError, "email delivery failed")
	default:
		InternalError(c, "internal server error")
	}
}
