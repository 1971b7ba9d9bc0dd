package api

import (
	"strings"
	"time"

	"tiendax/internal/auth"
	"tiendax/internal/config"
	"tiendax/internal/model"
	"tiendax/internal/service"
	"tiendax/internal/storage"
)

// HTTPHandler carries the wired services behind the HTTP surface.
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager

	activityService *service.ActivityService
	authService     *service.AuthService
	userService     *service.UserService
	catalogService  *service.CatalogService
	cartService     *service.CartService
	emailService    *service.EmailService
}

// NewHTTPHandler wires the service layer and creates the handler.
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	activitySvc := service.NewActivityService(repo)
	emailSvc := service.NewEmailService(repo, cfg)
	authSvc := service.NewAuthService(
		repo,
		authManager,
		emailSvc,
		activitySvc,
		time.Duration(cfg.ResetTokenTTLMinutes)*time.Minute,
		time.Duration(cfg.VerifyTokenTTLMinutes)*time.Minute,
	)

	return &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		activityService:   activitySvc,
		authService:       authSvc,
		userService:       service.NewUserService(repo, activitySvc),
		catalogService:    service.NewCatalogService(repo, activitySvc),
		cartService:       service.NewCartService(repo, activitySvc, cfg.FreeShippingThreshold, cfg.FlatShippingFee, cfg.OrderWhatsAppNumber),
		emailService:      emailSvc,
	}, nil
}

func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}
