package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tiendax/internal/api"
	"tiendax/internal/config"
	"tiendax/internal/model"
	"tiendax/internal/storage"
)

func main() {
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("failed to parse config")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if err := model.SeedDefaults(context.Background(), repo, cfg); err != nil {
		logrus.WithError(err).Warn("failed to seed defaults")
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.GET("/status", httpHandler.AuthStatus)
	authGroup.POST("/register", httpHandler.Register)
	authGroup.POST("/login", httpHandler.Login)
	authGroup.POST("/forgot-password", httpHandler.ForgotPassword)
	authGroup.POST("/reset-password/verify", httpHandler.CheckResetToken)
	authGroup.POST("/reset-password", httpHandler.ResetPassword)
	authGroup.POST("/verify-email", httpHandler.VerifyEmail)
	authGroup.POST("/resend-verification", httpHandler.ResendVerification)
	authGroup.GET("/me", httpHandler.AuthMiddleware(), httpHandler.Me)
	authGroup.POST("/logout", httpHandler.AuthMiddleware(), httpHandler.Logout)
	authGroup.POST("/password", httpHandler.AuthMiddleware(), httpHandler.UpdatePassword)

	// Public catalog browsing.
	apiGroup.GET("/products", httpHandler.ListProducts)
	apiGroup.GET("/products/most-viewed", httpHandler.MostViewedProducts)
	apiGroup.GET("/products/:id", httpHandler.GetProduct)
	apiGroup.POST("/products/:id/views", httpHandler.RecordProductView)

	protected := apiGroup.Group("")
	protected.Use(httpHandler.AuthMiddleware())

	cart := protected.Group("/cart")
	cart.GET("", httpHandler.GetCart)
	cart.POST("/items", httpHandler.AddCartItem)
	cart.PATCH("/items/:id", httpHandler.UpdateCartItem)
	cart.DELETE("/items/:id", httpHandler.DeleteCartItem)
	cart.DELETE("", httpHandler.ClearCart)
	cart.POST("/checkout", httpHandler.Checkout)

	protected.GET("/orders", httpHandler.ListOrders)

	admin := protected.Group("")
	admin.Use(httpHandler.RequireAdmin())
	admin.GET("/users", httpHandler.ListUsers)
	admin.POST("/users", httpHandler.CreateUser)
	admin.PATCH("/users/:id", httpHandler.UpdateUser)
	admin.DELETE("/users/:id", httpHandler.DeleteUser)
	admin.GET("/activities", httpHandler.ListActivities)
	admin.POST("/products", httpHandler.CreateProduct)
	admin.PATCH("/products/:id", httpHandler.UpdateProduct)
	admin.DELETE("/products/:id", httpHandler.DeleteProduct)
	admin.GET("/email/config", httpHandler.GetEmailConfig)
	admin.PUT("/email/config", httpHandler.SaveEmailConfig)
	admin.GET("/email/preset/:name", httpHandler.GetEmailPreset)
	admin.POST("/email/send", httpHandler.SendEmail)
	admin.POST("/email/test", httpHandler.SendTestEmail)
	admin.POST("/upload", httpHandler.UploadImage)
	admin.POST("/seed", httpHandler.SeedDemoData)

	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/files"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("server starting")
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server failed")
	}
}

// CORSMiddleware handles cross-origin requests for the storefront client.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware logs every request with its outcome.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
