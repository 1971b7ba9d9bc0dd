package model

import (
	"context"
	"errors"
	"strings"

	"tiendax/internal/auth"
	"tiendax/internal/config"
	"tiendax/internal/entity"

	"gorm.io/gorm"
)

// SeedDefaults ensures the protected store administrator and the demo catalog
// exist. It is safe to call on every startup.
func SeedDefaults(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}
	if err := seedAdminUser(ctx, repo, cfg); err != nil {
		return err
	}
	return SeedDemoProducts(ctx, repo)
}

func seedAdminUser(ctx context.Context, repo Repository, cfg config.Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" {
		return errors.New("admin email is not configured")
	}

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &entity.DbUser{
		Email:         email,
		PasswordHash:  hash,
		Name:          strings.TrimSpace(cfg.AdminName),
		Role:          entity.UserRoleAdmin,
		EmailVerified: true,
		Protected:     true,
	}
	return repo.CreateUser(ctx, admin)
}

// SeedDemoProducts inserts the demo catalog when the product table is empty.
func SeedDemoProducts(ctx context.Context, repo Repository) error {
	if repo == nil {
		return nil
	}
	maxID, err := repo.MaxProductID(ctx)
	if err != nil {
		return err
	}
	if maxID > 0 {
		return nil
	}
	for _, seed := range DefaultProducts() {
		product := seed
		if err := repo.CreateProduct(ctx, &product); err != nil {
			return err
		}
	}
	return nil
}

// DefaultProducts returns the demo catalog shipped with the storefront.
func DefaultProducts() []entity.DbProduct {
	return []entity.DbProduct{
		{
			ID:          1,
			Name:        "Aceite Labial Tintado Soft Pinch",
			Description: "Un aceite labial ligero que proporciona un brillo sutil y un toque de color. Hidrata y nutre los labios con una fórmula no pegajosa.",
			Price:       560,
			ImageURL:    "/placeholder.svg?height=600&width=400",
			Category:    "labios",
			Shade:       "Serenity",
			Colors: entity.ProductColors{
				{ID: 1, Name: "Serenity", ColorCode: "#D75C5C"},
				{ID: 2, Name: "Passion", ColorCode: "#8E2C48"},
				{ID: 3, Name: "Bliss", ColorCode: "#F08080"},
				{ID: 4, Name: "Sunset", ColorCode: "#E67E51"},
				{ID: 5, Name: "Cocoa", ColorCode: "#8B4513"},
				{ID: 6, Name: "Rose", ColorCode: "#F7A5A5"},
			},
		},
		{
			ID:          2,
			Name:        "Base Líquida Luminosa",
			Description: "Una base de cobertura media a completa con acabado luminoso. Fórmula ligera que se siente como una segunda piel.",
			Price:       850,
			ImageURL:    "/placeholder.svg?height=600&width=400",
			Category:    "rostro",
			Colors: entity.ProductColors{
				{ID: 7, Name: "100N", ColorCode: "#F5DEB3"},
				{ID: 8, Name: "200N", ColorCode: "#E8C39E"},
				{ID: 9, Name: "300N", ColorCode: "#D2B48C"},
				{ID: 10, Name: "400N", ColorCode: "#BC8F8F"},
			},
		},
		{
			ID:          3,
			Name:        "Máscara de Pestañas Voluminizadora",
			Description: "Máscara que proporciona volumen y longitud a las pestañas. Fórmula de larga duración resistente al agua.",
			Price:       420,
			ImageURL:    "/placeholder.svg?height=600&width=400",
			Category:    "ojos",
			Colors:      entity.ProductColors{},
		},
		{
			ID:          4,
			Name:        "Rubor Líquido Soft Pinch",
			Description: "Un rubor líquido de larga duración que se difumina fácilmente para un acabado natural y radiante.",
			Price:       490,
			ImageURL:    "/placeholder.svg?height=600&width=400",
			Category:    "rostro",
			Colors: entity.ProductColors{
				{ID: 11, Name: "Joy", ColorCode: "#FF69B4"},
				{ID: 12, Name: "Hope", ColorCode: "#FF6347"},
				{ID: 13, Name: "Grace", ColorCode: "#DB7093"},
			},
		},
		{
			ID:          5,
			Name:        "Paleta de Sombras Discovery",
			Description: "Una paleta versátil con 12 tonos mate y metálicos para crear múltiples looks. Fórmula altamente pigmentada y fácil de difuminar.",
			Price:       780,
			ImageURL:    "/placeholder.svg?height=600&width=400",
			Category:    "ojos",
			Colors:      entity.ProductColors{},
		},
		{
			ID:          6,
			Name:        "Iluminador Líquido Positive Light",
			Description: "Un iluminador líquido que proporciona un brillo natural y radiante. Se puede usar solo o mezclado con la base.",
			Price:       520,
			ImageURL:    "/placeholder.svg?height=600&width=400",
			Category:    "rostro",
			Colors: entity.ProductColors{
				{ID: 14, Name: "Enlighten", ColorCode: "#FFD700"},
				{ID: 15, Name: "Mesmerize", ColorCode: "#F5F5DC"},
				{ID: 16, Name: "Transcend", ColorCode: "#E6BE8A"},
			},
		},
	}
}
