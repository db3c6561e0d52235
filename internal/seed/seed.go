// Package seed prepares the in-memory state at startup: the distinguished
// admin account and a starter catalog. It replaces the migration step a
// persistent deployment would run.
package seed

import (
	"context"
	"fmt"

	"bakehouse/internal/config"
	"bakehouse/internal/domain"
	"bakehouse/internal/repository"
	"bakehouse/internal/service"

	"go.uber.org/zap"
)

// Admin seeds the administrator account from configuration.
func Admin(ctx context.Context, users service.UserService, cfg config.AuthConfig, logger *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Warn("Admin account not seeded: ADMIN_EMAIL or ADMIN_PASSWORD unset")
		return nil
	}
	if err := users.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	logger.Info("Admin account seeded", zap.String("email", cfg.AdminEmail))
	return nil
}

// Catalog seeds the starter product catalog.
func Catalog(ctx context.Context, products repository.ProductRepository, logger *zap.Logger) error {
	for _, p := range starterCatalog() {
		if err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}
	logger.Info("Starter catalog seeded", zap.Int("products", len(starterCatalog())))
	return nil
}

func starterCatalog() []*domain.Product {
	return []*domain.Product{
		{
			Name:        "Vanilla Cake",
			Description: "Classic vanilla sponge with buttercream frosting",
			BasePrice:   500,
			Category:    domain.CategoryCelebrationCakes,
			Options: map[string][]domain.Option{
				"size": {
					{Name: "Small", ExtraCost: 0},
					{Name: "Medium", ExtraCost: 150},
					{Name: "Large", ExtraCost: 300},
				},
				"frosting": {
					{Name: "Buttercream", ExtraCost: 0},
					{Name: "Cream Cheese", ExtraCost: 50},
					{Name: "Fondant", ExtraCost: 120},
				},
				"dietary": {
					{Name: "Eggless", ExtraCost: 40},
					{Name: "Sugar Free", ExtraCost: 60},
				},
			},
		},
		{
			Name:        "Chocolate Truffle Cake",
			Description: "Dark chocolate layers with truffle ganache",
			BasePrice:   650,
			Category:    domain.CategoryCelebrationCakes,
			Options: map[string][]domain.Option{
				"size": {
					{Name: "Small", ExtraCost: 0},
					{Name: "Large", ExtraCost: 350},
				},
			},
		},
		{
			Name:        "Red Velvet Cupcakes",
			Description: "Box of six red velvet cupcakes with cream cheese swirl",
			BasePrice:   280,
			Category:    domain.CategoryCupcakes,
			Options: map[string][]domain.Option{
				"dietary": {
					{Name: "Eggless", ExtraCost: 30},
				},
			},
		},
		{
			Name:        "Butter Croissant",
			Description: "Flaky all-butter croissant, baked every morning",
			BasePrice:   90,
			Category:    domain.CategoryPastries,
		},
		{
			Name:        "Cinnamon Roll",
			Description: "Soft roll with cinnamon sugar and vanilla glaze",
			BasePrice:   120,
			Category:    domain.CategoryPastries,
		},
		{
			Name:        "Tiramisu Cup",
			Description: "Espresso-soaked layers with mascarpone cream",
			BasePrice:   220,
			Category:    domain.CategoryDesserts,
		},
	}
}
