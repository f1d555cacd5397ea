package main

import (
	"database/sql"
	"fmt"

	"github.com/calebhs/storefront-api/internal/config"
	"github.com/calebhs/storefront-api/internal/platform/postgres"
	"github.com/calebhs/storefront-api/internal/service"
	"github.com/calebhs/storefront-api/internal/service/auth"
)

// application holds the wired dependency graph.
type application struct {
	config *config.Config
	db     *sql.DB

	tokenService auth.TokenService

	userService    *service.UserService
	productService *service.ProductService
	cartService    *service.CartService
	orderService   *service.OrderService
}

// newApplication wires stores and services from the bottom up.
func newApplication(cfg *config.Config, db *sql.DB) (*application, error) {
	userStore := postgres.NewUserStore(db)
	productStore := postgres.NewProductStore(db)
	cartStore := postgres.NewCartItemStore(db)
	orderStore := postgres.NewOrderStore(db)
	refreshStore := postgres.NewRefreshTokenStore(db)
	recoveryStore := postgres.NewRecoveryTokenStore(db)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create jwt service: %w", err)
	}
	tokenService := auth.NewTokenService(jwtService, refreshStore, recoveryStore, cfg.Auth.RefreshTokenTTL())
	hasher := auth.NewArgon2Hasher(cfg.Auth)

	return &application{
		config:         cfg,
		db:             db,
		tokenService:   tokenService,
		userService:    service.NewUserService(userStore, tokenService, hasher),
		productService: service.NewProductService(productStore),
		cartService:    service.NewCartService(cartStore, productStore),
		orderService:   service.NewOrderService(db, cartStore, productStore, orderStore),
	}, nil
}
