package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/calebhs/storefront-api/internal/api"
	apiMiddleware "github.com/calebhs/storefront-api/internal/api/middleware"
)

// setupRouter configures all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	authHandler := api.NewAuthHandler(app.userService, app.tokenService, app.config.Auth)
	productHandler := api.NewProductHandler(app.productService)
	cartHandler := api.NewCartHandler(app.cartService)
	orderHandler := api.NewOrderHandler(app.orderService)
	userHandler := api.NewUserHandler(app.userService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/logout", authHandler.Logout)
		r.Post("/auth/recover", authHandler.Recover)
		r.Post("/auth/reset-password", authHandler.ResetPassword)

		r.Get("/products", productHandler.List)
		r.Get("/products/search", productHandler.Search)
		r.Get("/products/{productID}", productHandler.Get)

		// Protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/products/all", productHandler.ListAll)
			r.Post("/products", productHandler.Create)
			r.Patch("/products/{productID}", productHandler.Update)
			r.Delete("/products/{productID}", productHandler.Delete)

			r.Get("/users/me", userHandler.Me)
			r.Patch("/users/me", userHandler.UpdateMe)

			r.Get("/cart", cartHandler.List)
			r.Put("/cart/items", cartHandler.PutItem)
			r.Delete("/cart/items/{productID}", cartHandler.RemoveItem)
			r.Delete("/cart", cartHandler.Clear)

			r.Post("/orders", orderHandler.Checkout)
			r.Get("/orders", orderHandler.List)
			r.Get("/orders/{orderID}", orderHandler.Get)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
