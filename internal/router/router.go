package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vexora-shop/accounts/internal/middleware"
	"github.com/vexora-shop/accounts/internal/middleware/metrics"
	"github.com/vexora-shop/accounts/internal/setup"
)

// New creates and configures the router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	needAuth := middleware.NeedAuth(deps.Jwt)
	adminOnly := middleware.AdminOnly(deps.Jwt)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Post("/verify", h.VerifyCode)
			r.Post("/resend", h.ResendCode)
			r.Post("/forgot-password", h.ForgotPassword)
			r.Post("/reset-password", h.ResetPassword)
			r.Get("/google", h.GoogleLogin)
			r.Get("/google/callback", h.GoogleCallback)
		})

		r.Get("/me", needAuth(h.Me))

		r.Route("/admin", func(r chi.Router) {
			r.Get("/customers", adminOnly(h.Customers))
			r.Post("/customers/{customerId}/block", adminOnly(h.BlockCustomer))
			r.Delete("/customers/{customerId}/block", adminOnly(h.UnblockCustomer))
		})
	})

	return r
}
