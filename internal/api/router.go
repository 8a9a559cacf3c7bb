package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/lshmam/neucler-square-sub000/internal/api/handlers"
	"github.com/lshmam/neucler-square-sub000/internal/api/middleware"
	"github.com/lshmam/neucler-square-sub000/internal/config"
	"github.com/lshmam/neucler-square-sub000/internal/engine"
	"github.com/lshmam/neucler-square-sub000/internal/loyaltydb"
)

// Dependencies holds all service references needed by the API layer.
type Dependencies struct {
	DB     *loyaltydb.DB
	Engine *engine.Engine
	Config *config.Config
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(deps *Dependencies) chi.Router {
	r := chi.NewRouter()

	// Global middleware (applied to ALL routes).
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogging)

	slog.Info("router initialized",
		"middleware", []string{"realIP", "recoverer", "requestLogging"},
	)

	r.Get("/api/health", handlers.HealthHandler(deps.DB))

	// Payment event intake: signed, rate-limited, idempotent.
	r.Route("/api/webhooks", func(r chi.Router) {
		r.Use(middleware.RateLimit(deps.Config.WebhookRateLimit, config.WebhookRateBurst))
		r.Use(middleware.RequireSignature(deps.Config.WebhookSecret))

		r.Post("/payment", handlers.PaymentWebhookHandler(deps.Engine))
	})

	// Tenant-scoped configuration and read surfaces.
	r.Route("/api/tenants/{tenantID}", func(r chi.Router) {
		r.Post("/programs", handlers.CreateProgramHandler(deps.DB))
		r.Get("/programs", handlers.ListProgramsHandler(deps.DB))
		r.Post("/programs/{programID}/archive", handlers.ArchiveProgramHandler(deps.DB))

		r.Get("/customers/{customerID}/balances", handlers.CustomerBalancesHandler(deps.DB))
		r.Get("/customers/{customerID}/ledger", handlers.CustomerLedgerHandler(deps.DB))
	})

	return r
}
