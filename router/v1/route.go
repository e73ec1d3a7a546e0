package v1

import (
	"github.com/go-chi/chi/v5"
	"github.com/mstgnz/payu-console/checkout"
	"github.com/mstgnz/payu-console/handler"
	"github.com/mstgnz/payu-console/infra/config"
)

// Deps carries the shared services the v1 routes depend on.
type Deps struct {
	Console *checkout.Console
	Storage *config.SQLiteStorage
}

// Routes registers all API routes
func Routes(r chi.Router, deps Deps) {
	validate := config.App().Validator

	checkoutHandler := handler.NewCheckoutHandler(deps.Console, validate)
	credentialsHandler := handler.NewCredentialsHandler(deps.Storage, validate)

	// Checkout attempt routes
	r.Route("/checkout", func(r chi.Router) {
		r.Post("/{flow}/submit", checkoutHandler.Submit)
		r.Post("/{flow}/debug", checkoutHandler.Debug)
		r.Post("/{flow}/curl", checkoutHandler.Curl)
		r.Post("/{flow}/code/{language}", checkoutHandler.Code)
	})

	// Credential profile routes
	r.Route("/credentials", func(r chi.Router) {
		r.Get("/", credentialsHandler.List)
		r.Get("/{name}", credentialsHandler.Get)
		r.Put("/{name}", credentialsHandler.Put)
		r.Delete("/{name}", credentialsHandler.Delete)
	})

	// Stats endpoint is handled by the stats middleware
	// GET /v1/stats?flow=tpv&hours=24
}
