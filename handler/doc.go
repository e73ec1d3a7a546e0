// Package handler provides HTTP request handlers for the PayU checkout
// console.
//
// Credential profiles are stored in SQLite; attempt logs go to OpenSearch
// when logging is enabled.
//
// # Core Handlers
//
//   - CheckoutHandler: runs the hash pipeline and materializes attempts
//     (submit form fields, debug table, curl command, code snippets)
//   - CredentialsHandler: manages named merchant key/salt profiles
//   - HealthHandler: service, storage and runtime health
//
// # Checkout Handler
//
// The CheckoutHandler drives all attempt-building requests:
//
//	checkoutHandler := handler.NewCheckoutHandler(console, validator)
//
//	// Routes
//	r.Post("/v1/checkout/{flow}/submit", checkoutHandler.Submit)
//	r.Post("/v1/checkout/{flow}/debug", checkoutHandler.Debug)
//	r.Post("/v1/checkout/{flow}/curl", checkoutHandler.Curl)
//	r.Post("/v1/checkout/{flow}/code/{language}", checkoutHandler.Code)
//
// Validation failures and malformed numbers map to 400; an unavailable
// digest primitive maps to 500. The raw salt never appears in any response:
// debug output and credential listings mask it, generated code carries a
// placeholder.
package handler
