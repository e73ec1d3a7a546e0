// Package payuconsole provides a demonstration and testing console for PayU's
// redirect checkout. It assembles the exact hash string and ordered form
// fields for each hosted-checkout flow so developers can inspect, replay and
// port the integration before touching production code.
//
// # Overview
//
// The redirect checkout requires a SHA-512 hash over a pipe-delimited string
// of merchant key, transaction fields and salt, with a flow-specific suffix.
// A single wrong pipe and the gateway rejects the payment with an opaque
// error. The console makes the whole calculation visible: the backbone, the
// suffix, the formula, the resulting hash and every form field in the order
// the gateway receives them.
//
// # Supported Flows
//
// Nine hosted-checkout flows are covered:
//   - Non-seamless: plain one-time redirect checkout
//   - Subscription: recurring mandate setup with si_details
//   - Cross-border: international payments, one-time and recurring
//   - TPV: third-party-validation with beneficiary account details
//   - UPI OTM: one-time-mandate over UPI
//   - Pre-auth: authorization without immediate capture
//   - Checkout Plus: hosted page with enforced payment methods
//   - Split: marketplace settlement across child merchants
//   - Bank offer: issuer offers with optional SKU-level cart details
//
// # Quick Start
//
//	gw := config.NewGateway()
//	console := checkout.NewConsole(gw)
//
//	attempt, err := console.Build(&checkout.Request{
//		Flow:        checkout.FlowNonSeamless,
//		Amount:      "100.50",
//		ProductInfo: "Test Product",
//		FirstName:   "Dev",
//		Email:       "dev@example.com",
//		Phone:       "9876543210",
//		SURL:        "https://example.com/success",
//		FURL:        "https://example.com/failure",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(attempt.Hash)          // 128-char lowercase hex
//	fmt.Println(attempt.CurlCommand()) // runnable curl equivalent
//
// Every Build call mints a fresh transaction ID, so repeated attempts over
// the same form state produce different hashes.
//
// # HTTP Surface
//
// The console also runs as a small HTTP service:
//
//	POST /v1/checkout/{flow}/submit          ordered form fields + hash
//	POST /v1/checkout/{flow}/debug           annotated parameter table
//	POST /v1/checkout/{flow}/curl            runnable curl command
//	POST /v1/checkout/{flow}/code/{language} server-side snippet (java, php, python, nodejs)
//	GET  /v1/credentials                     stored merchant profiles (salts masked)
//	GET  /v1/stats?flow=tpv&hours=24         attempt statistics from OpenSearch
//
// Merchant salts never leave the process unmasked: debug output, curl
// commands, generated code, credential listings and attempt logs all carry
// either a masked form or a placeholder.
package payuconsole
