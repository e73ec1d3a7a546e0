package checkout

import "github.com/mstgnz/payu-console/infra/config"

// Credentials holds the merchant key/salt pair resolved for a single attempt.
// The salt participates in the hash only; it is never emitted as a request
// field.
type Credentials struct {
	Key  string `json:"key"`
	Salt string `json:"-"`
}

// ResolveCredentials picks the merchant pair for an attempt. A custom pair is
// used only when custom mode is on and both values are non-empty; anything
// else falls back to the gateway's shared test pair. Custom values are taken
// verbatim, no format checks.
func ResolveCredentials(gw config.Gateway, useCustom bool, customKey, customSalt string) Credentials {
	if useCustom && customKey != "" && customSalt != "" {
		return Credentials{Key: customKey, Salt: customSalt}
	}
	return Credentials{Key: gw.DefaultKey, Salt: gw.DefaultSalt}
}

// MaskedSalt returns the display form of the salt: last four characters only.
func (c Credentials) MaskedSalt() string {
	salt := c.Salt
	if len(salt) > 4 {
		salt = salt[len(salt)-4:]
	}
	return "***" + salt
}
