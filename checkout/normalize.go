package checkout

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	msgPhoneInvalid = "Phone number must be exactly 10 digits"
	msgEmailInvalid = "Please enter a valid email address"
)

// emailShape is intentionally loose: local@domain.tld with no whitespace or
// extra @ signs. RFC edge cases are the gateway's problem, not ours.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// ValidationError reports a user-facing input problem detected before hash
// assembly. The attempt stops here; nothing downstream runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NumberError marks a value that could not be parsed as a number. Callers
// deriving totals may treat the value as zero; callers validating user input
// should surface it.
type NumberError struct {
	Field string
	Raw   string
}

func (e *NumberError) Error() string {
	return "invalid number for " + e.Field + ": '" + e.Raw + "'"
}

// NormalizePhone strips every non-digit character and truncates to ten
// digits. The stripped value is returned even when invalid; it is what gets
// stored. An empty input means "not yet entered" and is not an error.
func NormalizePhone(raw string) (string, error) {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) > 10 {
		digits = digits[:10]
	}
	if len(digits) == 0 {
		return digits, nil
	}
	if len(digits) != 10 {
		return digits, &ValidationError{Field: "phone", Message: msgPhoneInvalid}
	}
	return digits, nil
}

// ValidateEmail accepts empty input as "not yet entered". Non-empty input
// must match the simple local@domain.tld shape.
func ValidateEmail(raw string) error {
	if raw == "" {
		return nil
	}
	if !emailShape.MatchString(raw) {
		return &ValidationError{Field: "email", Message: msgEmailInvalid}
	}
	return nil
}

// ParseAmount parses a decimal amount permissively. Malformed or missing
// input yields zero plus a NumberError so the boundary can decide whether to
// surface it; derived totals treat it as zero. The raw string is always what
// rides the wire, never the parsed value.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, &NumberError{Field: field, Raw: raw}
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, &NumberError{Field: field, Raw: raw}
	}
	return d, nil
}

// ParseQuantity parses an item quantity, defaulting to one on malformed
// input, matching the permissive coercion the cart builder applies.
func ParseQuantity(raw string) int {
	d, err := ParseAmount("quantity", raw)
	if err != nil {
		return 1
	}
	return int(d.IntPart())
}

// ParseInterval parses a billing interval, defaulting to one.
func ParseInterval(raw string) int {
	d, err := ParseAmount("billingInterval", raw)
	if err != nil {
		return 1
	}
	return int(d.IntPart())
}
