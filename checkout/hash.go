package checkout

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrDigestUnavailable is returned when no digest primitive is wired in. An
// attempt must fail loudly rather than ship an empty or truncated hash to the
// gateway.
var ErrDigestUnavailable = errors.New("checkout: digest primitive unavailable")

// DigestFunc is the injected one-way digest capability.
type DigestFunc func([]byte) []byte

// DigestEngine hex-encodes a fixed 512-bit digest over an arbitrary string.
type DigestEngine struct {
	fn DigestFunc
}

// NewDigestEngine returns an engine backed by SHA-512.
func NewDigestEngine() *DigestEngine {
	return &DigestEngine{fn: func(b []byte) []byte {
		sum := sha512.Sum512(b)
		return sum[:]
	}}
}

// NewDigestEngineWith returns an engine backed by the given primitive. A nil
// primitive produces ErrDigestUnavailable on use, never a silent empty hash.
func NewDigestEngineWith(fn DigestFunc) *DigestEngine {
	return &DigestEngine{fn: fn}
}

// Sum returns the lowercase hex digest of s.
func (e *DigestEngine) Sum(s string) (string, error) {
	if e == nil || e.fn == nil {
		return "", ErrDigestUnavailable
	}
	return hex.EncodeToString(e.fn([]byte(s))), nil
}

// HashFields is the subset of form state that participates in the hash
// backbone plus the suffix-specific values.
type HashFields struct {
	TxnID       string
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	Udf         [5]string
	BuyerType   string // cross-border business-buyer marker; empty means absent
	OfferKey    string // bank-offer
	Phone       string // bank-offer cart template only
}

// HashResult pairs the exact hash input string with its salt-masked,
// field-named formula. Both always describe the same template branch.
type HashResult struct {
	HashString string
	Formula    string
}

// suffixPart is one slot of a flow's suffix template: the display name used
// in the formula and a resolver for the concrete value.
type suffixPart struct {
	name  string
	value func(c Credentials, f HashFields, aux AuxPayload) string
}

func saltPart() suffixPart {
	return suffixPart{name: "SALT", value: func(c Credentials, _ HashFields, _ AuxPayload) string { return c.Salt }}
}

func auxPart(name string) suffixPart {
	return suffixPart{name: name, value: func(_ Credentials, _ HashFields, aux AuxPayload) string { return aux.JSON }}
}

func emptyPart(name string) suffixPart {
	return suffixPart{name: name, value: func(Credentials, HashFields, AuxPayload) string { return "" }}
}

func fieldPart(name string, get func(HashFields) string) suffixPart {
	return suffixPart{name: name, value: func(_ Credentials, f HashFields, _ AuxPayload) string { return get(f) }}
}

// suffixFor picks the suffix template for a flow/subtype/form-state
// combination. This is the single table the nine per-flow variants collapse
// into; every branch must stay bit-exact against the gateway convention.
func suffixFor(flow Flow, subType SubType, f HashFields, aux AuxPayload) []suffixPart {
	switch flow {
	case FlowSubscription, FlowUPIOTM:
		return []suffixPart{auxPart("si_details"), saltPart()}

	case FlowTPV:
		return []suffixPart{auxPart("beneficiarydetail"), saltPart()}

	case FlowCrossBorder:
		var parts []suffixPart
		if subType == SubTypeSubscription {
			parts = append(parts, auxPart("si_details"))
		}
		parts = append(parts, saltPart())
		if f.BuyerType != "" {
			parts = append(parts, fieldPart("buyer_type_business", func(f HashFields) string { return f.BuyerType }))
		}
		return parts

	case FlowSplit:
		return []suffixPart{saltPart(), auxPart("splitRequest")}

	case FlowBankOffer:
		if aux.Kind != AuxCartDetails {
			return []suffixPart{saltPart()}
		}
		return []suffixPart{
			emptyPart("user_token"),
			fieldPart("offer_key", func(f HashFields) string { return f.OfferKey }),
			emptyPart("offer_auto_apply"),
			auxPart("cart_details"),
			emptyPart("extra_charges"),
			fieldPart("phone", func(f HashFields) string { return f.Phone }),
			saltPart(),
		}

	default:
		// non-seamless one-time, pre-auth, checkout-plus
		return []suffixPart{saltPart()}
	}
}

// AssembleHashString produces the canonical pipe-delimited hash input and the
// matching human-readable formula. The backbone is always key through udf5
// followed by six reserved empty slots; missing identity fields ride through
// as empty strings, validation being the caller's job.
func AssembleHashString(flow Flow, subType SubType, f HashFields, creds Credentials, aux AuxPayload) HashResult {
	backbone := []string{
		creds.Key,
		f.TxnID,
		f.Amount,
		f.ProductInfo,
		f.FirstName,
		f.Email,
		f.Udf[0],
		f.Udf[1],
		f.Udf[2],
		f.Udf[3],
		f.Udf[4],
	}

	parts := suffixFor(flow, subType, f, aux)

	values := make([]string, len(parts))
	names := make([]string, len(parts))
	for i, p := range parts {
		values[i] = p.value(creds, f, aux)
		names[i] = p.name
	}

	// Six pipes between udf5 and the first suffix slot: the reserved block.
	hashString := strings.Join(backbone, "|") + "||||||" + strings.Join(values, "|")
	formula := "SHA512(key|txnid|amount|productinfo|firstname|email|udf1|udf2|udf3|udf4|udf5||||||" +
		strings.Join(names, "|") + ")"

	return HashResult{HashString: hashString, Formula: formula}
}
