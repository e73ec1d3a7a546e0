package checkout

import (
	"fmt"
	"time"
)

// Flow identifies one of the supported redirect-checkout integration patterns.
type Flow string

const (
	FlowCrossBorder  Flow = "crossborder"
	FlowNonSeamless  Flow = "nonseamless"
	FlowSubscription Flow = "subscription"
	FlowTPV          Flow = "tpv"
	FlowUPIOTM       Flow = "upiotm"
	FlowPreAuth      Flow = "preauth"
	FlowCheckoutPlus Flow = "checkoutplus"
	FlowSplit        Flow = "split"
	FlowBankOffer    Flow = "bankoffer"
)

// SubType distinguishes one-time payments from recurring mandates for the
// flows that support both (currently cross-border only).
type SubType string

const (
	SubTypeOneTime      SubType = "onetime"
	SubTypeSubscription SubType = "subscription"
)

// flowPrefixes map each flow to the short prefix used for UI element addressing.
var flowPrefixes = map[Flow]string{
	FlowCrossBorder:  "cb",
	FlowNonSeamless:  "ns",
	FlowSubscription: "sub",
	FlowTPV:          "tpv",
	FlowUPIOTM:       "upi",
	FlowPreAuth:      "preauth",
	FlowCheckoutPlus: "cp",
	FlowSplit:        "split",
	FlowBankOffer:    "bo",
}

// Flows returns all supported flows in display order.
func Flows() []Flow {
	return []Flow{
		FlowCrossBorder,
		FlowNonSeamless,
		FlowSubscription,
		FlowTPV,
		FlowUPIOTM,
		FlowPreAuth,
		FlowCheckoutPlus,
		FlowSplit,
		FlowBankOffer,
	}
}

// ParseFlow converts a route segment into a Flow.
func ParseFlow(s string) (Flow, error) {
	f := Flow(s)
	if _, ok := flowPrefixes[f]; !ok {
		return "", fmt.Errorf("unknown checkout flow '%s'", s)
	}
	return f, nil
}

// Prefix returns the short routing prefix for the flow.
func (f Flow) Prefix() string {
	if p, ok := flowPrefixes[f]; ok {
		return p
	}
	return "ns"
}

// IsValid reports whether the flow is one of the nine supported patterns.
func (f Flow) IsValid() bool {
	_, ok := flowPrefixes[f]
	return ok
}

// Recurring reports whether the given flow/subtype combination carries a
// stored-instrument mandate.
func (f Flow) Recurring(subType SubType) bool {
	if f == FlowSubscription {
		return true
	}
	return f == FlowCrossBorder && subType == SubTypeSubscription
}

// NewTxnID generates a fresh transaction id for an attempt. Every debug,
// curl, code or submit action gets its own id; ids are never reused across
// attempts even for identical form state.
func NewTxnID(flow Flow) string {
	return fmt.Sprintf("txn_%s_%d", flow, time.Now().UnixMilli())
}
