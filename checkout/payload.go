package checkout

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AuxKind tags the auxiliary JSON payload variant attached to an attempt.
// At most one payload exists per attempt, selected by flow.
type AuxKind int

const (
	AuxNone AuxKind = iota
	AuxSIDetails
	AuxMandateWindow
	AuxBeneficiary
	AuxSplitRequest
	AuxCartDetails
)

// AuxPayload carries the serialized auxiliary payload. The JSON is embedded
// verbatim inside the hash string, so it is rendered once here and reused
// byte-for-byte everywhere (hash, request field, debug, curl).
type AuxPayload struct {
	Kind AuxKind
	JSON string
}

// SIDetails is the stored-instrument mandate for subscription-capable flows.
// Field order is the wire order; it must not change because the marshaled
// form participates in the hash.
type SIDetails struct {
	BillingAmount    string `json:"billingAmount"`
	BillingCurrency  string `json:"billingCurrency"`
	BillingCycle     string `json:"billingCycle"`
	BillingInterval  int    `json:"billingInterval"`
	PaymentStartDate string `json:"paymentStartDate"`
	PaymentEndDate   string `json:"paymentEndDate,omitempty"`
}

// MandateWindow is the UPI one-time-mandate shape: the same si_details field
// name on the wire, but only the date range. Both dates are always present.
type MandateWindow struct {
	PaymentStartDate string `json:"paymentStartDate"`
	PaymentEndDate   string `json:"paymentEndDate"`
}

// BeneficiaryDetail identifies the account to verify for TPV payments.
// Values are taken verbatim; IFSC checksum validation is the bank's job.
type BeneficiaryDetail struct {
	BeneficiaryAccountNumber string `json:"beneficiaryAccountNumber"`
	IfscCode                 string `json:"ifscCode"`
}

// SplitShare is one child merchant's portion of a split payment.
type SplitShare struct {
	AggregatorSubTxnID string `json:"aggregatorSubTxnId"`
	AggregatorSubAmt   string `json:"aggregatorSubAmt"`
	AggregatorCharges  string `json:"aggregatorCharges"`
}

// SplitRequest routes portions of one payment to child merchant accounts.
// Map serialization is sorted by child merchant key, which keeps the embedded
// JSON deterministic for a given row set.
type SplitRequest struct {
	Type      string                `json:"type"`
	SplitInfo map[string]SplitShare `json:"splitInfo"`
}

// SplitRow is one raw split configuration row as entered in the form.
type SplitRow struct {
	MerchantKey string `json:"merchantKey"`
	TxnID       string `json:"txnId"`
	Amount      string `json:"amount"`
	Charges     string `json:"charges"`
}

// CartItem is one SKU row of a bank-offer cart.
type CartItem struct {
	SkuID   string  `json:"sku_id"`
	SkuName string  `json:"sku_name"`
	Amount  float64 `json:"amount"`
	Qty     int     `json:"quantity"`
}

// CartDetails is the bank-offer cart payload. Surcharges is emitted whenever
// the field was filled in (even if it coerced to zero); pre_discount only
// when strictly positive.
type CartDetails struct {
	Items       []CartItem `json:"items"`
	Surcharges  *float64   `json:"surcharges,omitempty"`
	PreDiscount float64    `json:"pre_discount,omitempty"`
}

// SkuRow is one raw SKU form row.
type SkuRow struct {
	SkuID    string `json:"skuId"`
	SkuName  string `json:"skuName"`
	Amount   string `json:"amount"`
	Quantity string `json:"quantity"`
}

const (
	SplitTypeAbsolute   = "absolute"
	SplitTypePercentage = "percentage"
)

func marshalAux(kind AuxKind, v any) (AuxPayload, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return AuxPayload{}, err
	}
	return AuxPayload{Kind: kind, JSON: string(raw)}, nil
}

// BuildSIDetails composes the stored-instrument payload for subscription
// flows. Billing amount mirrors the transaction amount; currency is fixed to
// INR. The end date appears only when provided.
func BuildSIDetails(amount, billingCycle, billingInterval, startDate, endDate string) (AuxPayload, error) {
	cycle := billingCycle
	if cycle == "" {
		cycle = "MONTHLY"
	}
	interval := 1
	if billingInterval != "" {
		interval = ParseInterval(billingInterval)
	}
	si := SIDetails{
		BillingAmount:    amount,
		BillingCurrency:  "INR",
		BillingCycle:     cycle,
		BillingInterval:  interval,
		PaymentStartDate: startDate,
		PaymentEndDate:   endDate,
	}
	return marshalAux(AuxSIDetails, si)
}

// BuildMandateWindow composes the UPI-OTM date-range payload.
func BuildMandateWindow(startDate, endDate string) (AuxPayload, error) {
	return marshalAux(AuxMandateWindow, MandateWindow{
		PaymentStartDate: startDate,
		PaymentEndDate:   endDate,
	})
}

// BuildBeneficiaryDetail composes the TPV beneficiary payload.
func BuildBeneficiaryDetail(account, ifsc string) (AuxPayload, error) {
	return marshalAux(AuxBeneficiary, BeneficiaryDetail{
		BeneficiaryAccountNumber: account,
		IfscCode:                 ifsc,
	})
}

// BuildSplitRequest composes the split payload from the raw rows. Rows with a
// missing merchant key, child txn id or amount are silently dropped; zero
// surviving rows is a validation failure. In percentage mode the amounts must
// not sum past 100 across ALL rows (dropped rows included) before the payload
// is even attempted.
func BuildSplitRequest(splitType string, rows []SplitRow) (AuxPayload, error) {
	if splitType == "" {
		splitType = SplitTypeAbsolute
	}
	if len(rows) == 0 {
		return AuxPayload{}, &ValidationError{Field: "splitRequest", Message: "no valid split configuration"}
	}

	if splitType == SplitTypePercentage {
		total := decimal.Zero
		for _, row := range rows {
			d, err := ParseAmount("split amount", row.Amount)
			if err != nil {
				continue
			}
			total = total.Add(d)
		}
		if total.GreaterThan(decimal.NewFromInt(100)) {
			return AuxPayload{}, &ValidationError{
				Field:   "splitRequest",
				Message: "split percentages cannot exceed 100%, current total: " + total.String() + "%",
			}
		}
	}

	info := make(map[string]SplitShare)
	for _, row := range rows {
		if row.MerchantKey == "" || row.TxnID == "" || row.Amount == "" {
			continue
		}
		charges := row.Charges
		if charges == "" {
			charges = "0.00"
		}
		info[row.MerchantKey] = SplitShare{
			AggregatorSubTxnID: row.TxnID,
			AggregatorSubAmt:   row.Amount,
			AggregatorCharges:  charges,
		}
	}
	if len(info) == 0 {
		return AuxPayload{}, &ValidationError{Field: "splitRequest", Message: "no valid split configuration"}
	}

	return marshalAux(AuxSplitRequest, SplitRequest{Type: splitType, SplitInfo: info})
}

// BuildCartDetails composes the bank-offer cart payload. Returns AuxNone when
// SKU mode is off or no row is fully populated; the flow then falls back to
// the plain hash template.
func BuildCartDetails(enableSku bool, rows []SkuRow, surcharges, preDiscount string) (AuxPayload, error) {
	if !enableSku || len(rows) == 0 {
		return AuxPayload{Kind: AuxNone}, nil
	}

	var items []CartItem
	for _, row := range rows {
		if row.SkuID == "" || row.SkuName == "" || row.Amount == "" || row.Quantity == "" {
			continue
		}
		amount := 0.0
		if d, err := ParseAmount("amount", row.Amount); err == nil {
			amount, _ = d.Float64()
		}
		items = append(items, CartItem{
			SkuID:   row.SkuID,
			SkuName: row.SkuName,
			Amount:  amount,
			Qty:     ParseQuantity(row.Quantity),
		})
	}
	if len(items) == 0 {
		return AuxPayload{Kind: AuxNone}, nil
	}

	cart := CartDetails{Items: items}
	if surcharges != "" {
		v := 0.0
		if d, err := ParseAmount("surcharges", surcharges); err == nil {
			v, _ = d.Float64()
		}
		cart.Surcharges = &v
	}
	if preDiscount != "" {
		if d, err := ParseAmount("pre_discount", preDiscount); err == nil && d.IsPositive() {
			cart.PreDiscount, _ = d.Float64()
		}
	}

	return marshalAux(AuxCartDetails, cart)
}

// CartTotal derives the payable total from a cart: sum of amount*quantity per
// item, plus surcharges, minus pre-discount. Display only; the transmitted
// amount field is always the raw user input.
func CartTotal(cart CartDetails) decimal.Decimal {
	total := decimal.Zero
	for _, item := range cart.Items {
		line := decimal.NewFromFloat(item.Amount).Mul(decimal.NewFromInt(int64(item.Qty)))
		total = total.Add(line)
	}
	if cart.Surcharges != nil {
		total = total.Add(decimal.NewFromFloat(*cart.Surcharges))
	}
	if cart.PreDiscount > 0 {
		total = total.Sub(decimal.NewFromFloat(cart.PreDiscount))
	}
	return total
}
