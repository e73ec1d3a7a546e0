package checkout

import (
	"github.com/mstgnz/payu-console/infra/config"
)

// Request is the raw form-field bag collected by the UI for one flow. All
// values are strings exactly as entered; normalization happens inside Build.
type Request struct {
	Flow    Flow    `json:"flow" validate:"required"`
	SubType SubType `json:"paymentType,omitempty"`

	Amount      string `json:"amount" validate:"required"`
	ProductInfo string `json:"productinfo" validate:"required"`
	FirstName   string `json:"firstname" validate:"required"`
	LastName    string `json:"lastname,omitempty"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone" validate:"required"`

	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	Zipcode  string `json:"zipcode,omitempty"`

	SURL string `json:"surl" validate:"required,url"`
	FURL string `json:"furl" validate:"required,url"`

	// Two UDF variable sets: the generic one and the subscription-specific
	// one used by cross-border recurring. Only the set selected by the
	// flow/subtype participates in the hash.
	Udf    [5]string `json:"udf"`
	SubUdf [5]string `json:"subUdf"`

	UseCustomKeys bool   `json:"useCustomKeys"`
	CustomKey     string `json:"customKey,omitempty"`
	CustomSalt    string `json:"customSalt,omitempty"`

	// Cross-border
	BuyerType string `json:"buyerType,omitempty"`

	// Subscription / UPI-OTM
	BillingCycle     string `json:"billingCycle,omitempty"`
	BillingInterval  string `json:"billingInterval,omitempty"`
	PaymentStartDate string `json:"paymentStartDate,omitempty"`
	PaymentEndDate   string `json:"paymentEndDate,omitempty"`

	// TPV
	BeneficiaryAccount string `json:"beneficiaryAccount,omitempty"`
	IfscCode           string `json:"ifscCode,omitempty"`

	// Split
	SplitType string     `json:"splitType,omitempty"`
	SplitRows []SplitRow `json:"splitRows,omitempty"`

	// Bank offer
	OfferKey    string   `json:"offerKey,omitempty"`
	EnableSku   bool     `json:"enableSku,omitempty"`
	SkuRows     []SkuRow `json:"skuRows,omitempty"`
	Surcharges  string   `json:"surcharges,omitempty"`
	PreDiscount string   `json:"preDiscount,omitempty"`

	// Enabled instrument categories: nb, cc, dc, upi.
	PayMethods []string `json:"payMethods,omitempty"`
}

// Attempt is one fully computed pipeline run: fresh txnid, resolved
// credentials, auxiliary payload, ordered gateway params and the hash.
type Attempt struct {
	Flow        Flow
	SubType     SubType
	TxnID       string
	Credentials Credentials
	Aux         AuxPayload
	Params      []Param
	HashString  string
	Formula     string
	Hash        string
	Endpoint    string
}

// Param is one (name, value) gateway field.
type Param struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Console runs the checkout pipeline. It owns no per-request state; every
// Build call is an independent synchronous computation.
type Console struct {
	gateway config.Gateway
	digest  *DigestEngine
}

// NewConsole wires the pipeline against a gateway configuration with the
// default SHA-512 digest.
func NewConsole(gw config.Gateway) *Console {
	return &Console{gateway: gw, digest: NewDigestEngine()}
}

// NewConsoleWithDigest wires a custom digest primitive, mainly for tests and
// for environments where the default primitive must be replaced.
func NewConsoleWithDigest(gw config.Gateway, digest *DigestEngine) *Console {
	return &Console{gateway: gw, digest: digest}
}

// Gateway returns the immutable gateway configuration.
func (c *Console) Gateway() config.Gateway {
	return c.gateway
}

// Build validates the request, resolves credentials, constructs the flow's
// auxiliary payload, assembles the hash string and digests it. A fresh txnid
// is generated on every call, so two consecutive builds over identical form
// state produce different hashes by design.
func (c *Console) Build(req *Request) (*Attempt, error) {
	if err := c.validate(req); err != nil {
		return nil, err
	}

	if req.SubType == "" {
		req.SubType = SubTypeOneTime
	}

	creds := ResolveCredentials(c.gateway, req.UseCustomKeys, req.CustomKey, req.CustomSalt)

	aux, err := buildAux(req)
	if err != nil {
		return nil, err
	}

	txnid := NewTxnID(req.Flow)
	fields := hashFieldsFor(req, txnid)

	result := AssembleHashString(req.Flow, req.SubType, fields, creds, aux)
	hash, err := c.digest.Sum(result.HashString)
	if err != nil {
		return nil, err
	}

	attempt := &Attempt{
		Flow:        req.Flow,
		SubType:     req.SubType,
		TxnID:       txnid,
		Credentials: creds,
		Aux:         aux,
		HashString:  result.HashString,
		Formula:     result.Formula,
		Hash:        hash,
		Endpoint:    c.gateway.EndpointURL,
	}
	attempt.Params = buildParams(req, attempt)

	return attempt, nil
}

// validate applies the pre-assembly input checks. The assembler itself never
// validates; everything that can stop an attempt stops here.
func (c *Console) validate(req *Request) error {
	if !req.Flow.IsValid() {
		return &ValidationError{Field: "flow", Message: "unknown checkout flow '" + string(req.Flow) + "'"}
	}

	if phone, err := NormalizePhone(req.Phone); err != nil {
		return err
	} else {
		req.Phone = phone
	}

	if err := ValidateEmail(req.Email); err != nil {
		return err
	}

	if req.UseCustomKeys && (req.CustomKey == "" || req.CustomSalt == "") {
		return &ValidationError{Field: "credentials", Message: "custom key and salt are both required when custom mode is on"}
	}

	return nil
}

// buildAux constructs the flow's auxiliary payload, or AuxNone for flows
// without one.
func buildAux(req *Request) (AuxPayload, error) {
	switch {
	case req.Flow.Recurring(req.SubType):
		return BuildSIDetails(req.Amount, req.BillingCycle, req.BillingInterval, req.PaymentStartDate, req.PaymentEndDate)
	case req.Flow == FlowUPIOTM:
		return BuildMandateWindow(req.PaymentStartDate, req.PaymentEndDate)
	case req.Flow == FlowTPV:
		return BuildBeneficiaryDetail(req.BeneficiaryAccount, req.IfscCode)
	case req.Flow == FlowSplit:
		return BuildSplitRequest(req.SplitType, req.SplitRows)
	case req.Flow == FlowBankOffer:
		return BuildCartDetails(req.EnableSku, req.SkuRows, req.Surcharges, req.PreDiscount)
	default:
		return AuxPayload{Kind: AuxNone}, nil
	}
}

// hashFieldsFor selects the UDF variable set and projects the request into
// the hash backbone fields. The unselected set never leaks into the string.
func hashFieldsFor(req *Request, txnid string) HashFields {
	udf := req.Udf
	if req.Flow == FlowCrossBorder && req.SubType == SubTypeSubscription {
		udf = req.SubUdf
	}
	return HashFields{
		TxnID:       txnid,
		Amount:      req.Amount,
		ProductInfo: req.ProductInfo,
		FirstName:   req.FirstName,
		Email:       req.Email,
		Udf:         udf,
		BuyerType:   req.BuyerType,
		OfferKey:    req.OfferKey,
		Phone:       req.Phone,
	}
}
