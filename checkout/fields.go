package checkout

import "strings"

// Requirement classifies a gateway field for the debug view.
type Requirement string

const (
	Mandatory Requirement = "mandatory"
	Optional  Requirement = "optional"
)

var universallyMandatory = map[string]bool{
	"key": true, "txnid": true, "amount": true, "productinfo": true,
	"firstname": true, "email": true, "phone": true,
	"surl": true, "furl": true, "hash": true,
}

var commonOptional = map[string]bool{
	"lastname": true, "address1": true, "address2": true, "city": true,
	"state": true, "country": true, "zipcode": true,
	"udf1": true, "udf2": true, "udf3": true, "udf4": true, "udf5": true,
	"buyer_type_business": true, "offer_key": true,
}

// FieldRequirement resolves the mandatory/optional classification of a
// gateway field for a flow (and subtype, which matters for cross-border).
func FieldRequirement(field string, flow Flow, subType SubType) Requirement {
	if universallyMandatory[field] {
		return Mandatory
	}
	if commonOptional[field] {
		return Optional
	}

	switch flow {
	case FlowCrossBorder:
		if subType == SubTypeSubscription {
			switch field {
			case "si", "api_version", "si_details":
				return Mandatory
			}
		}
	case FlowSubscription:
		switch field {
		case "si", "api_version", "si_details":
			return Mandatory
		}
	case FlowTPV:
		switch field {
		case "api_version", "beneficiarydetail":
			return Mandatory
		}
	case FlowUPIOTM:
		switch field {
		case "api_version", "si_details", "pre_authorize":
			return Mandatory
		}
	case FlowPreAuth:
		switch field {
		case "pre_authorize", "enforce_paymethod":
			return Mandatory
		}
	case FlowSplit:
		if field == "splitRequest" {
			return Mandatory
		}
	case FlowBankOffer:
		switch field {
		case "api_version", "cart_details":
			return Mandatory
		}
	}

	return Optional
}

// EnforcedPayMethods maps the enabled instrument categories onto the
// gateway's enforce_paymethod value. Netbanking becomes enach for recurring
// flows because the mandate rides the eNACH rails.
func EnforcedPayMethods(methods []string, flow Flow, subType SubType) string {
	if len(methods) == 0 {
		return ""
	}
	recurring := flow.Recurring(subType)
	mapped := make([]string, 0, len(methods))
	for _, m := range methods {
		switch m {
		case "nb":
			if recurring {
				mapped = append(mapped, "enach")
			} else {
				mapped = append(mapped, "netbanking")
			}
		case "cc":
			mapped = append(mapped, "creditcard")
		case "dc":
			mapped = append(mapped, "debitcard")
		case "upi":
			mapped = append(mapped, "upi")
		default:
			mapped = append(mapped, strings.ToLower(m))
		}
	}
	return strings.Join(mapped, "|")
}

// buildParams renders the final ordered gateway field list for an attempt.
// Optional fields appear only when non-empty; JSON-valued fields reuse the
// attempt's payload byte-for-byte.
func buildParams(req *Request, a *Attempt) []Param {
	params := []Param{
		{"key", a.Credentials.Key},
		{"txnid", a.TxnID},
		{"amount", req.Amount},
		{"productinfo", req.ProductInfo},
		{"firstname", req.FirstName},
	}

	if req.LastName != "" {
		params = append(params, Param{"lastname", req.LastName})
	}

	params = append(params,
		Param{"email", req.Email},
		Param{"phone", req.Phone},
	)

	address := []Param{
		{"address1", req.Address1},
		{"address2", req.Address2},
		{"city", req.City},
		{"state", req.State},
		{"country", req.Country},
		{"zipcode", req.Zipcode},
	}
	for _, p := range address {
		if p.Value != "" {
			params = append(params, p)
		}
	}

	udf := req.Udf
	if req.Flow == FlowCrossBorder && req.SubType == SubTypeSubscription {
		udf = req.SubUdf
	}
	udfNames := [5]string{"udf1", "udf2", "udf3", "udf4", "udf5"}
	for i, v := range udf {
		if v != "" {
			params = append(params, Param{udfNames[i], v})
		}
	}

	params = append(params, flowParams(req, a)...)

	params = append(params,
		Param{"surl", req.SURL},
		Param{"furl", req.FURL},
	)

	if enforced := EnforcedPayMethods(req.PayMethods, req.Flow, req.SubType); enforced != "" {
		params = append(params, Param{"enforce_paymethod", enforced})
	}

	params = append(params, Param{"hash", a.Hash})
	return params
}

// flowParams emits the flow-specific fields in wire order.
func flowParams(req *Request, a *Attempt) []Param {
	var params []Param

	switch req.Flow {
	case FlowCrossBorder:
		if req.SubType == SubTypeSubscription {
			params = append(params,
				Param{"si", "1"},
				Param{"api_version", "7"},
				Param{"si_details", a.Aux.JSON},
			)
		}
		if req.BuyerType != "" {
			params = append(params, Param{"buyer_type_business", req.BuyerType})
		}

	case FlowSubscription:
		params = append(params,
			Param{"si", "1"},
			Param{"api_version", "7"},
			Param{"si_details", a.Aux.JSON},
		)

	case FlowTPV:
		params = append(params,
			Param{"api_version", "6"},
			Param{"beneficiarydetail", a.Aux.JSON},
		)

	case FlowUPIOTM:
		params = append(params,
			Param{"api_version", "7"},
			Param{"si_details", a.Aux.JSON},
			Param{"pre_authorize", "1"},
		)

	case FlowPreAuth:
		params = append(params, Param{"pre_authorize", "1"})

	case FlowSplit:
		params = append(params, Param{"splitRequest", a.Aux.JSON})

	case FlowBankOffer:
		if a.Aux.Kind == AuxCartDetails {
			params = append(params,
				Param{"api_version", "19"},
				Param{"cart_details", a.Aux.JSON},
			)
		}
		if req.OfferKey != "" {
			params = append(params, Param{"offer_key", req.OfferKey})
		}
	}

	return params
}
