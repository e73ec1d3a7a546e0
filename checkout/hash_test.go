package checkout

import (
	"strings"
	"testing"
)

func hashTestFields() HashFields {
	return HashFields{
		TxnID:       "txn_x_1",
		Amount:      "100.00",
		ProductInfo: "Demo Product",
		FirstName:   "Ashish",
		Email:       "test@example.com",
		Udf:         [5]string{"u1", "u2", "u3", "u4", "u5"},
	}
}

const hashTestBackbone = "kEy1|txn_x_1|100.00|Demo Product|Ashish|test@example.com|u1|u2|u3|u4|u5"

func TestAssembleHashString_SuffixTable(t *testing.T) {
	creds := Credentials{Key: "kEy1", Salt: "s4ltv"}

	tests := []struct {
		name       string
		flow       Flow
		subType    SubType
		mutate     func(*HashFields)
		aux        AuxPayload
		wantSuffix string
		wantNames  string
	}{
		{
			name:       "Non-seamless",
			flow:       FlowNonSeamless,
			subType:    SubTypeOneTime,
			wantSuffix: "s4ltv",
			wantNames:  "SALT",
		},
		{
			name:       "Pre-auth",
			flow:       FlowPreAuth,
			subType:    SubTypeOneTime,
			wantSuffix: "s4ltv",
			wantNames:  "SALT",
		},
		{
			name:       "Checkout plus",
			flow:       FlowCheckoutPlus,
			subType:    SubTypeOneTime,
			wantSuffix: "s4ltv",
			wantNames:  "SALT",
		},
		{
			name:       "Subscription",
			flow:       FlowSubscription,
			subType:    SubTypeOneTime,
			aux:        AuxPayload{Kind: AuxSIDetails, JSON: `{"billingAmount":"100.00"}`},
			wantSuffix: `{"billingAmount":"100.00"}|s4ltv`,
			wantNames:  "si_details|SALT",
		},
		{
			name:       "UPI OTM",
			flow:       FlowUPIOTM,
			subType:    SubTypeOneTime,
			aux:        AuxPayload{Kind: AuxMandateWindow, JSON: `{"paymentStartDate":"2026-09-01"}`},
			wantSuffix: `{"paymentStartDate":"2026-09-01"}|s4ltv`,
			wantNames:  "si_details|SALT",
		},
		{
			name:       "TPV",
			flow:       FlowTPV,
			subType:    SubTypeOneTime,
			aux:        AuxPayload{Kind: AuxBeneficiary, JSON: `{"ifscCode":"HDFC0000001"}`},
			wantSuffix: `{"ifscCode":"HDFC0000001"}|s4ltv`,
			wantNames:  "beneficiarydetail|SALT",
		},
		{
			name:       "Cross-border one-time without buyer type",
			flow:       FlowCrossBorder,
			subType:    SubTypeOneTime,
			wantSuffix: "s4ltv",
			wantNames:  "SALT",
		},
		{
			name:       "Cross-border one-time with business buyer",
			flow:       FlowCrossBorder,
			subType:    SubTypeOneTime,
			mutate:     func(f *HashFields) { f.BuyerType = "business" },
			wantSuffix: "s4ltv|business",
			wantNames:  "SALT|buyer_type_business",
		},
		{
			name:       "Cross-border subscription",
			flow:       FlowCrossBorder,
			subType:    SubTypeSubscription,
			aux:        AuxPayload{Kind: AuxSIDetails, JSON: `{"billingCycle":"MONTHLY"}`},
			wantSuffix: `{"billingCycle":"MONTHLY"}|s4ltv`,
			wantNames:  "si_details|SALT",
		},
		{
			name:       "Cross-border subscription with business buyer",
			flow:       FlowCrossBorder,
			subType:    SubTypeSubscription,
			mutate:     func(f *HashFields) { f.BuyerType = "business" },
			aux:        AuxPayload{Kind: AuxSIDetails, JSON: `{"billingCycle":"MONTHLY"}`},
			wantSuffix: `{"billingCycle":"MONTHLY"}|s4ltv|business`,
			wantNames:  "si_details|SALT|buyer_type_business",
		},
		{
			name:       "Split",
			flow:       FlowSplit,
			subType:    SubTypeOneTime,
			aux:        AuxPayload{Kind: AuxSplitRequest, JSON: `{"type":"absolute"}`},
			wantSuffix: `s4ltv|{"type":"absolute"}`,
			wantNames:  "SALT|splitRequest",
		},
		{
			name:       "Bank offer without cart",
			flow:       FlowBankOffer,
			subType:    SubTypeOneTime,
			wantSuffix: "s4ltv",
			wantNames:  "SALT",
		},
		{
			name:    "Bank offer with cart",
			flow:    FlowBankOffer,
			subType: SubTypeOneTime,
			mutate: func(f *HashFields) {
				f.OfferKey = "OFFER1"
				f.Phone = "9876543210"
			},
			aux:        AuxPayload{Kind: AuxCartDetails, JSON: `{"items":[]}`},
			wantSuffix: `|OFFER1||{"items":[]}||9876543210|s4ltv`,
			wantNames:  "user_token|offer_key|offer_auto_apply|cart_details|extra_charges|phone|SALT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := hashTestFields()
			if tt.mutate != nil {
				tt.mutate(&fields)
			}

			got := AssembleHashString(tt.flow, tt.subType, fields, creds, tt.aux)

			wantHash := hashTestBackbone + "||||||" + tt.wantSuffix
			if got.HashString != wantHash {
				t.Errorf("hash string\n got: %s\nwant: %s", got.HashString, wantHash)
			}

			wantFormula := "SHA512(key|txnid|amount|productinfo|firstname|email|udf1|udf2|udf3|udf4|udf5||||||" + tt.wantNames + ")"
			if got.Formula != wantFormula {
				t.Errorf("formula\n got: %s\nwant: %s", got.Formula, wantFormula)
			}

			if strings.Contains(got.Formula, creds.Salt) {
				t.Errorf("formula leaks the salt: %s", got.Formula)
			}
		})
	}
}

func TestAssembleHashString_EmptyFieldsKeepPositions(t *testing.T) {
	creds := Credentials{Key: "k", Salt: "s"}
	got := AssembleHashString(FlowNonSeamless, SubTypeOneTime, HashFields{TxnID: "t"}, creds, AuxPayload{})

	want := "k|t|||||||||||||||s"
	if got.HashString != want {
		t.Errorf("hash string = %s, want %s", got.HashString, want)
	}
}

func TestDigestEngine_Sum(t *testing.T) {
	engine := NewDigestEngine()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Empty string",
			input: "",
			want:  "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
		},
		{
			name:  "Known vector",
			input: "abc",
			want:  "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Sum(tt.input)
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Sum() = %s, want %s", got, tt.want)
			}
			if len(got) != 128 {
				t.Errorf("digest length = %d, want 128", len(got))
			}
		})
	}
}

func TestDigestEngine_Unavailable(t *testing.T) {
	engine := NewDigestEngineWith(nil)
	if _, err := engine.Sum("anything"); err != ErrDigestUnavailable {
		t.Errorf("Sum() error = %v, want ErrDigestUnavailable", err)
	}

	var nilEngine *DigestEngine
	if _, err := nilEngine.Sum("anything"); err != ErrDigestUnavailable {
		t.Errorf("nil engine Sum() error = %v, want ErrDigestUnavailable", err)
	}
}
