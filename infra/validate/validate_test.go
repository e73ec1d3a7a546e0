package validate

import (
	"testing"

	"github.com/mstgnz/payu-console/infra/config"
)

type phoneProbe struct {
	Phone string `validate:"phone10"`
}

type amountProbe struct {
	Amount string `validate:"amountstr"`
}

func TestPhone10Validator(t *testing.T) {
	CustomValidate()
	v := config.App().Validator

	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"ten digits", "9876543210", true},
		{"empty passes through", "", true},
		{"too short", "12345", false},
		{"contains separator", "98765-4321", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(phoneProbe{Phone: tt.phone})
			if (err == nil) != tt.valid {
				t.Errorf("phone %q valid = %v, want %v", tt.phone, err == nil, tt.valid)
			}
		})
	}
}

func TestAmountValidator(t *testing.T) {
	CustomValidate()
	v := config.App().Validator

	tests := []struct {
		name   string
		amount string
		valid  bool
	}{
		{"integer", "100", true},
		{"decimal", "100.50", true},
		{"empty passes through", "", true},
		{"letters", "abc", false},
		{"trailing dot", "100.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(amountProbe{Amount: tt.amount})
			if (err == nil) != tt.valid {
				t.Errorf("amount %q valid = %v, want %v", tt.amount, err == nil, tt.valid)
			}
		})
	}
}
