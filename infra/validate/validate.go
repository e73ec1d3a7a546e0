package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/mstgnz/payu-console/infra/config"
)

var tenDigits = regexp.MustCompile(`^[0-9]{10}$`)

// CustomValidate registers the custom validators on the application validator
func CustomValidate() {
	v := config.App().Validator

	// phone10: exactly ten digits after normalization
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return tenDigits.MatchString(value)
	})

	// amountstr: decimal number with optional fraction
	_ = v.RegisterValidation("amountstr", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		matched, _ := regexp.MatchString(`^[0-9]+(\.[0-9]+)?$`, value)
		return matched
	})
}
