package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// CustomerDetails is the contact and delivery block of a checkout.
type CustomerDetails struct {
	Email     string `json:"email"      validate:"required,email,max=254"`
	Phone     string `json:"phone"      validate:"required,au_phone"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Street    string `json:"street"     validate:"required,max=255"`
	Suburb    string `json:"suburb"     validate:"required,max=100"`
	State     string `json:"state"      validate:"required,au_state"`
	Postcode  string `json:"postcode"   validate:"required,len=4,number"`
}

// PaymentDetails is checked for shape and then dropped; it is never stored.
type PaymentDetails struct {
	CardNumber string `json:"card_number" validate:"required,card_number"`
	Expiry     string `json:"expiry"      validate:"required,card_expiry"`
	CVC        string `json:"cvc"         validate:"required,number,min=3,max=4"`
}

var (
	auPhoneRe = regexp.MustCompile(`^(?:\+?61|0)[2-478]\d{8}$`)
	expiryRe  = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardRe    = regexp.MustCompile(`^\d{13,19}$`)

	auStates = map[string]bool{
		"ACT": true, "NSW": true, "NT": true, "QLD": true,
		"SA": true, "TAS": true, "VIC": true, "WA": true,
	}

	validateOnce sync.Once
	validate     *validator.Validate
)

func stripSeparators(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(s)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("au_phone", func(fl validator.FieldLevel) bool {
		return auPhoneRe.MatchString(stripSeparators(fl.Field().String()))
	})
	_ = v.RegisterValidation("au_state", func(fl validator.FieldLevel) bool {
		return auStates[strings.ToUpper(strings.TrimSpace(fl.Field().String()))]
	})
	_ = v.RegisterValidation("card_number", func(fl validator.FieldLevel) bool {
		return cardRe.MatchString(stripSeparators(fl.Field().String()))
	})
	_ = v.RegisterValidation("card_expiry", func(fl validator.FieldLevel) bool {
		return expiryRe.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	return v
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() { validate = newValidator() })
	return validate
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "au_phone":
		return "enter a valid Australian phone number"
	case "au_state":
		return "enter a valid Australian state or territory"
	case "len", "number":
		if fe.Field() == "postcode" {
			return "postcode must be 4 digits"
		}
		return "must contain digits only"
	case "card_number":
		return "card number must be 13 to 19 digits"
	case "card_expiry":
		return "expiry must be in MM/YY format"
	case "min", "max":
		if fe.Field() == "cvc" {
			return "cvc must be 3 or 4 digits"
		}
		return "value has an invalid length"
	default:
		return "invalid value"
	}
}

// validateStruct merges the failures of every value into one ValidationError.
// Field names are unique across the checkout blocks.
func validateStruct(values ...any) error {
	fields := map[string]string{}
	for _, v := range values {
		err := validatorInstance().Struct(v)
		if err == nil {
			continue
		}
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return err
		}
		for _, fe := range ves {
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = fieldMessage(fe)
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
