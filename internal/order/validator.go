// Package order validates checkout delivery data and issues order IDs.
package order

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"storefront/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Messages reported by Validate, in check order
const (
	MsgFullName       = "Full name must be at least 3 characters long"
	MsgPhoneNumber    = "Phone number must be 10-15 digits only"
	MsgCity           = "City is required"
	MsgAddress        = "Address must be at least 10 characters long"
	MsgShippingOption = "Please select a shipping option"
)

var phonePattern = regexp.MustCompile(`^\d{10,15}$`)

// Rules per OrderData field. Fields are checked in struct order and every
// failing field reports, so messages come out in the order above.
var orderRules = map[string]string{
	"FullName":       "trimmed_min=3",
	"PhoneNumber":    "phone_digits",
	"City":           "trimmed_min=2",
	"Address":        "trimmed_min=10",
	"ShippingOption": "required",
}

var fieldMessages = map[string]string{
	"FullName":       MsgFullName,
	"PhoneNumber":    MsgPhoneNumber,
	"City":           MsgCity,
	"Address":        MsgAddress,
	"ShippingOption": MsgShippingOption,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("trimmed_min", trimmedMin); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("phone_digits", phoneDigits); err != nil {
		panic(err)
	}
	v.RegisterStructValidationMapRules(orderRules, domain.OrderData{})
	return v
}

// Result is the outcome of Validate
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate runs every rule against data and collects all failures
func Validate(data domain.OrderData) Result {
	errs := []string{}

	err := validate.Struct(data)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if msg, ok := fieldMessages[fe.StructField()]; ok {
				errs = append(errs, msg)
			}
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// trimmedMin checks the rune length of the whitespace-trimmed value
func trimmedMin(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

// phoneDigits strips all whitespace and requires 10-15 ASCII digits
func phoneDigits(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, fl.Field().String())
	return phonePattern.MatchString(stripped)
}
