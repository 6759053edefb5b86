package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailRegex is the coarse local@domain.tld shape. Anything stricter is left to the mail provider.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// New returns a validator with the form rules registered and JSON field names in errors
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("coarse_email", CoarseEmail)
	_ = v.RegisterValidation("accepted", Accepted)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// CoarseEmail checks for one "@" and a dot in the domain part
func CoarseEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return emailRegex.MatchString(val)
}

// IsEmail applies the same rule outside struct validation
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// Accepted requires a boolean acceptance flag to be true
func Accepted(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.Bool {
		return false
	}
	return fl.Field().Bool()
}
