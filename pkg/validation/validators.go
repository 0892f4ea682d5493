package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Names may contain letters and spaces only. Digits and punctuation are
// rejected so the username allocator always gets a clean base string.
var nameRegex = regexp.MustCompile(`^[\p{L} ]+$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("strong_password", StrongPassword)
	_ = v.RegisterValidation("reset_code", ResetCode)
}

// ValidName validates that a string contains only letters and spaces
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// StrongPassword requires at least one digit and one uppercase letter.
// Length is enforced separately with the min tag.
func StrongPassword(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	var hasDigit, hasUpper bool
	for _, r := range val {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasDigit && hasUpper
}

// ResetCode validates the 6-digit one-time code format
func ResetCode(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if len(val) != 6 {
		return false
	}
	for _, r := range val {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
