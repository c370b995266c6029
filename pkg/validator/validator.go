// Package validator wraps go-playground struct validation for service-level
// checks that run after (or independently of) gin's request binding.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// DTOs carry gin-style binding tags; validate the same ones.
	v.SetTagName("binding")
	return v
}

// ValidateStruct validates a struct using its binding tags.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
