package feed

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks every record of f for missing keys and self-loops.
func Validate(f *Feed) error {
	return validate.Struct(f)
}
