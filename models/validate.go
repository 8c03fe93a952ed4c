package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrValidation marks input rejected before any request is made.
var ErrValidation = errors.New("validation error")

var validate = validator.New()

// Validate checks the struct tags on v and wraps failures in ErrValidation.
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
