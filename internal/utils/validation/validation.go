package validation

import (
	"fmt"

	"github.com/buchwerk/buchwerk/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request DTO against its validate tags, wrapping any
// failure in apperrors.ErrValidation so callers can errors.Is on it.
func Struct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}
