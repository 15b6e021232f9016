package conf

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mirex-tools/jku2jams/internal/errors"
)

var validate = validator.New()

// ValidateSettings checks that the loaded settings are usable before any
// conversion work starts.
func ValidateSettings(settings *Settings) error {
	err := validate.Struct(settings)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	msgs := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), messageFor(fe)))
	}
	return errors.Newf("invalid settings: %s", strings.Join(msgs, "; ")).
		Component("conf").
		Category(errors.CategoryConfiguration).
		Build()
}

// messageFor returns a human-readable message for a field validation error.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
