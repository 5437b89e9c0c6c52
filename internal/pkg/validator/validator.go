// Package validator wraps go-playground struct validation and turns
// tag failures into per-field messages ready for the error envelope.
package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"shalean/internal/pricing"
)

// Error carries the per-field messages of a failed Validate call so
// handlers can attach them to the response envelope as details.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

var validate = validator.New()

func init() {
	// "service_type" restricts a field to the cleaning services the
	// pricing engine knows about.
	_ = validate.RegisterValidation("service_type", func(fl validator.FieldLevel) bool {
		return pricing.ServiceType(fl.Field().String()).Valid()
	})
}

// Validate checks v's `validate` tags and returns a field → message
// map, or nil when everything passes.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "service_type":
		return "is not a known service type"
	default:
		return fmt.Sprintf("failed the %s rule", fe.Tag())
	}
}
