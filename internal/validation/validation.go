// Package validation wraps go-playground/validator and turns its errors
// into field violations keyed by JSON field names.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "podium/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator checks request structs tagged with `validate`.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their json tag.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		default:
			return name
		}
	})

	return &Validator{validate: validate}
}

// Struct validates s and returns every failing field. Field paths are prefixed
// with prefix when it is not empty (e.g. "speakerProfile.specialization").
func (v *Validator) Struct(s any, prefix string) ([]domainerrors.FieldViolation, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, errors.Wrap(err, "failed to validate input")
	}

	violations := make([]domainerrors.FieldViolation, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		violations = append(violations, domainerrors.FieldViolation{
			Field:   fieldPath(prefix, fieldErr.Namespace()),
			Message: describe(fieldErr),
		})
	}

	return violations, nil
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(prefix, namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		path = namespace
	}
	if prefix == "" {
		return path
	}

	return prefix + "." + path
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fieldErr.Param()), ", ")
	default:
		return "is invalid"
	}
}
