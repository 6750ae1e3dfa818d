// Package validation wraps go-playground/validator with the shared custom rules
// and a helper for services that report every violation instead of the first.
package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
)

// Rule is a named custom validation registered on a validator instance.
// Rules receive the context passed to Violations, so clock-dependent checks
// can read the request time.
type Rule struct {
	Tag  string
	Func validator.FuncCtx
}

var defaultValidator = New()

// New returns a validator with the shared "notblank" rule plus any extra rules.
func New(rules ...Rule) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	for _, r := range rules {
		if err := v.RegisterValidationCtx(r.Tag, r.Func); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", r.Tag, err))
		}
	}
	return v
}

// Validate validates a struct using the default validator and returns a domain error
// describing the first violation.
func Validate(req any) error {
	if err := defaultValidator.Struct(req); err != nil {
		return dErrors.New(dErrors.CodeValidation, ErrorMessage(err))
	}
	return nil
}

// Violations runs v against s and returns the failed fields in struct order.
// A nil slice means s is valid. Non-validation errors (nil or non-struct input) are returned as err.
func Violations(ctx context.Context, v *validator.Validate, s any) (validator.ValidationErrors, error) {
	err := v.StructCtx(ctx, s)
	if err == nil {
		return nil, nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs, nil
	}
	return nil, err
}

// ErrorMessage converts a validator error into a human-readable message.
func ErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "invalid request body"
	}

	fe := validationErrs[0]
	field := fe.Field()
	if field == "" {
		field = fe.StructField()
	}

	switch fe.ActualTag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
