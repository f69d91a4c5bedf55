package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

func (e *ErrorResponse) String() string {
	if e.Value == "" {
		return fmt.Sprintf("%s failed on %s", e.FailedField, e.Tag)
	}
	return fmt.Sprintf("%s failed on %s=%s", e.FailedField, e.Tag, e.Value)
}

// ErrInvalidInput marks a client side validation failure.
var ErrInvalidInput = errors.New("invalid input")

var (
	validate  = validator.New()
	otpFormat = regexp.MustCompile(`^[0-9]{6}$`)
)

func init() {
	// six digit one-time passcode
	validate.RegisterValidation("otp", func(fl validator.FieldLevel) bool {
		return otpFormat.MatchString(fl.Field().String())
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return []*ErrorResponse{{FailedField: "-", Tag: err.Error()}}
		}
		for _, err := range validationErrors {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errs = append(errs, &element)
		}
	}
	return errs
}

// Validate folds ValidateStruct results into a single error, nil when valid.
func Validate(data interface{}) error {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

// Var validates a single value against a tag expression.
func Var(value interface{}, tag string) error {
	return validate.Var(value, tag)
}
