// Package validation checks user input against model constraints and audits
// stored data for integrity problems.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/habitual/internal/utils"
)

// Validate is the shared validator with the date and clock tags registered.
var Validate *validator.Validate

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("date", validateDate); err != nil {
		panic(fmt.Sprintf("failed to register date validator: %v", err))
	}
	if err := Validate.RegisterValidation("clock", validateClock); err != nil {
		panic(fmt.Sprintf("failed to register clock validator: %v", err))
	}
}

func validateDate(fl validator.FieldLevel) bool {
	return utils.ValidateDateFormat(fl.Field().String())
}

func validateClock(fl validator.FieldLevel) bool {
	return utils.ValidateTimeFormat(fl.Field().String())
}

// Struct validates v and flattens field errors into one readable error.
func Struct(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "date":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "clock":
		return fmt.Sprintf("%s must be a time in HH:MM format", field)
	}
	return fe.Error()
}

// SanitizeText trims whitespace and strips control characters other than
// newline and tab.
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)
	var b strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
