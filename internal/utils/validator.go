package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// NewValidator returns a validator that reports JSON field names and knows
// the "password" and "notblank" rules.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
	_ = validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	return validate
}

// IsStrongPassword requires at least 8 characters with a digit, a lowercase
// and an uppercase letter.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var digit, lower, upper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	return digit && lower && upper
}

// ValidationMessages flattens validator errors into field -> messages. It
// returns nil when err is not a validation error.
func ValidationMessages(err error) map[string][]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	messages := make(map[string][]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field := fieldErr.Field()
		messages[field] = append(messages[field], describe(fieldErr))
	}
	return messages
}

func describe(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("'%s' must not be empty.", field)
	case "email":
		return fmt.Sprintf("'%s' is not a valid email address.", field)
	case "max":
		return fmt.Sprintf("'%s' must be %s characters or fewer.", field, fieldErr.Param())
	case "password":
		return "The password must be at least 8 characters long and contain a digit, a lowercase and an uppercase letter."
	default:
		return fmt.Sprintf("'%s' is invalid (%s).", field, fieldErr.Tag())
	}
}
