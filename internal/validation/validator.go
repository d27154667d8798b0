// Package validation checks submitted forms and account fields.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return ValidateUsername(fl.Field().String()) == nil
		})
		_ = validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return ValidatePassword(fl.Field().String()) == nil
		})
	})
	return validate
}

// FieldErrors maps form field names to a human readable message.
type FieldErrors map[string]string

// Struct validates s and returns per-field messages, or nil when s is valid.
func Struct(s interface{}) (FieldErrors, error) {
	err := instance().Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validate %T: %w", s, err)
	}
	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return fields, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "username":
		if err := ValidateUsername(fmt.Sprint(fe.Value())); err != nil {
			return err.Error()
		}
	case "password":
		if err := ValidatePassword(fmt.Sprint(fe.Value())); err != nil {
			return err.Error()
		}
	case "eqfield":
		return "The two password fields didn't match."
	}
	return "Enter a valid value."
}
