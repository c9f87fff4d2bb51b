// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"bitwise74/reelhub-api/internal/model"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the custom tags used by
// request bodies and messages that use JSON field names
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return EmailValidator(fl.Field().String()) == nil
	})

	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return PasswordValidator(fl.Field().String()) == nil
	})

	v.RegisterValidation("mediatype", func(fl validator.FieldLevel) bool {
		return model.MediaType(fl.Field().String()).Valid()
	})

	return &Validator{v: v}
}

// Validate checks s and returns an error describing the first failing
// field, nil if s is valid
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}

	return fmt.Errorf("%s %s", errs[0].Field(), friendlyMessage(errs[0]))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "mailbox", "email":
		return "must be a valid email address"
	case "password":
		return fmt.Sprintf("must be between 1 and %d bytes long", maxPasswordBytes)
	case "mediatype":
		return "must be movie or tv"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return "must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return "must not exceed " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "alphanum":
		return "may only contain letters and digits"
	default:
		return "is invalid"
	}
}
