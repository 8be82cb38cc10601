package resume

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the required personal-info fields of a complete resume.
// Validation failures block advancing past the form step; they are never
// raised by the renderers themselves.
func (d Data) Validate() error {
	err := validate.Struct(d.PersonalInfo)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fieldLabel(fe.Field()))
	}
	return fmt.Errorf("required fields missing or invalid: %s", strings.Join(missing, ", "))
}

// Complete reports whether the resume passes validation.
func (d Data) Complete() bool {
	return d.Validate() == nil
}

func fieldLabel(field string) string {
	switch field {
	case "FullName":
		return "full name"
	case "Email":
		return "email"
	case "Phone":
		return "phone"
	case "Location":
		return "location"
	}
	return field
}
