package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Appointment dates are plain strings in YYYY-MM-DD form.
	v.RegisterValidation("datefmt", func(fl validator.FieldLevel) bool {
		return dateRE.MatchString(fl.Field().String())
	})
	return v
}

// Validate runs the schema rules declared on a model's struct tags.
// All writes go through this single gate before hitting the database.
func Validate(doc any) error {
	return validate.Struct(doc)
}

// ValidDate reports whether s is a strict YYYY-MM-DD date string.
func ValidDate(s string) bool {
	return dateRE.MatchString(s)
}
