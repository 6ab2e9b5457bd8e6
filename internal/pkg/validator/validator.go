package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks the struct's `validate` tags and returns a
// field -> message map suitable for the fail envelope, or nil when the
// input is valid.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		errors[strings.ToLower(fe.Field())] = message(fe)
	}
	return errors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "This is not a valid email address."
	case "max":
		return fmt.Sprintf("This field may not be longer than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("This field failed the %s rule.", fe.Tag())
	}
}
