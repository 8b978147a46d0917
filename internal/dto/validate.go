package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the schema tags on a request struct. Requests are validated
// before any domain logic or storage access runs.
func Validate(v interface{}) error {
	return validate.Struct(v)
}
