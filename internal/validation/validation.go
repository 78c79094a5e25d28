// Package validation checks request bodies against the static rules declared
// in their `validate` struct tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/slizer98/api-rest-go/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so messages read "nombre".
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// required only rejects a missing field; a present "" fails here.
	err := v.RegisterValidation("nonempty", func(fl validator.FieldLevel) bool {
		return fl.Field().Len() > 0
	})
	if err != nil {
		panic(err)
	}
	return v
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// ValidationError carries every failed rule; Error reports the first one.
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation failed"
	}
	return e.Details[0].Message
}

// Result is the outcome of validating a request. Value is the validated
// request and is meaningful only when Errors is empty.
type Result struct {
	Value  models.UserRequest
	Errors []FieldError
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Details: r.Errors}
}

// ValidateUser checks req against the rules on models.UserRequest.
func ValidateUser(req models.UserRequest) Result {
	res := Result{Value: req}

	err := validate.Struct(req)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Errors = []FieldError{{Message: err.Error()}}
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return res
}

// TypeError reports a field that arrived as null or with a non-string JSON
// type.
func TypeError(field string) *ValidationError {
	return &ValidationError{Details: []FieldError{{
		Field:   field,
		Rule:    "string",
		Message: fmt.Sprintf("%q must be a string", field),
	}}}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case "nonempty":
		return fmt.Sprintf("%q is not allowed to be empty", fe.Field())
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%q failed on the %q rule", fe.Field(), fe.Tag())
	}
}
