// Package validator wraps go-playground/validator for declarative struct
// validation with a uniform error format.
//
// Fields are checked against their `validate` tags. Failures are reported as
// a joined error whose first member is ErrValidationFailed, followed by one
// message per violated rule, so callers can test for the sentinel with
// errors.Is and still log every field that failed.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the first error in the chain returned by Validate.
var ErrValidationFailed = errors.New("struct validation failed")

// validator is initialized once on package load and is safe for concurrent use.
var validator = gvalidator.New(gvalidator.WithRequiredStructEnabled())

// errStringFormat describes a single violated rule.
//
// Example: "'Config.FeedEndpoint': value 'nope' does not meet the requirements for the 'url' validation"
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

// formatError turns validator errors into a joined error led by
// ErrValidationFailed. Any other error is returned unchanged.
//
// Fields are named by their full namespace so that elements reached through
// `dive` keep their index (e.g. "payload.Blocks[2].Hash").
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, validationErr := range validationErrors {
		errs = append(errs, fmt.Errorf(errStringFormat,
			validationErr.Namespace(),
			validationErr.Value(),
			validationErr.Tag(),
		))
	}

	return errors.Join(errs...)
}

// Validate checks v against its validation tags. v must be a struct or a
// pointer to one.
//
//	if err := validator.Validate(input); errors.Is(err, validator.ErrValidationFailed) {
//	    // reject input
//	}
func Validate(v any) error {
	if err := validator.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
