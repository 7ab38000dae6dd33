// Package form lets application code declare a rule set for a form, fill
// rule placeholders at call time and validate heterogeneous input (tagged
// structs or plain maps) through a pluggable validation.Factory.
//
// A concrete form only has to provide its rules and, optionally, custom
// messages:
//
//	type SignupForm struct{}
//
//	func (SignupForm) Rules() form.Rules {
//		return form.Rules{"email": "required,email", "age": "required,gte={minAge}"}
//	}
//
//	func (SignupForm) Messages() form.Messages { return nil }
//
//	v := form.New(engine, SignupForm{})
//	err := v.Validate(ctx, input, form.Mappings{"minAge": 18})
//
// Validate returns nil on success and a *ValidationError carrying the
// engine's field errors on failure.
package form

import (
	"errors"
	"net/http"

	apperr "github.com/shadowofcards/go-formvalidator/errors"
	"github.com/shadowofcards/go-formvalidator/validation"
)

// Rules maps a field name to its rule string.
type Rules map[string]string

// Messages maps a rule id ("field.rule" or "rule") to a custom message.
type Messages map[string]string

// Mappings maps a placeholder name, without braces, to its replacement.
type Mappings map[string]any

// RuleProvider supplies the rule and message sets a Validator checks against.
type RuleProvider interface {
	Rules() Rules
	Messages() Messages
}

// Static is a RuleProvider over literal sets.
type Static struct {
	RuleSet    Rules
	MessageSet Messages
}

func (s Static) Rules() Rules       { return s.RuleSet }
func (s Static) Messages() Messages { return s.MessageSet }

const failedMessage = "Validation failed"

var (
	// ErrValidationFailed matches every *ValidationError.
	ErrValidationFailed    = errors.New("form: validation failed")
	// ErrNotValidated is returned by Errors before any call reached the engine.
	ErrNotValidated        = errors.New("form: no validation has run yet")
	// ErrUnsupportedFormData is returned by Normalize for nil or non struct, non map input.
	ErrUnsupportedFormData = errors.New("form: unsupported form data")
)

// ValidationError is returned by Validate when the engine reports failure.
type ValidationError struct {
	Message string
	Errors  validation.Errors
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// AppError projects the failure onto an API error: 422 with the field errors
// under the "errors" context key.
func (e *ValidationError) AppError() *apperr.AppError {
	return apperr.New().
		WithHTTPStatus(http.StatusUnprocessableEntity).
		WithCode(apperr.CodeValidationFailed).
		WithMessage(e.Message).
		WithContext("errors", e.Errors)
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func (r Rules) clone() Rules {
	out := make(Rules, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (m Messages) clone() Messages {
	out := make(Messages, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
