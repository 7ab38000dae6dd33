// Package errors carries the API-facing error type used to project failures
// (validation failures included) onto transport responses.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidBody      = "INVALID_BODY"
	CodeInternal         = "INTERNAL_ERROR"
)

// AppError is immutable from the caller's side: every With* method returns a
// modified copy, so package-level sentinels can be specialised safely.
type AppError struct {
	Err        error
	HTTPStatus int
	Code       string
	Message    string
	Context    map[string]interface{}
}

func New() *AppError {
	return &AppError{
		HTTPStatus: http.StatusInternalServerError,
		Code:       CodeInternal,
		Context:    map[string]interface{}{},
	}
}

func (e *AppError) clone() *AppError {
	c := *e
	c.Context = make(map[string]interface{}, len(e.Context))
	for k, v := range e.Context {
		c.Context[k] = v
	}
	return &c
}

func (e *AppError) WithError(err error) *AppError {
	c := e.clone()
	c.Err = err
	return c
}

func (e *AppError) WithHTTPStatus(status int) *AppError {
	c := e.clone()
	c.HTTPStatus = status
	return c
}

func (e *AppError) WithCode(code string) *AppError {
	c := e.clone()
	c.Code = code
	return c
}

func (e *AppError) WithMessage(msg string) *AppError {
	c := e.clone()
	c.Message = msg
	return c
}

func (e *AppError) WithContext(key string, value interface{}) *AppError {
	c := e.clone()
	c.Context[key] = value
	return c
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("code=%s status=%d", e.Code, e.HTTPStatus)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

func (e *AppError) Status() int {
	return e.HTTPStatus
}

func (e *AppError) ErrCode() string {
	return e.Code
}

func FromError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
