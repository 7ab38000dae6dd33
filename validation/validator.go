package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator is the subset of *validator.Validate the engine exposes for
// callers that also validate tagged structs directly.
type Validator interface {
	Struct(any) error
	StructCtx(context.Context, any) error
	Var(any, string) error
	VarCtx(context.Context, any, string) error
}

type Option func(*validator.Validate) error

func WithRule(tag string, fn validator.Func) Option {
	return func(v *validator.Validate) error {
		return v.RegisterValidation(tag, fn)
	}
}

func WithAlias(alias, tags string) Option {
	return func(v *validator.Validate) error {
		v.RegisterAlias(alias, tags)
		return nil
	}
}

// Engine is the default Factory. Rule strings use go-playground tag syntax,
// e.g. "required,min=3".
type Engine struct {
	*validator.Validate
}

var (
	_ Factory   = (*Engine)(nil)
	_ Validator = (*Engine)(nil)
)

func New(opts ...Option) (*Engine, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	return &Engine{v}, nil
}

// Make validates data against rules. Undefined tags make go-playground panic;
// the panic is returned as an error instead.
func (e *Engine) Make(ctx context.Context, data map[string]any, rules, messages map[string]string) (inst Instance, err error) {
	defer func() {
		if r := recover(); r != nil {
			inst = nil
			err = fmt.Errorf("validation engine: %v", r)
		}
	}()

	if data == nil {
		data = map[string]any{}
	}
	rs := make(map[string]any, len(rules))
	for field, rule := range rules {
		rs[field] = rule
	}

	errs := NewErrors()
	for field, fe := range e.ValidateMapCtx(ctx, data, rs) {
		collect(errs, field, fe, messages)
	}
	return NewResult(errs), nil
}

func collect(errs Errors, field string, raw any, messages map[string]string) {
	switch v := raw.(type) {
	case validator.ValidationErrors:
		for _, fe := range v {
			errs.Add(field, message(field, fe.Tag(), messages))
		}
	case error:
		var ve validator.ValidationErrors
		if errors.As(v, &ve) {
			collect(errs, field, ve, messages)
			return
		}
		errs.Add(field, v.Error())
	}
}

func message(field, tag string, messages map[string]string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	if m, ok := messages[tag]; ok {
		return m
	}
	return "validation failed on '" + tag + "'"
}
