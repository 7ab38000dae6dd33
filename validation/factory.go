// Package validation defines the engine a form validator delegates to and
// ships a default engine backed by github.com/go-playground/validator/v10.
//
// A Factory builds one Instance per validation run from normalized data, a
// rule set and a message set. The Instance reports whether the run failed and
// exposes the collected field errors.
package validation

import "context"

type Factory interface {
	Make(ctx context.Context, data map[string]any, rules, messages map[string]string) (Instance, error)
}

type Instance interface {
	Fails() bool
	Errors() Errors
}

// FactoryFunc adapts an ordinary function to Factory.
type FactoryFunc func(ctx context.Context, data map[string]any, rules, messages map[string]string) (Instance, error)

func (f FactoryFunc) Make(ctx context.Context, data map[string]any, rules, messages map[string]string) (Instance, error) {
	return f(ctx, data, rules, messages)
}

// Result is a ready-made Instance holding a fixed error collection.
type Result struct {
	errs Errors
}

func NewResult(errs Errors) *Result {
	return &Result{errs: errs}
}

func (r *Result) Fails() bool { return !r.errs.IsEmpty() }

func (r *Result) Errors() Errors { return r.errs }
