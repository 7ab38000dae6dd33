package form

import (
	"context"
	"sync"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/shadowofcards/go-formvalidator/contexts"
	"github.com/shadowofcards/go-formvalidator/logging"
	"github.com/shadowofcards/go-formvalidator/metrics"
	"github.com/shadowofcards/go-formvalidator/validation"
)

const (
	metricValidations = "form_validation_total"
	metricRules       = "form_rules"
)

type Option func(*Validator)

func WithLogger(l *logging.Logger) Option    { return func(v *Validator) { v.log = l } }
func WithRecorder(r metrics.Recorder) Option { return func(v *Validator) { v.rec = r } }

// WithName labels log entries and metrics with the form name.
func WithName(name string) Option { return func(v *Validator) { v.name = name } }

// WithTagName sets the struct tag used to name fields during normalization.
func WithTagName(tag string) Option { return func(v *Validator) { v.tagName = tag } }

// WithPersistentSubstitution makes placeholder substitution stick: the
// substituted rules replace the validator's rules for every later call.
func WithPersistentSubstitution() Option { return func(v *Validator) { v.persist = true } }

// Validator validates form data against a RuleProvider's rules.
//
// It remembers the rules and engine result of its most recent Validate call.
// Calls are serialized, but that "last call" state is shared, so use one
// Validator per request when Errors or Rules are read afterwards.
type Validator struct {
	factory  validation.Factory
	messages Messages
	name     string
	tagName  string
	persist  bool
	log      *logging.Logger
	rec      metrics.Recorder

	mu      sync.Mutex
	base    Rules
	current Rules
	last    validation.Instance
}

// New builds a Validator over the engine factory and the provider's rule and
// message sets. Both sets are copied; later changes to the provider are not seen.
func New(factory validation.Factory, provider RuleProvider, opts ...Option) *Validator {
	v := &Validator{
		factory:  factory,
		messages: provider.Messages().clone(),
		tagName:  DefaultTagName,
		log:      logging.Nop(),
		rec:      metrics.Nop{},
	}
	for _, o := range opts {
		o(v)
	}
	v.base = provider.Rules().clone()
	v.current = v.base
	return v
}

// Validate fills rule placeholders from mappings, normalizes formData and
// runs the engine. It returns a *ValidationError when the engine reports
// failure; any other error comes from substitution, normalization or the
// engine itself and is returned unchanged.
func (v *Validator) Validate(ctx context.Context, formData any, mappings Mappings) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.name != "" {
		ctx = context.WithValue(ctx, contexts.KeyForm, v.name)
	}
	id := xid.New().String()

	rules := v.base
	if len(mappings) > 0 {
		replaced, err := ReplacePlaceholders(rules, mappings)
		if err != nil {
			return err
		}
		rules = replaced
		if v.persist {
			v.base = rules
		}
	}
	v.current = rules

	data, err := Normalize(formData, v.tagName)
	if err != nil {
		return err
	}

	inst, err := v.factory.Make(ctx, data, rules.clone(), v.messages.clone())
	if err != nil {
		v.log.ErrorCtx(ctx, "validation engine error", zap.String("validation_id", id), zap.Error(err))
		return err
	}
	v.last = inst

	if inst.Fails() {
		errs := inst.Errors()
		v.log.DebugCtx(ctx, "form validation failed",
			zap.String("validation_id", id),
			zap.Strings("fields", errs.Fields()),
		)
		v.record(ctx, "failed")
		return &ValidationError{Message: failedMessage, Errors: errs}
	}

	v.log.DebugCtx(ctx, "form validation passed", zap.String("validation_id", id))
	v.record(ctx, "passed")
	return nil
}

func (v *Validator) record(ctx context.Context, outcome string) {
	if err := v.rec.IncWithTags(ctx, metricValidations, 1, map[string]string{"outcome": outcome}); err != nil {
		v.log.WarnCtx(ctx, "record validation metric", zap.Error(err))
	}
	if err := v.rec.GaugeWithTags(ctx, metricRules, float64(len(v.current)), nil); err != nil {
		v.log.WarnCtx(ctx, "record rules metric", zap.Error(err))
	}
}

// Rules returns the rules the last Validate call used, or the provider's
// rules before the first call.
func (v *Validator) Rules() Rules {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current.clone()
}

// Errors returns the engine errors of the last Validate call. It fails with
// ErrNotValidated until a call has reached the engine.
func (v *Validator) Errors() (validation.Errors, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.last == nil {
		return nil, ErrNotValidated
	}
	return v.last.Errors(), nil
}

// Messages returns a copy of the provider's message set.
func (v *Validator) Messages() Messages {
	return v.messages.clone()
}
