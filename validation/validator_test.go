package validation

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	require.NoError(t, err)
	return e
}

func TestEngine_Make(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	rules := map[string]string{
		"email": "required,email",
		"age":   "required,gte=18",
	}

	t.Run("passes", func(t *testing.T) {
		inst, err := e.Make(ctx, map[string]any{"email": "bob@example.com", "age": 30}, rules, nil)
		require.NoError(t, err)
		assert.False(t, inst.Fails())
		assert.True(t, inst.Errors().IsEmpty())
	})

	t.Run("fails with default messages", func(t *testing.T) {
		inst, err := e.Make(ctx, map[string]any{"email": "nope", "age": 12}, rules, nil)
		require.NoError(t, err)
		require.True(t, inst.Fails())
		assert.Equal(t, Errors{
			"email": {"validation failed on 'email'"},
			"age":   {"validation failed on 'gte'"},
		}, inst.Errors())
	})

	t.Run("missing field", func(t *testing.T) {
		inst, err := e.Make(ctx, map[string]any{"age": 30}, rules, nil)
		require.NoError(t, err)
		assert.Equal(t, "validation failed on 'required'", inst.Errors().Get("email"))
		assert.False(t, inst.Errors().Has("age"))
	})

	t.Run("nil data", func(t *testing.T) {
		inst, err := e.Make(ctx, nil, rules, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"age", "email"}, inst.Errors().Fields())
	})

	t.Run("no rules", func(t *testing.T) {
		inst, err := e.Make(ctx, map[string]any{"anything": 1}, nil, nil)
		require.NoError(t, err)
		assert.False(t, inst.Fails())
	})
}

func TestEngine_Messages(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	rules := map[string]string{"email": "required,email", "name": "required"}

	messages := map[string]string{
		"email.required": "we need your email",
		"required":       "this field is required",
	}

	inst, err := e.Make(ctx, map[string]any{}, rules, messages)
	require.NoError(t, err)
	assert.Equal(t, "we need your email", inst.Errors().Get("email"))
	assert.Equal(t, "this field is required", inst.Errors().Get("name"))
}

func TestEngine_UndefinedRule(t *testing.T) {
	e := newEngine(t)

	inst, err := e.Make(context.Background(), map[string]any{"a": 1}, map[string]string{"a": "nosuchrule"}, nil)
	require.Error(t, err)
	assert.Nil(t, inst)
	assert.Contains(t, err.Error(), "validation engine")
}

func TestEngine_Options(t *testing.T) {
	even := func(fl validator.FieldLevel) bool { return fl.Field().Int()%2 == 0 }
	e := newEngine(t, WithRule("even", even), WithAlias("adult", "gte=18"))
	ctx := context.Background()

	inst, err := e.Make(ctx, map[string]any{"n": 3, "age": 12}, map[string]string{"n": "even", "age": "adult"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "validation failed on 'even'", inst.Errors().Get("n"))
	assert.Equal(t, "validation failed on 'adult'", inst.Errors().Get("age"))

	inst, err = e.Make(ctx, map[string]any{"n": 4, "age": 30}, map[string]string{"n": "even", "age": "adult"}, nil)
	require.NoError(t, err)
	assert.False(t, inst.Fails())
}

func TestNew_OptionError(t *testing.T) {
	_, err := New(WithRule("", func(validator.FieldLevel) bool { return true }))
	require.Error(t, err)
}

func TestEngine_Struct(t *testing.T) {
	type user struct {
		Email string `validate:"required,email"`
	}
	e := newEngine(t)
	require.NoError(t, e.Struct(user{Email: "bob@example.com"}))
	require.Error(t, e.Struct(user{}))
	require.Error(t, e.Var("nope", "email"))
}

func TestFactoryFunc(t *testing.T) {
	var got map[string]any
	f := FactoryFunc(func(_ context.Context, data map[string]any, _, _ map[string]string) (Instance, error) {
		got = data
		return NewResult(Errors{"x": {"bad"}}), nil
	})

	inst, err := f.Make(context.Background(), map[string]any{"x": 1}, nil, nil)
	require.NoError(t, err)
	assert.True(t, inst.Fails())
	assert.Equal(t, map[string]any{"x": 1}, got)
}
