package celcheck_test

import (
	"testing"

	"github.com/google/cel-go/cel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shapekit/pkg/celcheck"
	"github.com/dmitrymomot/shapekit/pkg/shape"
)

func TestNew(t *testing.T) {
	t.Run("compiles boolean expression", func(t *testing.T) {
		v, err := celcheck.New("Positive", "value > 0")
		require.NoError(t, err)
		assert.Equal(t, "Positive", v.Name())
		assert.Equal(t, shape.KindWrap, v.Kind())

		out, err := v.Loose(5)
		require.NoError(t, err)
		assert.Equal(t, 5, out)
	})

	t.Run("name defaults to expression", func(t *testing.T) {
		v, err := celcheck.New("", "size(value) > 2")
		require.NoError(t, err)
		assert.Equal(t, "size(value) > 2", v.Name())
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := celcheck.New("Broken", "value >")
		assert.ErrorIs(t, err, celcheck.ErrCompile)
	})

	t.Run("non boolean expression", func(t *testing.T) {
		_, err := celcheck.New("Sum", "1 + 2")
		assert.ErrorIs(t, err, celcheck.ErrNotBoolean)
	})

	t.Run("extra variables", func(t *testing.T) {
		v, err := celcheck.New("Short", "size(value) <= limit",
			cel.Variable("limit", cel.IntType),
		)
		require.NoError(t, err)

		_, err = v.Loose("abc")
		assert.ErrorIs(t, err, celcheck.ErrEvaluation, "limit is unbound at evaluation")
	})
}

func TestValidator(t *testing.T) {
	adult := celcheck.MustNew("Adult", "value.age >= 18")

	t.Run("passes", func(t *testing.T) {
		in := map[string]any{"age": 21}
		out, err := adult.Loose(in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("predicate false", func(t *testing.T) {
		_, err := adult.Loose(map[string]any{"age": 12})
		require.Error(t, err)
		assert.ErrorIs(t, err, shape.ErrShapeMismatch)
		ve := shape.ExtractValidationError(err)
		require.NotNil(t, ve)
		assert.Equal(t, "validation.predicate", ve.TranslationKey)
		assert.Equal(t, "value.age >= 18", ve.TranslationValues["rule"])
		assert.Equal(t, "value does not satisfy Adult", ve.Error())
	})

	t.Run("evaluation error", func(t *testing.T) {
		_, err := adult.Loose(map[string]any{"name": "x"})
		require.Error(t, err)
		assert.ErrorIs(t, err, celcheck.ErrEvaluation)
		assert.ErrorIs(t, err, shape.ErrShapeMismatch)
	})

	t.Run("undefined", func(t *testing.T) {
		_, err := adult.Loose(shape.Undefined)
		assert.ErrorIs(t, err, celcheck.ErrEvaluation)
	})

	t.Run("dynamic expression must yield bool", func(t *testing.T) {
		v := celcheck.MustNew("Self", "value")
		assert.True(t, v.Is(true, shape.Loose))
		assert.False(t, v.Is(false, shape.Loose))

		_, err := v.Loose("text")
		assert.ErrorIs(t, err, celcheck.ErrNotBoolean)
	})

	t.Run("inside intersection", func(t *testing.T) {
		user := shape.Intersection(
			shape.Object("User", shape.Fields{"age": shape.Int}),
			adult,
		)
		assert.True(t, user.Is(map[string]any{"age": 30}, shape.Loose))
		assert.False(t, user.Is(map[string]any{"age": 3}, shape.Loose))
		assert.False(t, user.Is(map[string]any{"age": "30"}, shape.Loose))
	})

	t.Run("as field", func(t *testing.T) {
		email := celcheck.MustNew("Email", `value.matches("^[^@]+@[^@]+$")`)
		form := shape.Object("Form", shape.Fields{"email": shape.Intersection(shape.String, email)})

		assert.True(t, form.Is(map[string]any{"email": "a@b.c"}, shape.Exact))
		_, err := form.Exact(map[string]any{"email": "nope"})
		require.Error(t, err)
		assert.Equal(t, []string{"email"}, shape.ExtractValidationError(err).Path())
	})
}

func TestMustNew(t *testing.T) {
	assert.Panics(t, func() { celcheck.MustNew("Bad", "((") })
}
