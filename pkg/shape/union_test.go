package shape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shapekit/pkg/shape"
)

func TestUnion_Flattening(t *testing.T) {
	nested := shape.Union(shape.Union(shape.String, shape.Number), shape.Boolean)
	flat := shape.Union(shape.String, shape.Number, shape.Boolean)

	assert.Equal(t, flat.Name(), nested.Name())
	assert.Equal(t, "String | Number | Boolean", nested.Name())
	assert.Equal(t, shape.KindUnion, nested.Kind())

	for _, in := range []any{"x", 1, true, nil, []any{}} {
		assert.Equal(t, flat.Is(in, shape.Loose), nested.Is(in, shape.Loose), "input %#v", in)
	}
}

func TestUnion_Degenerate(t *testing.T) {
	assert.Same(t, shape.Never, shape.Union())
	assert.Same(t, shape.String, shape.Union(shape.String))
	assert.Panics(t, func() { shape.Union(shape.String, nil) })
}

func TestUnion_FirstMatchWins(t *testing.T) {
	first := shape.Wrap("First", func(any) (any, error) { return "first", nil })
	second := shape.Wrap("Second", func(any) (any, error) { return "second", nil })

	out, err := shape.Union(first, second).Loose("x")
	require.NoError(t, err)
	assert.Equal(t, "first", out)

	out, err = shape.Union(shape.Number, second).Loose(1)
	require.NoError(t, err)
	assert.Equal(t, 1, out)
}

func TestUnion_Exhausted(t *testing.T) {
	v := shape.Union(shape.String, shape.Array(shape.Number))

	_, err := v.Loose(true)
	require.Error(t, err)
	assert.ErrorIs(t, err, shape.ErrUnionExhausted)
	assert.Equal(t, "expected String | Number[], got true", err.Error())

	ve := shape.ExtractValidationError(err)
	assert.Equal(t, shape.UnionExhausted, ve.Kind)
	assert.Equal(t, "validation.union", ve.TranslationKey)
}

func TestOptional(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		once := shape.Optional(shape.String)
		twice := shape.Optional(once)
		assert.Same(t, once, twice)

		for _, in := range []any{"x", shape.Undefined, nil, 1} {
			assert.Equal(t, once.Is(in, shape.Loose), twice.Is(in, shape.Loose), "input %#v", in)
		}
	})

	t.Run("skips the item for undefined", func(t *testing.T) {
		v := shape.Optional(shape.Never)
		out, err := v.Loose(shape.Undefined)
		require.NoError(t, err)
		assert.Equal(t, shape.Undefined, out)
		assert.False(t, v.Is(nil, shape.Loose))
	})

	t.Run("strips undefined branch of inner union", func(t *testing.T) {
		v := shape.Optional(shape.Union(shape.String, shape.Number, shape.Void))
		assert.Equal(t, "(String | Number) | undefined", v.Name())
		assert.Equal(t, shape.KindOptional, v.Kind())
		assert.True(t, v.Is(shape.Undefined, shape.Loose))
		assert.True(t, v.Is(1, shape.Loose))
	})

	t.Run("union of optional collapses", func(t *testing.T) {
		inner := shape.Optional(shape.String)
		v := shape.Optional(shape.Union(inner, shape.Void))
		assert.Same(t, inner, v)
	})

	t.Run("delegates otherwise", func(t *testing.T) {
		_, err := shape.Optional(shape.String).Loose(1)
		require.Error(t, err)
		assert.Equal(t, "expected String, got 1", err.Error())
	})
}

func TestMaybe(t *testing.T) {
	v := shape.Maybe(shape.String)
	assert.Equal(t, "Maybe<String>", v.Name())

	out, err := v.Loose(nil)
	require.NoError(t, err)
	assert.Equal(t, shape.None(), out)

	out, err = v.Loose(shape.Undefined)
	require.NoError(t, err)
	assert.False(t, out.(shape.Option).IsSome())

	out, err = v.Loose("x")
	require.NoError(t, err)
	opt := out.(shape.Option)
	val, ok := opt.Get()
	assert.True(t, ok)
	assert.Equal(t, "x", val)
	assert.Equal(t, "Some(x)", opt.String())

	_, err = v.Loose(1)
	assert.ErrorIs(t, err, shape.ErrShapeMismatch)
}

func TestOption(t *testing.T) {
	assert.Equal(t, "fallback", shape.None().OrElse("fallback"))
	assert.Equal(t, 1, shape.Some(1).OrElse(2))
	assert.Equal(t, "None", shape.None().String())
	assert.True(t, shape.Some(nil).IsSome())
}
