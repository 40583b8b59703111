package shape_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shapekit/pkg/shape"
)

func treeValidator(name string) *shape.Validator {
	var tree *shape.Validator
	tree = shape.Recursive(func() *shape.Validator {
		return shape.Object(name, shape.Fields{
			"name":     shape.String,
			"children": shape.Array(tree),
		})
	})
	return tree
}

func TestRecursive_Tree(t *testing.T) {
	tree := treeValidator("Tree")
	assert.Equal(t, shape.KindRecursive, tree.Kind())
	assert.Equal(t, "Tree", tree.Name())

	valid := map[string]any{
		"name": "a",
		"children": []any{
			map[string]any{"name": "b", "children": []any{}},
		},
	}
	assert.True(t, tree.Is(valid, shape.Exact))

	invalid := map[string]any{
		"name": "a",
		"children": []any{
			map[string]any{"name": "b", "children": "not a list"},
		},
	}
	_, err := tree.Loose(invalid)
	require.Error(t, err)
	assert.Equal(t, []string{"children", "0", "children"}, shape.ExtractValidationError(err).Path())
	assert.Equal(t, `Tree at .children[0].children: expected Tree[], got "not a list"`, err.Error())

	deep := map[string]any{"name": "a", "children": []any{
		map[string]any{"name": "b", "children": []any{
			map[string]any{"name": 3, "children": []any{}},
		}},
	}}
	_, err = tree.Loose(deep)
	require.Error(t, err)
	assert.Equal(t, ".children[0].children[0].name", shape.ExtractValidationError(err).Location())
}

func TestRecursive_AnonymousName(t *testing.T) {
	tree := treeValidator("")
	assert.Equal(t, "{ children: recursive[]; name: String }", tree.Name())
	assert.Equal(t, shape.KindObject, shape.Resolve(tree).Kind())
	assert.Same(t, shape.String, shape.Resolve(shape.String))
}

func TestRecursive_LinkedList(t *testing.T) {
	var list *shape.Validator
	list = shape.Recursive(func() *shape.Validator {
		return shape.Union(shape.Null, shape.Object("Node", shape.Fields{
			"value": shape.Number,
			"next":  list,
		}))
	})

	in := map[string]any{"value": 1, "next": map[string]any{"value": 2, "next": nil}}
	assert.True(t, list.Is(in, shape.Loose))
	assert.True(t, list.Is(nil, shape.Loose))
	assert.False(t, list.Is(map[string]any{"value": 1, "next": map[string]any{"value": "2", "next": nil}}, shape.Loose))
	assert.Equal(t, "null | Node", list.Name())
}

func TestRecursive_SupplierRunsOnce(t *testing.T) {
	var calls atomic.Int32
	var tree *shape.Validator
	tree = shape.Recursive(func() *shape.Validator {
		calls.Add(1)
		return shape.Object("Tree", shape.Fields{"children": shape.Array(tree)})
	})
	assert.Zero(t, calls.Load(), "construction does not resolve")

	in := map[string]any{"children": []any{map[string]any{"children": []any{}}}}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, tree.Is(in, shape.Loose))
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestRecursive_InsideCombinators(t *testing.T) {
	tree := treeValidator("Tree")

	v := shape.Intersection(tree, shape.Object("", shape.Fields{"name": shape.Literal("root")}))
	assert.True(t, v.Is(map[string]any{"name": "root", "children": []any{}}, shape.Loose))
	assert.False(t, v.Is(map[string]any{"name": "leaf", "children": []any{}}, shape.Loose))

	p := shape.Partial(tree)
	assert.Same(t, tree, p, "recursive nodes are opaque to transforms")
}

func TestRecursive_IllFormed(t *testing.T) {
	t.Run("nil supplier", func(t *testing.T) {
		err := recoverError(func() { shape.Recursive(nil) })
		assert.ErrorIs(t, err, shape.ErrIllFormedRecursive)
	})

	t.Run("referenced before defined", func(t *testing.T) {
		var early *shape.Validator
		v := shape.Recursive(func() *shape.Validator { return early })

		err := recoverError(func() { v.Is("x", shape.Loose) })
		assert.ErrorIs(t, err, shape.ErrIllFormedRecursive)
	})
}

func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = errors.New("non-error panic")
		}
	}()
	fn()
	return nil
}
