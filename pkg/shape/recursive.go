package shape

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/shapekit/pkg/logger"
)

type recursiveBody struct {
	once     sync.Once
	supplier func() *Validator
	node     *Validator
}

// Recursive defers building a self-referential subtree until first use.
// supplier runs at most once and must not validate through the node it is
// building. The self reference has to sit inside Array, Optional, Union or
// another combinator so that validation depth follows the input.
//
//	var tree *shape.Validator
//	tree = shape.Recursive(func() *shape.Validator {
//	    return shape.Object("Tree", shape.Fields{
//	        "name":     shape.String,
//	        "children": shape.Array(tree),
//	    })
//	})
func Recursive(supplier func() *Validator) *Validator {
	if supplier == nil {
		panic(fmt.Errorf("%w: nil supplier", ErrIllFormedRecursive))
	}
	return newValidator(KindRecursive, &recursiveBody{supplier: supplier})
}

func (r *recursiveBody) resolve() *Validator {
	first := false
	r.once.Do(func() {
		supplier := r.supplier
		r.supplier = nil
		r.node = supplier()
		first = true
	})
	if r.node == nil {
		panic(fmt.Errorf("%w: supplier returned nil (referenced before it was defined?)", ErrIllFormedRecursive))
	}
	// Naming walks back into this node, so it has to happen outside once.Do.
	if first && log().Enabled(context.Background(), slog.LevelDebug) {
		log().Debug("recursive schema resolved", logger.Node(r.node.Name()), logger.Kind(r.node.kind.String()))
	}
	return r.node
}

func (r *recursiveBody) check(_ *Validator, v any, mode Mode) (any, error) {
	return r.resolve().Check(v, mode)
}

func (r *recursiveBody) label(seen visited) string {
	if seen[r] {
		return "recursive"
	}
	seen[r] = true
	defer delete(seen, r)
	return nameOf(r.resolve(), seen)
}

// Resolve forces a recursive node and returns what it stands for; other nodes are returned unchanged.
func Resolve(v *Validator) *Validator {
	if r, ok := v.body.(*recursiveBody); ok {
		return r.resolve()
	}
	return v
}

// optionalField reports whether a key may be absent. It looks through a
// recursive node, so it is only called while validating.
func optionalField(v *Validator) bool {
	return Resolve(v).kind == KindOptional
}
