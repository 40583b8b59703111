package rules

import (
	"fmt"

	"github.com/dmitrymomot/shapekit/pkg/shape"
)

// Refine narrows base with rules. base validates the value first and the
// rules check what it produced, so a converting base such as shape.Adapt
// keeps its conversion.
func Refine(base *shape.Validator, rules ...*shape.Validator) *shape.Validator {
	return shape.Refine(base, rules...)
}

// violation describes a failed constraint.
type violation struct {
	sentinel error
	message  string
	key      string
	values   map[string]any
}

// newRule builds a named constraint. test returns nil when v satisfies it.
func newRule(name string, test func(v any) *violation) *shape.Validator {
	return shape.Wrap(name, func(v any) (any, error) {
		bad := test(v)
		if bad == nil {
			return v, nil
		}
		values := map[string]any{"node": name}
		for k, val := range bad.values {
			values[k] = val
		}
		return nil, &shape.ValidationError{
			Kind:              shape.ShapeMismatch,
			Node:              name,
			Message:           bad.message,
			TranslationKey:    bad.key,
			TranslationValues: values,
			Cause:             bad.sentinel,
		}
	})
}

func notApplicable(name string, v any) *violation {
	return &violation{
		sentinel: ErrNotApplicable,
		message:  fmt.Sprintf("%s cannot be applied to %T", name, v),
		key:      "validation.not_applicable",
		values:   map[string]any{"type": fmt.Sprintf("%T", v)},
	}
}
