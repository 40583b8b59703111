package rules

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/shapekit/pkg/shape"
)

// OneOf requires the value to equal one of options.
func OneOf[T comparable](options ...T) *shape.Validator {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = fmt.Sprint(o)
	}
	name := "OneOf(" + strings.Join(labels, ", ") + ")"
	return newRule(name, func(v any) *violation {
		t, ok := v.(T)
		if !ok {
			return notApplicable(name, v)
		}
		for _, o := range options {
			if t == o {
				return nil
			}
		}
		return &violation{
			sentinel: ErrInvalidValue,
			message:  "must be one of " + strings.Join(labels, ", "),
			key:      "validation.one_of",
			values:   map[string]any{"options": labels},
		}
	})
}

// Unique requires a sequence with no repeated elements. Elements must be
// comparable; a sequence holding maps or slices is rejected.
func Unique() *shape.Validator {
	const name = "Unique"
	return newRule(name, func(v any) *violation {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return notApplicable(name, v)
		}
		seen := make(map[any]int, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			el := rv.Index(i).Interface()
			if el != nil && !reflect.TypeOf(el).Comparable() {
				return notApplicable(name, el)
			}
			if first, dup := seen[el]; dup {
				return &violation{
					sentinel: ErrInvalidValue,
					message:  fmt.Sprintf("elements %d and %d are equal", first, i),
					key:      "validation.unique",
					values:   map[string]any{"first": first, "index": i},
				}
			}
			seen[el] = i
		}
		return nil
	})
}
