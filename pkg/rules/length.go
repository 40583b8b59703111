package rules

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/shapekit/pkg/shape"
)

// size measures strings in runes and sequences or maps in elements.
func size(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

// MinLen requires at least min characters, elements or keys.
func MinLen(min int) *shape.Validator {
	name := fmt.Sprintf("MinLen(%d)", min)
	return newRule(name, func(v any) *violation {
		n, ok := size(v)
		if !ok {
			return notApplicable(name, v)
		}
		if n >= min {
			return nil
		}
		return &violation{
			sentinel: ErrInvalidLength,
			message:  fmt.Sprintf("must have at least %d items, got %d", min, n),
			key:      "validation.min_length",
			values:   map[string]any{"min": min, "length": n},
		}
	})
}

// MaxLen allows at most max characters, elements or keys.
func MaxLen(max int) *shape.Validator {
	name := fmt.Sprintf("MaxLen(%d)", max)
	return newRule(name, func(v any) *violation {
		n, ok := size(v)
		if !ok {
			return notApplicable(name, v)
		}
		if n <= max {
			return nil
		}
		return &violation{
			sentinel: ErrInvalidLength,
			message:  fmt.Sprintf("must have at most %d items, got %d", max, n),
			key:      "validation.max_length",
			values:   map[string]any{"max": max, "length": n},
		}
	})
}

// Len requires exactly n characters, elements or keys.
func Len(n int) *shape.Validator {
	name := fmt.Sprintf("Len(%d)", n)
	return newRule(name, func(v any) *violation {
		got, ok := size(v)
		if !ok {
			return notApplicable(name, v)
		}
		if got == n {
			return nil
		}
		return &violation{
			sentinel: ErrInvalidLength,
			message:  fmt.Sprintf("must have exactly %d items, got %d", n, got),
			key:      "validation.exact_length",
			values:   map[string]any{"exact": n, "length": got},
		}
	})
}

// NotBlank rejects strings that are empty after trimming whitespace.
func NotBlank() *shape.Validator {
	const name = "NotBlank"
	return newRule(name, func(v any) *violation {
		s, ok := v.(string)
		if !ok {
			return notApplicable(name, v)
		}
		if strings.TrimSpace(s) != "" {
			return nil
		}
		return &violation{
			sentinel: ErrInvalidValue,
			message:  "must not be blank",
			key:      "validation.not_blank",
		}
	})
}
