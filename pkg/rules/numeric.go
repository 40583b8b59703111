package rules

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"github.com/dmitrymomot/shapekit/pkg/shape"
)

// number reports the value of any Go number kind, including *big.Int.
func number(v any) (float64, bool) {
	if b, ok := v.(*big.Int); ok && b != nil {
		f, _ := new(big.Float).SetInt(b).Float64()
		return f, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Min requires a number greater than or equal to min.
func Min(min float64) *shape.Validator {
	name := "Min(" + formatBound(min) + ")"
	return newRule(name, func(v any) *violation {
		f, ok := number(v)
		if !ok {
			return notApplicable(name, v)
		}
		if f >= min {
			return nil
		}
		return &violation{
			sentinel: ErrOutOfRange,
			message:  fmt.Sprintf("must be at least %s", formatBound(min)),
			key:      "validation.min",
			values:   map[string]any{"min": formatBound(min), "actual": formatBound(f)},
		}
	})
}

// Max requires a number less than or equal to max.
func Max(max float64) *shape.Validator {
	name := "Max(" + formatBound(max) + ")"
	return newRule(name, func(v any) *violation {
		f, ok := number(v)
		if !ok {
			return notApplicable(name, v)
		}
		if f <= max {
			return nil
		}
		return &violation{
			sentinel: ErrOutOfRange,
			message:  fmt.Sprintf("must be at most %s", formatBound(max)),
			key:      "validation.max",
			values:   map[string]any{"max": formatBound(max), "actual": formatBound(f)},
		}
	})
}

// Between requires min <= value <= max.
func Between(min, max float64) *shape.Validator {
	name := fmt.Sprintf("Between(%s, %s)", formatBound(min), formatBound(max))
	return newRule(name, func(v any) *violation {
		f, ok := number(v)
		if !ok {
			return notApplicable(name, v)
		}
		if f >= min && f <= max {
			return nil
		}
		return &violation{
			sentinel: ErrOutOfRange,
			message:  fmt.Sprintf("must be between %s and %s", formatBound(min), formatBound(max)),
			key:      "validation.range",
			values: map[string]any{
				"min":    formatBound(min),
				"max":    formatBound(max),
				"actual": formatBound(f),
			},
		}
	})
}

// Positive requires a number greater than zero.
func Positive() *shape.Validator {
	const name = "Positive"
	return newRule(name, func(v any) *violation {
		f, ok := number(v)
		if !ok {
			return notApplicable(name, v)
		}
		if f > 0 {
			return nil
		}
		return &violation{
			sentinel: ErrOutOfRange,
			message:  "must be positive",
			key:      "validation.positive",
			values:   map[string]any{"actual": formatBound(f)},
		}
	})
}
