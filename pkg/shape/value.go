package shape

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
)

type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Undefined is the input value for "no value". It differs from nil, which is null,
// and from a key missing from an object, which is absent.
var Undefined any = undefinedValue{}

func isUndefined(v any) bool {
	_, ok := v.(undefinedValue)
	return ok
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case undefinedValue:
		return "undefined"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case *big.Int:
		if x == nil {
			return "null"
		}
		return x.String() + "n"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(v)
	case reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("array(%d)", rv.Len())
	}
	return fmt.Sprintf("%T", v)
}

// toFloat reports the numeric value of any Go number kind.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
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

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// literalEqual compares by identity for primitives; numbers compare by value across Go kinds.
func literalEqual(a, b any) bool {
	if ai, ok := a.(*big.Int); ok {
		bi, ok := b.(*big.Int)
		return ok && ai != nil && bi != nil && ai.Cmp(bi) == 0
	}
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		return true
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}

// same reports whether out is the very value that went in, so containers
// only copy when a child actually converted something.
func same(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		return true
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map, reflect.Slice:
		return va.Len() == vb.Len() && va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Struct, reflect.Array, reflect.Interface:
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

// asObject views v as a keyed container. Sequences are viewed by index and
// length only when allowSequence is set.
func asObject(v any, allowSequence bool) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return m, true
	case reflect.Slice, reflect.Array:
		if !allowSequence {
			return nil, false
		}
		m := make(map[string]any, rv.Len()+1)
		for i := 0; i < rv.Len(); i++ {
			m[strconv.Itoa(i)] = rv.Index(i).Interface()
		}
		m["length"] = rv.Len()
		return m, true
	}
	return nil, false
}

func asSequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		s := make([]any, rv.Len())
		for i := range s {
			s[i] = rv.Index(i).Interface()
		}
		return s, true
	}
	return nil, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
