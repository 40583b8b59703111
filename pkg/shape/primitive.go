package shape

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type primitiveBody struct {
	name string
	test func(v any) bool
}

func (p *primitiveBody) check(self *Validator, v any, _ Mode) (any, error) {
	if p.test(v) {
		return v, nil
	}
	return nil, mismatch(self, v)
}

func (p *primitiveBody) label(visited) string { return p.name }

func primitive(name string, test func(v any) bool) *Validator {
	return newValidator(KindPrimitive, &primitiveBody{name: name, test: test})
}

// Primitive leaf validators.
var (
	String = primitive("String", func(v any) bool {
		_, ok := v.(string)
		return ok
	})

	Boolean = primitive("Boolean", func(v any) bool {
		_, ok := v.(bool)
		return ok
	})

	// Number accepts any finite Go number.
	Number = primitive("Number", func(v any) bool {
		f, ok := toFloat(v)
		return ok && isFinite(f)
	})

	// LooseNumber accepts any Go number including NaN and ±Inf.
	LooseNumber = primitive("LooseNumber", func(v any) bool {
		_, ok := toFloat(v)
		return ok
	})

	Int = primitive("Int", func(v any) bool {
		f, ok := toFloat(v)
		return ok && isFinite(f) && f == math.Trunc(f)
	})

	Uint = primitive("Uint", func(v any) bool {
		f, ok := toFloat(v)
		return ok && isFinite(f) && f == math.Trunc(f) && f >= 0
	})

	BigInt = primitive("BigInt", func(v any) bool {
		b, ok := v.(*big.Int)
		return ok && b != nil
	})

	// UUID accepts strings in the canonical 36-character form.
	UUID = primitive("UUID", func(v any) bool {
		s, ok := v.(string)
		if !ok || len(s) != 36 {
			return false
		}
		_, err := uuid.Parse(s)
		return err == nil
	})

	Time = primitive("Time", func(v any) bool {
		_, ok := v.(time.Time)
		return ok
	})

	// Any and Unknown accept every value, including undefined.
	Any     = primitive("Any", func(any) bool { return true })
	Unknown = primitive("Unknown", func(any) bool { return true })

	// Never rejects every value.
	Never = primitive("Never", func(any) bool { return false })
)

type literalBody struct {
	values []any
}

func (l *literalBody) check(self *Validator, v any, _ Mode) (any, error) {
	for _, want := range l.values {
		if literalEqual(want, v) {
			return v, nil
		}
	}
	return nil, mismatch(self, v)
}

func (l *literalBody) label(visited) string {
	parts := make([]string, len(l.values))
	for i, v := range l.values {
		parts[i] = describe(v)
	}
	return strings.Join(parts, " | ")
}

func (l *literalBody) has(pred func(any) bool) bool {
	for _, v := range l.values {
		if pred(v) {
			return true
		}
	}
	return false
}

func literalNode(values ...any) *Validator {
	return newValidator(KindPrimitive, &literalBody{values: values})
}

// Literal singletons. They are compared by identity when optional and
// required rewrites strip undefined branches.
var (
	UndefinedLiteral = literalNode(Undefined)
	NullLiteral      = literalNode(nil)
	TrueLiteral      = literalNode(true)
	FalseLiteral     = literalNode(false)

	// Void is the undefined literal.
	Void = UndefinedLiteral
	Null = NullLiteral
)

// Literal matches exactly one primitive value: a string, bool, Go number,
// *big.Int, nil or Undefined. Singletons are returned for nil, Undefined,
// true and false.
func Literal(value any) *Validator {
	switch {
	case value == nil:
		return NullLiteral
	case isUndefined(value):
		return UndefinedLiteral
	}
	if b, ok := value.(bool); ok {
		if b {
			return TrueLiteral
		}
		return FalseLiteral
	}
	mustLiteral(value)
	return literalNode(value)
}

// Literals matches any one of a fixed set of primitive values.
func Literals(values ...any) *Validator {
	if len(values) == 1 {
		return Literal(values[0])
	}
	for _, v := range values {
		mustLiteral(v)
	}
	return literalNode(append([]any(nil), values...))
}

func mustLiteral(v any) {
	switch v.(type) {
	case nil, undefinedValue, string, bool, *big.Int:
		return
	}
	if _, ok := toFloat(v); ok {
		return
	}
	panic(fmt.Sprintf("shape: literal must be a primitive value, got %T", v))
}

type wrapBody struct {
	name string
	fn   func(v any) (any, error)
}

func (w *wrapBody) check(self *Validator, v any, _ Mode) (any, error) {
	out, err := w.fn(v)
	if err != nil {
		return nil, failure(self, v, err)
	}
	return out, nil
}

func (w *wrapBody) label(visited) string { return w.name }

// Wrap turns a caller-supplied check-and-convert function into a validator.
func Wrap(name string, fn func(v any) (any, error)) *Validator {
	if fn == nil {
		panic("shape: Wrap: nil function")
	}
	return newValidator(KindWrap, &wrapBody{name: name, fn: fn})
}

// WrapEnum wraps a lookup over a closed label set: fn returns the member and
// true, or false when value is not a member.
func WrapEnum(name string, fn func(v any) (any, bool)) *Validator {
	if fn == nil {
		panic("shape: WrapEnum: nil function")
	}
	return newValidator(KindWrap, &enumBody{name: name, fn: fn})
}

type enumBody struct {
	name string
	fn   func(v any) (any, bool)
}

func (e *enumBody) check(self *Validator, v any, _ Mode) (any, error) {
	if out, ok := e.fn(v); ok {
		return out, nil
	}
	return nil, mismatch(self, v)
}

func (e *enumBody) label(visited) string { return e.name }

// neverBody always fails with a fixed error kind; used for unmergeable intersections.
type neverBody struct {
	members []*Validator
	kind    ErrorKind
	message string
}

func (n *neverBody) check(self *Validator, v any, _ Mode) (any, error) {
	return nil, &ValidationError{
		Kind:           n.kind,
		Node:           self.Name(),
		Message:        fmt.Sprintf("%s: %s (got %s)", self.Name(), n.message, describe(v)),
		TranslationKey: "validation." + string(n.kind),
		TranslationValues: map[string]any{
			"node":   self.Name(),
			"actual": describe(v),
		},
	}
}

func (n *neverBody) label(seen visited) string { return intersectionName(n.members, seen) }

func quoteKeys(keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Quote(k)
	}
	return strings.Join(parts, " | ")
}
