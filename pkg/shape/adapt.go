package shape

import (
	"fmt"
	"reflect"
	"strings"
)

// Adaptor accepts an alternate input shape and converts it to the target.
type Adaptor struct {
	guard   *Validator
	convert func(v any) (any, error)
}

// Convert builds an adaptor with a conversion that cannot fail.
func Convert(guard *Validator, fn func(v any) any) Adaptor {
	mustNode("Convert", guard)
	return Adaptor{guard: guard, convert: func(v any) (any, error) { return fn(v), nil }}
}

// TryConvert builds an adaptor whose conversion may fail. A failed
// conversion only skips to the next adaptor.
func TryConvert(guard *Validator, fn func(v any) (any, error)) Adaptor {
	mustNode("TryConvert", guard)
	return Adaptor{guard: guard, convert: fn}
}

type adaptBody struct {
	primary  *Validator
	adaptors []Adaptor
}

// Adapt tries primary, then each adaptor in order. The first adaptor whose
// guard accepts the value and whose conversion succeeds provides the result.
func Adapt(primary *Validator, adaptors ...Adaptor) *Validator {
	mustNode("Adapt", primary)
	for i, a := range adaptors {
		if a.guard == nil || a.convert == nil {
			panic(fmt.Sprintf("shape: Adapt: adaptor %d is not initialized", i))
		}
	}
	return newValidator(KindAdapt, &adaptBody{primary: primary, adaptors: append([]Adaptor(nil), adaptors...)})
}

func (a *adaptBody) check(self *Validator, v any, mode Mode) (any, error) {
	out, primaryErr := a.primary.Check(v, mode)
	if primaryErr == nil {
		return out, nil
	}
	for _, ad := range a.adaptors {
		guarded, err := ad.guard.Check(v, mode)
		if err != nil {
			continue
		}
		converted, err := ad.convert(guarded)
		if err != nil {
			continue
		}
		return converted, nil
	}

	guards := make([]string, len(a.adaptors))
	for i, ad := range a.adaptors {
		guards[i] = ad.guard.Name()
	}
	name, actual := self.Name(), describe(v)
	msg := fmt.Sprintf("expected %s, got %s", name, actual)
	if len(guards) > 0 {
		msg = fmt.Sprintf("expected %s or a value adaptable from %s, got %s", name, strings.Join(guards, ", "), actual)
	}
	return nil, &ValidationError{
		Kind:           AdaptFailed,
		Node:           name,
		Message:        msg,
		TranslationKey: "validation.adapt",
		TranslationValues: map[string]any{
			"expected": name,
			"guards":   guards,
			"actual":   actual,
		},
		Cause: primaryErr,
	}
}

func (a *adaptBody) label(seen visited) string {
	return nameOf(a.primary, seen)
}

type classBody[T any] struct {
	ctor func(args ...any) T
	args *Validator
}

// Class accepts a value that already is a T, or arguments that pass args,
// from which a new T is built with ctor. When args yields a sequence its
// elements are passed as separate arguments.
func Class[T any](ctor func(args ...any) T, args *Validator) *Validator {
	if ctor == nil {
		panic("shape: Class: nil constructor")
	}
	mustNode("Class", args)
	return newValidator(KindClass, &classBody[T]{ctor: ctor, args: args})
}

func (c *classBody[T]) check(self *Validator, v any, mode Mode) (any, error) {
	if _, ok := v.(T); ok {
		return v, nil
	}
	args, err := c.args.Check(v, mode)
	if err != nil {
		return nil, failure(self, v, err)
	}
	return c.ctor(spreadArgs(args)...), nil
}

func (c *classBody[T]) label(visited) string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

type funcBody[R any] struct {
	fn   func(args ...any) R
	args *Validator
}

// Func validates its input as fn's argument list and returns what fn returns.
// fn never sees unvalidated input.
func Func[R any](fn func(args ...any) R, args *Validator) *Validator {
	if fn == nil {
		panic("shape: Func: nil function")
	}
	mustNode("Func", args)
	return newValidator(KindFunc, &funcBody[R]{fn: fn, args: args})
}

func (f *funcBody[R]) check(self *Validator, v any, mode Mode) (any, error) {
	args, err := f.args.Check(v, mode)
	if err != nil {
		return nil, failure(self, v, err)
	}
	return f.fn(spreadArgs(args)...), nil
}

func (f *funcBody[R]) label(seen visited) string {
	return "(" + nameOf(f.args, seen) + ") => " + reflect.TypeOf((*R)(nil)).Elem().String()
}

func spreadArgs(v any) []any {
	if seq, ok := asSequence(v); ok {
		return seq
	}
	return []any{v}
}
