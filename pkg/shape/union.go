package shape

import (
	"fmt"
	"strings"
)

type unionBody struct {
	members []*Validator
}

// Union accepts a value passing any member. Members are tried in order and
// the first success wins. Nested unions are flattened; a single member is
// returned as is and no members yields Never.
func Union(members ...*Validator) *Validator {
	mustNode("Union", members...)
	flat := make([]*Validator, 0, len(members))
	for _, m := range members {
		if u, ok := m.body.(*unionBody); ok {
			flat = append(flat, u.members...)
			continue
		}
		flat = append(flat, m)
	}
	switch len(flat) {
	case 0:
		return Never
	case 1:
		return flat[0]
	}
	return newValidator(KindUnion, &unionBody{members: flat})
}

func (u *unionBody) check(self *Validator, v any, mode Mode) (any, error) {
	for _, m := range u.members {
		if out, err := m.Check(v, mode); err == nil {
			return out, nil
		}
	}
	name, actual := self.Name(), describe(v)
	return nil, &ValidationError{
		Kind:           UnionExhausted,
		Node:           name,
		Message:        fmt.Sprintf("expected %s, got %s", name, actual),
		TranslationKey: "validation.union",
		TranslationValues: map[string]any{
			"expected": name,
			"actual":   actual,
		},
	}
}

func (u *unionBody) label(seen visited) string {
	parts := make([]string, len(u.members))
	for i, m := range u.members {
		parts[i] = nameOf(m, seen)
	}
	return strings.Join(parts, " | ")
}

// without returns the union members other than drop, compared by identity.
func (u *unionBody) without(drop ...*Validator) ([]*Validator, bool) {
	kept := make([]*Validator, 0, len(u.members))
	for _, m := range u.members {
		if !contains(drop, m) {
			kept = append(kept, m)
		}
	}
	return kept, len(kept) != len(u.members)
}

func contains(list []*Validator, v *Validator) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

type optionalBody struct {
	item *Validator
}

// Optional accepts undefined or an absent field without consulting item.
// Optional(Optional(x)) is Optional(x), and an undefined-literal branch of
// an inner union is dropped.
func Optional(item *Validator) *Validator {
	mustNode("Optional", item)
	if item.kind == KindOptional {
		return item
	}
	if u, ok := item.body.(*unionBody); ok {
		if kept, changed := u.without(UndefinedLiteral); changed {
			item = Union(kept...)
			if item.kind == KindOptional {
				return item
			}
		}
	}
	return newValidator(KindOptional, &optionalBody{item: item})
}

func (o *optionalBody) check(_ *Validator, v any, mode Mode) (any, error) {
	if isUndefined(v) {
		return v, nil
	}
	return o.item.Check(v, mode)
}

func (o *optionalBody) label(seen visited) string {
	return group(nameOf(o.item, seen)) + " | undefined"
}

// Option is the present-or-absent result produced by Maybe.
type Option struct {
	value any
	ok    bool
}

func Some(v any) Option { return Option{value: v, ok: true} }

func None() Option { return Option{} }

// Get returns the value and whether it is present.
func (o Option) Get() (any, bool) { return o.value, o.ok }

func (o Option) IsSome() bool { return o.ok }

// OrElse returns the value, or fallback when absent.
func (o Option) OrElse(fallback any) any {
	if o.ok {
		return o.value
	}
	return fallback
}

func (o Option) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

type maybeBody struct {
	item *Validator
}

// Maybe turns null, undefined or a valid item into an Option.
func Maybe(item *Validator) *Validator {
	mustNode("Maybe", item)
	return newValidator(KindWrap, &maybeBody{item: item})
}

func (m *maybeBody) check(_ *Validator, v any, mode Mode) (any, error) {
	if v == nil || isUndefined(v) {
		return None(), nil
	}
	out, err := m.item.Check(v, mode)
	if err != nil {
		return nil, err
	}
	return Some(out), nil
}

func (m *maybeBody) label(seen visited) string {
	return "Maybe<" + nameOf(m.item, seen) + ">"
}
