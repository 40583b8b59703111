package shape

import (
	"slices"
	"strconv"
)

// Partial makes every field, item or position optional. Unions and
// intersections are rewritten member by member; other nodes are returned
// unchanged.
func Partial(v *Validator) *Validator {
	mustNode("Partial", v)
	switch b := v.body.(type) {
	case *objectBody:
		fields := make(Fields, len(b.fields))
		for k, f := range b.fields {
			fields[k] = Optional(f)
		}
		return b.derive("Partial", fields)
	case *arrayBody:
		out := &arrayBody{item: Optional(b.item)}
		if b.side != nil {
			out.side = Partial(b.side)
		}
		return newValidator(KindArray, out)
	case *dictionaryBody:
		return Dictionary(Optional(b.item))
	case *recordBody:
		return Record(b.keys, Optional(b.item))
	case *tupleBody:
		items := make([]*Validator, len(b.items))
		for i, item := range b.items {
			items[i] = Optional(item)
		}
		var rest *Validator
		if b.rest != nil {
			rest = Partial(b.rest)
		}
		return newTuple(items, rest)
	case *unionBody:
		return Union(mapNodes(b.members, Partial)...)
	case *intersectionBody:
		return Intersection(mapNodes(b.children, Partial)...)
	}
	return v
}

// Required undoes Partial: optional wrappers and undefined branches are
// removed from fields, items and positions.
func Required(v *Validator) *Validator {
	mustNode("Required", v)
	switch b := v.body.(type) {
	case *objectBody:
		fields := make(Fields, len(b.fields))
		for k, f := range b.fields {
			fields[k] = defined(f)
		}
		return b.derive("Required", fields)
	case *arrayBody:
		out := &arrayBody{item: defined(b.item)}
		if b.side != nil {
			out.side = Required(b.side)
		}
		return newValidator(KindArray, out)
	case *dictionaryBody:
		return Dictionary(defined(b.item))
	case *recordBody:
		return Record(b.keys, defined(b.item))
	case *tupleBody:
		items := make([]*Validator, len(b.items))
		for i, item := range b.items {
			items[i] = defined(item)
		}
		var rest *Validator
		if b.rest != nil {
			rest = defined(b.rest)
		}
		return newTuple(items, rest)
	case *unionBody:
		return Union(mapNodes(b.members, Required)...)
	case *intersectionBody:
		return Intersection(mapNodes(b.children, Required)...)
	}
	return v
}

// defined strips one optional wrapper and any undefined member.
func defined(v *Validator) *Validator {
	if opt, ok := v.body.(*optionalBody); ok {
		v = opt.item
	}
	switch b := v.body.(type) {
	case *unionBody:
		if kept, changed := b.without(UndefinedLiteral); changed {
			return Union(kept...)
		}
	case *literalBody:
		if v != UndefinedLiteral && b.has(isUndefined) {
			return filterLiterals(b, isUndefined)
		}
	}
	return v
}

// NonNullable removes null and undefined from the accepted values.
func NonNullable(v *Validator) *Validator {
	mustNode("NonNullable", v)
	switch b := v.body.(type) {
	case *optionalBody:
		return NonNullable(b.item)
	case *literalBody:
		if b.has(isNullish) {
			return filterLiterals(b, isNullish)
		}
	case *unionBody:
		kept, _ := b.without(NullLiteral, UndefinedLiteral)
		return Union(mapNodes(kept, NonNullable)...)
	}
	return v
}

func isNullish(v any) bool {
	return v == nil || isUndefined(v)
}

func filterLiterals(b *literalBody, drop func(any) bool) *Validator {
	kept := make([]any, 0, len(b.values))
	for _, x := range b.values {
		if !drop(x) {
			kept = append(kept, x)
		}
	}
	if len(kept) == 0 {
		return Never
	}
	return Literals(kept...)
}

// Pick keeps only the named fields of an object. On a tuple the keys are
// positions ("0", "1", ...) and the result is an object over the tuple's
// elements. Any other node is returned unchanged.
func Pick(v *Validator, keys ...string) *Validator {
	mustNode("Pick", v)
	switch b := v.body.(type) {
	case *objectBody:
		fields := make(Fields, len(keys))
		for _, k := range keys {
			if f, ok := b.fields[k]; ok {
				fields[k] = f
			}
		}
		return b.derive("Pick", fields)
	case *tupleBody:
		fields := make(Fields, len(keys))
		for _, k := range keys {
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 || i >= len(b.items) {
				continue
			}
			fields[k] = b.items[i]
		}
		return newObject("", fields, true, true)
	}
	return v
}

// Omit drops the named fields of an object. Any other node is returned unchanged.
func Omit(v *Validator, keys ...string) *Validator {
	mustNode("Omit", v)
	b, ok := v.body.(*objectBody)
	if !ok {
		return v
	}
	fields := make(Fields, len(b.fields))
	for k, f := range b.fields {
		if !slices.Contains(keys, k) {
			fields[k] = f
		}
	}
	return b.derive("Omit", fields)
}

func mapNodes(nodes []*Validator, fn func(*Validator) *Validator) []*Validator {
	out := make([]*Validator, len(nodes))
	for i, n := range nodes {
		out[i] = fn(n)
	}
	return out
}
