package shape

import (
	"fmt"
	"strings"
)

type tupleBody struct {
	items []*Validator
	// rest validates every element past the fixed positions; nil bounds the length.
	rest *Validator
	min  int
}

// Tuple validates a sequence position by position. Trailing Optional
// positions may be left out; an Optional followed by a required position may not.
func Tuple(items ...*Validator) *Validator {
	mustNode("Tuple", items...)
	return newTuple(items, nil)
}

// Spread is a tuple whose elements past the fixed items are validated by rest.
func Spread(rest *Validator, items ...*Validator) *Validator {
	mustNode("Spread", rest)
	mustNode("Spread", items...)
	return newTuple(items, rest)
}

func newTuple(items []*Validator, rest *Validator) *Validator {
	return newValidator(KindTuple, &tupleBody{
		items: append([]*Validator(nil), items...),
		rest:  rest,
		min:   minLength(items),
	})
}

// minLength is one past the last non-Optional position.
func minLength(items []*Validator) int {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].kind != KindOptional {
			return i + 1
		}
	}
	return 0
}

func (t *tupleBody) check(self *Validator, v any, mode Mode) (any, error) {
	seq, ok := asSequence(v)
	if !ok {
		return nil, mismatch(self, v)
	}
	if len(seq) < t.min || (t.rest == nil && len(seq) > len(t.items)) {
		err := mismatch(self, v)
		err.Message = fmt.Sprintf("%s: %s", err.Message, t.lengthRule())
		err.TranslationKey = "validation.tuple_length"
		err.TranslationValues["min"] = t.min
		err.TranslationValues["length"] = len(seq)
		return nil, err
	}
	var out []any
	for i, elem := range seq {
		item := t.rest
		if i < len(t.items) {
			item = t.items[i]
		}
		res, err := item.Check(elem, mode)
		if err != nil {
			return nil, indexFailure(self, i, err)
		}
		if out == nil && !same(res, elem) {
			out = make([]any, len(seq))
			copy(out, seq)
		}
		if out != nil {
			out[i] = res
		}
	}
	if out != nil {
		return out, nil
	}
	return v, nil
}

func (t *tupleBody) lengthRule() string {
	switch {
	case t.rest != nil:
		return fmt.Sprintf("length must be at least %d", t.min)
	case t.min == len(t.items):
		return fmt.Sprintf("length must be %d", t.min)
	}
	return fmt.Sprintf("length must be between %d and %d", t.min, len(t.items))
}

func (t *tupleBody) label(seen visited) string {
	parts := make([]string, 0, len(t.items)+1)
	for _, item := range t.items {
		if opt, ok := item.body.(*optionalBody); ok {
			parts = append(parts, group(nameOf(opt.item, seen))+"?")
			continue
		}
		parts = append(parts, nameOf(item, seen))
	}
	if t.rest != nil {
		parts = append(parts, "..."+group(nameOf(t.rest, seen))+"[]")
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
