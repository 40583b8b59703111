package shape

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/shapekit/pkg/logger"
)

// Intersection requires a value to satisfy every member. Members are merged
// by shape family: objects key by key, arrays by item plus side fields,
// tuples position by position, and unions are distributed over the rest.
// Whatever cannot be merged is checked member by member and the input is
// returned unchanged.
//
// A tuple mixed with an array or object cannot be merged; Intersection then
// returns a validator that rejects every value, and TryIntersection reports
// the problem at construction.
func Intersection(members ...*Validator) *Validator {
	v, err := TryIntersection(members...)
	if err != nil {
		log().Warn("unmergeable intersection", logger.Error(err))
		return newValidator(KindIntersection, &neverBody{
			members: members,
			kind:    IntersectionUnmergeable,
			message: "tuples cannot be intersected with arrays or objects",
		})
	}
	return v
}

// TryIntersection is Intersection that returns ErrIntersectionUnmergeable
// instead of an always-failing validator.
func TryIntersection(members ...*Validator) (*Validator, error) {
	mustNode("Intersection", members...)
	return resolve(members)
}

func resolve(members []*Validator) (*Validator, error) {
	siblings := flattenIntersections(members)
	for _, s := range siblings {
		if _, never := s.body.(*neverBody); never {
			return s, nil
		}
	}
	switch len(siblings) {
	case 0:
		return Unknown, nil
	case 1:
		return siblings[0], nil
	}

	// (A | B) & C == (A & C) | (B & C)
	for i, s := range siblings {
		u, ok := s.body.(*unionBody)
		if !ok {
			continue
		}
		rest := make([]*Validator, 0, len(siblings)-1)
		rest = append(rest, siblings[:i]...)
		rest = append(rest, siblings[i+1:]...)
		branches := make([]*Validator, 0, len(u.members))
		for _, m := range u.members {
			b, err := resolve(append([]*Validator{m}, rest...))
			if err != nil {
				return nil, err
			}
			branches = append(branches, b)
		}
		return Union(branches...), nil
	}

	if inner, ok := unwrapAllOptional(siblings); ok {
		v, err := resolve(inner)
		if err != nil {
			return nil, err
		}
		return Optional(v), nil
	}

	var objects, arrays, tuples, others []*Validator
	for _, s := range siblings {
		switch s.body.(type) {
		case *objectBody:
			objects = append(objects, s)
		case *arrayBody:
			arrays = append(arrays, s)
		case *tupleBody:
			tuples = append(tuples, s)
		default:
			others = append(others, s)
		}
	}

	var (
		merged *Validator
		err    error
	)
	switch {
	case len(tuples) > 0 && (len(arrays) > 0 || len(objects) > 0):
		return nil, unmergeable(tuples, append(arrays, objects...))
	case len(tuples) > 0:
		merged, err = mergeTuples(tuples)
	case len(arrays) > 0:
		merged, err = mergeArrays(arrays, objects)
	case len(objects) == 1:
		merged = objects[0]
	case len(objects) > 0:
		merged, err = mergeObjects(objects, false)
	}
	if err != nil {
		return nil, err
	}

	children := others
	if merged != nil {
		if len(others) == 0 {
			return merged, nil
		}
		children = append([]*Validator{merged}, others...)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	log().Debug("intersection resolved to member checks", slog.Int("members", len(children)))
	return newValidator(KindIntersection, &intersectionBody{children: children}), nil
}

func flattenIntersections(members []*Validator) []*Validator {
	flat := make([]*Validator, 0, len(members))
	for _, m := range members {
		if in, ok := m.body.(*intersectionBody); ok {
			flat = append(flat, in.children...)
			continue
		}
		flat = append(flat, m)
	}
	return flat
}

func unwrapAllOptional(siblings []*Validator) ([]*Validator, bool) {
	inner := make([]*Validator, len(siblings))
	for i, s := range siblings {
		opt, ok := s.body.(*optionalBody)
		if !ok {
			return nil, false
		}
		inner[i] = opt.item
	}
	return inner, true
}

// unmergeable avoids naming the members: names may force recursive
// suppliers that are still under construction.
func unmergeable(tuples, rest []*Validator) error {
	return fmt.Errorf("%w: %d tuple(s) with %d array or object member(s)",
		ErrIntersectionUnmergeable, len(tuples), len(rest))
}

// mergeObjects joins the field maps of objects; a key declared more than once
// gets the intersection of its validators. The result ignores extra keys
// because any operand may contribute fields.
func mergeObjects(objects []*Validator, sequence bool) (*Validator, error) {
	contributions := make(map[string][]*Validator)
	for _, o := range objects {
		body := o.body.(*objectBody)
		for _, key := range body.keys {
			contributions[key] = append(contributions[key], body.fields[key])
		}
	}
	fields := make(Fields, len(contributions))
	for key, validators := range contributions {
		f, err := mergeOne(validators)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		fields[key] = f
	}
	v := newObject("", fields, true, sequence)
	v.body.(*objectBody).sources = objects
	return v, nil
}

func mergeArrays(arrays, objects []*Validator) (*Validator, error) {
	items := make([]*Validator, 0, len(arrays))
	sides := append([]*Validator(nil), objects...)
	for _, a := range arrays {
		body := a.body.(*arrayBody)
		items = append(items, body.item)
		if body.side != nil {
			sides = append(sides, body.side)
		}
	}
	item, err := mergeOne(items)
	if err != nil {
		return nil, fmt.Errorf("array item: %w", err)
	}
	merged := &arrayBody{item: item}
	if len(sides) > 0 {
		if merged.side, err = mergeObjects(sides, true); err != nil {
			return nil, err
		}
	}
	return newValidator(KindArray, merged), nil
}

// mergeTuples intersects tuples position by position up to the longest one.
// A tuple with a rest element contributes it to every position past its own
// items; the result keeps a rest element only when every tuple has one.
func mergeTuples(tuples []*Validator) (*Validator, error) {
	bodies := make([]*tupleBody, len(tuples))
	longest := 0
	allRest := true
	for i, t := range tuples {
		bodies[i] = t.body.(*tupleBody)
		longest = max(longest, len(bodies[i].items))
		allRest = allRest && bodies[i].rest != nil
	}

	items := make([]*Validator, longest)
	for pos := range items {
		var contributors []*Validator
		for _, b := range bodies {
			switch {
			case pos < len(b.items):
				contributors = append(contributors, b.items[pos])
			case b.rest != nil:
				contributors = append(contributors, b.rest)
			}
		}
		item, err := mergeOne(contributors)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", pos, err)
		}
		items[pos] = item
	}

	var rest *Validator
	if allRest {
		rests := make([]*Validator, len(bodies))
		for i, b := range bodies {
			rests[i] = b.rest
		}
		var err error
		if rest, err = mergeOne(rests); err != nil {
			return nil, fmt.Errorf("rest: %w", err)
		}
	}
	return newTuple(items, rest), nil
}

func mergeOne(validators []*Validator) (*Validator, error) {
	if len(validators) == 1 {
		return validators[0], nil
	}
	return resolve(validators)
}

// intersectionBody checks opaque members one after another against the same input.
type intersectionBody struct {
	children []*Validator
}

func (in *intersectionBody) check(self *Validator, v any, mode Mode) (any, error) {
	// With two or more keyed members each one may see the other's keys, so
	// objects skip their own extra-key check, as merged objects do.
	open := keyedMembers(in.children) > 1
	for _, child := range in.children {
		if _, err := checkMember(child, v, mode, open); err != nil {
			name, member := self.Name(), child.Name()
			return nil, &ValidationError{
				Kind:           ShapeMismatch,
				Node:           name,
				Message:        fmt.Sprintf("%s: member %s rejected the value: %s", name, member, err),
				TranslationKey: "validation.intersection",
				TranslationValues: map[string]any{
					"node":   name,
					"member": member,
				},
				Cause: err,
			}
		}
	}
	return v, nil
}

func checkMember(child *Validator, v any, mode Mode, open bool) (any, error) {
	if open {
		target := Resolve(child)
		if o, ok := target.body.(*objectBody); ok {
			return o.checkKeys(target, v, mode, false)
		}
	}
	return child.Check(v, mode)
}

// keyedMembers counts members that declare or accept object keys. Recursive
// members are resolved, which is safe only while validating.
func keyedMembers(children []*Validator) int {
	n := 0
	for _, child := range children {
		switch Resolve(child).body.(type) {
		case *objectBody, *dictionaryBody, *recordBody:
			n++
		}
	}
	return n
}

func (in *intersectionBody) label(seen visited) string {
	return intersectionName(in.children, seen)
}

func intersectionName(members []*Validator, seen visited) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = group(nameOf(m, seen))
	}
	return strings.Join(parts, " & ")
}

// IsUnmergeable reports whether err came from intersecting a tuple with an array or object.
func IsUnmergeable(err error) bool {
	return errors.Is(err, ErrIntersectionUnmergeable)
}
