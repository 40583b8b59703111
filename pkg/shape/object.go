package shape

import (
	"strings"
)

// Fields maps object keys to their validators.
type Fields map[string]*Validator

type objectBody struct {
	name   string
	fields Fields
	keys   []string

	// merged objects come out of intersections and never reject extra keys.
	merged bool
	// sequence objects also accept arrays, viewed as index keys plus "length".
	sequence bool
	// sources name a merged object after the operands it was built from.
	sources []*Validator
}

// Object validates a keyed container field by field. An empty name derives
// one from the fields.
func Object(name string, fields Fields) *Validator {
	return newObject(name, fields, false, false)
}

func newObject(name string, fields Fields, merged, sequence bool) *Validator {
	own := make(Fields, len(fields))
	for k, f := range fields {
		if f == nil {
			panic("shape: Object: nil validator for field " + k)
		}
		own[k] = f
	}
	return newValidator(KindObject, &objectBody{
		name:     name,
		fields:   own,
		keys:     sortedKeys(own),
		merged:   merged,
		sequence: sequence,
	})
}

func (o *objectBody) check(self *Validator, v any, mode Mode) (any, error) {
	return o.checkKeys(self, v, mode, !o.merged)
}

// checkKeys validates the declared fields; rejectExtra enables the exact-mode
// check for undeclared keys at this level only.
func (o *objectBody) checkKeys(self *Validator, v any, mode Mode, rejectExtra bool) (any, error) {
	obj, ok := asObject(v, o.sequence)
	if !ok {
		return nil, mismatch(self, v)
	}
	_, writable := v.(map[string]any)
	if !writable {
		_, isSeq := asSequence(v)
		writable = !isSeq
	}

	var out map[string]any
	for _, key := range o.keys {
		field := o.fields[key]
		val, present := obj[key]
		if !present {
			if optionalField(field) {
				continue
			}
			return nil, fieldFailure(self, key, missing(field))
		}
		res, err := field.Check(val, mode)
		if err != nil {
			return nil, fieldFailure(self, key, err)
		}
		if writable {
			out = writeThrough(out, obj, key, val, res)
		}
	}

	if mode == Exact && rejectExtra {
		for _, key := range sortedKeys(obj) {
			if _, declared := o.fields[key]; !declared {
				return nil, extraKey(self, key)
			}
		}
	}

	if out != nil {
		return out, nil
	}
	return v, nil
}

func (o *objectBody) label(seen visited) string {
	if o.name != "" {
		return o.name
	}
	if len(o.sources) > 0 {
		names := make([]string, len(o.sources))
		for i, s := range o.sources {
			names[i] = group(nameOf(s, seen))
		}
		return strings.Join(names, " & ")
	}
	if len(o.keys) == 0 {
		return "{}"
	}
	parts := make([]string, len(o.keys))
	for i, key := range o.keys {
		f := o.fields[key]
		if opt, ok := f.body.(*optionalBody); ok {
			parts[i] = key + "?: " + nameOf(opt.item, seen)
			continue
		}
		parts[i] = key + ": " + nameOf(f, seen)
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// derive rebuilds an object with new fields, keeping its flags.
func (o *objectBody) derive(prefix string, fields Fields) *Validator {
	name := ""
	if o.name != "" && prefix != "" {
		name = prefix + "<" + o.name + ">"
	}
	return newObject(name, fields, o.merged, o.sequence)
}
