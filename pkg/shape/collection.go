package shape

type arrayBody struct {
	item *Validator
	// side holds object fields an intersection attached to the array.
	side *Validator
}

// Array validates a sequence whose every element passes item.
func Array(item *Validator) *Validator {
	mustNode("Array", item)
	return newValidator(KindArray, &arrayBody{item: item})
}

func (a *arrayBody) check(self *Validator, v any, mode Mode) (any, error) {
	seq, ok := asSequence(v)
	if !ok {
		return nil, mismatch(self, v)
	}
	var out []any
	for i, elem := range seq {
		res, err := a.item.Check(elem, mode)
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
	if a.side != nil {
		if _, err := a.side.Check(v, mode); err != nil {
			return nil, err
		}
	}
	if out != nil {
		return out, nil
	}
	return v, nil
}

func (a *arrayBody) label(seen visited) string {
	name := group(nameOf(a.item, seen)) + "[]"
	if a.side != nil {
		name += " & " + group(nameOf(a.side, seen))
	}
	return name
}

type dictionaryBody struct {
	item *Validator
}

// Dictionary validates a keyed container whose every value passes item.
func Dictionary(item *Validator) *Validator {
	mustNode("Dictionary", item)
	return newValidator(KindDictionary, &dictionaryBody{item: item})
}

func (d *dictionaryBody) check(self *Validator, v any, mode Mode) (any, error) {
	obj, ok := asObject(v, false)
	if !ok {
		return nil, mismatch(self, v)
	}
	var out map[string]any
	for _, key := range sortedKeys(obj) {
		val := obj[key]
		res, err := d.item.Check(val, mode)
		if err != nil {
			return nil, fieldFailure(self, key, err)
		}
		out = writeThrough(out, obj, key, val, res)
	}
	if out != nil {
		return out, nil
	}
	return v, nil
}

func (d *dictionaryBody) label(seen visited) string {
	return "{ [key: string]: " + nameOf(d.item, seen) + " }"
}

type recordBody struct {
	keys []string
	item *Validator
}

// Record validates a fixed set of keys against item and ignores any others.
func Record(keys []string, item *Validator) *Validator {
	mustNode("Record", item)
	return newValidator(KindRecord, &recordBody{keys: append([]string(nil), keys...), item: item})
}

func (r *recordBody) check(self *Validator, v any, mode Mode) (any, error) {
	obj, ok := asObject(v, false)
	if !ok {
		return nil, mismatch(self, v)
	}
	var out map[string]any
	for _, key := range r.keys {
		val, present := obj[key]
		if !present {
			if optionalField(r.item) {
				continue
			}
			return nil, fieldFailure(self, key, missing(r.item))
		}
		res, err := r.item.Check(val, mode)
		if err != nil {
			return nil, fieldFailure(self, key, err)
		}
		out = writeThrough(out, obj, key, val, res)
	}
	if out != nil {
		return out, nil
	}
	return v, nil
}

func (r *recordBody) label(seen visited) string {
	return "Record<" + quoteKeys(r.keys) + ", " + nameOf(r.item, seen) + ">"
}

// writeThrough copies obj into out the first time a value changes.
func writeThrough(out, obj map[string]any, key string, in, res any) map[string]any {
	if out == nil {
		if same(res, in) {
			return nil
		}
		out = make(map[string]any, len(obj))
		for k, x := range obj {
			out[k] = x
		}
	}
	out[key] = res
	return out
}
