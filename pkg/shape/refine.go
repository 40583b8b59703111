package shape

import "strings"

// refineBody runs base and then checks its output against every constraint.
type refineBody struct {
	base   *Validator
	checks []*Validator
}

// Refine narrows base with constraint validators. The value is validated by
// base first, the constraints see base's output, and that output is the
// result. Constraint outputs are discarded. Without constraints base is
// returned as is.
func Refine(base *Validator, checks ...*Validator) *Validator {
	mustNode("Refine", base)
	mustNode("Refine", checks...)
	if len(checks) == 0 {
		return base
	}
	if r, ok := base.body.(*refineBody); ok {
		return newValidator(KindRefine, &refineBody{
			base:   r.base,
			checks: append(append([]*Validator(nil), r.checks...), checks...),
		})
	}
	return newValidator(KindRefine, &refineBody{
		base:   base,
		checks: append([]*Validator(nil), checks...),
	})
}

func (r *refineBody) check(_ *Validator, v any, mode Mode) (any, error) {
	out, err := r.base.Check(v, mode)
	if err != nil {
		return nil, err
	}
	for _, c := range r.checks {
		if _, err := c.Check(out, mode); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *refineBody) label(seen visited) string {
	parts := make([]string, 0, len(r.checks)+1)
	parts = append(parts, group(nameOf(r.base, seen)))
	for _, c := range r.checks {
		parts = append(parts, group(nameOf(c, seen)))
	}
	return strings.Join(parts, " & ")
}
