package shape

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Kind is the closed set of node variants.
type Kind uint8

const (
	KindPrimitive Kind = iota
	KindWrap
	KindObject
	KindArray
	KindDictionary
	KindRecord
	KindTuple
	KindUnion
	KindIntersection
	KindOptional
	KindRecursive
	KindAdapt
	KindClass
	KindFunc
	KindRefine
)

var kindNames = [...]string{
	KindPrimitive:    "primitive",
	KindWrap:         "wrap",
	KindObject:       "object",
	KindArray:        "array",
	KindDictionary:   "dictionary",
	KindRecord:       "record",
	KindTuple:        "tuple",
	KindUnion:        "union",
	KindIntersection: "intersection",
	KindOptional:     "optional",
	KindRecursive:    "recursive",
	KindAdapt:        "adapt",
	KindClass:        "class",
	KindFunc:         "func",
	KindRefine:       "refine",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Mode selects how object-shaped nodes treat undeclared keys.
type Mode uint8

const (
	// Loose ignores keys an object does not declare.
	Loose Mode = iota
	// Exact rejects keys an object does not declare.
	Exact
)

func (m Mode) String() string {
	if m == Exact {
		return "exact"
	}
	return "loose"
}

// UnmarshalText lets Mode be read from configuration.
func (m *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "loose", "":
		*m = Loose
	case "exact", "strict":
		*m = Exact
	default:
		return fmt.Errorf("invalid mode %q: must be \"loose\" or \"exact\"", text)
	}
	return nil
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Validator is an immutable node of a validation tree. The zero value is not
// usable; build nodes with the package constructors.
type Validator struct {
	kind Kind
	body body
	name atomic.Pointer[string]
}

// body is the sealed variant payload of a Validator.
type body interface {
	check(self *Validator, v any, mode Mode) (any, error)
	label(seen visited) string
}

// visited tracks recursive nodes already being named, so cyclic schemas print finitely.
type visited map[*recursiveBody]bool

func newValidator(kind Kind, b body) *Validator {
	return &Validator{kind: kind, body: b}
}

// Kind reports the variant of the node.
func (v *Validator) Kind() Kind {
	return v.kind
}

// Name returns the display name used in error messages.
func (v *Validator) Name() string {
	if p := v.name.Load(); p != nil {
		return *p
	}
	s := v.body.label(visited{})
	v.name.Store(&s)
	return s
}

func nameOf(v *Validator, seen visited) string {
	if p := v.name.Load(); p != nil {
		return *p
	}
	return v.body.label(seen)
}

func (v *Validator) String() string {
	return v.Name()
}

// Check validates value in the given mode and returns it, possibly converted.
func (v *Validator) Check(value any, mode Mode) (any, error) {
	return v.body.check(v, value, mode)
}

// Loose validates value ignoring undeclared object keys.
func (v *Validator) Loose(value any) (any, error) {
	return v.body.check(v, value, Loose)
}

// Exact validates value rejecting undeclared object keys anywhere in the tree.
func (v *Validator) Exact(value any) (any, error) {
	return v.body.check(v, value, Exact)
}

// Is reports whether value passes the validator in the given mode.
func (v *Validator) Is(value any, mode Mode) bool {
	_, err := v.body.check(v, value, mode)
	return err == nil
}

// Validate checks value using the configured default mode.
func Validate(v *Validator, value any) (any, error) {
	return v.Check(value, DefaultMode())
}

// Parse validates value and asserts the result to T.
func Parse[T any](v *Validator, value any, mode Mode) (T, error) {
	var zero T
	out, err := v.Check(value, mode)
	if err != nil {
		return zero, err
	}
	t, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s produced %T, not %T", ErrShapeMismatch, v.Name(), out, zero)
	}
	return t, nil
}

func mustNode(fn string, nodes ...*Validator) {
	for i, n := range nodes {
		if n == nil {
			panic(fmt.Sprintf("shape: %s: nil validator at position %d", fn, i))
		}
	}
}

// group parenthesizes composite names when they are embedded in another name.
func group(name string) string {
	if topLevelOperator(name) {
		return "(" + name + ")"
	}
	return name
}

// topLevelOperator reports whether name holds a | or & outside brackets and
// quoted literals.
func topLevelOperator(name string) bool {
	depth := 0
	quoted := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case quoted:
			if c == '\\' {
				i++
			} else if c == '"' {
				quoted = false
			}
		case c == '"':
			quoted = true
		case c == '(' || c == '[' || c == '{' || c == '<':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == '>':
			if i == 0 || name[i-1] != '=' {
				depth--
			}
		case (c == '|' || c == '&') && depth == 0:
			return true
		}
	}
	return false
}
