package shape

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by errors.Is against a *ValidationError of the same kind.
var (
	// ErrShapeMismatch is returned when a value has the wrong runtime kind, length or literal value.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrFieldFailure is returned when a named field, key or index failed its own check.
	ErrFieldFailure = errors.New("field failure")

	// ErrExtraKey is returned when an exact-mode object sees an undeclared key.
	ErrExtraKey = errors.New("unexpected key")

	// ErrUnionExhausted is returned when no union member accepted the value.
	ErrUnionExhausted = errors.New("no union member matched")

	// ErrIntersectionUnmergeable marks a tuple intersected with an array or object.
	ErrIntersectionUnmergeable = errors.New("intersection cannot be merged")

	// ErrAdaptFailed is returned when neither the primary validator nor any adaptor accepted the value.
	ErrAdaptFailed = errors.New("value cannot be adapted")

	// ErrIllFormedRecursive is the panic value for a recursive schema whose supplier yields nothing.
	ErrIllFormedRecursive = errors.New("ill-formed recursive schema")
)

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	ShapeMismatch           ErrorKind = "shape_mismatch"
	FieldFailure            ErrorKind = "field_failure"
	ExtraKey                ErrorKind = "extra_key"
	UnionExhausted          ErrorKind = "union_exhausted"
	IntersectionUnmergeable ErrorKind = "intersection_unmergeable"
	AdaptFailed             ErrorKind = "adapt_failed"
)

func (k ErrorKind) sentinel() error {
	switch k {
	case ShapeMismatch:
		return ErrShapeMismatch
	case FieldFailure:
		return ErrFieldFailure
	case ExtraKey:
		return ErrExtraKey
	case UnionExhausted:
		return ErrUnionExhausted
	case IntersectionUnmergeable:
		return ErrIntersectionUnmergeable
	case AdaptFailed:
		return ErrAdaptFailed
	}
	return nil
}

// ValidationError describes a single failure with translation support.
// FieldFailure errors nest the child failure in Cause, so a chain of them
// spells out the path from the outermost node down to the leaf problem.
type ValidationError struct {
	Kind ErrorKind
	// Node is the display name of the validator that reported the failure.
	Node string
	// Key is the field name, dictionary key or decimal index for FieldFailure and ExtraKey.
	Key               string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
	Cause             error

	index bool
}

func (e *ValidationError) Error() string {
	if e.Kind != FieldFailure {
		return e.Message
	}
	msg := "invalid value"
	if leaf := e.Leaf(); leaf != nil {
		msg = leaf.Error()
	}
	return fmt.Sprintf("%s at %s: %s", e.Node, e.Location(), msg)
}

// Location renders the path as an accessor expression such as .items[2].name.
// It is empty when the failure is not below a field, key or index.
func (e *ValidationError) Location() string {
	chain, _ := e.chain()
	var b strings.Builder
	for _, step := range chain {
		if step.index {
			b.WriteString("[" + step.Key + "]")
		} else {
			b.WriteString("." + step.Key)
		}
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func (e *ValidationError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Path returns the keys and indexes leading from this error to the leaf failure.
func (e *ValidationError) Path() []string {
	chain, _ := e.chain()
	path := make([]string, 0, len(chain))
	for _, step := range chain {
		path = append(path, step.Key)
	}
	return path
}

// Leaf returns the innermost failure below any FieldFailure wrappers.
func (e *ValidationError) Leaf() error {
	_, leaf := e.chain()
	return leaf
}

func (e *ValidationError) chain() ([]*ValidationError, error) {
	var steps []*ValidationError
	var cur error = e
	for {
		ve, ok := cur.(*ValidationError)
		if !ok || ve.Kind != FieldFailure {
			return steps, cur
		}
		steps = append(steps, ve)
		cur = ve.Cause
	}
}

// ExtractValidationError returns the outermost *ValidationError in err's chain, or nil.
func ExtractValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationError(err) != nil
}

func mismatch(self *Validator, v any) *ValidationError {
	expected, actual := self.Name(), describe(v)
	return &ValidationError{
		Kind:           ShapeMismatch,
		Node:           expected,
		Message:        fmt.Sprintf("expected %s, got %s", expected, actual),
		TranslationKey: "validation.shape_mismatch",
		TranslationValues: map[string]any{
			"expected": expected,
			"actual":   actual,
		},
	}
}

func missing(field *Validator) *ValidationError {
	expected := field.Name()
	return &ValidationError{
		Kind:           ShapeMismatch,
		Node:           expected,
		Message:        fmt.Sprintf("expected %s, got nothing (field is required)", expected),
		TranslationKey: "validation.required",
		TranslationValues: map[string]any{
			"expected": expected,
		},
	}
}

func fieldFailure(self *Validator, key string, cause error) *ValidationError {
	node := self.Name()
	return &ValidationError{
		Kind:           FieldFailure,
		Node:           node,
		Key:            key,
		Message:        fmt.Sprintf("%s: field %q is invalid", node, key),
		TranslationKey: "validation.field",
		TranslationValues: map[string]any{
			"node":  node,
			"field": key,
		},
		Cause: cause,
	}
}

func indexFailure(self *Validator, index int, cause error) *ValidationError {
	err := fieldFailure(self, fmt.Sprint(index), cause)
	err.index = true
	err.Message = fmt.Sprintf("%s: element %d is invalid", err.Node, index)
	err.TranslationKey = "validation.element"
	err.TranslationValues["index"] = index
	return err
}

func extraKey(self *Validator, key string) *ValidationError {
	node := self.Name()
	return &ValidationError{
		Kind:           ExtraKey,
		Node:           node,
		Key:            key,
		Message:        fmt.Sprintf("unexpected key %q in %s", key, node),
		TranslationKey: "validation.extra_key",
		TranslationValues: map[string]any{
			"node":  node,
			"field": key,
		},
	}
}

// failure wraps an arbitrary error returned by caller code into a ShapeMismatch for self.
func failure(self *Validator, v any, cause error) *ValidationError {
	var ve *ValidationError
	if errors.As(cause, &ve) {
		return ve
	}
	err := mismatch(self, v)
	if cause != nil {
		err.Message = fmt.Sprintf("%s: %v", err.Message, cause)
		err.Cause = cause
	}
	return err
}
