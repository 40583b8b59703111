package celcheck

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/dmitrymomot/shapekit/pkg/shape"
)

// Variable is the name the input is bound to inside expressions.
const Variable = "value"

// New compiles expr into a validator named name. Extra environment options,
// such as additional variables or function libraries, are appended to the
// default environment.
func New(name, expr string, opts ...cel.EnvOption) (*shape.Validator, error) {
	if name == "" {
		name = expr
	}

	env, err := cel.NewEnv(append([]cel.EnvOption{cel.Variable(Variable, cel.DynType)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrCompile, expr, iss.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("%w: %q has type %s", ErrNotBoolean, expr, out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}

	return shape.Wrap(name, func(v any) (any, error) {
		if v == shape.Undefined {
			return nil, fmt.Errorf("%w: undefined", ErrEvaluation)
		}
		out, _, err := prg.Eval(map[string]any{Variable: v})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEvaluation, err)
		}
		ok, isBool := out.Value().(bool)
		if !isBool {
			return nil, fmt.Errorf("%w: got %T", ErrNotBoolean, out.Value())
		}
		if !ok {
			return nil, &shape.ValidationError{
				Kind:           shape.ShapeMismatch,
				Node:           name,
				Message:        fmt.Sprintf("value does not satisfy %s", name),
				TranslationKey: "validation.predicate",
				TranslationValues: map[string]any{
					"node": name,
					"rule": expr,
				},
			}
		}
		return v, nil
	}), nil
}

// MustNew is like New but panics if the expression cannot be compiled.
func MustNew(name, expr string, opts ...cel.EnvOption) *shape.Validator {
	v, err := New(name, expr, opts...)
	if err != nil {
		panic(err)
	}
	return v
}
