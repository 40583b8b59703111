// Package celcheck builds shape validators from CEL expressions.
//
// The expression sees the input as the variable value and must evaluate
// to a bool:
//
//	adult := celcheck.MustNew("Adult", "value.age >= 18")
//	user := shape.Intersection(
//		shape.Object("User", shape.Fields{"age": shape.Int}),
//		adult,
//	)
//
// Programs are compiled once by New and are safe for concurrent use.
package celcheck
