// Package rules provides value constraints that refine a structural shape.
//
// Every rule is a *shape.Validator that accepts its input unchanged when the
// constraint holds and fails with a translatable *shape.ValidationError
// otherwise. Rules do not check structure on their own, so they are combined
// with a base validator that runs first:
//
//	username := rules.Refine(shape.String, rules.MinLen(3), rules.MaxLen(32), rules.Alphanumeric())
//	age := rules.Refine(shape.Int, rules.Between(0, 150))
//
// Rule errors carry translation keys under the validation namespace
// (validation.min_length, validation.max, validation.email and so on) that
// the bundled i18n catalogs render.
//
// A rule handed a value it cannot measure, such as MinLen on a number, fails
// with ErrNotApplicable instead of passing silently.
package rules
