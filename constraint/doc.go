// Package constraint ties parameters together through symbolic
// expressions over user-chosen aliases.
//
// 🚀 What it does
//
// A refinement often needs one parameter to follow others: a cubic cell
// keeps b and c equal to a, site occupancies must sum to one, a profile
// width tracks an instrument constant. The Engine holds two tables:
//
//   - aliases      — short names bound to concrete parameters
//   - constraints  — "dependent = expression(aliases)" rules
//
// Expressions support float literals, alias identifiers, the four
// arithmetic operators, unary minus, and parentheses. They are parsed
// once when the constraint is declared; a malformed expression is
// rejected immediately rather than at fit time.
//
// ✨ Semantics
//
// Apply evaluates every rule in declaration order and writes the result
// into the dependent parameter, marking it constrained so the minimizer
// will not vary it independently. Rules are not reordered: a chain like
// "b = a" followed by "c = b" resolves in one pass only because it is
// declared in dependency order. A rule whose expression references an
// unknown alias is skipped with a warning; the remaining rules still
// run.
//
// ⚙️ Usage
//
//	eng := constraint.NewEngine()
//	eng.AddAlias("a", cell.LengthA)
//	eng.AddAlias("b", cell.LengthB)
//	if err := eng.AddConstraint("b", "a"); err != nil { ... }
//	eng.Apply()
package constraint
