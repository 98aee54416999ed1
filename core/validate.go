// Validators for the value model. A rule checks one candidate value and
// reports the outcome through package diag; it never panics and never
// mutates. The caller decides the fallback (previous value or default).
package core

import (
	"math"
	"regexp"

	"github.com/rietgo/rietgo/diag"
)

// NumberRule validates a numeric candidate for the named attribute.
// Check returns false when the candidate is rejected; the rule itself
// emits the diagnostic naming the offending value.
type NumberRule interface {
	Check(name string, v float64) bool
}

// StringRule validates a string candidate for the named attribute.
type StringRule interface {
	Check(name, v string) bool
}

// Range accepts numeric values within [Ge, Le], inclusive on both ends.
// The zero bounds are ±Inf (accept any finite value).
type Range struct {
	Ge, Le float64
}

// NewRange builds an inclusive range rule.
func NewRange(ge, le float64) Range {
	return Range{Ge: ge, Le: le}
}

// fullRange accepts any finite value; used as the Parameter default rule.
func fullRange() Range {
	return Range{Ge: math.Inf(-1), Le: math.Inf(1)}
}

// Check reports whether v lies in [Ge, Le]; rejections are logged with
// the allowed range.
func (r Range) Check(name string, v float64) bool {
	if v < r.Ge || v > r.Le {
		diag.RangeMismatch(name, v, r.Ge, r.Le)
		return false
	}
	diag.Validated(name, v, "range")

	return true
}

// Choice accepts only members of an allowed set. Allowed is a callback,
// not a snapshot: the legitimate set may change over the attribute's
// lifetime (e.g. Wyckoff letters follow the current space group).
type Choice struct {
	Allowed func() []string
}

// NewChoice builds a membership rule over a fixed set.
func NewChoice(allowed ...string) Choice {
	fixed := append([]string(nil), allowed...)

	return Choice{Allowed: func() []string { return fixed }}
}

// NewDynamicChoice builds a membership rule whose allowed set is
// recomputed on every check.
func NewDynamicChoice(allowed func() []string) Choice {
	return Choice{Allowed: allowed}
}

// Check reports whether v belongs to the current allowed set.
func (c Choice) Check(name, v string) bool {
	allowed := c.Allowed()
	for _, a := range allowed {
		if v == a {
			diag.Validated(name, v, "membership")
			return true
		}
	}
	diag.ChoiceMismatch(name, v, allowed)

	return false
}

// Pattern accepts strings fully matching a regular expression
// (identifier-safe labels and similar shape constraints).
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern compiles pattern into a shape rule. The pattern is anchored:
// the whole string must match.
func NewPattern(pattern string) Pattern {
	return Pattern{re: regexp.MustCompile("^(?:" + pattern + ")$")}
}

// Check reports whether v fully matches the pattern.
func (p Pattern) Check(name, v string) bool {
	if !p.re.MatchString(v) {
		diag.RegexMismatch(name, v, p.re.String())
		return false
	}
	diag.Validated(name, v, "regex")

	return true
}

// AllOf chains string rules; every rule must accept.
type AllOf []StringRule

// Check applies each rule in order, stopping at the first rejection.
func (rules AllOf) Check(name, v string) bool {
	for _, r := range rules {
		if !r.Check(name, v) {
			return false
		}
	}

	return true
}
