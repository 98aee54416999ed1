package constraint

import (
	"errors"
	"fmt"

	"github.com/rietgo/rietgo/core"
	"github.com/rietgo/rietgo/diag"
)

// Sentinel errors of the constraint engine.
var (
	// ErrParse indicates a malformed constraint expression.
	ErrParse = errors.New("constraint: parse error")

	// ErrUnknownAlias indicates an expression references an alias that
	// is not bound to a parameter.
	ErrUnknownAlias = errors.New("constraint: unknown alias")
)

// Constraint is one declared dependency rule.
type Constraint struct {
	// Dependent is the alias of the driven parameter.
	Dependent string

	// Expression is the raw right-hand side as declared.
	Expression string

	compiled expr
}

// Engine binds aliases to parameters and applies dependency rules.
// Not safe for concurrent use.
type Engine struct {
	aliases     map[string]*core.Parameter
	aliasOrder  []string
	constraints []*Constraint
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{aliases: make(map[string]*core.Parameter)}
}

// AddAlias binds alias to p. Rebinding an alias to a different
// parameter is refused with a warning so declared rules keep their
// original meaning; rebinding to the same parameter is a no-op.
func (e *Engine) AddAlias(alias string, p *core.Parameter) {
	if alias == "" || p == nil {
		diag.L().Warn().Str("alias", alias).Msg("empty alias or nil parameter ignored")

		return
	}
	if prev, ok := e.aliases[alias]; ok {
		if prev != p {
			diag.L().Warn().
				Str("alias", alias).
				Str("bound_to", prev.UniqueName()).
				Str("rejected", p.UniqueName()).
				Msg("alias already bound, rebinding refused")
		}

		return
	}
	e.aliases[alias] = p
	e.aliasOrder = append(e.aliasOrder, alias)
}

// Aliases lists the bound aliases in declaration order.
func (e *Engine) Aliases() []string {
	out := make([]string, len(e.aliasOrder))
	copy(out, e.aliasOrder)

	return out
}

// Resolve returns the parameter bound to alias.
func (e *Engine) Resolve(alias string) (*core.Parameter, bool) {
	p, ok := e.aliases[alias]

	return p, ok
}

// AddConstraint declares "dependent = expression". The expression is
// compiled immediately and a malformed one is rejected here. The
// dependent alias must already be bound; the expression may reference
// aliases bound later. The dependent parameter is marked constrained at
// once, so it drops out of the fittable set even before the first
// Apply.
func (e *Engine) AddConstraint(dependent, expression string) error {
	p, ok := e.aliases[dependent]
	if !ok {
		return fmt.Errorf("%w: dependent %q", ErrUnknownAlias, dependent)
	}
	compiled, err := parse(expression)
	if err != nil {
		return err
	}

	for _, alias := range refsOf(compiled) {
		if _, bound := e.aliases[alias]; !bound {
			diag.L().Debug().
				Str("alias", alias).
				Str("dependent", dependent).
				Msg("expression references an alias not bound yet")
		}
	}

	e.constraints = append(e.constraints, &Constraint{
		Dependent:  dependent,
		Expression: expression,
		compiled:   compiled,
	})
	p.SetConstrained(true)

	return nil
}

// Constraints lists the declared rules in declaration order.
func (e *Engine) Constraints() []*Constraint {
	out := make([]*Constraint, len(e.constraints))
	copy(out, e.constraints)

	return out
}

// Apply evaluates every rule in declaration order and writes the
// results into the dependent parameters. Chains resolve in one pass
// only when declared in dependency order; rules are never reordered.
// A rule touching an unknown alias is skipped with a warning and the
// remaining rules still run.
func (e *Engine) Apply() {
	lookup := func(alias string) (float64, bool) {
		p, ok := e.aliases[alias]
		if !ok {
			return 0, false
		}

		return p.Value(), true
	}

	for _, c := range e.constraints {
		p, ok := e.aliases[c.Dependent]
		if !ok {
			diag.L().Warn().
				Str("dependent", c.Dependent).
				Msg("constraint skipped, dependent alias unbound")

			continue
		}
		v, err := c.compiled.eval(lookup)
		if err != nil {
			diag.L().Warn().
				Err(err).
				Str("dependent", c.Dependent).
				Str("expression", c.Expression).
				Msg("constraint skipped")

			continue
		}
		p.SetValue(v)
		p.SetConstrained(true)
	}
}

// Summary renders the alias and constraint tables as plain text.
func (e *Engine) Summary() string {
	out := ""
	for _, a := range e.aliasOrder {
		out += fmt.Sprintf("%s = %s\n", a, e.aliases[a].UniqueName())
	}
	for _, c := range e.constraints {
		out += fmt.Sprintf("%s = %s\n", c.Dependent, c.Expression)
	}

	return out
}
