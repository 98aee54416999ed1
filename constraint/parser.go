// Expression tokenizer and recursive-descent parser. The grammar is
// deliberately small:
//
//	expr   := term   (("+" | "-") term)*
//	term   := factor (("*" | "/") factor)*
//	factor := "-" factor | number | ident | "(" expr ")"
package constraint

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// env resolves an alias to its current numeric value.
type env func(alias string) (float64, bool)

// expr is one parsed expression node.
type expr interface {
	// eval computes the node's value against the alias environment.
	eval(env) (float64, error)
}

type literal struct{ v float64 }

func (l literal) eval(env) (float64, error) { return l.v, nil }

type ref struct{ alias string }

func (r ref) eval(e env) (float64, error) {
	v, ok := e(r.alias)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlias, r.alias)
	}

	return v, nil
}

type unary struct{ operand expr }

func (u unary) eval(e env) (float64, error) {
	v, err := u.operand.eval(e)
	if err != nil {
		return 0, err
	}

	return -v, nil
}

type binary struct {
	op          byte
	left, right expr
}

func (b binary) eval(e env) (float64, error) {
	l, err := b.left.eval(e)
	if err != nil {
		return 0, err
	}
	r, err := b.right.eval(e)
	if err != nil {
		return 0, err
	}
	switch b.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return math.NaN(), nil
		}

		return l / r, nil
	}

	return 0, fmt.Errorf("%w: operator %q", ErrParse, string(b.op))
}

// refs collects every alias the expression mentions, in first-use order.
func refsOf(e expr) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(expr)
	walk = func(e expr) {
		switch n := e.(type) {
		case ref:
			if !seen[n.alias] {
				seen[n.alias] = true
				out = append(out, n.alias)
			}
		case unary:
			walk(n.operand)
		case binary:
			walk(n.left)
			walk(n.right)
		}
	}
	walk(e)

	return out
}

// ─────────────────────────── tokenizer ──────────────────────────────

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp    // + - * /
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := rune(src[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			toks = append(toks, token{tokOp, string(c), i})
			i++
		case unicode.IsDigit(c) || c == '.':
			j := i
			for j < len(src) && (isDigitByte(src[j]) || src[j] == '.' || src[j] == 'e' || src[j] == 'E') {
				// Exponent sign, e.g. "1e-3".
				if (src[j] == 'e' || src[j] == 'E') && j+1 < len(src) && (src[j+1] == '+' || src[j+1] == '-') {
					j++
				}
				j++
			}
			toks = append(toks, token{tokNumber, src[i:j], i})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(src) && isIdentByte(src[j]) {
				j++
			}
			toks = append(toks, token{tokIdent, src[i:j], i})
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected character %q at offset %d", ErrParse, string(c), i)
		}
	}
	toks = append(toks, token{tokEOF, "", len(src)})

	return toks, nil
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

func isIdentByte(b byte) bool {
	return isDigitByte(b) || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// ─────────────────────────── parser ─────────────────────────────────

type parser struct {
	toks []token
	pos  int
}

// parse compiles src into an expression tree.
func parse(src string) (expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrParse)
	}
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrParse, t.text, t.pos)
	}

	return e, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}

	return t
}

func (p *parser) parseExpr() (expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binary{op: t.text[0], left: left, right: right}
	}
}

func (p *parser) parseTerm() (expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "*" && t.text != "/") {
			return left, nil
		}
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = binary{op: t.text[0], left: left, right: right}
	}
}

func (p *parser) parseFactor() (expr, error) {
	t := p.next()
	switch t.kind {
	case tokOp:
		if t.text == "-" {
			operand, err := p.parseFactor()
			if err != nil {
				return nil, err
			}

			return unary{operand: operand}, nil
		}

		return nil, fmt.Errorf("%w: unexpected operator %q at offset %d", ErrParse, t.text, t.pos)
	case tokNumber:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q at offset %d", ErrParse, t.text, t.pos)
		}

		return literal{v: v}, nil
	case tokIdent:
		return ref{alias: t.text}, nil
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("%w: missing closing parenthesis at offset %d", ErrParse, closing.pos)
		}

		return inner, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrParse)
	}

	return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrParse, t.text, t.pos)
}
