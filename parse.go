package mathexpr

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/plan-systems/klog"
)

// sum   = diff { "+" diff }
// diff  = prod { "-" prod }
// prod  = quot { ("*" | implicit) quot }
// quot  = unary { "/" unary }
// unary = "#" unary | power
// power = primary [ "^" unary ]
// primary = atom | "(" sum ")" | "[" sum "]" | func "[" sum "]"
//
// Any operand may be empty. Empty operands are zero, except that trailing
// empty operands are dropped. Implicit multiplication joins a group, call, or
// atom to a following group, call, or atom.

// Expr is a parsed expression. It is immutable and safe for concurrent use.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// prec is the precision for inexact operations.
	prec uint32
}

// Parse parses an expression. The given options are applied in order.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	p := newctx(opts)
	s := p.normalize(src)
	klog.V(4).Infof("mathexpr: normalized %q to %q", src, s)
	n, err := p.parse(s, 0)
	if err != nil {
		return nil, err
	}
	return &Expr{n: n, prec: p.prec}, nil
}

// parse parses a normalized expression. base is the offset of s in the
// top-level expression, for error positions.
func (p *parsectx) parse(s string, base int) (*node, error) {
	if strings.Count(s, "(") != strings.Count(s, ")") || strings.Count(s, "[") != strings.Count(s, "]") {
		return nil, &Error{Kind: MismatchedGroups, Col: base + 1, Text: s}
	}
	for _, e := range [...]string{"()", "[]"} {
		if k := strings.Index(s, e); k >= 0 {
			return nil, &Error{Kind: EmptyGroup, Col: base + k + 1, Text: e}
		}
	}
	ps := parser{lex: lex(s, base, p.names), p: p}
	n, err := ps.sum()
	if err != nil {
		return nil, err
	}
	tok, err := ps.lex.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenEOF {
		return nil, &Error{Kind: NumericParseFailure, Col: tok.pos, Text: tok.text, Msg: "unexpected"}
	}
	if n == nil {
		return zero(), nil
	}
	return n, nil
}

type parser struct {
	lex *lexer
	p   *parsectx
}

func (ps *parser) sum() (*node, error) {
	return ps.nary("+", nodeAdd, ps.diff, false)
}

func (ps *parser) diff() (*node, error) {
	return ps.nary("-", nodeSub, ps.prod, false)
}

func (ps *parser) prod() (*node, error) {
	return ps.nary("*", nodeMul, ps.quot, true)
}

func (ps *parser) quot() (*node, error) {
	return ps.nary("/", nodeDiv, ps.unary, false)
}

// nary parses a list of operands separated by op. If implicit is true, an
// operand followed directly by the start of another term is also a
// separator.
func (ps *parser) nary(op string, kind nodeKind, operand func() (*node, error), implicit bool) (*node, error) {
	var args []*node
	for {
		n, err := operand()
		if err != nil {
			return nil, err
		}
		args = append(args, n)
		tok, err := ps.lex.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenOp && tok.text == op {
			continue
		}
		ps.lex.push(tok)
		if implicit && n != nil && startsTerm(tok) {
			continue
		}
		return join(kind, args), nil
	}
}

func startsTerm(tok lexToken) bool {
	switch tok.kind {
	case tokenAtom, tokenGroup, tokenCall:
		return true
	}
	return false
}

func (ps *parser) unary() (*node, error) {
	tok, err := ps.lex.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenNeg {
		ps.lex.push(tok)
		return ps.power()
	}
	n, err := ps.unary()
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, &Error{Kind: NumericParseFailure, Col: tok.pos, Text: "-", Msg: "sign with no operand"}
	}
	return negate(n), nil
}

// power parses an exponentiation. The exponent is parsed with unary, which
// calls power again, so chains associate to the right.
func (ps *parser) power() (*node, error) {
	base, err := ps.primary()
	if err != nil {
		return nil, err
	}
	tok, err := ps.lex.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOp || tok.text != "^" {
		ps.lex.push(tok)
		return base, nil
	}
	exp, err := ps.unary()
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return base, nil
	}
	if base == nil {
		base = zero()
	}
	return &node{kind: nodePow, args: []*node{base, exp}}, nil
}

// primary parses an atom, group, or call. If the next token is none of
// those, the result is nil with no error.
func (ps *parser) primary() (*node, error) {
	tok, err := ps.lex.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenAtom:
		return ps.p.literal(tok)
	case tokenGroup:
		return ps.p.parse(tok.text, tok.at)
	case tokenCall:
		fn := ps.p.funcs[tok.text]
		if fn == nil {
			return nil, &Error{Kind: UnknownFunction, Col: tok.pos, Text: tok.text}
		}
		arg, err := ps.p.parse(tok.arg, tok.at)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, name: tok.text, fn: fn, args: []*node{arg}}, nil
	default:
		ps.lex.push(tok)
		return nil, nil
	}
}

// literal resolves an atom as a constant or a decimal number. The marker $
// is a minus sign.
func (p *parsectx) literal(tok lexToken) (*node, error) {
	name := strings.ToUpper(tok.text)
	if v := p.consts[name]; v != nil {
		return &node{kind: nodeNum, name: name, val: v}, nil
	}
	d, _, err := apd.NewFromString(strings.ReplaceAll(tok.text, string(litMarker), "-"))
	if err != nil {
		return nil, &Error{Kind: NumericParseFailure, Col: tok.pos, Text: tok.text, Err: err}
	}
	if d.Form != apd.Finite {
		return nil, &Error{Kind: NumericParseFailure, Col: tok.pos, Text: tok.text, Msg: "non-finite number"}
	}
	return &node{kind: nodeNum, name: Plain(d), val: d}, nil
}
