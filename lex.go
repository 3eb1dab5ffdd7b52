package mathexpr

import (
	"strconv"
	"strings"
)

type lexToken struct {
	// text is the atom, operator, function name, or group contents.
	text string
	// arg is the argument text of a call.
	arg  string
	kind tokenKind
	// pos is the 1-based position of the token in the normalized expression.
	pos int
	// at is the 0-based offset of the contents of a group or call argument in
	// the normalized expression.
	at int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenAtom is a number or constant name.
	tokenAtom
	// tokenOp is a binary operator.
	tokenOp
	// tokenNeg is the unary minus marker.
	tokenNeg
	// tokenGroup is a parenthesized or bracketed subexpression.
	tokenGroup
	// tokenCall is a function name with its bracketed argument.
	tokenCall
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token
//go:generate go mod tidy

// Operators contains the bytes which are considered to be binary operators.
const Operators = "+-*/^"

// lexer scans a normalized expression one level deep: groups and call
// arguments are returned whole, for the parser to parse recursively.
type lexer struct {
	src   string
	i     int
	base  int
	names []string
	p     lexToken
}

func lex(src string, base int, names []string) *lexer {
	return &lexer{src: src, base: base, names: names}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("mathexpr: double push")
	}
	l.p = tok
}

// next scans the next token from the input. At the end of input, the result is
// an EOF token.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	tok := lexToken{pos: l.base + l.i + 1}
	if l.i >= len(l.src) {
		tok.kind = tokenEOF
		return tok, nil
	}
	switch c := l.src[l.i]; {
	case strings.IndexByte(Operators, c) >= 0:
		l.i++
		tok.text = string(c)
		tok.kind = tokenOp
	case c == negMarker:
		l.i++
		tok.text = string(c)
		tok.kind = tokenNeg
	case c == '(', c == '[':
		tok.at = l.base + l.i + 1
		g, err := l.group(c)
		if err != nil {
			return tok, err
		}
		tok.text = g
		tok.kind = tokenGroup
	case c == ')', c == ']':
		return tok, &Error{Kind: UnbalancedGroup, Col: tok.pos, Text: string(c), Msg: "close with no open"}
	default:
		if name := l.call(); name != "" {
			l.i += len(name)
			tok.at = l.base + l.i + 1
			g, err := l.group('[')
			if err != nil {
				return tok, err
			}
			tok.text = name
			tok.arg = g
			tok.kind = tokenCall
			return tok, nil
		}
		start := l.i
		l.i++
		for l.i < len(l.src) && !isDelim(l.src[l.i]) && l.call() == "" {
			l.i++
		}
		tok.text = l.src[start:l.i]
		tok.kind = tokenAtom
	}
	return tok, nil
}

// group scans the balanced group starting at the current position and returns
// its contents.
func (l *lexer) group(open byte) (string, error) {
	g, err := FirstBalancedGroup(l.src[l.i:], open, closer(open))
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Col += l.base + l.i
		}
		return "", err
	}
	if !isGroup(g, open) {
		return "", &Error{Kind: MismatchedGroups, Col: l.base + l.i + 1, Text: string(open), Msg: "open with no close"}
	}
	l.i += len(g)
	return g[1 : len(g)-1], nil
}

// call returns the name of the registered function whose call begins at the
// current position, or the empty string if there is none.
func (l *lexer) call() string {
	rest := l.src[l.i:]
	for _, name := range l.names {
		if len(rest) > len(name) && rest[len(name)] == '[' && strings.HasPrefix(rest, name) {
			return name
		}
	}
	return ""
}

// isDelim reports whether c ends an atom.
func isDelim(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '^', negMarker, '(', ')', '[', ']':
		return true
	}
	return false
}
