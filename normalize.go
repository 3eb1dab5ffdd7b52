package mathexpr

import (
	"strings"
)

// Sentinel markers. negMarker stands for a unary minus that binds looser than
// exponentiation, so #2^2 is -(2^2). litMarker is the sign of a literal, so
// $2^2 is (-2)^2.
const (
	negMarker = '#'
	litMarker = '$'
)

var (
	signfold = strings.NewReplacer("+-", "-", "-+", "-")
	implicit = strings.NewReplacer(")(", ")*(", "/+", "/", "*+", "*", "^+", "^")
	unaryneg = strings.NewReplacer("*-", "*#", "/-", "/#", "^-", "^#")
)

// Normalize rewrites an expression into the canonical form that Parse reads:
// no whitespace, no runs of +, *, or /, no redundant signs, an explicit *
// between adjacent groups, every call of a registered function in the form
// name[arg], and every minus sign that directly follows *, /, or ^ replaced
// by the marker #. The rewrites repeat until the string stops changing, so
// Normalize(Normalize(s)) == Normalize(s). The function registry is taken
// from opts.
func Normalize(src string, opts ...ParseOption) string {
	p := newctx(opts)
	return p.normalize(src)
}

func (p *parsectx) normalize(s string) string {
	for {
		r := p.rewrite(s)
		if r == s {
			return r
		}
		s = r
	}
}

// rewrite applies one pass of the normalization rules.
func (p *parsectx) rewrite(s string) string {
	s = strings.Join(strings.Fields(s), "")
	s = collapse(s, '+')
	s = strings.ReplaceAll(s, "--", "+")
	s = collapse(s, '/')
	s = collapse(s, '*')
	s = signfold.Replace(s)
	s = implicit.Replace(s)
	for _, name := range p.names {
		s = bracketCall(s, name)
	}
	return unaryneg.Replace(s)
}

// collapse replaces each run of c in s with a single c.
func collapse(s string, c byte) string {
	if !strings.Contains(s, string([]byte{c, c})) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == c && i > 0 && s[i-1] == c {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// bracketCall rewrites the first name(arg) in s as name[arg]. If the
// parenthesis after name does not close, s is returned unchanged.
func bracketCall(s, name string) string {
	k := strings.Index(s, name+"(")
	if k < 0 {
		return s
	}
	k += len(name)
	g, err := FirstBalancedGroup(s[k:], '(', ')')
	if err != nil || !isGroup(g, '(') {
		return s
	}
	return s[:k] + "[" + g[1:len(g)-1] + "]" + s[k+len(g):]
}
