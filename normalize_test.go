package mathexpr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zephyrtronium/mathexpr"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []mathexpr.ParseOption
		want string
	}{
		{"empty", "", nil, ""},
		{"space", " 1 +\t2\n", nil, "1+2"},
		{"plus-run", "1 +++ 2", nil, "1+2"},
		{"double-minus", "1--2", nil, "1+2"},
		{"triple-minus", "1---2", nil, "1-2"},
		{"group-double-minus", "(2)--(3)", nil, "(2)+(3)"},
		{"star-run", "2**3", nil, "2*3"},
		{"slash-run", "8//2", nil, "8/2"},
		{"plus-minus", "1+-2", nil, "1-2"},
		{"minus-plus", "1-+2", nil, "1-2"},
		{"mul-plus", "2*+3", nil, "2*3"},
		{"div-plus", "8/+2", nil, "8/2"},
		{"pow-plus", "2^+3", nil, "2^3"},
		{"mul-minus", "2*-3", nil, "2*#3"},
		{"spaced-mul-minus", "2 * - 3", nil, "2*#3"},
		{"div-minus", "2/-3", nil, "2/#3"},
		{"pow-minus", "2^-3", nil, "2^#3"},
		{"mul-minus-minus", "2*--3", nil, "2*3"},
		{"adjacent", "(1)(2)", nil, "(1)*(2)"},
		{"adjacent-chain", "(1)(2)(3)", nil, "(1)*(2)*(3)"},
		{"call", "sin(0)", nil, "sin[0]"},
		{"nested-call", "sin(1+sin(0)-1)", nil, "sin[1+sin[0]-1]"},
		{"group-call", "(1 + sin(1+sin(0)-1) - 1)", nil, "(1+sin[1+sin[0]-1]-1)"},
		{"mul-group-call", "2*(1 + sin(1+sin(0)-1) - 1)", nil, "2*(1+sin[1+sin[0]-1]-1)"},
		{"call-in-call", "sin(cos(0))", nil, "sin[cos[0]]"},
		{"two-calls", "abs(-2)*sqrt(4)", nil, "abs[-2]*sqrt[4]"},
		{"neg-call", "2*-sin(0)", nil, "2*#sin[0]"},
		{"unclosed-call", "sin(2", nil, "sin(2"},
		{"unregistered", "foo(1)", nil, "foo(1)"},
		{"near-name", "sinh(1)", nil, "sinh(1)"},
		{"disabled", "sin(0)", []mathexpr.ParseOption{mathexpr.DisableDefaultFuncs()}, "sin(0)"},
		{"custom", "double(2)", []mathexpr.ParseOption{mathexpr.ParseFunc("double", double{})}, "double[2]"},
		{"scientific", "log(ln(1))", []mathexpr.ParseOption{mathexpr.ParseFuncs(mathexpr.ScientificFuncs())}, "log[ln[1]]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, mathexpr.Normalize(c.src, c.opts...))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	srcs := []string{
		"",
		"1 - - - - 2",
		"2 * - - 3",
		"((1))((2))",
		"sin(sin(sin(0)))",
		"2*(1 + sin(1+sin(0)-1) - 1)",
		"1 ++-- 2 //-- 3 **+- 4",
		"x)(y",
		"sqrt(abs(-(4)))^-+2",
		"(sin(0)",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			once := mathexpr.Normalize(src)
			assert.Equal(t, once, mathexpr.Normalize(once))
		})
	}
}
