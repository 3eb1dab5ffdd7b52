package mathexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
	}{
		{"", nil},
		{"0", []lexToken{{text: "0", kind: tokenAtom, pos: 1}}},
		{"12.5", []lexToken{{text: "12.5", kind: tokenAtom, pos: 1}}},
		{"1+2", []lexToken{{text: "1", kind: tokenAtom, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "2", kind: tokenAtom, pos: 3}}},
		{"2*#3", []lexToken{{text: "2", kind: tokenAtom, pos: 1}, {text: "*", kind: tokenOp, pos: 2}, {text: "#", kind: tokenNeg, pos: 3}, {text: "3", kind: tokenAtom, pos: 4}}},
		{"$3", []lexToken{{text: "$3", kind: tokenAtom, pos: 1}}},
		{"PI^2", []lexToken{{text: "PI", kind: tokenAtom, pos: 1}, {text: "^", kind: tokenOp, pos: 3}, {text: "2", kind: tokenAtom, pos: 4}}},
		// groups
		{"(1+2)*3", []lexToken{{text: "1+2", kind: tokenGroup, pos: 1, at: 1}, {text: "*", kind: tokenOp, pos: 6}, {text: "3", kind: tokenAtom, pos: 7}}},
		{"[(1)]", []lexToken{{text: "(1)", kind: tokenGroup, pos: 1, at: 1}}},
		{"(1)*(2)", []lexToken{{text: "1", kind: tokenGroup, pos: 1, at: 1}, {text: "*", kind: tokenOp, pos: 4}, {text: "2", kind: tokenGroup, pos: 5, at: 5}}},
		// calls
		{"sin[0]", []lexToken{{text: "sin", arg: "0", kind: tokenCall, pos: 1, at: 4}}},
		{"2sin[0]", []lexToken{{text: "2", kind: tokenAtom, pos: 1}, {text: "sin", arg: "0", kind: tokenCall, pos: 2, at: 5}}},
		{"asin[0]", []lexToken{{text: "a", kind: tokenAtom, pos: 1}, {text: "sin", arg: "0", kind: tokenCall, pos: 2, at: 5}}},
		{"sqrt[abs[4]]", []lexToken{{text: "sqrt", arg: "abs[4]", kind: tokenCall, pos: 1, at: 5}}},
		{"sin", []lexToken{{text: "sin", kind: tokenAtom, pos: 1}}},
		{"sin(0)", []lexToken{{text: "sin", kind: tokenAtom, pos: 1}, {text: "0", kind: tokenGroup, pos: 4, at: 4}}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			scan := lex(c.src, 0, globalnames)
			for _, want := range c.tokens {
				got, err := scan.next()
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			end, err := scan.next()
			require.NoError(t, err)
			assert.Equal(t, tokenEOF, end.kind, "extra token %v", end)
		})
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind ErrorKind
		col  int
	}{
		{")", UnbalancedGroup, 1},
		{"]", UnbalancedGroup, 1},
		{"(1", MismatchedGroups, 1},
		{"sin[0", MismatchedGroups, 4},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := lex(c.src, 0, globalnames).next()
			require.Error(t, err)
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, c.kind, e.Kind)
			assert.Equal(t, c.col, e.Pos())
		})
	}
}

func TestLexPush(t *testing.T) {
	scan := lex("1+2", 0, nil)
	tok, err := scan.next()
	require.NoError(t, err)
	scan.push(tok)
	assert.Panics(t, func() { scan.push(tok) })
	again, err := scan.next()
	require.NoError(t, err)
	assert.Equal(t, tok, again)
}

func TestLexBase(t *testing.T) {
	// Positions in nested groups refer to the whole expression.
	scan := lex("2+)", 10, nil)
	for i := 0; i < 2; i++ {
		_, err := scan.next()
		require.NoError(t, err)
	}
	_, err := scan.next()
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 13, e.Col)
}
