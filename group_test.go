package mathexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstBalancedGroup(t *testing.T) {
	cases := []struct {
		name        string
		src         string
		open, close byte
		want        string
		col         int
	}{
		{"empty", "", '(', ')', "", 0},
		{"none", "abc", '(', ')', "abc", 0},
		{"simple", "(a)b", '(', ')', "(a)", 0},
		{"nested", "x(a(b)c)d(e)", '(', ')', "(a(b)c)", 0},
		{"square", "[1]+[2]", '[', ']', "[1]", 0},
		{"other-kind", "(a]", '(', ')', "(a]", 0},
		{"unclosed", "x(a", '(', ')', "x(a", 0},
		{"unclosed-inner", "(a(b)", '(', ')', "(a(b)", 0},
		{"extra-close-after", "(a))", '(', ')', "(a)", 0},
		{"close-first", ")(", '(', ')', "", 1},
		{"close-later", "a)(b)", '(', ')', "", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := FirstBalancedGroup(c.src, c.open, c.close)
			if c.col != 0 {
				require.Error(t, err)
				var e *Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, UnbalancedGroup, e.Kind)
				assert.Equal(t, c.col, e.Pos())
				assert.ErrorIs(t, err, UnbalancedGroup)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, g)
		})
	}
}

func TestIsGroup(t *testing.T) {
	assert.True(t, isGroup("()", '('))
	assert.True(t, isGroup("[x]", '['))
	assert.False(t, isGroup("(x", '('))
	assert.False(t, isGroup("(x]", '('))
	assert.False(t, isGroup("x", '('))
	assert.Panics(t, func() { closer('{') })
}
