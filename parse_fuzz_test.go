//go:build go1.18
// +build go1.18

package mathexpr_test

import (
	"testing"

	"github.com/zephyrtronium/mathexpr"
)

func FuzzParse(f *testing.F) {
	f.Add("2+3*4")
	f.Add("sin(1+sin(0)-1)")
	f.Add("(1)(2)[3]")
	f.Add(")(")
	f.Fuzz(func(t *testing.T, s string) {
		e, err := mathexpr.Parse(s)
		if err != nil {
			if _, ok := err.(mathexpr.InputError); !ok {
				t.Errorf("%q: error %v is not an InputError", s, err)
			}
			return
		}
		n := mathexpr.Normalize(s)
		if m := mathexpr.Normalize(n); m != n {
			t.Errorf("%q: normalized %q renormalized to %q", s, n, m)
		}
		if e.String() == "" {
			t.Errorf("%q: empty rendering", s)
		}
	})
}
