package mathexpr

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// sin sets z to the sine of x and returns z.
func sin(z, x *big.Float) *big.Float {
	return z.Set(series(x, z.Prec(), 1))
}

// cos sets z to the cosine of x and returns z.
func cos(z, x *big.Float) *big.Float {
	return z.Set(series(x, z.Prec(), 0))
}

// tan sets z to the tangent of x and returns z. Panics with a *DomainError if
// the cosine of x rounds to zero.
func tan(z, x *big.Float) *big.Float {
	s := series(x, z.Prec(), 1)
	c := series(x, z.Prec(), 0)
	if c.Sign() == 0 {
		panic(&DomainError{Func: "tan"})
	}
	return z.Quo(s, c)
}

// series evaluates the Taylor series of sine (first = 1) or cosine
// (first = 0) at x with prec bits of result precision.
func series(x *big.Float, prec uint, first int) *big.Float {
	if prec == 0 {
		prec = x.Prec()
	}
	wp := prec + 64
	if e := x.MantExp(nil); e > 0 {
		wp += uint(e)
	}
	r := reduce(x, wp)

	x2 := new(big.Float).SetPrec(wp).Mul(r, r)
	term := new(big.Float).SetPrec(wp).SetInt64(1)
	if first == 1 {
		term.Set(r)
	}
	sum := new(big.Float).SetPrec(wp).Set(term)
	k := new(big.Float).SetPrec(wp)
	for n := first + 1; term.Sign() != 0; n += 2 {
		// term *= -x² / (n (n+1))
		term.Mul(term, x2)
		term.Quo(term, k.SetInt64(int64(n)*int64(n+1)))
		term.Neg(term)
		if term.Sign() == 0 || term.MantExp(nil) < -int(wp) {
			break
		}
		sum.Add(sum, term)
	}
	return sum.SetPrec(prec)
}

// reduce returns x minus the multiple of 2π nearest to zero, so that the
// result lies in (-2π, 2π).
func reduce(x *big.Float, wp uint) *big.Float {
	twoPi := bigfloat.Pi(new(big.Float).SetPrec(wp))
	twoPi.Mul(twoPi, big.NewFloat(2))
	q := new(big.Float).SetPrec(wp).Quo(x, twoPi)
	n, _ := q.Int(nil)
	r := new(big.Float).SetPrec(wp).SetInt(n)
	r.Mul(r, twoPi)
	return r.Sub(x, r)
}
