package mathexpr

import (
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from decimals to decimals. The function must set r to
// its result and should not use the value of r otherwise. ctx carries the
// precision to which the result should be computed; functions must not modify
// it. Implementations must be safe for concurrent use.
type Func interface {
	Call(ctx *apd.Context, r, x *apd.Decimal) error
}

// globalfuncs is the default function registry. It is never modified.
var globalfuncs = map[string]Func{
	"sin":  Monadic(sin),
	"cos":  Monadic(cos),
	"tan":  Monadic(tan),
	"abs":  Contextual((*apd.Context).Abs),
	"sqrt": Monadic((*big.Float).Sqrt),
}

// scifuncs holds the functions ScientificFuncs adds to the defaults.
var scifuncs = map[string]Func{
	"exp": Monadic(bigfloat.Exp),
	"ln":  Monadic(ln),
	"log": Monadic(log10),
}

// ln sets out to the natural logarithm of in. Panics with a *DomainError if in
// is not positive.
func ln(out, in *big.Float) *big.Float {
	if in.Sign() <= 0 {
		panic(&DomainError{Func: "ln"})
	}
	return bigfloat.Log(out, in)
}

func log10(out, in *big.Float) *big.Float {
	if in.Sign() <= 0 {
		panic(&DomainError{Func: "log"})
	}
	bigfloat.Log(out, in)
	in.SetFloat64(10).SetPrec(out.Prec())
	bigfloat.Log(in, in)
	return out.Quo(out, in)
}

// DefaultFuncs returns a copy of the default function registry: sin, cos,
// tan, abs, and sqrt.
func DefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k, v := range globalfuncs {
		m[k] = v
	}
	return m
}

// ScientificFuncs returns the default functions plus exp, ln, and log (base
// 10). Use it with ParseFuncs.
func ScientificFuncs() map[string]Func {
	m := DefaultFuncs()
	for k, v := range scifuncs {
		m[k] = v
	}
	return m
}

// DefaultPrec is the default number of significant digits to which inexact
// results are rounded.
const DefaultPrec = 34

// globalconsts is the default constant registry. It is never modified.
var globalconsts = map[string]*apd.Decimal{
	"PI": piDecimal(DefaultPrec),
}

// DefaultConsts returns a copy of the default constant registry, which holds
// PI to DefaultPrec significant digits.
func DefaultConsts() map[string]*apd.Decimal {
	m := make(map[string]*apd.Decimal, len(globalconsts))
	for k, v := range globalconsts {
		m[k] = v
	}
	return m
}

func piDecimal(prec uint32) *apd.Decimal {
	ctx := apd.BaseContext.WithPrecision(prec)
	pi := bigfloat.Pi(new(big.Float).SetPrec(precBits(prec)))
	var d apd.Decimal
	if err := setFloat(ctx, &d, pi); err != nil {
		panic(err)
	}
	return &d
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *apd.Context, r, x *apd.Decimal) (err error) {
	bits := precBits(ctx.Precision) + digitBits(x)
	in, ok := new(big.Float).SetPrec(bits).SetString(x.Text('e'))
	if !ok {
		return errors.Errorf("cannot convert %s to binary", x.Text('e'))
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		e, ok := p.(error)
		if !ok {
			panic(p)
		}
		var nan big.ErrNaN
		var dom *DomainError
		switch {
		case errors.As(e, &dom):
			if dom.X == "" {
				dom.X = Plain(x)
			}
			err = dom
		case errors.As(e, &nan):
			err = &DomainError{X: Plain(x)}
		default:
			panic(p)
		}
	}()
	out := new(big.Float).SetPrec(bits)
	m.f(out, in)
	return setFloat(ctx, r, out)
}

// Monadic wraps a function of one binary floating-point variable into a Func.
// The argument is converted with enough precision to hold all of its digits,
// and out has at least that precision. f must set out to its result, to the
// precision of out; its return value is always ignored. If f is called on an
// argument outside its domain, it should panic with an error of type
// big.ErrNaN or *DomainError, or that unwraps to one. A *DomainError with an
// empty X is filled in with the argument.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type contextual struct {
	f func(c *apd.Context, d, x *apd.Decimal) (apd.Condition, error)
}

func (c contextual) Call(ctx *apd.Context, r, x *apd.Decimal) error {
	_, err := c.f(ctx, r, x)
	return err
}

// Contextual wraps a decimal operation with the signature of the methods of
// apd.Context into a Func, e.g. Contextual((*apd.Context).Abs).
func Contextual(f func(c *apd.Context, d, x *apd.Decimal) (apd.Condition, error)) Func {
	return contextual{f}
}

// precBits is the number of bits of binary precision used to compute a result
// to prec significant decimal digits.
func precBits(prec uint32) uint {
	if prec == 0 {
		prec = DefaultPrec
	}
	return uint(math.Ceil(float64(prec)*math.Log2(10))) + 64
}

// digitBits is the number of bits needed for the integer coefficient of x,
// scaled by any positive exponent, so that converting x to binary with at
// least that much precision keeps every digit.
func digitBits(x *apd.Decimal) uint {
	nd := x.NumDigits()
	if x.Exponent > 0 {
		nd += int64(x.Exponent)
	}
	return uint(math.Ceil(float64(nd) * math.Log2(10)))
}

// setFloat sets d to f rounded to ctx.Precision significant digits.
func setFloat(ctx *apd.Context, d *apd.Decimal, f *big.Float) error {
	if f.IsInf() {
		return &DomainError{X: f.String()}
	}
	digits := int(ctx.Precision) - 1
	if ctx.Precision == 0 {
		digits = -1
	}
	_, _, err := d.SetString(f.Text('e', digits))
	return errors.Wrap(err, "converting binary result")
}
