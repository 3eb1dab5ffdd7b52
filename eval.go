package mathexpr

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/zephyrtronium/bigfloat"
)

// maxExactExp is the largest magnitude of an integer exponent that is
// computed exactly. Larger exponents are rounded to the expression's
// precision.
const maxExactExp = 4096

// exact is the context for operations that never round.
var exact = apd.BaseContext

// Eval evaluates the expression. Evaluation has no side effects, so repeated
// calls return equal results. The only possible errors are ArithmeticFailure.
func (e *Expr) Eval() (*apd.Decimal, error) {
	ctx := apd.BaseContext.WithPrecision(e.prec)
	r, err := e.n.eval(ctx)
	if err != nil {
		return nil, err
	}
	klog.V(5).Infof("mathexpr: %v = %s", e, r)
	return r, nil
}

// Prec returns the number of significant digits to which inexact results of
// the expression are rounded.
func (e *Expr) Prec() uint32 {
	return e.prec
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.n.String()
}

// eval computes the node's value into a new decimal.
func (n *node) eval(ctx *apd.Context) (*apd.Decimal, error) {
	switch n.kind {
	case nodeNum:
		return new(apd.Decimal).Set(n.val), nil
	case nodeCall:
		x, err := n.args[0].eval(ctx)
		if err != nil {
			return nil, err
		}
		r := new(apd.Decimal)
		if err := n.fn.Call(ctx, r, x); err != nil {
			var e *Error
			if errors.As(err, &e) {
				return nil, err
			}
			if dom, ok := err.(*DomainError); ok && dom.Func == "" {
				dom.Func = n.name
			}
			return nil, arith(n.name+"("+Plain(x)+")", err)
		}
		return r, nil
	case nodeNeg:
		x, err := n.args[0].eval(ctx)
		if err != nil {
			return nil, err
		}
		return x.Neg(x), nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		r, err := n.args[0].eval(ctx)
		if err != nil {
			return nil, err
		}
		var z apd.Decimal
		for _, a := range n.args[1:] {
			x, err := a.eval(ctx)
			if err != nil {
				return nil, err
			}
			switch n.kind {
			case nodeAdd:
				_, err = exact.Add(&z, r, x)
			case nodeSub:
				_, err = exact.Sub(&z, r, x)
			case nodeMul:
				_, err = exact.Mul(&z, r, x)
			case nodeDiv:
				_, err = ctx.Quo(&z, r, x)
			}
			if err != nil {
				return nil, arith(Plain(r)+opstr(n.kind)+Plain(x), err)
			}
			r.Set(&z)
		}
		return r, nil
	case nodePow:
		x, err := n.args[0].eval(ctx)
		if err != nil {
			return nil, err
		}
		y, err := n.args[1].eval(ctx)
		if err != nil {
			return nil, err
		}
		r := new(apd.Decimal)
		if err := pow(ctx, r, x, y); err != nil {
			return nil, arith(Plain(x)+" ^ "+Plain(y), err)
		}
		return r, nil
	default:
		panic("mathexpr: invalid tree node " + n.kind.String())
	}
}

func opstr(k nodeKind) string {
	switch k {
	case nodeAdd:
		return " + "
	case nodeSub:
		return " - "
	case nodeMul:
		return " * "
	case nodeDiv:
		return " / "
	case nodePow:
		return " ^ "
	default:
		return " ? "
	}
}

// pow sets r to x^y. Integer exponents up to maxExactExp in magnitude use
// exact multiplication; other exponents are rounded to ctx.Precision.
func pow(ctx *apd.Context, r, x, y *apd.Decimal) error {
	var integ, frac apd.Decimal
	y.Modf(&integ, &frac)
	if frac.IsZero() {
		n, err := integ.Int64()
		if err == nil && -maxExactExp <= n && n <= maxExactExp {
			return intpow(ctx, r, x, n)
		}
		_, err = ctx.Pow(r, x, y)
		return err
	}
	switch {
	case x.IsZero():
		if y.Negative {
			return errors.New("division by zero")
		}
		r.SetInt64(0)
		return nil
	case x.Negative:
		return &DomainError{X: Plain(x), Func: "^"}
	}
	return floatpow(ctx, r, x, y)
}

// intpow sets r to x^n by repeated squaring.
func intpow(ctx *apd.Context, r, x *apd.Decimal, n int64) error {
	neg := n < 0
	if neg {
		n = -n
	}
	acc := apd.New(1, 0)
	b := new(apd.Decimal).Set(x)
	for n > 0 {
		if n&1 != 0 {
			if _, err := exact.Mul(acc, acc, b); err != nil {
				return err
			}
		}
		n >>= 1
		if n > 0 {
			if _, err := exact.Mul(b, b, b); err != nil {
				return err
			}
		}
	}
	if neg {
		_, err := ctx.Quo(r, apd.New(1, 0), acc)
		return err
	}
	r.Set(acc)
	return nil
}

// floatpow sets r to x^y for positive x using binary floating-point. The
// working precision holds every digit of both operands, since y·ln(x) loses
// nothing to cancellation only when x and y are exact.
func floatpow(ctx *apd.Context, r, x, y *apd.Decimal) error {
	bits := precBits(ctx.Precision) + digitBits(x) + digitBits(y)
	fx, ok := new(big.Float).SetPrec(bits).SetString(x.Text('e'))
	if !ok {
		return errors.Errorf("cannot convert %s to binary", x.Text('e'))
	}
	fy, ok := new(big.Float).SetPrec(bits).SetString(y.Text('e'))
	if !ok {
		return errors.Errorf("cannot convert %s to binary", y.Text('e'))
	}
	z := bigfloat.Pow(new(big.Float).SetPrec(bits), fx, fy)
	return setFloat(ctx, r, z)
}

// EvalString is a shortcut to parse and evaluate an expression.
func EvalString(src string, opts ...ParseOption) (*apd.Decimal, error) {
	e, err := Parse(src, opts...)
	if err != nil {
		return nil, err
	}
	return e.Eval()
}

// Plain formats a decimal without an exponent or trailing fractional zeros.
func Plain(d *apd.Decimal) string {
	s := d.Text('f')
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
