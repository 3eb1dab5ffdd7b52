package mathexpr

import (
	"sort"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
	constopt struct {
		name string
		val  *apd.Decimal
	}
	constsopt map[string]*apd.Decimal
	precopt   uint32
)

// parsectx holds the registries and settings for parsing. It is also a
// ParseOption. Once parsing begins, nothing in it is modified.
type parsectx struct {
	// funcs is the function registry.
	funcs map[string]Func
	// consts is the constant registry, keyed by upper-case name.
	consts map[string]*apd.Decimal
	// names is the keys of funcs, longest first, so that the lexer matches
	// e.g. sinh before sin.
	names []string
	// prec is the number of significant digits for inexact results.
	prec uint32
	// ownfuncs and ownconsts indicate that funcs and consts are copies that
	// options may modify.
	ownfuncs, ownconsts bool
	// set indicates that some option has changed the context.
	set bool
}

// globalnames is the sorted names of globalfuncs.
var globalnames = funcnames(globalfuncs)

func defaultctx() parsectx {
	return parsectx{funcs: globalfuncs, consts: globalconsts, names: globalnames, prec: DefaultPrec}
}

// newctx applies options to the default parsing context.
func newctx(opts []ParseOption) parsectx {
	p := defaultctx()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	if p.names == nil {
		p.names = funcnames(p.funcs)
	}
	return p
}

func funcnames(funcs map[string]Func) []string {
	names := make([]string, 0, len(funcs))
	for k := range funcs {
		if k != "" {
			names = append(names, k)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

func (p *parsectx) ownFuncs() {
	if p.ownfuncs {
		return
	}
	m := make(map[string]Func, len(p.funcs)+1)
	for k, v := range p.funcs {
		m[k] = v
	}
	p.funcs = m
	p.ownfuncs = true
	p.names = nil
}

func (p *parsectx) ownConsts() {
	if p.ownconsts {
		return
	}
	m := make(map[string]*apd.Decimal, len(p.consts)+1)
	for k, v := range p.consts {
		m[k] = v
	}
	p.consts = m
	p.ownconsts = true
}

// ParseFunc adds or replaces a function in the registry used for parsing.
// Passing nil for fn keeps the name recognized as a function but makes calls
// to it fail with UnknownFunction.
func ParseFunc(name string, fn Func) ParseOption {
	return &funcopt{name, fn}
}

func (o *funcopt) parseOption(p parsectx) parsectx {
	p.ownFuncs()
	p.funcs[o.name] = o.fn
	p.set = true
	return p
}

// ParseFuncs replaces the function registry used for parsing. The map is
// copied.
func ParseFuncs(fns map[string]Func) ParseOption {
	return funcsopt(fns)
}

func (o funcsopt) parseOption(p parsectx) parsectx {
	p.funcs = make(map[string]Func, len(o))
	for k, v := range o {
		p.funcs[k] = v
	}
	p.ownfuncs = true
	p.names = nil
	p.set = true
	return p
}

// DisableDefaultFuncs removes all functions from the registry. Function names
// are then parsed as constants.
func DisableDefaultFuncs() ParseOption {
	return funcsopt(nil)
}

// ParseConst adds or replaces a constant. Constant names are matched without
// regard to case.
func ParseConst(name string, val *apd.Decimal) ParseOption {
	return &constopt{name, val}
}

func (o *constopt) parseOption(p parsectx) parsectx {
	p.ownConsts()
	p.consts[strings.ToUpper(o.name)] = new(apd.Decimal).Set(o.val)
	p.set = true
	return p
}

// ParseConsts replaces the constant registry. The map and its values are
// copied.
func ParseConsts(consts map[string]*apd.Decimal) ParseOption {
	return constsopt(consts)
}

func (o constsopt) parseOption(p parsectx) parsectx {
	p.consts = make(map[string]*apd.Decimal, len(o))
	for k, v := range o {
		p.consts[strings.ToUpper(k)] = new(apd.Decimal).Set(v)
	}
	p.ownconsts = true
	p.set = true
	return p
}

// Prec sets the number of significant digits to which inexact results are
// rounded. Addition, subtraction, multiplication, and small integer powers
// are always exact. The default is DefaultPrec.
func Prec(digits uint32) ParseOption {
	return precopt(digits)
}

func (o precopt) parseOption(p parsectx) parsectx {
	if o == 0 {
		panic("mathexpr: precision must be positive")
	}
	p.prec = uint32(o)
	p.set = true
	return p
}

// ParsingPreset creates a parsing preset that may be more efficient when using
// the same non-default parsing options for many calls to Parse. A preset
// panics when it would change any option from the default, but it is safe to
// apply other options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	p := newctx(opts)
	// Options applied after the preset must copy before writing.
	p.ownfuncs, p.ownconsts = false, false
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.set {
		panic("mathexpr: preset applied to non-default parse config")
	}
	r := *o
	r.set = true
	return r
}
