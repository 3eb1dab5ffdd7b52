package mathexpr

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// node is a node in the expression tree. Nodes are never modified after the
// parser creates them.
type node struct {
	kind nodeKind

	// name is the source text of a literal or the name of a function.
	name string
	val  *apd.Decimal
	fn   Func

	// args is the operands, in order. Every operator node has at least one;
	// nodePow has exactly two and nodeNeg and nodeCall exactly one.
	args []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // literal val
	nodeCall // fn(args[0])
	nodeNeg  // -args[0]

	nodeAdd // args[0] + args[1] + ...
	nodeSub // args[0] - args[1] - ...
	nodeMul // args[0] * args[1] * ...
	nodeDiv // args[0] / args[1] / ...
	nodePow // args[0] ^ args[1]
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node
//go:generate go mod tidy

// zero is the literal that empty operands become.
func zero() *node {
	return &node{kind: nodeNum, name: "0", val: new(apd.Decimal)}
}

// join creates an operator node from a list of operands, any of which may be
// nil for an empty operand. Trailing empty operands are dropped and the rest
// become zero. A single operand is returned as is, so the result is nil if
// every operand is empty.
func join(kind nodeKind, args []*node) *node {
	for len(args) > 1 && args[len(args)-1] == nil {
		args = args[:len(args)-1]
	}
	if len(args) == 1 {
		return args[0]
	}
	for i, a := range args {
		if a == nil {
			args[i] = zero()
		}
	}
	return &node{kind: kind, args: args}
}

// negate applies a unary minus to n. A literal absorbs the sign.
func negate(n *node) *node {
	if n.kind == nodeNum {
		v := new(apd.Decimal).Neg(n.val)
		name := "-" + n.name
		if strings.HasPrefix(n.name, "-") {
			name = n.name[1:]
		}
		return &node{kind: nodeNum, name: name, val: v}
	}
	return &node{kind: nodeNeg, args: []*node{n}}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNum:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		n.args[0].fmt(b, !square)
	case nodeNeg:
		b.WriteByte('-')
		n.args[0].fmt(b, !square)
	case nodeAdd:
		n.fmtargs(b, " + ", square)
	case nodeSub:
		n.fmtargs(b, " - ", square)
	case nodeMul:
		n.fmtargs(b, " * ", square)
	case nodeDiv:
		n.fmtargs(b, " / ", square)
	case nodePow:
		n.fmtargs(b, " ^ ", square)
	default:
		panic("mathexpr: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtargs(b *strings.Builder, op string, square bool) {
	for i, a := range n.args {
		if i > 0 {
			b.WriteString(op)
		}
		a.fmt(b, !square)
	}
}
