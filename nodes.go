package calc

import (
	"strconv"
	"strings"
)

// Node is a node in the syntax tree of an expression. Each non-leaf node
// exclusively owns its children.
type Node struct {
	Kind NodeKind
	// Num is the value of a NodeNum.
	Num uint64
	// Op is the operator of a NodeBinary.
	Op Operator

	// Left is the operand of NodeNeg, the inner expression of NodeParen, or
	// the left operand of NodeBinary.
	Left *Node
	// Right is the right operand of NodeBinary.
	Right *Node
}

// NodeKind is the kind of a node.
type NodeKind int8

const (
	nodeNone NodeKind = iota

	NodeNum    // literal Num
	NodeNeg    // negate Left
	NodeParen  // Left, grouped
	NodeBinary // Left Op Right
)

var nodestrs = [...]string{
	nodeNone:   "None",
	NodeNum:    "Num",
	NodeNeg:    "Neg",
	NodeParen:  "Paren",
	NodeBinary: "Binary",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodestrs) {
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodestrs[k]
}

// Operator is a binary arithmetic operator.
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

func (op Operator) String() string {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return string(rune(op))
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}

// Num creates a number literal node.
func Num(v uint64) *Node {
	return &Node{Kind: NodeNum, Num: v}
}

// Neg creates a negation node.
func Neg(x *Node) *Node {
	return &Node{Kind: NodeNeg, Left: x}
}

// Paren creates a parenthesized node.
func Paren(x *Node) *Node {
	return &Node{Kind: NodeParen, Left: x}
}

// Binary creates a binary operation node.
func Binary(op Operator, l, r *Node) *Node {
	return &Node{Kind: NodeBinary, Op: op, Left: l, Right: r}
}

// String formats the tree rooted at n with every node bracketed, e.g.
// (+ 1 (paren (neg 2))).
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	switch n.Kind {
	case NodeNum:
		b.WriteString(strconv.FormatUint(n.Num, 10))
	case NodeNeg:
		b.WriteString("(neg ")
		n.Left.fmt(b)
		b.WriteByte(')')
	case NodeParen:
		b.WriteString("(paren ")
		n.Left.fmt(b)
		b.WriteByte(')')
	case NodeBinary:
		b.WriteByte('(')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		n.Left.fmt(b)
		b.WriteByte(' ')
		n.Right.fmt(b)
		b.WriteByte(')')
	default:
		// Invalid nodes use invalid characters.
		b.WriteString("($" + n.Kind.String() + "$)")
	}
}

// src writes the tree rooted at n as it would appear in source. Grouping
// comes only from NodeParen, so the output of a parsed tree parses to the
// same tree.
func (n *Node) src(b *strings.Builder) {
	switch n.Kind {
	case NodeNum:
		b.WriteString(strconv.FormatUint(n.Num, 10))
	case NodeNeg:
		b.WriteByte('-')
		n.Left.src(b)
	case NodeParen:
		b.WriteByte('(')
		n.Left.src(b)
		b.WriteByte(')')
	case NodeBinary:
		n.Left.src(b)
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		n.Right.src(b)
	default:
		panic("calc: invalid node kind " + n.Kind.String() + " after writing " + b.String())
	}
}

// Expr is a parsed expression.
type Expr struct {
	// Root is the root node of the expression.
	Root *Node
}

// String formats the expression as source text.
func (e *Expr) String() string {
	var b strings.Builder
	e.Root.src(&b)
	return b.String()
}
