package calc

import (
	"strconv"
	"strings"
)

// node is a node in the expression tree.
type node struct {
	kind nodeKind
	// val is the value of a number.
	val float64
	// text is the token text the node was built from.
	text string

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // leaf

	nodeSin // sin of left
	nodeCos // cos of left
	nodeTan // tan of left

	nodeAdd // left + right
	nodeSub // left - right
	nodeMul // left * right
	nodeDiv // left / right
	nodePow // left ^ right
)

var nodenames = [...]string{
	nodeNone: "None",
	nodeNum:  "Num",
	nodeSin:  "sin",
	nodeCos:  "cos",
	nodeTan:  "tan",
	nodeAdd:  "+",
	nodeSub:  "-",
	nodeMul:  "*",
	nodeDiv:  "/",
	nodePow:  "^",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodenames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodenames[k]
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
	switch {
	case n.kind == nodeNum:
		b.WriteString(n.text)
	case n.kind.unary():
		b.WriteString(n.kind.String())
		n.left.fmt(b, !square)
	case n.kind.binary():
		n.left.fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(n.kind.String())
		b.WriteByte(' ')
		n.right.fmt(b, !square)
	default:
		// Invalid nodes use invalid characters.
		b.WriteString("$" + n.kind.String() + "$")
	}
}

// Expr is an expression tree built from a postfix sequence.
type Expr struct {
	n *node
}

// String creates a string representation of the expression, with alternating
// round and square brackets grouping each term. The zero Expr is "()".
func (e *Expr) String() string {
	if e == nil || e.n == nil {
		return "()"
	}
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

// BuildTree builds an expression tree from a postfix sequence. The sequence
// may contain only numbers, operators, and functions.
func BuildTree(postfix []Token) (*Expr, error) {
	stack := make([]*node, 0, len(postfix))
	for _, tok := range postfix {
		switch tok.Kind {
		case TokenNum:
			stack = append(stack, &node{kind: nodeNum, val: tok.Num, text: numtext(tok)})
		case TokenFunc:
			k := funcs[tok.Text]
			if k == nodeNone {
				return nil, &EvalError{Col: tok.Pos, Token: tok.Text, What: UnknownToken}
			}
			if len(stack) < 1 {
				return nil, &EvalError{Col: tok.Pos, Token: tok.Text, What: MissingOperand}
			}
			x := stack[len(stack)-1]
			stack[len(stack)-1] = &node{kind: k, text: tok.Text, left: x}
		case TokenOp:
			k := binops[tok.Text]
			if k == nodeNone {
				return nil, &EvalError{Col: tok.Pos, Token: tok.Text, What: UnknownToken}
			}
			if len(stack) < 2 {
				return nil, &EvalError{Col: tok.Pos, Token: tok.Text, What: MissingOperand}
			}
			r := stack[len(stack)-1]
			l := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, &node{kind: k, text: tok.Text, left: l, right: r})
		default:
			return nil, &EvalError{Col: tok.Pos, Token: tok.Text, What: UnknownToken}
		}
	}
	if len(stack) != 1 {
		return nil, &EvalError{What: MalformedExpression, Token: strconv.Itoa(len(stack)) + " terms"}
	}
	return &Expr{n: stack[0]}, nil
}

// numtext returns the text to print for a number token.
func numtext(tok Token) string {
	if tok.Text != "" {
		return tok.Text
	}
	return fmtnum(tok.Num)
}
