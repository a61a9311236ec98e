package calc

import (
	"math"
	"strconv"
	"strings"
)

// Trace is the ordered record of reductions performed during an evaluation.
type Trace []string

func (t *Trace) add(s string) {
	*t = append(*t, s)
}

// fail records err in the trace and returns it.
func (t *Trace) fail(err error) error {
	t.add("error: " + err.Error())
	return err
}

// String returns the trace with one step per line.
func (t Trace) String() string {
	return strings.Join(t, "\n")
}

// fmtnum formats a number for traces.
func fmtnum(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// Eval evaluates the expression tree. Each operation appends one line to the
// trace, children before parents. Division follows IEEE semantics, so 1/0 is
// +Inf here. The zero Expr is malformed.
func (e *Expr) Eval() (float64, Trace, error) {
	var tr Trace
	if e == nil || e.n == nil {
		return 0, tr, tr.fail(&EvalError{What: MalformedExpression, Token: "empty expression"})
	}
	r, err := e.n.eval(&tr)
	if err != nil {
		return 0, tr, tr.fail(err)
	}
	return r, tr, nil
}

func (n *node) eval(tr *Trace) (float64, error) {
	switch {
	case n.kind == nodeNum:
		return n.val, nil
	case n.kind.unary():
		x, err := n.left.eval(tr)
		if err != nil {
			return 0, err
		}
		r, _ := n.kind.apply(x, 0)
		tr.add(n.kind.String() + "(" + fmtnum(x) + ") = " + fmtnum(r))
		return r, nil
	case n.kind.binary():
		x, err := n.left.eval(tr)
		if err != nil {
			return 0, err
		}
		y, err := n.right.eval(tr)
		if err != nil {
			return 0, err
		}
		r, _ := n.kind.apply(x, y)
		tr.add(fmtnum(x) + " " + n.kind.String() + " " + fmtnum(y) + " = " + fmtnum(r))
		return r, nil
	default:
		return 0, &EvalError{Token: n.text, What: UnknownOperator}
	}
}

// EvalPostfix evaluates a postfix sequence with a stack machine. Unlike tree
// evaluation, division by zero is an error. If the sequence contains the
// unknown, the error has kind UnknownPresent; such sequences must be solved
// with SolveForX.
func EvalPostfix(postfix []Token) (float64, Trace, error) {
	var tr Trace
	stack := make([]float64, 0, len(postfix))
	for _, tok := range postfix {
		switch tok.Kind {
		case TokenNum:
			stack = append(stack, tok.Num)
			tr.add("push " + fmtnum(tok.Num))
		case TokenVar:
			return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: UnknownPresent})
		case TokenEquals:
			tr.add("skip =")
		case TokenFunc:
			k := funcs[tok.Text]
			if k == nodeNone {
				return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: UnsupportedOperator})
			}
			if len(stack) < 1 {
				return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: InsufficientOperands})
			}
			x := stack[len(stack)-1]
			r, _ := k.apply(x, 0)
			stack[len(stack)-1] = r
			tr.add(tok.Text + "(" + fmtnum(x) + ") = " + fmtnum(r))
		case TokenOp:
			k := binops[tok.Text]
			if k == nodeNone {
				return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: UnsupportedOperator})
			}
			if len(stack) < 2 {
				return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: InsufficientOperands})
			}
			y := stack[len(stack)-1]
			x := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			if k == nodeDiv && y == 0 {
				return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: DivisionByZero})
			}
			r, _ := k.apply(x, y)
			stack = append(stack, r)
			tr.add(fmtnum(x) + " " + tok.Text + " " + fmtnum(y) + " = " + fmtnum(r))
		default:
			return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: UnexpectedToken})
		}
	}
	if len(stack) != 1 {
		return 0, tr, tr.fail(&EvalError{What: MalformedExpression, Token: strconv.Itoa(len(stack)) + " values left"})
	}
	if !finite(stack[0]) {
		return 0, tr, tr.fail(notFinite(stack[0]))
	}
	return stack[0], tr, nil
}

func finite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

// notFinite is the error for a result that overflowed or is undefined.
func notFinite(x float64) error {
	return &EvalError{What: MalformedExpression, Token: "result " + fmtnum(x) + " is not finite"}
}
