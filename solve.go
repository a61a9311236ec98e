package calc

import "strconv"

// term is a linear expression x·X + c.
type term struct {
	x, c float64
}

func (t term) String() string {
	if t.x == 0 {
		return fmtnum(t.c)
	}
	s := fmtnum(t.x) + "X"
	switch {
	case t.c == 0:
		return s
	case t.c < 0:
		return s + " - " + fmtnum(-t.c)
	default:
		return s + " + " + fmtnum(t.c)
	}
}

// combine applies a binary operator to two linear terms.
func combine(op Token, l, r term) (term, error) {
	switch op.Text {
	case "+":
		return term{l.x + r.x, l.c + r.c}, nil
	case "-":
		return term{l.x - r.x, l.c - r.c}, nil
	case "*":
		switch {
		case l.x != 0 && r.x != 0:
			return term{}, &SolveError{Col: op.Pos, What: NonlinearTerm}
		case l.x != 0:
			return term{l.x * r.c, l.c * r.c}, nil
		case r.x != 0:
			return term{r.x * l.c, r.c * l.c}, nil
		default:
			return term{0, l.c * r.c}, nil
		}
	case "/":
		if r.x != 0 {
			return term{}, &SolveError{Col: op.Pos, What: DivisionByVariable}
		}
		if r.c == 0 {
			return term{}, &EvalError{Col: op.Pos, Token: op.Text, What: DivisionByZero}
		}
		return term{l.x / r.c, l.c / r.c}, nil
	default:
		return term{}, &EvalError{Col: op.Pos, Token: op.Text, What: UnsupportedOperator}
	}
}

// SolveForX solves a linear equation in X given in postfix order, e.g. the
// conversion of "2 * X + 4 = 10". The left side may combine X with constants
// using + - * / and the functions sin, cos, and tan applied to constants. The
// right side must be constant. Without an equals sign, the right side is 0.
//
// The left side is evaluated symbolically: each stack slot holds a term
// x·X + c rather than a number. At the equals sign, the constant part of the
// left side moves to the right.
func SolveForX(postfix []Token) (float64, Trace, error) {
	var (
		tr    Trace
		lhs   []term
		rhs   []float64
		rhsv  float64
		right bool
	)
	for _, tok := range postfix {
		switch tok.Kind {
		case TokenNum:
			if right {
				rhs = append(rhs, tok.Num)
				tr.add("rhs push " + fmtnum(tok.Num))
				continue
			}
			lhs = append(lhs, term{0, tok.Num})
			tr.add("push constant " + fmtnum(tok.Num))
		case TokenVar:
			if right {
				return 0, tr, tr.fail(&SolveError{Col: tok.Pos, What: VariableOnRightSide})
			}
			lhs = append(lhs, term{1, 0})
			tr.add("push X")
		case TokenFunc:
			k := funcs[tok.Text]
			if k == nodeNone {
				return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: UnsupportedOperator})
			}
			if right {
				if len(rhs) < 1 {
					return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: InsufficientOperands})
				}
				x := rhs[len(rhs)-1]
				r, _ := k.apply(x, 0)
				rhs[len(rhs)-1] = r
				tr.add("rhs " + tok.Text + "(" + fmtnum(x) + ") = " + fmtnum(r))
				continue
			}
			if len(lhs) < 1 {
				return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: InsufficientOperands})
			}
			t := lhs[len(lhs)-1]
			if t.x != 0 {
				return 0, tr, tr.fail(&SolveError{Col: tok.Pos, What: NonlinearTerm})
			}
			r, _ := k.apply(t.c, 0)
			lhs[len(lhs)-1] = term{0, r}
			tr.add(tok.Text + "(" + fmtnum(t.c) + ") = " + fmtnum(r))
		case TokenOp:
			if right {
				if len(rhs) < 2 {
					return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: InsufficientOperands})
				}
				k := binops[tok.Text]
				if k == nodeNone {
					return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: UnsupportedOperator})
				}
				y := rhs[len(rhs)-1]
				x := rhs[len(rhs)-2]
				rhs = rhs[:len(rhs)-2]
				if k == nodeDiv && y == 0 {
					return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: DivisionByZero})
				}
				r, _ := k.apply(x, y)
				rhs = append(rhs, r)
				tr.add("rhs " + fmtnum(x) + " " + tok.Text + " " + fmtnum(y) + " = " + fmtnum(r))
				continue
			}
			if len(lhs) < 2 {
				return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: InsufficientOperands})
			}
			r := lhs[len(lhs)-1]
			l := lhs[len(lhs)-2]
			lhs = lhs[:len(lhs)-2]
			t, err := combine(tok, l, r)
			if err != nil {
				return 0, tr, tr.fail(err)
			}
			lhs = append(lhs, t)
			tr.add("(" + l.String() + ") " + tok.Text + " (" + r.String() + ") = " + t.String())
		case TokenEquals:
			if right {
				return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: "more than one =", What: MalformedExpression})
			}
			if len(lhs) != 1 {
				return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: strconv.Itoa(len(lhs)) + " terms left of =", What: MalformedExpression})
			}
			t := lhs[0]
			rhsv -= t.c
			lhs[0] = term{t.x, 0}
			right = true
			tr.add("move constant " + fmtnum(t.c) + " to right side")
		default:
			return 0, tr, tr.fail(&EvalError{Col: tok.Pos, Token: tok.Text, What: UnexpectedToken})
		}
	}
	if right {
		if len(rhs) != 1 {
			return 0, tr, tr.fail(&EvalError{Token: strconv.Itoa(len(rhs)) + " values right of =", What: MalformedExpression})
		}
		rhsv += rhs[0]
		tr.add("right side = " + fmtnum(rhsv))
	}
	if len(lhs) != 1 {
		return 0, tr, tr.fail(&EvalError{Token: strconv.Itoa(len(lhs)) + " terms on left side", What: MalformedExpression})
	}
	t := lhs[0]
	if !finite(t.x) || !finite(t.c) || !finite(rhsv) {
		return 0, tr, tr.fail(&EvalError{What: MalformedExpression, Token: "coefficient is not finite"})
	}
	if t.x == 0 {
		return 0, tr, tr.fail(&SolveError{What: NoVariableTerm})
	}
	x := (rhsv - t.c) / t.x
	if !finite(x) {
		return 0, tr, tr.fail(notFinite(x))
	}
	tr.add("X = (" + fmtnum(rhsv) + " - " + fmtnum(t.c) + ") / " + fmtnum(t.x) + " = " + fmtnum(x))
	return x, tr, nil
}
