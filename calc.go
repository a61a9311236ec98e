package calc

import (
	"io"
	"strings"
)

// Result is the outcome of Calculate.
type Result struct {
	// Value is the value of the expression, or the solution for X.
	Value float64
	// Solved is whether the input was an equation solved for X.
	Solved bool
	// Postfix is the input converted to postfix order.
	Postfix []Token
	// Trace is the record of evaluation steps.
	Trace Trace
}

// IsEquation returns whether a token sequence must be solved for X rather
// than evaluated, i.e. whether it contains X or an equals sign.
func IsEquation(tokens []Token) bool {
	for _, tok := range tokens {
		if tok.Kind == TokenVar || tok.Kind == TokenEquals {
			return true
		}
	}
	return false
}

// Calculate tokenizes an expression, converts it to postfix order, and either
// evaluates it or, if it contains X or an equals sign, solves it for X. If
// evaluation or solving fails, the returned Result is non-nil and holds the
// trace up to the failure. A result that is infinite or NaN is an error on
// every path.
func Calculate(src string, opts ...Option) (*Result, error) {
	cfg := configure(opts)
	tokens, err := Tokenize(src, opts...)
	if err != nil {
		return nil, err
	}
	postfix, err := ToPostfix(tokens)
	if err != nil {
		return nil, err
	}
	r := Result{Postfix: postfix}
	switch {
	case IsEquation(tokens):
		r.Solved = true
		r.Value, r.Trace, err = SolveForX(postfix)
	case cfg.tree:
		var e *Expr
		e, err = BuildTree(postfix)
		if err != nil {
			return nil, err
		}
		r.Value, r.Trace, err = e.Eval()
		if err == nil && !finite(r.Value) {
			// The tree divides with IEEE semantics. The stack machine
			// reports where the division by zero or overflow happened.
			_, _, err = EvalPostfix(postfix)
			if err == nil {
				err = notFinite(r.Value)
			}
			r.Value = 0
			r.Trace.fail(err)
		}
	default:
		r.Value, r.Trace, err = EvalPostfix(postfix)
	}
	if err != nil {
		return &r, err
	}
	return &r, nil
}

// Eval is a shortcut to read an entire expression and calculate it.
func Eval(src io.Reader, opts ...Option) (*Result, error) {
	var b strings.Builder
	if _, err := io.Copy(&b, src); err != nil {
		return nil, err
	}
	return Calculate(b.String(), opts...)
}
