package calc

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets the operator for a token string. The second result is false if
// there is no such operator.
//
// All operators are left-associative, including ^, so 2^3^2 is (2^3)^2.
func binop(text string) (operator, bool) {
	switch text {
	case "+", "-":
		return operator{1, false}, true
	case "*", "/":
		return operator{2, false}, true
	case "^":
		return operator{3, false}, true
	default:
		return operator{}, false
	}
}

// funcprec is the precedence of function application.
var funcprec = operator{4, false}

// stackprec gets the precedence of a token on the operator stack. Parentheses
// have precedence 0 but are never compared.
func stackprec(tok Token) operator {
	switch tok.Kind {
	case TokenFunc:
		return funcprec
	case TokenOp:
		p, _ := binop(tok.Text)
		return p
	default:
		return operator{}
	}
}

// ToPostfix converts a token sequence in infix order to postfix order. An
// equals sign closes every pending operator and then appears in the output at
// the boundary between the two sides of the equation.
func ToPostfix(tokens []Token) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	var ops []Token
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNum, TokenVar:
			out = append(out, tok)
		case TokenFunc:
			ops = append(ops, tok)
		case TokenOp:
			prec, ok := binop(tok.Text)
			if !ok {
				return nil, &EvalError{Col: tok.Pos, Token: tok.Text, What: UnexpectedToken}
			}
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind == TokenLeftParen || prec.moreBinding(stackprec(top)) {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		case TokenLeftParen:
			ops = append(ops, tok)
		case TokenRightParen:
			for {
				if len(ops) == 0 {
					return nil, &BracketError{Col: tok.Pos}
				}
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Kind == TokenLeftParen {
					break
				}
				out = append(out, top)
			}
			// A function applies to the group that just closed.
			if len(ops) > 0 && ops[len(ops)-1].Kind == TokenFunc {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
		case TokenEquals:
			var err error
			out, err = flush(out, ops)
			if err != nil {
				return nil, err
			}
			ops = ops[:0]
			out = append(out, tok)
		default:
			return nil, &EvalError{Col: tok.Pos, Token: tok.Text, What: UnexpectedToken}
		}
	}
	return flush(out, ops)
}

// flush moves all pending operators to the output, most recent first. Any
// pending open parenthesis is unmatched.
func flush(out, ops []Token) ([]Token, error) {
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Kind == TokenLeftParen {
			return nil, &BracketError{Col: ops[i].Pos, Open: true}
		}
		out = append(out, ops[i])
	}
	return out, nil
}
