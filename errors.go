package calc

import (
	"errors"
	"strconv"
)

// ErrorKind classifies the errors produced while tokenizing, converting,
// evaluating, or solving.
type ErrorKind int8

const (
	KindNone ErrorKind = iota

	// Lexical errors.
	UnknownCharacter
	MalformedNumber

	// Structural errors.
	UnmatchedParen
	UnexpectedToken
	MissingOperand
	InsufficientOperands
	MalformedExpression

	// Arithmetic errors.
	DivisionByZero

	// Solver errors.
	NonlinearTerm
	VariableOnRightSide
	DivisionByVariable
	NoVariableTerm

	// UnsupportedOperator is an operator that a particular stage does not
	// implement, e.g. ^ in the solver.
	UnsupportedOperator
	// UnknownPresent is returned by numeric evaluation when it meets the
	// unknown. Callers should solve instead.
	UnknownPresent

	// Internal contract errors. Token streams produced by Tokenize and
	// ToPostfix never cause these.
	UnknownOperator
	UnknownToken
)

var kindnames = [...]string{
	KindNone:             "None",
	UnknownCharacter:     "UnknownCharacter",
	MalformedNumber:      "MalformedNumber",
	UnmatchedParen:       "UnmatchedParen",
	UnexpectedToken:      "UnexpectedToken",
	MissingOperand:       "MissingOperand",
	InsufficientOperands: "InsufficientOperands",
	MalformedExpression:  "MalformedExpression",
	DivisionByZero:       "DivisionByZero",
	NonlinearTerm:        "NonlinearTerm",
	VariableOnRightSide:  "VariableOnRightSide",
	DivisionByVariable:   "DivisionByVariable",
	NoVariableTerm:       "NoVariableTerm",
	UnsupportedOperator:  "UnsupportedOperator",
	UnknownPresent:       "UnknownPresent",
	UnknownOperator:      "UnknownOperator",
	UnknownToken:         "UnknownToken",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindnames) {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindnames[k]
}

// KindOf returns the kind of the first error in err's chain that has one. The
// result is KindNone if err is nil or has no kind.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindNone
}

// LexError indicates an invalid character or number in the input. It
// implements InputError.
type LexError struct {
	// Text is the offending character, or the whole run of a malformed
	// number.
	Text string
	// Col is the rune column where the offending text starts.
	Col int
	// Number is whether the lexer was scanning a number.
	Number bool
}

func (err *LexError) Error() string {
	if err.Number {
		return errpos(err.Col, "malformed number "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "unknown character "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Kind() ErrorKind {
	if err.Number {
		return MalformedNumber
	}
	return UnknownCharacter
}

// BracketError is an error indicating mismatched parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Open is true if the unmatched parenthesis is an open parenthesis.
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return errpos(err.Col, "open bracket ( with no close bracket")
	}
	return errpos(err.Col, "close bracket ) with no open bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Kind() ErrorKind {
	return UnmatchedParen
}

// EvalError is an error from converting, building, or evaluating a token
// sequence. It implements InputError.
type EvalError struct {
	// Col is the position of the token being processed, or 0 if the error
	// applies to the whole sequence.
	Col int
	// Token is the text of the token being processed, if any.
	Token string
	// What is the error kind.
	What ErrorKind
}

func (err *EvalError) Error() string {
	var msg string
	switch err.What {
	case UnexpectedToken:
		msg = "unexpected token " + strconv.Quote(err.Token)
	case MissingOperand:
		msg = "missing operand for " + strconv.Quote(err.Token)
	case InsufficientOperands:
		msg = "not enough operands for " + strconv.Quote(err.Token)
	case MalformedExpression:
		msg = "malformed expression"
		if err.Token != "" {
			msg += ": " + err.Token
		}
	case DivisionByZero:
		msg = "division by zero"
	case UnsupportedOperator:
		msg = "unsupported operator " + strconv.Quote(err.Token)
	case UnknownPresent:
		msg = "expression contains the unknown " + strconv.Quote(err.Token)
	case UnknownOperator:
		msg = "unknown operator " + strconv.Quote(err.Token)
	case UnknownToken:
		msg = "unknown token " + strconv.Quote(err.Token)
	default:
		msg = err.What.String()
	}
	return errpos(err.Col, msg)
}

func (err *EvalError) Pos() int {
	return err.Col
}

func (err *EvalError) Kind() ErrorKind {
	return err.What
}

// SolveError is an error indicating an equation that the linear solver cannot
// handle. It implements InputError.
type SolveError struct {
	// Col is the position of the token that made the equation unsolvable, or
	// 0 if the error applies to the whole equation.
	Col int
	// What is the error kind.
	What ErrorKind
}

func (err *SolveError) Error() string {
	var msg string
	switch err.What {
	case NonlinearTerm:
		msg = "equation is not linear in X"
	case VariableOnRightSide:
		msg = "X on the right side of the equation"
	case DivisionByVariable:
		msg = "cannot divide by X"
	case NoVariableTerm:
		msg = "no X term to solve for"
	default:
		msg = err.What.String()
	}
	return errpos(err.Col, msg)
}

func (err *SolveError) Pos() int {
	return err.Col
}

func (err *SolveError) Kind() ErrorKind {
	return err.What
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error, or 0 if the
	// error is not attached to a single token.
	Pos() int
	// Kind returns the classification of the error.
	Kind() ErrorKind
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EvalError)(nil)
	_ InputError = (*SolveError)(nil)
)
