// Package calc evaluates arithmetic expressions and solves linear equations in
// one unknown.
//
// An expression like "3 + 5 * (2 - 8)" is tokenized, converted to postfix
// order, and evaluated on a stack, producing a number and a trace of every
// reduction. An equation like "2 * X + 4 = 10" follows the same path up to
// postfix order, then is solved by carrying each stack slot as a linear term
// a·X + b instead of a number.
//
// Terms written next to each other multiply: "2(3)" is 6 and "2X" is 2*X.
// All operators are left-associative, so "2^3^2" is 64. There is no unary
// minus; write "0 - 3" for -3.
package calc
