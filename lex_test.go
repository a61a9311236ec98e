package calc

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		src    string
		tokens []Token
	}{
		// spaces
		{"", nil},
		{" \t \r\n ", nil},
		// numbers
		{"0", []Token{{Kind: TokenNum, Text: "0", Num: 0, Pos: 1}}},
		{"9876543210", []Token{{Kind: TokenNum, Text: "9876543210", Num: 9876543210, Pos: 1}}},
		{"1.5", []Token{{Kind: TokenNum, Text: "1.5", Num: 1.5, Pos: 1}}},
		{".5", []Token{{Kind: TokenNum, Text: ".5", Num: 0.5, Pos: 1}}},
		{"1 0", []Token{{Kind: TokenNum, Text: "1", Num: 1, Pos: 1}, {Kind: TokenNum, Text: "0", Num: 0, Pos: 3}}},
		{"π", []Token{{Kind: TokenNum, Text: "π", Num: math.Pi, Pos: 1}}},
		{"pi", []Token{{Kind: TokenNum, Text: "pi", Num: math.Pi, Pos: 1}}},
		// unknown
		{"x", []Token{{Kind: TokenVar, Text: "X", Pos: 1}}},
		{"X", []Token{{Kind: TokenVar, Text: "X", Pos: 1}}},
		// operators
		{"1+2", []Token{{Kind: TokenNum, Text: "1", Num: 1, Pos: 1}, {Kind: TokenOp, Text: "+", Pos: 2}, {Kind: TokenNum, Text: "2", Num: 2, Pos: 3}}},
		{"-^", []Token{{Kind: TokenOp, Text: "-", Pos: 1}, {Kind: TokenOp, Text: "^", Pos: 2}}},
		{"×÷", []Token{{Kind: TokenOp, Text: "*", Pos: 1}, {Kind: TokenOp, Text: "/", Pos: 2}}},
		{"=", []Token{{Kind: TokenEquals, Text: "=", Pos: 1}}},
		// functions
		{"sin", []Token{{Kind: TokenFunc, Text: "sin", Pos: 1}}},
		{"cos tan", []Token{{Kind: TokenFunc, Text: "cos", Pos: 1}, {Kind: TokenFunc, Text: "tan", Pos: 5}}},
		// full width
		{"２＋ｘ", []Token{{Kind: TokenNum, Text: "2", Num: 2, Pos: 1}, {Kind: TokenOp, Text: "+", Pos: 2}, {Kind: TokenVar, Text: "X", Pos: 3}}},
		// implicit multiplication
		{"2(3)", []Token{
			{Kind: TokenNum, Text: "2", Num: 2, Pos: 1},
			{Kind: TokenOp, Text: "*", Pos: 2},
			{Kind: TokenLeftParen, Text: "(", Pos: 2},
			{Kind: TokenNum, Text: "3", Num: 3, Pos: 3},
			{Kind: TokenRightParen, Text: ")", Pos: 4},
		}},
		{"(1)2", []Token{
			{Kind: TokenLeftParen, Text: "(", Pos: 1},
			{Kind: TokenNum, Text: "1", Num: 1, Pos: 2},
			{Kind: TokenRightParen, Text: ")", Pos: 3},
			{Kind: TokenOp, Text: "*", Pos: 4},
			{Kind: TokenNum, Text: "2", Num: 2, Pos: 4},
		}},
		{")(", []Token{
			{Kind: TokenRightParen, Text: ")", Pos: 1},
			{Kind: TokenOp, Text: "*", Pos: 2},
			{Kind: TokenLeftParen, Text: "(", Pos: 2},
		}},
		{"2x", []Token{
			{Kind: TokenNum, Text: "2", Num: 2, Pos: 1},
			{Kind: TokenOp, Text: "*", Pos: 2},
			{Kind: TokenVar, Text: "X", Pos: 2},
		}},
		{"2π", []Token{
			{Kind: TokenNum, Text: "2", Num: 2, Pos: 1},
			{Kind: TokenOp, Text: "*", Pos: 2},
			{Kind: TokenNum, Text: "π", Num: math.Pi, Pos: 2},
		}},
		{"2sin", []Token{
			{Kind: TokenNum, Text: "2", Num: 2, Pos: 1},
			{Kind: TokenOp, Text: "*", Pos: 2},
			{Kind: TokenFunc, Text: "sin", Pos: 2},
		}},
		{"x2", []Token{{Kind: TokenVar, Text: "X", Pos: 1}, {Kind: TokenNum, Text: "2", Num: 2, Pos: 2}}},
		{"sin(", []Token{{Kind: TokenFunc, Text: "sin", Pos: 1}, {Kind: TokenLeftParen, Text: "(", Pos: 4}}},
	}
	for _, c := range cases {
		got, err := Tokenize(c.src)
		if err != nil {
			t.Errorf("tokenizing %q: unexpected error %v", c.src, err)
			continue
		}
		if len(got) != len(c.tokens) {
			t.Errorf("tokenizing %q: want %v, got %v", c.src, c.tokens, got)
			continue
		}
		for i, want := range c.tokens {
			if got[i] != want {
				t.Errorf("tokenizing %q: token %d: want %v (%v), got %v (%v)", c.src, i, want, want.Num, got[i], got[i].Num)
			}
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind ErrorKind
		text string
		col  int
	}{
		{"$", UnknownCharacter, "$", 1},
		{"1 + $", UnknownCharacter, "$", 5},
		{"y", UnknownCharacter, "y", 1},
		{"2 * exp", UnknownCharacter, "e", 5},
		{"si", UnknownCharacter, "s", 1},
		{"sx", UnknownCharacter, "s", 1},
		{"1.2.3", MalformedNumber, "1.2.3", 1},
		{".", MalformedNumber, ".", 1},
		{"4 + ..", MalformedNumber, "..", 5},
	}
	for _, c := range cases {
		_, err := Tokenize(c.src)
		if err == nil {
			t.Errorf("tokenizing %q: no error", c.src)
			continue
		}
		lerr, ok := err.(*LexError)
		if !ok {
			t.Errorf("tokenizing %q: error %#v is not a LexError", c.src, err)
			continue
		}
		if lerr.Kind() != c.kind || lerr.Text != c.text || lerr.Col != c.col {
			t.Errorf("tokenizing %q: want %v %q at %d, got %v %q at %d", c.src, c.kind, c.text, c.col, lerr.Kind(), lerr.Text, lerr.Col)
		}
	}
}

func TestTokenizeDisableNames(t *testing.T) {
	for _, src := range []string{"sin(0)", "pi", "cos 1"} {
		_, err := Tokenize(src, DisableNames())
		if KindOf(err) != UnknownCharacter {
			t.Errorf("tokenizing %q without names: want UnknownCharacter, got %v", src, err)
		}
	}
	toks, err := Tokenize("π x", DisableNames())
	if err != nil {
		t.Fatalf("tokenizing π x without names: %v", err)
	}
	if len(toks) != 3 || toks[0].Kind != TokenNum || toks[2].Kind != TokenVar {
		t.Errorf("tokenizing π x without names: got %v", toks)
	}
}
