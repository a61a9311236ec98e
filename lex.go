package calc

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Token is a lexical element of an expression.
type Token struct {
	// Kind is the kind of the token.
	Kind TokenKind
	// Text is the token as written, except that operators always use their
	// ASCII spelling and the unknown is always "X".
	Text string
	// Num is the value of a number token.
	Num float64
	// Pos is the 1-based rune column of the token. Multiplications inserted
	// between adjacent terms take the position of the following token.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a number literal or a named constant.
	TokenNum
	// TokenVar is the unknown, X.
	TokenVar
	// TokenOp is one of the operators + - * / ^.
	TokenOp
	// TokenFunc is a function name, one of sin, cos, tan.
	TokenFunc
	// TokenLeftParen is (.
	TokenLeftParen
	// TokenRightParen is ).
	TokenRightParen
	// TokenEquals is =.
	TokenEquals
)

var tokennames = [...]string{
	TokenNone:       "None",
	TokenNum:        "Num",
	TokenVar:        "Var",
	TokenOp:         "Op",
	TokenFunc:       "Func",
	TokenLeftParen:  "LeftParen",
	TokenRightParen: "RightParen",
	TokenEquals:     "Equals",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokennames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokennames[k]
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

// altops maps alternative operator spellings to their ASCII forms.
var altops = map[rune]string{
	'×': "*",
	'÷': "/",
	'−': "-",
}

// names are the identifiers the lexer recognizes when names are enabled. No
// name is a prefix of another.
var names = []string{"sin", "cos", "tan", "pi"}

type lexer struct {
	src     io.RuneScanner
	buf     strings.Builder
	rune    int
	nonames bool
}

func lex(src io.RuneScanner, cfg config) *lexer {
	return &lexer{
		src:     src,
		nonames: cfg.nonames,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of the input, the
// error is io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			return Token{}, err
		}
		tok := Token{Pos: l.rune}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			return l.scanNum(tok)
		case r == 'x', r == 'X':
			tok.Kind = TokenVar
			tok.Text = "X"
			return tok, nil
		case r == 'π':
			tok.Kind = TokenNum
			tok.Text = "π"
			tok.Num = math.Pi
			return tok, nil
		case r == '(':
			tok.Kind = TokenLeftParen
			tok.Text = "("
			return tok, nil
		case r == ')':
			tok.Kind = TokenRightParen
			tok.Text = ")"
			return tok, nil
		case r == '=':
			tok.Kind = TokenEquals
			tok.Text = "="
			return tok, nil
		case unicode.IsLetter(r) && !l.nonames:
			l.unreadRune()
			return l.scanName(tok)
		default:
			if strings.ContainsRune(Operators, r) {
				tok.Kind = TokenOp
				tok.Text = string(r)
				return tok, nil
			}
			if op, ok := altops[r]; ok {
				tok.Kind = TokenOp
				tok.Text = op
				return tok, nil
			}
			return tok, &LexError{Text: string(r), Col: tok.Pos}
		}
	}
}

// scanNum scans a run of digits and decimal points into a number token.
func (l *lexer) scanNum(tok Token) (Token, error) {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return tok, err
		}
		if ('0' > r || r > '9') && r != '.' {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	tok.Text = l.buf.String()
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		// A run of digits that parses but overflows is still a number.
		var ne *strconv.NumError
		if !errors.As(err, &ne) || !errors.Is(ne.Err, strconv.ErrRange) {
			return tok, &LexError{Text: tok.Text, Col: tok.Pos, Number: true}
		}
	}
	tok.Kind = TokenNum
	tok.Num = v
	return tok, nil
}

// scanName scans one of the recognized names. The error for an unrecognized
// name identifies its first letter.
func (l *lexer) scanName(tok Token) (Token, error) {
	var first string
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return tok, err
		}
		if !unicode.IsLetter(r) {
			l.unreadRune()
			break
		}
		if first == "" {
			first = string(r)
		}
		l.buf.WriteRune(r)
		s := l.buf.String()
		switch s {
		case "pi":
			tok.Kind = TokenNum
			tok.Text = s
			tok.Num = math.Pi
			return tok, nil
		case "sin", "cos", "tan":
			tok.Kind = TokenFunc
			tok.Text = s
			return tok, nil
		}
		if !nameprefix(s) {
			break
		}
	}
	return tok, &LexError{Text: first, Col: tok.Pos}
}

func nameprefix(s string) bool {
	for _, n := range names {
		if strings.HasPrefix(n, s) {
			return true
		}
	}
	return false
}

// Tokenize converts an expression into a sequence of tokens. Full-width
// characters are read as their ASCII equivalents. A multiplication token is
// inserted wherever two terms are adjacent, e.g. in "2(3)" or "(1)(2)".
func Tokenize(src string, opts ...Option) ([]Token, error) {
	cfg := configure(opts)
	scan := lex(strings.NewReader(width.Fold.String(src)), cfg)
	var tokens []Token
	for {
		tok, err := scan.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return tokens, nil
			}
			return nil, err
		}
		if len(tokens) > 0 && adjacent(tokens[len(tokens)-1], tok) {
			tokens = append(tokens, Token{Kind: TokenOp, Text: "*", Pos: tok.Pos})
		}
		tokens = append(tokens, tok)
	}
}

// adjacent returns whether an implicit multiplication belongs between two
// consecutive tokens. Two number literals are never joined, nor is X followed
// by a literal.
func adjacent(prev, next Token) bool {
	if !prev.endsTerm() || !next.startsTerm() {
		return false
	}
	if next.Kind == TokenNum && !next.isConst() {
		return prev.Kind == TokenRightParen || prev.isConst()
	}
	return true
}

func (t Token) endsTerm() bool {
	switch t.Kind {
	case TokenNum, TokenVar, TokenRightParen:
		return true
	default:
		return false
	}
}

func (t Token) startsTerm() bool {
	switch t.Kind {
	case TokenNum, TokenVar, TokenFunc, TokenLeftParen:
		return true
	default:
		return false
	}
}

// isConst returns whether t is a named constant rather than a literal.
func (t Token) isConst() bool {
	return t.Kind == TokenNum && (t.Text == "π" || t.Text == "pi")
}
