package calc

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the kind of token.
	Kind TokenKind
	// Num is the value of a TokenNumber token.
	Num uint64
	// Pos is the byte offset of the start of the token in its source.
	Pos int
}

// String returns the text of an operator token or the decimal value of a
// number token.
func (t Token) String() string {
	if t.Kind == TokenNumber {
		return strconv.FormatUint(t.Num, 10)
	}
	return t.Kind.String()
}

// TokenKind is the kind of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// tokenEOF marks the end of the input. Tokenize never returns it.
	tokenEOF

	TokenPlus
	TokenMinus
	TokenTimes
	TokenDivision
	TokenLeftParen
	TokenRightParen
	// TokenNumber is an integer literal in any radix.
	TokenNumber
)

var tokenstrs = [...]string{
	tokenNone:       "None",
	tokenEOF:        "EOF",
	TokenPlus:       "+",
	TokenMinus:      "-",
	TokenTimes:      "*",
	TokenDivision:   "/",
	TokenLeftParen:  "(",
	TokenRightParen: ")",
	TokenNumber:     "number",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenstrs) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenstrs[k]
}

// Operators contains the bytes which lex as single-character tokens. The
// token kind for the operator at byte k is opkinds[k].
const Operators = "+-*/()"

var opkinds = [len(Operators)]TokenKind{
	TokenPlus, TokenMinus, TokenTimes, TokenDivision, TokenLeftParen, TokenRightParen,
}

// StopChars contains the bytes which end an expression. Tokenize ignores
// everything from the first of them to the end of its input.
const StopChars = "\n\f"

type lexer struct {
	src string
	pos int
}

// next scans the next token. At a stop character or the end of the source,
// the result is a tokenEOF token positioned there.
func (l *lexer) next() (Token, error) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ', c == '\t':
			l.pos++
			continue
		case strings.IndexByte(StopChars, c) >= 0:
			return Token{Kind: tokenEOF, Pos: l.pos}, nil
		case '0' <= c && c <= '9':
			return l.scanNum()
		}
		if k := strings.IndexByte(Operators, c); k >= 0 {
			tok := Token{Kind: opkinds[k], Pos: l.pos}
			l.pos++
			return tok, nil
		}
		// Take the whole rune so that it shows up intact in the error.
		_, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		return Token{}, &LexError{
			Text:  l.src[l.pos : l.pos+sz],
			Start: l.pos,
			End:   l.pos + sz,
		}
	}
	return Token{Kind: tokenEOF, Pos: l.pos}, nil
}

// scanNum scans a number literal starting at the current position, which
// must be a decimal digit. The literal ends at the first byte that is neither
// a digit in its radix nor an underscore.
func (l *lexer) scanNum() (Token, error) {
	start := l.pos
	radix := 10
	if l.src[start] == '0' && start+1 < len(l.src) {
		switch l.src[start+1] {
		case 'b':
			radix = 2
		case 'o':
			radix = 8
		case 'x':
			radix = 16
		}
	}
	digits := start
	if radix != 10 {
		digits += 2
	}
	l.pos = digits
	for l.pos < len(l.src) && isdigit(l.src[l.pos], radix) {
		l.pos++
	}
	s := strings.ReplaceAll(l.src[digits:l.pos], "_", "")
	if s == "" {
		// A prefix followed only by underscores, or nothing at all, is zero.
		return Token{Kind: TokenNumber, Pos: start}, nil
	}
	v, err := strconv.ParseUint(s, radix, 64)
	if err != nil {
		return Token{}, &LexError{
			Text:  l.src[start:l.pos],
			Start: start,
			End:   l.pos,
			Err:   err,
		}
	}
	return Token{Kind: TokenNumber, Num: v, Pos: start}, nil
}

func isdigit(c byte, radix int) bool {
	switch {
	case c == '_':
		return true
	case radix == 16:
		return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
	default:
		return '0' <= c && c < '0'+byte(radix)
	}
}

// Tokenize scans the first line of src into tokens. Spaces and tabs between
// tokens are skipped. Scanning stops without error at the first newline or
// form feed. The first invalid character or out-of-range literal aborts
// scanning with a *LexError.
func Tokenize(src string) ([]Token, error) {
	l := lexer{src: src}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == tokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// LexError indicates invalid input to the lexer. It implements InputError.
type LexError struct {
	// Text is the offending text: either a single invalid character or an
	// entire number literal, including its prefix.
	Text string
	// Start and End are the byte offsets of the start and end of Text in the
	// source.
	Start, End int
	// Err is the error converting a number literal, typically a
	// *strconv.NumError for a value that does not fit in 64 bits. It is nil
	// for an invalid character.
	Err error
}

func (err *LexError) Error() string {
	span := strconv.Itoa(err.Start) + ".." + strconv.Itoa(err.End)
	if err.Err == nil {
		return "Invalid character near " + span + ": " + err.Text
	}
	msg := err.Err.Error()
	var ne *strconv.NumError
	if errors.As(err.Err, &ne) {
		msg = ne.Err.Error()
	}
	return "Parse int failed near " + span + ": " + err.Text + ": " + msg
}

func (err *LexError) Unwrap() error {
	return err.Err
}

func (err *LexError) Pos() int {
	return err.Start
}
