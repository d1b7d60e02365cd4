package calc

import "strconv"

// ExpectError is an error indicating a token that cannot appear where the
// parser found it, or the end of input where the parser needed a token. It
// implements InputError.
type ExpectError struct {
	// Want describes what the parser expected, either "number" where an
	// operand was needed or ")" to close a group.
	Want string
	// Got is the token that the parser found instead, or nil if the input
	// ended.
	Got *Token
}

func (err *ExpectError) Error() string {
	got := "nothing"
	if err.Got != nil {
		got = err.Got.String()
	}
	return "Expect " + err.Want + ", got " + got
}

// Pos returns the position of the unexpected token, or -1 at the end of
// input.
func (err *ExpectError) Pos() int {
	if err.Got == nil {
		return -1
	}
	return err.Got.Pos
}

// TrailingError is an error indicating tokens left over after a complete
// expression, as in "(2)(1)". It implements InputError.
type TrailingError struct {
	// Tok is the first token not belonging to the expression.
	Tok Token
}

func (err *TrailingError) Error() string {
	return "Invalid expression"
}

func (err *TrailingError) Pos() int {
	return err.Tok.Pos
}

// DepthError is an error indicating input nested more deeply than the limit
// set by MaxDepth. It implements InputError.
type DepthError struct {
	// Max is the depth limit.
	Max int
	// Col is the position of the token that opened the level beyond Max.
	Col int
}

func (err *DepthError) Error() string {
	return "Expression nested deeper than " + strconv.Itoa(err.Max) + " levels"
}

func (err *DepthError) Pos() int {
	return err.Col
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset in the source of the start of the token
	// that caused the error, or -1 if the error is at the end of input.
	Pos() int
}

var (
	_ InputError = (*ExpectError)(nil)
	_ InputError = (*TrailingError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*LexError)(nil)
)
