// Package calc implements a calculator for integer arithmetic expressions.
//
// An expression is a single line using + - * / and parentheses over integer
// literals. Literals may be decimal, or binary, octal, or hexadecimal with a
// 0b, 0o, or 0x prefix, and underscores may separate digits anywhere, so
// "0x_ff_ff" and "1_000" are both valid. Multiplication and division bind
// more tightly than addition and subtraction, all four are left-associative,
// and "-" may also negate a factor: "--2" is 2.
//
// Evaluation happens in one of two modes. Integer mode computes with signed
// 128-bit integers, truncating division toward zero; division by zero is a
// fault that panics with *Fault. Float mode computes with float64, where
// division by zero gives an infinity.
//
package calc
