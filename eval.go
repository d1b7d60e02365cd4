package calc

import (
	"math/big"
	"strconv"
)

// arith is a numeric interpretation of expressions. Evaluation owns every
// value it passes to an arith, so methods may reuse their arguments for the
// result.
type arith[T any] interface {
	num(v uint64) T
	neg(x T) T
	add(x, y T) T
	sub(x, y T) T
	mul(x, y T) T
	div(x, y T) T
}

// eval evaluates the tree rooted at n in the interpretation a. The left
// operand of a binary node is always evaluated before the right.
func eval[T any](n *Node, a arith[T]) T {
	switch n.Kind {
	case NodeNum:
		return a.num(n.Num)
	case NodeNeg:
		return a.neg(eval(n.Left, a))
	case NodeParen:
		return eval(n.Left, a)
	case NodeBinary:
		l := eval(n.Left, a)
		r := eval(n.Right, a)
		switch n.Op {
		case OpAdd:
			return a.add(l, r)
		case OpSub:
			return a.sub(l, r)
		case OpMul:
			return a.mul(l, r)
		case OpDiv:
			return a.div(l, r)
		default:
			panic("calc: invalid operator " + n.Op.String())
		}
	default:
		panic("calc: invalid AST node " + n.Kind.String())
	}
}

var (
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// intarith is signed 128-bit integer arithmetic.
type intarith struct {
	warn func(Warning)
}

func (intarith) num(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

func (intarith) neg(x *big.Int) *big.Int {
	return check(x.Neg(x))
}

func (intarith) add(x, y *big.Int) *big.Int {
	return check(x.Add(x, y))
}

func (intarith) sub(x, y *big.Int) *big.Int {
	return check(x.Sub(x, y))
}

func (intarith) mul(x, y *big.Int) *big.Int {
	return check(x.Mul(x, y))
}

func (a intarith) div(x, y *big.Int) *big.Int {
	if y.Sign() == 0 {
		panic(&Fault{Reason: "division by zero"})
	}
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 && a.warn != nil {
		// q continues into the evaluation, so the warning gets a copy.
		a.warn(Warning{Dividend: x, Divisor: y, Quotient: new(big.Int).Set(q)})
	}
	return check(q)
}

// check panics with a *Fault if x is outside the range of a signed 128-bit
// integer.
func check(x *big.Int) *big.Int {
	if x.Cmp(maxInt128) > 0 || x.Cmp(minInt128) < 0 {
		panic(&Fault{Reason: "integer overflow"})
	}
	return x
}

// floatarith is IEEE-754 double precision arithmetic.
type floatarith struct{}

func (floatarith) num(v uint64) float64 {
	return float64(v)
}

func (floatarith) neg(x float64) float64 {
	return -x
}

func (floatarith) add(x, y float64) float64 {
	return x + y
}

func (floatarith) sub(x, y float64) float64 {
	return x - y
}

func (floatarith) mul(x, y float64) float64 {
	return x * y
}

func (floatarith) div(x, y float64) float64 {
	return x / y
}

// EvalOption is an option for integer evaluation.
type EvalOption interface {
	evalOption()
}

type warnopt func(Warning)

func (warnopt) evalOption() {}

// OnWarning sets a function to receive diagnostics during integer evaluation.
// Without it, diagnostics are discarded.
func OnWarning(f func(Warning)) EvalOption {
	return warnopt(f)
}

type parseopts []ParseOption

func (parseopts) evalOption() {}

// WithParse passes parse options, e.g. MaxDepth, to the parse step of Eval,
// EvalInt, and EvalFloat. Expr.Int ignores it.
func WithParse(opts ...ParseOption) EvalOption {
	return parseopts(opts)
}

// Int evaluates the expression as a signed 128-bit integer. Division
// truncates toward zero; each division that discards a nonzero remainder
// produces a Warning.
//
// Int panics with a *Fault on division by zero or when any intermediate
// result is outside the 128-bit range. Such faults are not input errors: the
// expression is well-formed but has no integer value.
func (e *Expr) Int(opts ...EvalOption) *big.Int {
	var a intarith
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case warnopt:
			a.warn = opt
		case parseopts:
			// The expression is already parsed.
		default:
			panic("calc: unknown option type")
		}
	}
	return eval[*big.Int](e.Root, a)
}

// Float evaluates the expression in float64 arithmetic. Division by zero
// gives an infinity, or NaN for 0/0.
func (e *Expr) Float() float64 {
	return eval[float64](e.Root, floatarith{})
}

// Fault is the panic value of integer evaluation when an expression has no
// value, e.g. on division by zero.
type Fault struct {
	// Reason describes the fault.
	Reason string
}

func (f *Fault) Error() string {
	return f.Reason
}

// Warning is a diagnostic from an integer division that truncated its
// result.
type Warning struct {
	// Dividend and Divisor are the operands of the division.
	Dividend, Divisor *big.Int
	// Quotient is the truncated result.
	Quotient *big.Int
}

func (w Warning) String() string {
	return "division will cause a cast: " + w.Dividend.String() + " / " + w.Divisor.String() + " truncated to " + w.Quotient.String()
}

// Mode selects the numeric interpretation of an expression.
type Mode int8

const (
	// ModeInt evaluates with signed 128-bit integers.
	ModeInt Mode = iota
	// ModeFloat evaluates with float64.
	ModeFloat
)

func (m Mode) String() string {
	switch m {
	case ModeInt:
		return "i128"
	case ModeFloat:
		return "f64"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Value is the result of evaluating an expression in some mode.
type Value struct {
	Mode Mode
	// Int is the result in ModeInt.
	Int *big.Int
	// Float is the result in ModeFloat.
	Float float64
}

func (v Value) String() string {
	if v.Mode == ModeFloat {
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	}
	return v.Int.String()
}

// Eval is a shortcut to tokenize, parse, and evaluate an expression in the
// given mode. Options given through WithParse apply to parsing; the rest apply
// to integer evaluation. Like Expr.Int, Eval panics with a *Fault if an
// integer expression has no value.
func Eval(src string, mode Mode, opts ...EvalOption) (Value, error) {
	var popts []ParseOption
	for _, opt := range opts {
		if p, ok := opt.(parseopts); ok {
			popts = append(popts, p...)
		}
	}
	e, err := ParseString(src, popts...)
	if err != nil {
		return Value{}, err
	}
	switch mode {
	case ModeInt:
		return Value{Mode: mode, Int: e.Int(opts...)}, nil
	case ModeFloat:
		return Value{Mode: mode, Float: e.Float()}, nil
	default:
		panic("calc: invalid mode " + mode.String())
	}
}

// EvalInt is a shortcut to evaluate an expression in integer mode.
func EvalInt(src string, opts ...EvalOption) (*big.Int, error) {
	v, err := Eval(src, ModeInt, opts...)
	return v.Int, err
}

// EvalFloat is a shortcut to evaluate an expression in float mode.
func EvalFloat(src string, opts ...EvalOption) (float64, error) {
	v, err := Eval(src, ModeFloat, opts...)
	return v.Float, err
}
