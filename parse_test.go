package calc

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// diff finds the first pre-order node of n that differs from m, or nil, nil
// if the two trees are equal.
func (n *Node) diff(m *Node) (*Node, *Node) {
	if n == nil || m == nil {
		if n != m {
			return n, m
		}
		return nil, nil
	}
	if n.Kind != m.Kind {
		return n, m
	}
	switch n.Kind {
	case NodeNum:
		if n.Num != m.Num {
			return n, m
		}
	case NodeNeg, NodeParen:
		return n.Left.diff(m.Left)
	case NodeBinary:
		if n.Op != m.Op {
			return n, m
		}
		if d, e := n.Left.diff(m.Left); d != nil || e != nil {
			return d, e
		}
		return n.Right.diff(m.Right)
	default:
		return n, m
	}
	return nil, nil
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    *Node
	}{
		{"num", "12", Num(12)},
		{"neg", "-12", Neg(Num(12))},
		{"add", "12+3", Binary(OpAdd, Num(12), Num(3))},
		{"sub", "12-3", Binary(OpSub, Num(12), Num(3))},
		{"mul", "12*3", Binary(OpMul, Num(12), Num(3))},
		{"div", "12/3", Binary(OpDiv, Num(12), Num(3))},
		{"paren", "((12))", Paren(Paren(Num(12)))},
		{"left-sub", "12-3-2", Binary(OpSub, Binary(OpSub, Num(12), Num(3)), Num(2))},
		{"left-div", "8/4/2", Binary(OpDiv, Binary(OpDiv, Num(8), Num(4)), Num(2))},
		{"left-mixed", "1+2-3+4", Binary(OpAdd, Binary(OpSub, Binary(OpAdd, Num(1), Num(2)), Num(3)), Num(4))},
		{"prec", "1+3*6", Binary(OpAdd, Num(1), Binary(OpMul, Num(3), Num(6)))},
		{"prec-left", "1*3+6", Binary(OpAdd, Binary(OpMul, Num(1), Num(3)), Num(6))},
		{"group", "6/(2-3)", Binary(OpDiv, Num(6), Paren(Binary(OpSub, Num(2), Num(3))))},
		{"neg-sub-neg", "-7--2", Binary(OpSub, Neg(Num(7)), Neg(Num(2)))},
		{"neg-chain", "---7", Neg(Neg(Neg(Num(7))))},
		{"neg-group", "-(1+2)", Neg(Paren(Binary(OpAdd, Num(1), Num(2))))},
		{"neg-factor", "2*-3", Binary(OpMul, Num(2), Neg(Num(3)))},
		{"neg-binds-tighter", "-2*3", Binary(OpMul, Neg(Num(2)), Num(3))},
		{"spaces", " 1 +\t2 ", Binary(OpAdd, Num(1), Num(2))},
		{"radix", "0x1a*0b11", Binary(OpMul, Num(26), Num(3))},
		{"stop", "1+2\n+3", Binary(OpAdd, Num(1), Num(2))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			d, e := a.Root.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\twant %v which has %v\n\tgot  %v which has %v from %q", c.n, e, a.Root, d, c.src)
			}
			if !reflect.DeepEqual(a, &Expr{Root: c.n}) {
				t.Errorf("%q: trees are not deeply equal:\n%s", c.src, spew.Sdump(a))
			}
		})
	}
}

func TestParseTokens(t *testing.T) {
	// Parse does not care where tokens came from.
	toks := []Token{
		{Kind: TokenMinus},
		{Kind: TokenLeftParen},
		{Kind: TokenNumber, Num: 1},
		{Kind: TokenPlus},
		{Kind: TokenNumber, Num: 2},
		{Kind: TokenRightParen},
	}
	a, err := Parse(toks)
	if err != nil {
		t.Fatal(err)
	}
	want := Neg(Paren(Binary(OpAdd, Num(1), Num(2))))
	if d, e := a.Root.diff(want); d != nil || e != nil {
		t.Errorf("want %v, got %v", want, a.Root)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		msg  string
		pos  int
	}{
		{"empty", "", &ExpectError{}, "Expect number, got nothing", -1},
		{"spaces", "   ", &ExpectError{}, "Expect number, got nothing", -1},
		{"dangling-op", "1+", &ExpectError{}, "Expect number, got nothing", -1},
		{"lone-op", "+", &ExpectError{}, "Expect number, got +", 0},
		{"lone-times", "2**3", &ExpectError{}, "Expect number, got *", 2},
		{"open", "(", &ExpectError{}, "Expect number, got nothing", -1},
		{"unclosed", "(((2))", &ExpectError{}, "Expect ), got nothing", -1},
		{"empty-group", "(())", &ExpectError{}, "Expect number, got )", 2},
		{"close-number", "(2 3)", &ExpectError{}, "Expect ), got 3", 3},
		{"neg-nothing", "---", &ExpectError{}, "Expect number, got nothing", -1},
		{"adjacent-groups", "(2)(1)", &TrailingError{}, "Invalid expression", 3},
		{"adjacent-numbers", "1 2", &TrailingError{}, "Invalid expression", 2},
		{"extra-close", "1)", &TrailingError{}, "Invalid expression", 1},
		{"lex", "0+a", &LexError{}, "Invalid character near 2..3: a", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a.Root)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Fatalf("%q gave wrong error type: want %T, got %#v", c.src, c.err, err)
			}
			if msg := err.Error(); msg != c.msg {
				t.Errorf("%q gave wrong message: want %q, got %q", c.src, c.msg, msg)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q: %T does not implement InputError", c.src, err)
			}
			if p := ie.Pos(); p != c.pos {
				t.Errorf("%q gave wrong position: want %d, got %d", c.src, c.pos, p)
			}
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		depth int
		ok    bool
	}{
		{"flat", "1+2*3-4", 1, true},
		{"parens-at-limit", "((1))", 2, true},
		{"parens-over", "(((1)))", 2, false},
		{"negs-at-limit", "--1", 2, true},
		{"negs-over", "---1", 2, false},
		{"mixed-over", "-(-1)", 2, false},
		{"siblings", "(1)+(2)+(3)", 1, true},
		{"unlimited", strings.Repeat("(", 500) + "1" + strings.Repeat(")", 500), 0, true},
		{"negative", "((1))", -5, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src, MaxDepth(c.depth))
			if c.ok {
				if err != nil {
					t.Errorf("%q at depth %d failed to parse: %v", c.src, c.depth, err)
				}
				return
			}
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a.Root)
			}
			de, ok := err.(*DepthError)
			if !ok {
				t.Fatalf("%q gave wrong error: want *DepthError, got %#v", c.src, err)
			}
			if de.Max != c.depth {
				t.Errorf("%q reported limit %d, want %d", c.src, de.Max, c.depth)
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "0x1a", "26"},
		{"add", "1+2", "1 + 2"},
		{"left", "12-3-2", "12 - 3 - 2"},
		{"right-group", "12-(3-2)", "12 - (3 - 2)"},
		{"prec", "1+3*6", "1 + 3 * 6"},
		{"negs", "---7", "---7"},
		{"neg-rhs", "1--2", "1 - -2"},
		{"nested", "-((1)*(2/-(3)))", "-((1) * (2 / -(3)))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			s := a.String()
			if s != c.want {
				t.Errorf("%q formatted as %q, want %q", c.src, s, c.want)
			}
			b, err := ParseString(s)
			if err != nil {
				t.Fatalf("%q -> %q failed to parse: %v", c.src, s, err)
			}
			d, e := a.Root.diff(b.Root)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.src, a.Root, d, s, b.Root, e)
			}
		})
	}
}

func TestNodeString(t *testing.T) {
	cases := []struct {
		n    *Node
		want string
	}{
		{Num(3), "3"},
		{Neg(Num(3)), "(neg 3)"},
		{Paren(Num(3)), "(paren 3)"},
		{Binary(OpAdd, Num(1), Binary(OpMul, Num(2), Num(3))), "(+ 1 (* 2 3))"},
		{Binary(OpDiv, Neg(Num(1)), Paren(Num(2))), "(/ (neg 1) (paren 2))"},
		{&Node{}, "($None$)"},
		{Neg(nil), "(neg <nil>)"},
	}
	for _, c := range cases {
		if got := c.n.String(); got != c.want {
			t.Errorf("want %q, got %q", c.want, got)
		}
	}
}
