// Package llvm generates LLVM IR that computes the value of an expression.
//
// The generated code follows the semantics of calc's evaluators. In integer
// mode, arithmetic is checked signed 128-bit arithmetic, and division by zero
// or any overflow calls llvm.trap. In float mode, arithmetic is plain double
// precision.
package llvm

import (
	"math/big"
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/zephyrtronium/calc"
)

// FuncName is the name of the generated function.
const FuncName = "calc"

// Module creates an IR module with a function @calc that takes no arguments
// and returns the value of e, as i128 in calc.ModeInt or as double in
// calc.ModeFloat.
func Module(e *calc.Expr, mode calc.Mode) *ir.Module {
	b := newBuilder(mode)
	v := b.load(e.Root)
	b.block.NewRet(v)
	return b.mod
}

var minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))

type builder struct {
	mod   *ir.Module
	fn    *ir.Func
	block *ir.Block
	mode  calc.Mode

	// trap is the shared block that integer guards branch to. It is created
	// on first use.
	trap *ir.Block
	// intrinsics holds the declared intrinsic functions by name.
	intrinsics map[string]*ir.Func
	// guards counts the blocks created to continue after a guard.
	guards int
}

func newBuilder(mode calc.Mode) *builder {
	var ret types.Type
	switch mode {
	case calc.ModeInt:
		ret = types.I128
	case calc.ModeFloat:
		ret = types.Double
	default:
		panic("llvm: invalid mode " + mode.String())
	}
	b := &builder{
		mod:        ir.NewModule(),
		mode:       mode,
		intrinsics: make(map[string]*ir.Func),
	}
	b.fn = b.mod.NewFunc(FuncName, ret)
	b.block = b.fn.NewBlock("entry")
	return b
}

// load emits the instructions computing the tree rooted at n into the
// current block and returns the value holding the result.
func (b *builder) load(n *calc.Node) value.Value {
	switch n.Kind {
	case calc.NodeNum:
		return b.literal(n.Num)
	case calc.NodeNeg:
		x := b.load(n.Left)
		if b.mode == calc.ModeFloat {
			return b.block.NewFNeg(x)
		}
		return b.checked("llvm.ssub.with.overflow.i128", constant.NewInt(types.I128, 0), x)
	case calc.NodeParen:
		return b.load(n.Left)
	case calc.NodeBinary:
		x := b.load(n.Left)
		y := b.load(n.Right)
		if b.mode == calc.ModeFloat {
			return b.floatop(n.Op, x, y)
		}
		return b.intop(n.Op, x, y)
	default:
		panic("llvm: invalid AST node " + n.Kind.String())
	}
}

func (b *builder) literal(v uint64) value.Value {
	if b.mode == calc.ModeFloat {
		return constant.NewFloat(types.Double, float64(v))
	}
	return &constant.Int{Typ: types.I128, X: new(big.Int).SetUint64(v)}
}

func (b *builder) floatop(op calc.Operator, x, y value.Value) value.Value {
	switch op {
	case calc.OpAdd:
		return b.block.NewFAdd(x, y)
	case calc.OpSub:
		return b.block.NewFSub(x, y)
	case calc.OpMul:
		return b.block.NewFMul(x, y)
	case calc.OpDiv:
		return b.block.NewFDiv(x, y)
	default:
		panic("llvm: invalid operator " + op.String())
	}
}

func (b *builder) intop(op calc.Operator, x, y value.Value) value.Value {
	switch op {
	case calc.OpAdd:
		return b.checked("llvm.sadd.with.overflow.i128", x, y)
	case calc.OpSub:
		return b.checked("llvm.ssub.with.overflow.i128", x, y)
	case calc.OpMul:
		return b.checked("llvm.smul.with.overflow.i128", x, y)
	case calc.OpDiv:
		return b.sdiv(x, y)
	default:
		panic("llvm: invalid operator " + op.String())
	}
}

// checked emits a call to an arithmetic-with-overflow intrinsic, trapping if
// the overflow bit is set.
func (b *builder) checked(intrinsic string, x, y value.Value) value.Value {
	r := b.block.NewCall(b.intrinsic(intrinsic), x, y)
	b.guard(b.block.NewExtractValue(r, 1))
	return b.block.NewExtractValue(r, 0)
}

// sdiv emits a signed division that traps on a zero divisor and on the one
// quotient that overflows, min / -1.
func (b *builder) sdiv(x, y value.Value) value.Value {
	b.guard(b.block.NewICmp(enum.IPredEQ, y, constant.NewInt(types.I128, 0)))
	ismin := b.block.NewICmp(enum.IPredEQ, x, &constant.Int{Typ: types.I128, X: minInt128})
	isneg := b.block.NewICmp(enum.IPredEQ, y, constant.NewInt(types.I128, -1))
	b.guard(b.block.NewAnd(ismin, isneg))
	return b.block.NewSDiv(x, y)
}

// guard branches to the trap block if cond is true and continues in a new
// current block otherwise.
func (b *builder) guard(cond value.Value) {
	b.guards++
	next := b.fn.NewBlock("ok." + strconv.Itoa(b.guards))
	b.block.NewCondBr(cond, b.trapBlock(), next)
	b.block = next
}

func (b *builder) trapBlock() *ir.Block {
	if b.trap == nil {
		b.trap = b.fn.NewBlock("trap")
		b.trap.NewCall(b.intrinsic("llvm.trap"))
		b.trap.NewUnreachable()
	}
	return b.trap
}

// intrinsic gets the declaration of an intrinsic function, declaring it in the
// module on first use.
func (b *builder) intrinsic(name string) *ir.Func {
	if f := b.intrinsics[name]; f != nil {
		return f
	}
	var f *ir.Func
	switch name {
	case "llvm.trap":
		f = b.mod.NewFunc(name, types.Void)
	case "llvm.sadd.with.overflow.i128", "llvm.ssub.with.overflow.i128", "llvm.smul.with.overflow.i128":
		ret := types.NewStruct(types.I128, types.I1)
		f = b.mod.NewFunc(name, ret, ir.NewParam("x", types.I128), ir.NewParam("y", types.I128))
	default:
		panic("llvm: unknown intrinsic " + name)
	}
	b.intrinsics[name] = f
	return f
}
