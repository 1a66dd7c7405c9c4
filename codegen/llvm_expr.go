package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/types"
)

func (g *llvmGen) expr(e ast.Expression) value.Value {
	switch expr := e.(type) {
	case *ast.Value:
		return g.literal(expr)
	case *ast.Variable:
		v := g.lookup(expr.Name)
		if v.kind != scalarVar {
			return g.decay(v)
		}
		return g.block.NewLoad(v.elem, v.ptr)
	case *ast.ArrayAccess:
		v := g.lookup(expr.Name)
		return g.block.NewLoad(v.elementType(), g.elemPtr(v, g.expr(expr.Index)))
	case *ast.FunctionCall:
		return g.call(expr)
	case *ast.BinaryOp:
		return g.binary(expr)
	case *ast.Not:
		isZero := g.block.NewXor(g.truth(g.expr(expr.Operand)), constant.True)
		return g.block.NewZExt(isZero, Int)
	}
	panic(newError("llvm: cannot emit expression %T", e))
}

func (g *llvmGen) literal(v *ast.Value) value.Value {
	switch t := v.Type().(type) {
	case *types.Primitive:
		switch t.Type {
		case types.INT:
			return constant.NewInt(Int, v.Literal.Int)
		case types.FLT:
			return constant.NewFloat(Flt, v.Literal.Flt)
		case types.CHR:
			return constant.NewInt(Chr, int64(v.Literal.Chr))
		case types.NIL:
			return constant.NewInt(Int, 0)
		}
	case *types.StaticArray:
		// A literal passed by pointer gets its own mutable copy.
		data := constant.NewCharArrayFromString(v.Literal.Str + "\x00")
		alloca := g.entry.NewAlloca(data.Typ)
		g.block.NewStore(data, alloca)
		zero := constant.NewInt(lltypes.I64, 0)
		return g.block.NewGetElementPtr(data.Typ, alloca, zero, zero)
	}
	panic(types.UnsupportedTypeError{Type: v.Type(), Op: "llvm literal"})
}

func (g *llvmGen) call(c *ast.FunctionCall) value.Value {
	fn, ok := g.funcs[c.Name]
	if !ok {
		panic(newError("llvm: call to unknown function %s", c.Name))
	}

	args := make([]value.Value, 0, len(c.Args))
	for idx, arg := range c.Args {
		args = append(args, g.coerce(g.expr(arg), fn.Params[idx].Typ))
	}
	return g.block.NewCall(fn, args...)
}

func (g *llvmGen) binary(b *ast.BinaryOp) value.Value {
	l, r := g.expr(b.Left), g.expr(b.Right)

	switch {
	case b.Op.IsArithmetic():
		t := llvmType(b.Type())
		l, r = g.coerce(l, t), g.coerce(r, t)
		float := lltypes.IsFloat(t)
		switch b.Op {
		case ast.Add:
			if float {
				return g.block.NewFAdd(l, r)
			}
			return g.block.NewAdd(l, r)
		case ast.Sub:
			if float {
				return g.block.NewFSub(l, r)
			}
			return g.block.NewSub(l, r)
		case ast.Mul:
			if float {
				return g.block.NewFMul(l, r)
			}
			return g.block.NewMul(l, r)
		case ast.Div:
			if float {
				return g.block.NewFDiv(l, r)
			}
			return g.block.NewSDiv(l, r)
		}
	case b.Op.IsComparison():
		return g.block.NewZExt(g.compare(b.Op, l, r), Int)
	case b.Op.IsBoolean():
		l, r = g.truth(l), g.truth(r)
		var v value.Value
		switch b.Op {
		case ast.And:
			v = g.block.NewAnd(l, r)
		case ast.Or:
			v = g.block.NewOr(l, r)
		case ast.Xor:
			v = g.block.NewXor(l, r)
		}
		return g.block.NewZExt(v, Int)
	}
	panic(newError("llvm: cannot emit operator %s", b.Op))
}

var (
	intPredicates = map[ast.Operator]enum.IPred{
		ast.Eq: enum.IPredEQ,
		ast.Gt: enum.IPredSGT,
		ast.Lt: enum.IPredSLT,
		ast.Ge: enum.IPredSGE,
		ast.Le: enum.IPredSLE,
	}
	floatPredicates = map[ast.Operator]enum.FPred{
		ast.Eq: enum.FPredOEQ,
		ast.Gt: enum.FPredOGT,
		ast.Lt: enum.FPredOLT,
		ast.Ge: enum.FPredOGE,
		ast.Le: enum.FPredOLE,
	}
)

// compare converts both sides to the wider type and compares them.
func (g *llvmGen) compare(op ast.Operator, l, r value.Value) value.Value {
	if lltypes.IsFloat(l.Type()) || lltypes.IsFloat(r.Type()) {
		return g.block.NewFCmp(floatPredicates[op], g.coerce(l, Flt), g.coerce(r, Flt))
	}
	if !l.Type().Equal(r.Type()) {
		l, r = g.coerce(l, Int), g.coerce(r, Int)
	}
	return g.block.NewICmp(intPredicates[op], l, r)
}

// truth converts v to an i1 that is true when v is not zero.
func (g *llvmGen) truth(v value.Value) value.Value {
	t := v.Type()
	switch {
	case t.Equal(Bool):
		return v
	case lltypes.IsFloat(t):
		return g.block.NewFCmp(enum.FPredONE, v, constant.NewFloat(t.(*lltypes.FloatType), 0))
	case lltypes.IsInt(t):
		return g.block.NewICmp(enum.IPredNE, v, constant.NewInt(t.(*lltypes.IntType), 0))
	}
	panic(newError("llvm: %s has no truth value", t))
}

// coerce converts v to t the way an implicit cast does: ints widen with
// their sign, floats truncate toward zero.
func (g *llvmGen) coerce(v value.Value, t lltypes.Type) value.Value {
	from := v.Type()
	if from.Equal(t) {
		return v
	}

	fromInt, _ := from.(*lltypes.IntType)
	toInt, _ := t.(*lltypes.IntType)
	switch {
	case fromInt != nil && lltypes.IsFloat(t):
		return g.block.NewSIToFP(v, t)
	case lltypes.IsFloat(from) && toInt != nil:
		return g.block.NewFPToSI(v, t)
	case fromInt != nil && toInt != nil:
		switch {
		case fromInt.BitSize == 1:
			return g.block.NewZExt(v, t)
		case fromInt.BitSize < toInt.BitSize:
			return g.block.NewSExt(v, t)
		default:
			return g.block.NewTrunc(v, t)
		}
	case lltypes.IsPointer(from) && lltypes.IsPointer(t):
		return v
	}
	panic(newError("llvm: cannot convert %s to %s", from, t))
}
