package ast

import (
	"testing"

	"github.com/nalgeon/be"
	"github.com/pontaoski/s3c/types"
)

func TestDisplay(t *testing.T) {
	a := NewVariable("a", types.Int)
	b := NewVariable("b", types.Int)
	body := NewBlock()
	body.Add(&Return{Expr: NewBinaryOp(Add, a, b, types.Int)})
	f := NewFunction("add", []*Variable{a, b}, body, types.NewFunction(types.Int, types.Int, types.Int))

	be.Equal(t, f.String(), "Function(add, [a, b], Block(Return(AddOP(a, b))))")
}

func TestDisplayStatements(t *testing.T) {
	s := NewVariable("s", types.NewStaticArray(types.Chr, 10))
	i := NewVariable("i", types.Int)
	body := NewBlock()
	body.Add(&Assignment{Dst: NewArrayAccess("s", types.Chr, i), Src: NewChr('x')})
	body.Add(&Print{Str: "hi"})

	tests := []struct {
		node     Node
		expected string
	}{
		{&For{Var: i, Begin: NewInt(0), End: NewInt(10), Step: NewInt(1), Body: body},
			"For(i, range(0, 10, 1), Block(Assignment(s[i], 'x'), Print(\"hi\")))"},
		{&If{Cond: NewBinaryOp(Lt, i, NewInt(3), types.Int), Then: NewBlock(), Else: NewBlock()},
			"If(LtOP(i, 3), Block(), Else(Block()))"},
		{&ArrayDeclaration{Var: s, Size: 10}, "ArrayDeclaration(s[10])"},
		{&Declaration{Var: i}, "Declaration(int i)"},
		{NewFunctionCall("f", []Expression{NewString("abc"), NewFlt(1.5)}, nil), "Funcall(f, [\"abc\", 1.5])"},
		{&Not{Operand: i}, "NotOP(i)"},
	}

	for _, test := range tests {
		be.Equal(t, test.node.(interface{ String() string }).String(), test.expected)
	}
}

func TestNodeTypes(t *testing.T) {
	be.True(t, types.IsNone(NewFunctionCall("later", nil, nil).Type()))
	be.Equal(t, NewString("abc").Type().String(), "chr[3]")
	be.True(t, (&Not{Operand: NewInt(1)}).Type().Compare(types.Int))
}

func TestOperatorClasses(t *testing.T) {
	be.True(t, Div.IsArithmetic())
	be.True(t, !Eq.IsArithmetic())
	be.True(t, Le.IsComparison())
	be.True(t, Xor.IsBoolean())
	be.Equal(t, Ge.String(), ">=")
}

func TestProgramFunctionLookup(t *testing.T) {
	p := NewProgram()
	p.AddFunction(NewFunction("main", nil, NewBlock(), types.NewFunction(nil)))

	be.True(t, p.Function("main") != nil)
	be.True(t, p.Function("add") == nil)
}
