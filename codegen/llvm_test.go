package codegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/nalgeon/be"
	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/types"
)

func addProgram() *ast.Program {
	a := ast.NewVariable("a", types.Int)
	b := ast.NewVariable("b", types.Int)
	addBody := ast.NewBlock()
	addBody.Add(&ast.Return{Expr: ast.NewBinaryOp(ast.Add, a, b, types.Int)})

	x := ast.NewVariable("x", types.Int)
	call := ast.NewFunctionCall("add", []ast.Expression{ast.NewInt(1), ast.NewInt(2)}, types.Int)
	main := mainOnly(
		&ast.Declaration{Var: x},
		&ast.Assignment{Dst: x, Src: call},
		&ast.Print{Expr: x},
	).Functions[0]

	prog := ast.NewProgram()
	prog.AddFunction(ast.NewFunction("add", []*ast.Variable{a, b}, addBody, types.NewFunction(types.Int, types.Int, types.Int)))
	prog.AddFunction(main)
	return prog
}

func funcNames(m *ir.Module) []string {
	var names []string
	for _, f := range m.Funcs {
		names = append(names, f.Name())
	}
	return names
}

func requireTerminated(t *testing.T, m *ir.Module) {
	t.Helper()
	for _, f := range m.Funcs {
		for _, b := range f.Blocks {
			be.True(t, b.Term != nil)
		}
	}
}

func TestLLVMAddExample(t *testing.T) {
	m, err := BuildLLVM(addProgram())
	be.Err(t, err, nil)
	be.Equal(t, funcNames(m), []string{"printf", "scanf", "prog.add", "prog.main", "main"})
	requireTerminated(t, m)

	out := m.String()
	be.True(t, strings.Contains(out, "define i64 @prog.add(i64 %a, i64 %b)"))
	be.True(t, strings.Contains(out, "call i64 @prog.add(i64 1, i64 2)"))
	be.True(t, strings.Contains(out, "call void @prog.main()"))

	info, err := ReadTypeInfo(m)
	be.Err(t, err, nil)
	be.Equal(t, info.Functions, map[string]string{
		"add":  "int(int, int)",
		"main": "nil()",
	})
}

func TestLLVMForwardCall(t *testing.T) {
	prog := addProgram()
	prog.Functions[0], prog.Functions[1] = prog.Functions[1], prog.Functions[0]

	var buf bytes.Buffer
	be.Err(t, CompileLLVM(&buf, prog), nil)
	be.True(t, strings.Contains(buf.String(), "call i64 @prog.add(i64 1, i64 2)"))
}

func TestLLVMStringCopy(t *testing.T) {
	s := ast.NewVariable("s", types.NewStaticArray(types.Chr, 10))
	m, err := BuildLLVM(mainOnly(
		&ast.ArrayDeclaration{Var: s, Size: 10},
		&ast.Assignment{Dst: s, Src: ast.NewString("abc")},
		&ast.Print{Expr: s},
		&ast.Print{Str: "done"},
	))
	be.Err(t, err, nil)
	requireTerminated(t, m)

	out := m.String()
	be.True(t, strings.Contains(out, "alloca [10 x i8]"))
	be.True(t, strings.Contains(out, `c"abc\00"`))
	be.True(t, strings.Contains(out, `c"done\00"`))
	be.True(t, strings.Contains(out, "icmp slt i64"))
}

func TestLLVMControlFlow(t *testing.T) {
	i := ast.NewVariable("i", types.Int)
	f := ast.NewVariable("f", types.Flt)
	arr := ast.NewVariable("arr", types.NewStaticArray(types.Int, 3))

	loop := ast.NewBlock()
	loop.Add(&ast.Assignment{Dst: ast.NewArrayAccess("arr", types.Int, i), Src: i})
	then := ast.NewBlock()
	then.Add(&ast.Return{})
	els := ast.NewBlock()
	els.Add(&ast.Print{Expr: ast.NewBinaryOp(ast.Div, f, ast.NewInt(2), types.Flt)})
	body := ast.NewBlock()
	body.Add(&ast.Assignment{Dst: i, Src: ast.NewBinaryOp(ast.Sub, i, ast.NewInt(1), types.Int)})

	m, err := BuildLLVM(mainOnly(
		&ast.Declaration{Var: i},
		&ast.Declaration{Var: f},
		&ast.ArrayDeclaration{Var: arr, Size: 3},
		&ast.Read{Dst: i},
		&ast.Read{Dst: f},
		&ast.For{Var: i, Begin: ast.NewInt(0), End: ast.NewInt(3), Step: ast.NewInt(1), Body: loop},
		&ast.If{Cond: ast.NewBinaryOp(ast.Xor, i, &ast.Not{Operand: f}, types.Int), Then: then, Else: els},
		&ast.While{Cond: ast.NewBinaryOp(ast.Gt, i, f, types.Int), Body: body},
		&ast.Return{},
		&ast.Print{Expr: ast.NewChr('x')},
	))
	be.Err(t, err, nil)
	requireTerminated(t, m)

	out := m.String()
	be.True(t, strings.Contains(out, "fcmp ogt double"))
	be.True(t, strings.Contains(out, "fdiv double"))
	be.True(t, strings.Contains(out, "select i1"))
	be.True(t, strings.Contains(out, "@scanf("))
}

func TestLLVMArrayParameter(t *testing.T) {
	s := ast.NewVariable("s", types.NewStaticArray(types.Chr, 8))
	greet := ast.NewBlock()
	greet.Add(&ast.Print{Expr: s})
	greet.Add(&ast.Assignment{Dst: ast.NewArrayAccess("s", types.Chr, ast.NewInt(0)), Src: ast.NewChr('H')})

	prog := mainOnly(ast.NewFunctionCall("greet", []ast.Expression{ast.NewString("hello")}, types.Nil))
	prog.Functions = append([]*ast.Function{
		ast.NewFunction("greet", []*ast.Variable{s}, greet, types.NewFunction(nil, s.Type())),
	}, prog.Functions...)

	m, err := BuildLLVM(prog)
	be.Err(t, err, nil)
	requireTerminated(t, m)
	be.True(t, strings.Contains(m.String(), "define void @prog.greet(i8* %s)"))
}

func TestLLVMUnsupportedType(t *testing.T) {
	obj := types.NewObj("point", nil)
	_, err := BuildLLVM(mainOnly(&ast.Declaration{Var: ast.NewVariable("p", obj)}))
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "not supported for type point"))
}

func TestReadTypeInfoMissing(t *testing.T) {
	_, err := ReadTypeInfo(ir.NewModule())
	be.True(t, err != nil)
}

func TestLLVMForwardCallArithmetic(t *testing.T) {
	m, err := BuildLLVM(forwardProgram(t))
	be.Err(t, err, nil)
	requireTerminated(t, m)

	out := m.String()
	be.True(t, strings.Contains(out, "call i64 @prog.seven()"))
	be.True(t, strings.Contains(out, "add i64"))
	be.True(t, strings.Contains(out, "sdiv i64"))
	be.True(t, !strings.Contains(out, "fdiv"))
}
