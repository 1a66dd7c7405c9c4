package codegen

import (
	"fmt"
	"io"

	"github.com/alecthomas/repr"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/types"
	"github.com/ztrue/tracerr"
)

type varKind int

const (
	scalarVar varKind = iota
	localArray
	arrayParam
)

type llvmVar struct {
	kind varKind
	ptr  value.Value
	// elem is the scalar type, the [N x T] type of a local array, or the
	// element type of an array parameter.
	elem lltypes.Type
	size int
}

func (v llvmVar) elementType() lltypes.Type {
	if v.kind == localArray {
		return v.elem.(*lltypes.ArrayType).ElemType
	}
	return v.elem
}

type llvmGen struct {
	names                  []map[string]llvmVar
	funcs                  map[string]*ir.Func
	builtins               map[string]*ir.Func
	module                 *ir.Module
	forwardDeclarationPass bool
	stringConstants        map[string]*ir.Global

	fn     *ir.Func
	entry  *ir.Block
	block  *ir.Block
	labels int
}

func (g *llvmGen) pushScope() {
	g.names = append(g.names, make(map[string]llvmVar))
}

func (g *llvmGen) popScope() {
	g.names = g.names[:len(g.names)-1]
}

func (g *llvmGen) top() map[string]llvmVar {
	return g.names[len(g.names)-1]
}

func (g *llvmGen) lookup(name string) llvmVar {
	for i := len(g.names) - 1; i >= 0; i-- {
		if v, ok := g.names[i][name]; ok {
			return v
		}
	}
	panic(newError("llvm: could not lookup %s", name))
}

func (g *llvmGen) label(prefix string) string {
	g.labels++
	return fmt.Sprintf("%s.%d", prefix, g.labels)
}

// BuildLLVM lowers prog to an LLVM module. User functions are named
// prog.<name>; the C entry point main calls prog.main.
func BuildLLVM(prog *ast.Program) (m *ir.Module, err error) {
	defer recoverError(&err)

	g := &llvmGen{
		funcs:           make(map[string]*ir.Func),
		module:          ir.NewModule(),
		stringConstants: make(map[string]*ir.Global),
	}
	g.builtins = addBuiltins(g.module)

	g.forwardDeclarationPass = true
	for _, fn := range prog.Functions {
		g.function(fn)
	}
	g.forwardDeclarationPass = false
	for _, fn := range prog.Functions {
		g.function(fn)
	}

	if entry, ok := g.funcs["main"]; ok {
		opening := g.module.NewFunc("main", lltypes.I32)
		bloc := opening.NewBlock("entry")

		var args []value.Value
		for _, p := range entry.Params {
			args = append(args, zeroConstant(p.Typ))
		}
		bloc.NewCall(entry, args...)
		bloc.NewRet(constant.NewInt(lltypes.I32, 0))
	}

	registerTypeInfoWithModule(typeInfoOf(prog), g.module)
	return g.module, nil
}

// CompileLLVM writes prog to w as textual LLVM IR.
func CompileLLVM(w io.Writer, prog *ast.Program) error {
	m, err := BuildLLVM(prog)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, m.String())
	return tracerr.Wrap(err)
}

func (g *llvmGen) function(f *ast.Function) {
	sig := f.Signature()

	if g.forwardDeclarationPass {
		var params []*ir.Param
		for _, p := range f.Params {
			params = append(params, ir.NewParam(p.Name, paramType(p.Type())))
		}
		g.funcs[f.Name] = g.module.NewFunc("prog."+f.Name, llvmType(sig.Return), params...)
		return
	}

	g.fn = g.funcs[f.Name]
	g.entry = g.fn.NewBlock("entry")
	g.block = g.entry

	g.pushScope()
	for i, p := range f.Params {
		param := g.fn.Params[i]
		if types.IsArray(p.Type()) {
			size, _ := types.ArraySize(p.Type())
			g.top()[p.Name] = llvmVar{kind: arrayParam, ptr: param, elem: llvmType(p.Type().Evaluated()), size: size}
			continue
		}
		alloca := g.entry.NewAlloca(param.Typ)
		g.block.NewStore(param, alloca)
		g.top()[p.Name] = llvmVar{kind: scalarVar, ptr: alloca, elem: param.Typ}
	}
	g.statements(f.Body)
	g.popScope()

	if g.block.Term == nil {
		ret := g.fn.Sig.RetType
		if lltypes.IsVoid(ret) {
			g.block.NewRet(nil)
		} else {
			g.block.NewRet(zeroConstant(ret))
		}
	}
}

func (g *llvmGen) statements(b *ast.Block) {
	if b == nil {
		return
	}
	g.pushScope()
	for _, s := range b.Statements {
		g.statement(s)
	}
	g.popScope()
}

func (g *llvmGen) statement(n ast.Node) {
	switch s := n.(type) {
	case *ast.Declaration:
		t := llvmType(s.Var.Type())
		alloca := g.entry.NewAlloca(t)
		g.block.NewStore(zeroConstant(t), alloca)
		g.top()[s.Var.Name] = llvmVar{kind: scalarVar, ptr: alloca, elem: t}
	case *ast.ArrayDeclaration:
		t := llvmType(s.Var.Type())
		alloca := g.entry.NewAlloca(t)
		g.block.NewStore(constant.NewZeroInitializer(t), alloca)
		g.top()[s.Var.Name] = llvmVar{kind: localArray, ptr: alloca, elem: t, size: s.Size}
	case *ast.Assignment:
		g.assignment(s)
	case *ast.FunctionCall:
		g.call(s)
	case *ast.If:
		g.ifStatement(s)
	case *ast.For:
		g.forStatement(s)
	case *ast.While:
		g.whileStatement(s)
	case *ast.Print:
		g.print(s)
	case *ast.Read:
		g.read(s)
	case *ast.Return:
		if s.Expr == nil || lltypes.IsVoid(g.fn.Sig.RetType) {
			g.block.NewRet(nil)
		} else {
			g.block.NewRet(g.coerce(g.expr(s.Expr), g.fn.Sig.RetType))
		}
		g.block = g.fn.NewBlock(g.label("after.return"))
	default:
		plog.Errorf("unhandled statement %s", repr.String(n))
		panic(newError("llvm: cannot emit statement %T", n))
	}
}

// elemPtr returns a pointer to v[idx].
func (g *llvmGen) elemPtr(v llvmVar, idx value.Value) value.Value {
	idx = g.coerce(idx, lltypes.I64)
	if v.kind == localArray {
		return g.block.NewGetElementPtr(v.elem, v.ptr, constant.NewInt(lltypes.I64, 0), idx)
	}
	return g.block.NewGetElementPtr(v.elem, v.ptr, idx)
}

// decay returns a pointer to the first element of an array.
func (g *llvmGen) decay(v llvmVar) value.Value {
	if v.kind == localArray {
		return g.elemPtr(v, constant.NewInt(lltypes.I64, 0))
	}
	return v.ptr
}

// lvalue returns the address dst designates and its type.
func (g *llvmGen) lvalue(dst ast.Expression) (value.Value, lltypes.Type) {
	switch d := dst.(type) {
	case *ast.Variable:
		v := g.lookup(d.Name)
		return v.ptr, v.elem
	case *ast.ArrayAccess:
		v := g.lookup(d.Name)
		return g.elemPtr(v, g.expr(d.Index)), v.elementType()
	}
	panic(newError("llvm: %T is not assignable", dst))
}

func (g *llvmGen) assignment(a *ast.Assignment) {
	if !types.IsArray(a.Dst.Type()) {
		ptr, t := g.lvalue(a.Dst)
		g.block.NewStore(g.coerce(g.expr(a.Src), t), ptr)
		return
	}

	dst := g.lookup(a.Dst.(*ast.Variable).Name)
	size, _ := types.ArraySize(a.Dst.Type())
	n := size
	if srcSize, ok := types.ArraySize(a.Src.Type()); ok && srcSize < n {
		n = srcSize
	}

	elem := dst.elementType()
	zero := zeroConstant(elem)
	g.loop(size, func(i value.Value) {
		g.block.NewStore(zero, g.elemPtr(dst, i))
	})

	var load func(i value.Value) value.Value
	switch src := a.Src.(type) {
	case *ast.Value:
		global := g.str(src.Literal.Str)
		load = func(i value.Value) value.Value {
			ptr := g.block.NewGetElementPtr(global.ContentType, global, constant.NewInt(lltypes.I64, 0), i)
			return g.block.NewLoad(lltypes.I8, ptr)
		}
	case *ast.Variable:
		v := g.lookup(src.Name)
		load = func(i value.Value) value.Value {
			return g.block.NewLoad(v.elementType(), g.elemPtr(v, i))
		}
	default:
		panic(newError("llvm: cannot copy from %T", a.Src))
	}

	g.loop(n, func(i value.Value) {
		g.block.NewStore(g.coerce(load(i), elem), g.elemPtr(dst, i))
	})
}

// loop emits body for i in [0, n).
func (g *llvmGen) loop(n int, body func(i value.Value)) {
	counter := g.entry.NewAlloca(lltypes.I64)
	g.block.NewStore(constant.NewInt(lltypes.I64, 0), counter)

	cond := g.fn.NewBlock(g.label("copy.cond"))
	bodyBloc := g.fn.NewBlock(g.label("copy.body"))
	done := g.fn.NewBlock(g.label("copy.done"))
	g.block.NewBr(cond)

	i := cond.NewLoad(lltypes.I64, counter)
	cond.NewCondBr(cond.NewICmp(enum.IPredSLT, i, constant.NewInt(lltypes.I64, int64(n))), bodyBloc, done)

	g.block = bodyBloc
	body(i)
	next := g.block.NewAdd(i, constant.NewInt(lltypes.I64, 1))
	g.block.NewStore(next, counter)
	g.block.NewBr(cond)

	g.block = done
}

func (g *llvmGen) ifStatement(s *ast.If) {
	cond := g.truth(g.expr(s.Cond))

	thenBloc := g.fn.NewBlock(g.label("then"))
	mergeBloc := g.fn.NewBlock(g.label("ifcont"))
	elseBloc := mergeBloc
	if s.Else != nil {
		elseBloc = g.fn.NewBlock(g.label("else"))
	}
	g.block.NewCondBr(cond, thenBloc, elseBloc)

	g.block = thenBloc
	g.statements(s.Then)
	if g.block.Term == nil {
		g.block.NewBr(mergeBloc)
	}

	if s.Else != nil {
		g.block = elseBloc
		g.statements(s.Else)
		if g.block.Term == nil {
			g.block.NewBr(mergeBloc)
		}
	}

	g.block = mergeBloc
}

// forStatement follows Python's range: the bounds are evaluated once and
// the step's sign picks the direction.
func (g *llvmGen) forStatement(s *ast.For) {
	v := g.lookup(s.Var.Name)

	g.block.NewStore(g.coerce(g.expr(s.Begin), v.elem), v.ptr)
	end := g.coerce(g.expr(s.End), lltypes.I64)
	step := g.coerce(g.expr(s.Step), lltypes.I64)

	cond := g.fn.NewBlock(g.label("for.cond"))
	body := g.fn.NewBlock(g.label("for.body"))
	done := g.fn.NewBlock(g.label("for.done"))
	g.block.NewBr(cond)

	g.block = cond
	cur := g.coerce(cond.NewLoad(v.elem, v.ptr), lltypes.I64)
	up := cond.NewICmp(enum.IPredSLT, cur, end)
	down := cond.NewICmp(enum.IPredSGT, cur, end)
	positive := cond.NewICmp(enum.IPredSGT, step, constant.NewInt(lltypes.I64, 0))
	cond.NewCondBr(cond.NewSelect(positive, up, down), body, done)

	g.block = body
	g.statements(s.Body)
	if g.block.Term == nil {
		cur := g.coerce(g.block.NewLoad(v.elem, v.ptr), lltypes.I64)
		g.block.NewStore(g.coerce(g.block.NewAdd(cur, step), v.elem), v.ptr)
		g.block.NewBr(cond)
	}

	g.block = done
}

func (g *llvmGen) whileStatement(s *ast.While) {
	cond := g.fn.NewBlock(g.label("while.cond"))
	body := g.fn.NewBlock(g.label("while.body"))
	done := g.fn.NewBlock(g.label("while.done"))
	g.block.NewBr(cond)

	g.block = cond
	g.block.NewCondBr(g.truth(g.expr(s.Cond)), body, done)

	g.block = body
	g.statements(s.Body)
	if g.block.Term == nil {
		g.block.NewBr(cond)
	}

	g.block = done
}

func (g *llvmGen) print(p *ast.Print) {
	if p.Expr == nil {
		g.printf("%s", g.cstr(p.Str))
		return
	}

	if v, ok := p.Expr.(*ast.Value); ok && types.IsArrayOfChr(v.Type()) {
		g.printf("%s", g.cstr(v.Literal.Str))
		return
	}
	if v, ok := p.Expr.(*ast.Variable); ok && types.IsArrayOfChr(v.Type()) {
		arr := g.lookup(v.Name)
		g.printf("%.*s", constant.NewInt(lltypes.I32, int64(arr.size)), g.decay(arr))
		return
	}

	val := g.expr(p.Expr)
	switch t := val.Type(); {
	case t.Equal(Flt):
		g.printf("%g", val)
	case t.Equal(Chr):
		g.printf("%c", g.coerce(val, lltypes.I32))
	default:
		g.printf("%ld", g.coerce(val, Int))
	}
}

func (g *llvmGen) read(r *ast.Read) {
	ptr, t := g.lvalue(r.Dst)
	switch {
	case t.Equal(Flt):
		g.scanf("%lf", ptr)
	case t.Equal(Chr):
		g.scanf(" %c", ptr)
	default:
		g.scanf("%ld", ptr)
	}
}

func zeroConstant(t lltypes.Type) constant.Constant {
	switch kind := t.(type) {
	case *lltypes.IntType:
		return constant.NewInt(kind, 0)
	case *lltypes.FloatType:
		return constant.NewFloat(kind, 0)
	case *lltypes.PointerType:
		return constant.NewNull(kind)
	}
	return constant.NewZeroInitializer(t)
}
