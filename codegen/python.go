// Package codegen lowers a finalized program to Python source or to LLVM
// IR.
package codegen

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/types"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/s3c", "codegen")

const indexVar = "_s3c_i"

// reserved names are Python keywords and the builtins generated code
// relies on. Source identifiers that collide get a trailing underscore.
var reserved = map[string]bool{
	"False": true, "None": true, "True": true, "as": true, "assert": true,
	"async": true, "await": true, "break": true, "class": true, "continue": true,
	"def": true, "del": true, "elif": true, "except": true, "finally": true,
	"from": true, "global": true, "import": true, "is": true, "lambda": true,
	"nonlocal": true, "pass": true, "raise": true, "try": true, "with": true,
	"yield": true, "chr": true, "ord": true, "float": true, "bool": true,
	"input": true, "list": true, "range": true, "min": true, "str": true,
}

func pyName(name string) string {
	if reserved[name] {
		return name + "_"
	}
	return name
}

type pyEmitter struct {
	buf    strings.Builder
	indent int
}

func (e *pyEmitter) line(format string, args ...interface{}) {
	e.buf.WriteString(strings.Repeat("\t", e.indent))
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
}

// Python writes prog to w as a Python 3 program. The program must have
// been finalized without errors.
func Python(w io.Writer, prog *ast.Program) (err error) {
	defer recoverError(&err)

	e := &pyEmitter{}
	e.line("#!/usr/bin/env python3")
	e.line("# Generated by s3c. Do not edit.")

	for _, fn := range prog.Functions {
		plog.Debugf("emitting %s", fn.Name)
		e.line("")
		e.function(fn)
	}

	e.line("")
	e.line("if __name__ == '__main__':")
	e.indent++
	e.line("main()")
	e.indent--

	_, err = io.WriteString(w, e.buf.String())
	return tracerr.Wrap(err)
}

func (e *pyEmitter) function(fn *ast.Function) {
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, pyName(p.Name))
	}

	name := fn.Name
	if name != "main" {
		name = pyName(name)
	}
	e.line("def %s(%s):", name, strings.Join(params, ", "))
	e.block(fn.Body)
}

func (e *pyEmitter) block(b *ast.Block) {
	e.indent++
	if b == nil || len(b.Statements) == 0 {
		e.line("pass")
	} else {
		for _, s := range b.Statements {
			e.statement(s)
		}
	}
	e.indent--
}

func (e *pyEmitter) statement(n ast.Node) {
	switch s := n.(type) {
	case *ast.Declaration:
		e.line("%s = %s", pyName(s.Var.Name), zeroValue(s.Var.Type()))
	case *ast.ArrayDeclaration:
		e.line("%s = [%s] * %d", pyName(s.Var.Name), zeroValue(s.Var.Type().Evaluated()), s.Size)
	case *ast.Assignment:
		e.assignment(s)
	case *ast.FunctionCall:
		e.line("%s", e.expr(s))
	case *ast.If:
		e.line("if %s:", e.expr(s.Cond))
		e.block(s.Then)
		if s.Else != nil {
			e.line("else:")
			e.block(s.Else)
		}
	case *ast.For:
		e.line("for %s in range(%s, %s, %s):", pyName(s.Var.Name), e.bound(s.Begin), e.bound(s.End), e.bound(s.Step))
		e.block(s.Body)
	case *ast.While:
		e.line("while %s:", e.expr(s.Cond))
		e.block(s.Body)
	case *ast.Print:
		e.print(s)
	case *ast.Read:
		e.line("%s = %s", e.expr(s.Dst), readValue(s.Dst.Type()))
	case *ast.Return:
		if s.Expr == nil {
			e.line("return")
		} else {
			e.line("return %s", e.expr(s.Expr))
		}
	default:
		panic(newError("python: cannot emit statement %T", n))
	}
}

func (e *pyEmitter) assignment(a *ast.Assignment) {
	dst := a.Dst.Type()
	if !types.IsArray(dst) {
		e.line("%s = %s", e.expr(a.Dst), cast(dst, a.Src.Type(), e.expr(a.Src)))
		return
	}

	size, _ := types.ArraySize(dst)
	n := size
	if srcSize, ok := types.ArraySize(a.Src.Type()); ok && srcSize < n {
		n = srcSize
	}

	name := e.expr(a.Dst)
	src := e.expr(a.Src)
	if v, ok := a.Src.(*ast.Value); ok {
		src = strconv.Quote(v.Literal.Str)
	}

	e.line("%s = [%s] * %d", name, zeroValue(dst.Evaluated()), size)
	e.line("for %s in range(%d):", indexVar, n)
	e.indent++
	e.line("%s[%s] = %s[%s]", name, indexVar, src, indexVar)
	e.indent--
}

func (e *pyEmitter) print(p *ast.Print) {
	switch {
	case p.Expr == nil:
		e.line("print(%s, end=\"\")", strconv.Quote(p.Str))
	case types.IsArrayOfChr(p.Expr.Type()):
		if v, ok := p.Expr.(*ast.Value); ok {
			e.line("print(%s, end=\"\")", strconv.Quote(v.Literal.Str))
			return
		}
		e.line("print(''.join(c for c in %s if c != chr(0)), end=\"\")", e.expr(p.Expr))
	case truthValue(p.Expr):
		e.line("print(int(%s), end=\"\")", e.expr(p.Expr))
	default:
		e.line("print(%s, end=\"\")", e.expr(p.Expr))
	}
}

// truthValue reports whether x evaluates to a Python bool.
func truthValue(x ast.Expression) bool {
	switch n := x.(type) {
	case *ast.Not:
		return true
	case *ast.BinaryOp:
		return !n.Op.IsArithmetic()
	}
	return false
}

// bound renders a range bound, which Python requires to be an int.
func (e *pyEmitter) bound(b ast.Expression) string {
	if types.Int.Compare(b.Type()) {
		return e.expr(b)
	}
	return "int(" + e.expr(b) + ")"
}

func (e *pyEmitter) expr(x ast.Expression) string {
	switch n := x.(type) {
	case *ast.Value:
		return literal(n)
	case *ast.Variable:
		return pyName(n.Name)
	case *ast.ArrayAccess:
		return fmt.Sprintf("%s[%s]", pyName(n.Name), e.expr(n.Index))
	case *ast.FunctionCall:
		args := make([]string, 0, len(n.Args))
		for _, a := range n.Args {
			args = append(args, e.expr(a))
		}
		name := n.Name
		if name != "main" {
			name = pyName(name)
		}
		return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
	case *ast.BinaryOp:
		return e.binary(n)
	case *ast.Not:
		return fmt.Sprintf("(not %s)", e.expr(n.Operand))
	}
	panic(newError("python: cannot emit expression %T", x))
}

func (e *pyEmitter) binary(b *ast.BinaryOp) string {
	l, r := e.expr(b.Left), e.expr(b.Right)

	var op string
	switch b.Op {
	case ast.Div:
		op = "/"
		if types.Int.Compare(b.Type()) {
			op = "//"
		}
	case ast.Xor:
		return fmt.Sprintf("(bool(%s) != bool(%s))", l, r)
	default:
		op = b.Op.String()
	}
	return fmt.Sprintf("(%s %s %s)", l, op, r)
}

func literal(v *ast.Value) string {
	switch t := v.Type().(type) {
	case *types.Primitive:
		switch t.Type {
		case types.INT:
			return strconv.FormatInt(v.Literal.Int, 10)
		case types.FLT:
			s := strconv.FormatFloat(v.Literal.Flt, 'g', -1, 64)
			if !strings.ContainsAny(s, ".eIN") {
				s += ".0"
			}
			return s
		case types.CHR:
			return strconv.QuoteRune(rune(v.Literal.Chr))
		case types.STR:
			return strconv.Quote(v.Literal.Str)
		case types.NIL:
			return "None"
		}
	case *types.StaticArray:
		return "list(" + strconv.Quote(v.Literal.Str) + ")"
	case *types.Obj:
		panic(types.UnsupportedTypeError{Type: t, Op: "literal"})
	}
	panic(newError("python: cannot emit literal of type %s", v.Type()))
}

func zeroValue(t types.Type) string {
	p, ok := types.PrimitiveOf(t)
	if !ok {
		panic(types.UnsupportedTypeError{Type: t, Op: "declaration"})
	}
	switch p {
	case types.INT:
		return "0"
	case types.FLT:
		return "0.0"
	case types.CHR:
		return "chr(0)"
	}
	return "None"
}

// cast converts value, of type found, to the scalar type expected.
func cast(expected, found types.Type, value string) string {
	e, ok := types.PrimitiveOf(expected)
	if !ok {
		if _, obj := expected.(*types.Obj); obj {
			panic(types.UnsupportedTypeError{Type: expected, Op: "assignment"})
		}
		return value
	}
	f, _ := types.PrimitiveOf(found.Evaluated())

	switch e {
	case types.INT:
		if f == types.CHR {
			return "ord(" + value + ")"
		}
		return "int(" + value + ")"
	case types.FLT:
		return "float(" + value + ")"
	case types.CHR:
		if f == types.CHR {
			return value
		}
		return "chr(" + value + ")"
	}
	return value
}

func readValue(t types.Type) string {
	p, _ := types.PrimitiveOf(t)
	switch p {
	case types.INT:
		return "int(input())"
	case types.FLT:
		return "float(input())"
	case types.CHR:
		return "input()[0]"
	}
	panic(types.UnsupportedTypeError{Type: t, Op: "read"})
}
