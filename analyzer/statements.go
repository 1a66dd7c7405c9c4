package analyzer

import (
	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/errors"
	"github.com/pontaoski/s3c/symtable"
	"github.com/pontaoski/s3c/types"
)

// Declare declares a scalar variable in the current scope.
func (c *Context) Declare(name string, t types.Type, line int) {
	if c.redefined(name, line) {
		return
	}
	c.Symbols.NewSymbol(name, t, symtable.LocalVar)
	c.push(&ast.Declaration{Var: ast.NewVariable(name, t)})
}

// DeclareArray declares an array of size elements in the current scope.
func (c *Context) DeclareArray(name string, element types.Type, size int, line int) {
	if c.redefined(name, line) {
		return
	}
	c.Symbols.NewArraySymbol(name, element, size, symtable.LocalArray)
	c.push(&ast.ArrayDeclaration{Var: ast.NewVariable(name, types.NewStaticArray(element, size)), Size: size})
}

// Assign stores src in dst.
func (c *Context) Assign(dst, src ast.Expression, line int) {
	c.push(&ast.Assignment{Dst: dst, Src: src})
	c.checkAssignment(c.loc(line), nameOf(dst), dst.Type(), src)
}

// Return returns expr, which is nil for a bare return, from the current
// function.
func (c *Context) Return(expr ast.Expression, line int) {
	c.push(&ast.Return{Expr: expr})

	found := types.Type(types.Nil)
	if expr != nil {
		found = expr.Type()
	}

	if types.IsNone(found) && !types.IsNil(c.function.returnType) {
		c.deferCheck(DeferredCheck{
			Kind:     ReturnCheck,
			Location: c.loc(line),
			Name:     c.function.name,
			Expected: c.function.returnType,
			Node:     expr,
		})
		return
	}
	c.checkReturn(c.loc(line), c.function.name, c.function.returnType, found, expr != nil)
}

// CallStatement uses call as a statement, discarding its value.
func (c *Context) CallStatement(call *ast.FunctionCall) {
	c.push(call)
}

// Loop is the header of a for statement, checked before its body.
type Loop struct {
	Var   *ast.Variable
	Begin ast.Expression
	End   ast.Expression
	Step  ast.Expression
}

// ForHeader checks the loop variable and its bounds. The bounds are
// assigned to the variable, so they follow the assignment rules.
func (c *Context) ForHeader(name string, begin, end, step ast.Expression, line int) *Loop {
	v, _ := c.Variable(name, line).(*ast.Variable)

	if types.IsArray(v.Type()) {
		c.report(errors.BadArrayUsage{Location: c.loc(line), Name: name})
	} else {
		for _, bound := range []ast.Expression{begin, end, step} {
			c.checkAssignment(c.loc(line), name, v.Type(), bound)
		}
	}

	return &Loop{Var: v, Begin: begin, End: end, Step: step}
}

func (c *Context) For(loop *Loop, body *ast.Block) {
	c.push(&ast.For{Var: loop.Var, Begin: loop.Begin, End: loop.End, Step: loop.Step, Body: body})
}

// If adds a conditional. els is nil without an else branch.
func (c *Context) If(cond ast.Expression, then, els *ast.Block, line int) {
	c.wholeArray(cond, line)
	c.push(&ast.If{Cond: cond, Then: then, Else: els})
}

func (c *Context) While(cond ast.Expression, body *ast.Block, line int) {
	c.wholeArray(cond, line)
	c.push(&ast.While{Cond: cond, Body: body})
}

// PrintString shows a literal string.
func (c *Context) PrintString(s string, line int) {
	if len(s) > types.MaxLiteralStringLength {
		c.report(errors.LiteralStringOverflow{Location: c.loc(line)})
		return
	}
	c.push(&ast.Print{Str: s})
}

// Print shows the value of expr. A whole chr array is shown as text.
func (c *Context) Print(expr ast.Expression, line int) {
	if v, ok := expr.(*ast.Variable); ok && types.IsArray(v.Type()) && !types.IsArrayOfChr(v.Type()) {
		c.report(errors.BadArrayUsage{Location: c.loc(line), Name: v.Name})
	}
	c.push(&ast.Print{Expr: expr})
}

// Read reads a value from standard input into dst.
func (c *Context) Read(dst ast.Expression, line int) {
	c.wholeArray(dst, line)
	c.push(&ast.Read{Dst: dst})
}
