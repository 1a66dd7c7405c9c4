package analyzer

import (
	"fmt"

	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/errors"
	"github.com/pontaoski/s3c/symtable"
	"github.com/pontaoski/s3c/types"
)

// Variable references name without an index. An undefined name is
// reported and yields a Nil typed variable, and so does a function name,
// which is not a value.
func (c *Context) Variable(name string, line int) ast.Expression {
	sym, ok := c.Symbols.Lookup(name)
	if !ok || sym.Kind == symtable.Function {
		c.report(errors.UndefinedSymbol{Location: c.loc(line), Name: name})
		return ast.NewVariable(name, types.Nil)
	}
	return ast.NewVariable(name, sym.Type)
}

// ArrayAccess references name[index]. The node has the element type.
func (c *Context) ArrayAccess(name string, index ast.Expression, line int) ast.Expression {
	sym, ok := c.Symbols.Lookup(name)
	if !ok {
		c.report(errors.UndefinedSymbol{Location: c.loc(line), Name: name})
		return ast.NewArrayAccess(name, types.Nil, index)
	}
	if sym.Kind != symtable.LocalArray || !types.IsArray(sym.Type) {
		c.report(errors.BadArrayUsage{Location: c.loc(line), Name: name})
		return ast.NewArrayAccess(name, types.Nil, index)
	}
	return ast.NewArrayAccess(name, sym.Type.Evaluated(), index)
}

// String builds a string literal, typed as a chr array of its length.
func (c *Context) String(s string, line int) ast.Expression {
	if len(s) > types.MaxLiteralStringLength {
		c.report(errors.LiteralStringOverflow{Location: c.loc(line)})
		return ast.NewNilValue()
	}
	return ast.NewString(s)
}

// Operator builds a binary operation. Comparisons and boolean operators
// are always int. Arithmetic needs numeric operands; an operand whose type
// is not known yet postpones the check to Finalize.
func (c *Context) Operator(op ast.Operator, left, right ast.Expression, line int) ast.Expression {
	if !op.IsArithmetic() {
		return ast.NewBinaryOp(op, left, right, types.Int)
	}

	lt, rt := left.Type(), right.Type()

	if c.wholeArray(left, line) || c.wholeArray(right, line) {
		return ast.NewBinaryOp(op, left, right, types.Nil)
	}

	switch {
	case types.IsNone(lt) || types.IsNone(rt):
		n := ast.NewBinaryOp(op, left, right, types.NewNone())
		c.deferCheck(DeferredCheck{Kind: OperatorCheck, Location: c.loc(line), Name: op.String(), Node: n})
		return n
	case voidCall(left) || voidCall(right):
		c.report(errors.OperatorError{Location: c.loc(line), Operator: op.String()})
		return ast.NewBinaryOp(op, left, right, types.Nil)
	case types.IsNil(lt) || types.IsNil(rt):
		return ast.NewBinaryOp(op, left, right, types.Nil)
	case !types.IsNumber(lt) || !types.IsNumber(rt):
		c.report(errors.OperatorError{Location: c.loc(line), Operator: op.String()})
		return ast.NewBinaryOp(op, left, right, lt)
	}

	return ast.NewBinaryOp(op, left, right, types.SelectType(lt, rt))
}

// Not negates operand. The result is an int.
func (c *Context) Not(operand ast.Expression, line int) ast.Expression {
	c.wholeArray(operand, line)
	return &ast.Not{Operand: operand}
}

// FunctionCall builds a call to name. A callee that is already known gives
// the call its return type; otherwise the call is None until Finalize.
// Arguments are always checked by Finalize.
func (c *Context) FunctionCall(name string, args []ast.Expression, line int) *ast.FunctionCall {
	var t types.Type
	if sym, ok := c.Symbols.LookupGlobal(name); ok && sym.Kind == symtable.Function {
		t = sym.Type.Evaluated()
	}

	call := ast.NewFunctionCall(name, args, t)
	c.deferCheck(DeferredCheck{Kind: CallCheck, Location: c.loc(line), Name: name, Node: call})
	return call
}

// wholeArray reports an array variable used where a single value is
// needed.
func (c *Context) wholeArray(e ast.Expression, line int) bool {
	v, ok := e.(*ast.Variable)
	if !ok || !types.IsArray(v.Type()) {
		return false
	}
	c.report(errors.BadArrayUsage{Location: c.loc(line), Name: v.Name})
	return true
}

// voidCall reports whether e calls a function that returns nothing.
func voidCall(e ast.Expression) bool {
	call, ok := e.(*ast.FunctionCall)
	return ok && types.IsNil(call.Type())
}

func nameOf(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Variable:
		return n.Name
	case *ast.ArrayAccess:
		return n.Name
	case *ast.FunctionCall:
		return n.Name
	}
	return fmt.Sprint(e)
}
