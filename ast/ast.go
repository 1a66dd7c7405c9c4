// Package ast is the typed tree built by the analyzer. Every node below a
// Function is owned by that function, and the type of a node never changes
// once it is known. Calls and operations built before a callee was defined
// are typed None until the analyzer resolves them.
package ast

//go:generate sh -c "cd ../tool && go run . ../ast/nodes.adt ../ast/nodes_gen.go ast"

import (
	"github.com/pontaoski/s3c/types"
)

// Expression is a node that carries a type.
type Expression interface {
	Node
	Type() types.Type
}

type Literal struct {
	Int int64
	Flt float64
	Chr byte
	Str string
}

type Value struct {
	typ     types.Type
	Literal Literal
}

func NewInt(v int64) *Value       { return &Value{typ: types.Int, Literal: Literal{Int: v}} }
func NewFlt(v float64) *Value     { return &Value{typ: types.Flt, Literal: Literal{Flt: v}} }
func NewChr(v byte) *Value        { return &Value{typ: types.Chr, Literal: Literal{Chr: v}} }
func NewNilValue() *Value         { return &Value{typ: types.Nil} }
func (v *Value) Type() types.Type { return v.typ }

// NewString builds a string literal, typed as an array of chr of its own
// length.
func NewString(s string) *Value {
	return &Value{typ: types.NewStaticArray(types.Chr, len(s)), Literal: Literal{Str: s}}
}

// NewValue builds a literal of an arbitrary type.
func NewValue(t types.Type, lit Literal) *Value {
	return &Value{typ: t, Literal: lit}
}

type Variable struct {
	Name string
	typ  types.Type
}

func NewVariable(name string, t types.Type) *Variable {
	return &Variable{Name: name, typ: t}
}

func (v *Variable) Type() types.Type { return v.typ }

// ArrayAccess is typed with the element type of the array.
type ArrayAccess struct {
	Name  string
	Index Expression
	typ   types.Type
}

func NewArrayAccess(name string, t types.Type, index Expression) *ArrayAccess {
	return &ArrayAccess{Name: name, Index: index, typ: t}
}

func (a *ArrayAccess) Type() types.Type { return a.typ }

// Assignment stores Src in Dst, which is a *Variable or an *ArrayAccess.
type Assignment struct {
	Dst Expression
	Src Expression
}

type Declaration struct {
	Var *Variable
}

type ArrayDeclaration struct {
	Var  *Variable
	Size int
}

// FunctionCall is typed with the return type of the callee, or None when
// the callee was not known when the call was built.
type FunctionCall struct {
	Name string
	Args []Expression
	typ  types.Type
}

func NewFunctionCall(name string, args []Expression, t types.Type) *FunctionCall {
	if t == nil {
		t = types.NewNone()
	}
	return &FunctionCall{Name: name, Args: args, typ: t}
}

func (f *FunctionCall) Type() types.Type { return f.typ }

// Resolve sets the type of a call that was typed None. Known types are
// kept.
func (f *FunctionCall) Resolve(t types.Type) {
	if types.IsNone(f.typ) && t != nil {
		f.typ = t
	}
}

type Function struct {
	Name   string
	Params []*Variable
	Body   *Block
	typ    *types.Function
}

func NewFunction(name string, params []*Variable, body *Block, t *types.Function) *Function {
	return &Function{Name: name, Params: params, Body: body, typ: t}
}

func (f *Function) Type() types.Type           { return f.typ }
func (f *Function) Signature() *types.Function { return f.typ }

type Block struct {
	Statements []Node
}

func NewBlock() *Block {
	return &Block{}
}

func (b *Block) Add(n Node) {
	b.Statements = append(b.Statements, n)
}

type If struct {
	Cond Expression
	Then *Block
	// Else is nil when there is no else branch.
	Else *Block
}

type For struct {
	Var   *Variable
	Begin Expression
	End   Expression
	Step  Expression
	Body  *Block
}

type While struct {
	Cond Expression
	Body *Block
}

type BinaryOp struct {
	Op    Operator
	Left  Expression
	Right Expression
	typ   types.Type
}

func NewBinaryOp(op Operator, left, right Expression, t types.Type) *BinaryOp {
	return &BinaryOp{Op: op, Left: left, Right: right, typ: t}
}

func (b *BinaryOp) Type() types.Type { return b.typ }

func (b *BinaryOp) Resolve(t types.Type) {
	if types.IsNone(b.typ) && t != nil {
		b.typ = t
	}
}

type Not struct {
	Operand Expression
}

func (n *Not) Type() types.Type { return types.Int }

// Print shows either a literal string (Expr is nil) or the value of Expr.
type Print struct {
	Str  string
	Expr Expression
}

type Read struct {
	Dst Expression
}

type Return struct {
	Expr Expression
}

type Program struct {
	Functions []*Function
}

func NewProgram() *Program {
	return &Program{}
}

func (p *Program) AddFunction(f *Function) {
	p.Functions = append(p.Functions, f)
}

// Function returns the function named name, or nil.
func (p *Program) Function(name string) *Function {
	for _, f := range p.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}
