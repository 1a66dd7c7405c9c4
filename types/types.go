// Package types implements the type system of the source language:
// primitives, fixed-size arrays, function signatures and the None
// placeholder used for call sites whose target is not known yet.
package types

import (
	"fmt"
	"strings"
)

// MaxLiteralStringLength is the longest string literal accepted by the
// analyzer, in bytes.
const MaxLiteralStringLength = 1000

type PrimitiveKind int

const (
	NIL PrimitiveKind = iota
	INT
	FLT
	CHR
	STR
)

func (p PrimitiveKind) String() string {
	switch p {
	case INT:
		return "int"
	case FLT:
		return "flt"
	case CHR:
		return "chr"
	case STR:
		return "str"
	}
	return "nil"
}

type Kind int

const (
	KindPrimitive Kind = iota
	KindStaticArray
	KindDynamicArray
	KindObj
	KindFunction
	KindNone
)

// Type is implemented by every type of the language. Compare is called on
// the destination with the source as argument and is the only authority
// on assignability.
type Type interface {
	String() string
	Kind() Kind
	// Evaluated peels one layer of array or function wrapping.
	Evaluated() Type
	Compare(other Type) bool
}

type Primitive struct {
	Type PrimitiveKind
}

type StaticArray struct {
	Element Type
	Size    int
}

// DynamicArray is part of the type language but no construct of the
// analyzer produces it.
type DynamicArray struct {
	Element Type
}

type Function struct {
	Return    Type
	Arguments []Type
}

// Obj is a composite type. It cannot be evaluated.
type Obj struct {
	Name   string
	Fields map[string]Type
}

// None stands for a type that is not known yet.
type None struct{}

var (
	Nil = NewPrimitive(NIL)
	Int = NewPrimitive(INT)
	Flt = NewPrimitive(FLT)
	Chr = NewPrimitive(CHR)
	Str = NewPrimitive(STR)
)

func NewPrimitive(k PrimitiveKind) *Primitive { return &Primitive{Type: k} }

func NewStaticArray(element Type, size int) *StaticArray {
	return &StaticArray{Element: element, Size: size}
}

func NewDynamicArray(element Type) *DynamicArray { return &DynamicArray{Element: element} }

func NewFunction(ret Type, args ...Type) *Function {
	if ret == nil {
		ret = Nil
	}
	return &Function{Return: ret, Arguments: args}
}

func NewObj(name string, fields map[string]Type) *Obj {
	return &Obj{Name: name, Fields: fields}
}

func NewNone() *None { return &None{} }

// UnsupportedTypeError is raised when an operation reaches a type that the
// language declares but does not implement.
type UnsupportedTypeError struct {
	Type Type
	Op   string
}

func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s is not supported for type %s", e.Op, e.Type)
}

func (p *Primitive) String() string  { return p.Type.String() }
func (p *Primitive) Kind() Kind      { return KindPrimitive }
func (p *Primitive) Evaluated() Type { return p }

func (p *Primitive) Compare(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o.Type == p.Type
}

func (a *StaticArray) String() string  { return fmt.Sprintf("%s[%d]", a.Element, a.Size) }
func (a *StaticArray) Kind() Kind      { return KindStaticArray }
func (a *StaticArray) Evaluated() Type { return a.Element }

// Compare accepts any array or literal string of the same element type
// that fits in a.
func (a *StaticArray) Compare(other Type) bool {
	switch o := other.(type) {
	case *StaticArray:
		return a.Element.Compare(o.Element) && o.Size <= a.Size
	case *Primitive:
		return o.Type == STR && a.Element.Compare(Chr)
	}
	return false
}

func (a *DynamicArray) String() string  { return fmt.Sprintf("%s[dyn]", a.Element) }
func (a *DynamicArray) Kind() Kind      { return KindDynamicArray }
func (a *DynamicArray) Evaluated() Type { return a.Element }

func (a *DynamicArray) Compare(other Type) bool {
	o, ok := other.(*DynamicArray)
	return ok && a.Element.Compare(o.Element)
}

func (f *Function) String() string  { return f.Return.String() + List(f.Arguments) }
func (f *Function) Kind() Kind      { return KindFunction }
func (f *Function) Evaluated() Type { return f.Return }

func (f *Function) Compare(other Type) bool {
	o, ok := other.(*Function)
	if !ok || !f.Return.Compare(o.Return) {
		return false
	}
	return CompareAll(f.Arguments, o.Arguments)
}

func (o *Obj) String() string { return o.Name }
func (o *Obj) Kind() Kind     { return KindObj }

func (o *Obj) Evaluated() Type {
	panic(UnsupportedTypeError{Type: o, Op: "evaluation"})
}

func (o *Obj) Compare(other Type) bool {
	t, ok := other.(*Obj)
	return ok && t.Name == o.Name
}

func (n *None) String() string  { return "none" }
func (n *None) Kind() Kind      { return KindNone }
func (n *None) Evaluated() Type { return n }

func (n *None) Compare(other Type) bool {
	_, ok := other.(*None)
	return ok
}

// CompareAll compares expected and found pairwise and requires the same
// arity.
func CompareAll(expected, found []Type) bool {
	if len(expected) != len(found) {
		return false
	}
	for i := range expected {
		if !expected[i].Compare(found[i]) {
			return false
		}
	}
	return true
}

// List renders a parenthesized, comma separated list of types.
func List(ts []Type) string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.String())
	}
	return "(" + strings.Join(names, ", ") + ")"
}
