package errors

import (
	"fmt"

	"github.com/pontaoski/s3c/types"
)

type Severity int

const (
	Warning Severity = iota
	Error
)

// Diagnostic is a recoverable problem found while analyzing a program.
type Diagnostic interface {
	error
	Severity() Severity
}

// Location is the file and line a diagnostic is attributed to.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

type UndefinedSymbol struct {
	Location
	Name string
}

func (e UndefinedSymbol) Error() string {
	return fmt.Sprintf("%s: undefined symbol %s.", e.Location, e.Name)
}

type MultipleDefinition struct {
	Location
	Name string
}

func (e MultipleDefinition) Error() string {
	return fmt.Sprintf("%s: redefinition of %s.", e.Location, e.Name)
}

// UnexpectedReturn is a return statement inside a procedure.
type UnexpectedReturn struct {
	Location
	Function string
}

func (e UnexpectedReturn) Error() string {
	return fmt.Sprintf("%s: found return statement in %s which is of type nil.", e.Location, e.Function)
}

type BadArrayUsage struct {
	Location
	Name string
}

func (e BadArrayUsage) Error() string {
	return fmt.Sprintf("%s: %s can't be used as an array.", e.Location, e.Name)
}

type NoEntryPoint struct{}

func (e NoEntryPoint) Error() string { return "no entry point." }

type OperatorError struct {
	Location
	Operator string
}

func (e OperatorError) Error() string {
	return fmt.Sprintf("%s: bad usage of operator %s.", e.Location, e.Operator)
}

type LiteralStringOverflow struct {
	Location
}

func (e LiteralStringOverflow) Error() string {
	return fmt.Sprintf("%s: literal string overflow.", e.Location)
}

type FuncallTypeError struct {
	Location
	Name     string
	Expected []types.Type
	Found    []types.Type
}

func (e FuncallTypeError) Error() string {
	return fmt.Sprintf("%s: type error in %s, the expected type was %s but %s was found.",
		e.Location, e.Name, types.List(e.Expected), types.List(e.Found))
}

// TypeAssignedWarning is an assignment whose value can be cast to the
// destination type.
type TypeAssignedWarning struct {
	Location
	Name     string
	Expected types.Type
	Found    types.Type
}

func (e TypeAssignedWarning) Error() string {
	return typeAssignedMessage(e.Location, e.Name, e.Expected, e.Found)
}

// TypeAssignedError is an assignment whose value cannot be cast to the
// destination type.
type TypeAssignedError struct {
	Location
	Name     string
	Expected types.Type
	Found    types.Type
}

func (e TypeAssignedError) Error() string {
	return typeAssignedMessage(e.Location, e.Name, e.Expected, e.Found)
}

func typeAssignedMessage(loc Location, name string, expected, found types.Type) string {
	return fmt.Sprintf("%s: in assignment, %s is of type %s but the value assigned is of type %s.",
		loc, name, expected, found)
}

type ReturnTypeWarning struct {
	Location
	Function string
	Expected types.Type
	Found    types.Type
}

func (e ReturnTypeWarning) Error() string {
	return returnTypeMessage(e.Location, e.Function, e.Expected, e.Found)
}

type ReturnTypeError struct {
	Location
	Function string
	Expected types.Type
	Found    types.Type
}

func (e ReturnTypeError) Error() string {
	return returnTypeMessage(e.Location, e.Function, e.Expected, e.Found)
}

func returnTypeMessage(loc Location, function string, expected, found types.Type) string {
	return fmt.Sprintf("%s: in %s, found return value of type %s but this function is of type %s.",
		loc, function, found, expected)
}

func (UndefinedSymbol) Severity() Severity       { return Error }
func (MultipleDefinition) Severity() Severity    { return Error }
func (UnexpectedReturn) Severity() Severity      { return Error }
func (BadArrayUsage) Severity() Severity         { return Error }
func (NoEntryPoint) Severity() Severity          { return Error }
func (OperatorError) Severity() Severity         { return Error }
func (LiteralStringOverflow) Severity() Severity { return Error }
func (FuncallTypeError) Severity() Severity      { return Error }
func (TypeAssignedError) Severity() Severity     { return Error }
func (ReturnTypeError) Severity() Severity       { return Error }
func (TypeAssignedWarning) Severity() Severity   { return Warning }
func (ReturnTypeWarning) Severity() Severity     { return Warning }
