package analyzer

import (
	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/errors"
	"github.com/pontaoski/s3c/symtable"
	"github.com/pontaoski/s3c/types"
)

type CheckKind int

const (
	// CallCheck resolves the callee of a call and checks its arguments.
	CallCheck CheckKind = iota
	// AssignCheck checks a value that was not typed when it was assigned.
	AssignCheck
	// ReturnCheck checks a returned value that was not typed yet.
	ReturnCheck
	// OperatorCheck checks the operands of an arithmetic operation.
	OperatorCheck
)

var checkKindNames = map[CheckKind]string{
	CallCheck:     "call",
	AssignCheck:   "assignment",
	ReturnCheck:   "return",
	OperatorCheck: "operator",
}

func (k CheckKind) String() string {
	return checkKindNames[k]
}

// DeferredCheck is a check that runs once the whole program is known.
type DeferredCheck struct {
	Kind     CheckKind
	Location errors.Location
	// Name is the callee, the assigned variable, the enclosing function or
	// the operator.
	Name string
	// Expected is the destination type or the declared return type.
	Expected types.Type
	Node     ast.Expression
}

// AlreadyDrainingError is raised when a check is queued while the queue
// is being drained.
type AlreadyDrainingError struct {
	Check DeferredCheck
}

func (e AlreadyDrainingError) Error() string {
	return "queued a " + e.Check.Kind.String() + " check while draining"
}

func (c *Context) deferCheck(check DeferredCheck) {
	if c.draining {
		panic(AlreadyDrainingError{check})
	}
	c.deferred = append(c.deferred, check)
}

// Deferred returns the checks waiting for Finalize.
func (c *Context) Deferred() []DeferredCheck {
	return c.deferred
}

// Finalize runs every deferred check in the order they were queued, then
// requires a main function. Calls and operations that were typed None get
// their final type on the way. It returns the program.
func (c *Context) Finalize() *ast.Program {
	queue := c.deferred
	c.deferred = nil

	plog.Debugf("draining %d deferred checks", len(queue))
	c.draining = true
	for _, check := range queue {
		c.run(check)
	}
	c.draining = false

	if c.program.Function("main") == nil {
		c.report(errors.NoEntryPoint{})
	}
	return c.program
}

func (c *Context) run(check DeferredCheck) {
	switch check.Kind {
	case CallCheck:
		c.checkCall(check)
	case AssignCheck:
		c.checkAssignTypes(check.Location, check.Name, check.Expected, c.resolve(check.Node), check.Node)
	case ReturnCheck:
		c.checkReturn(check.Location, check.Name, check.Expected, c.resolve(check.Node), true)
	case OperatorCheck:
		op := check.Node.(*ast.BinaryOp)
		l, r := c.resolve(op.Left), c.resolve(op.Right)
		if voidCall(op.Left) || voidCall(op.Right) {
			c.report(errors.OperatorError{Location: check.Location, Operator: check.Name})
			return
		}
		if types.IsUnknown(l) || types.IsUnknown(r) {
			return
		}
		if !types.IsNumber(l) || !types.IsNumber(r) {
			c.report(errors.OperatorError{Location: check.Location, Operator: check.Name})
		}
		op.Resolve(c.resolve(op))
	}
}

func (c *Context) checkCall(check DeferredCheck) {
	call := check.Node.(*ast.FunctionCall)

	sym, ok := c.Symbols.LookupGlobal(call.Name)
	if !ok || sym.Kind != symtable.Function {
		c.report(errors.UndefinedSymbol{Location: check.Location, Name: call.Name})
		return
	}
	sig := sym.Type.(*types.Function)
	call.Resolve(sig.Evaluated())

	found := make([]types.Type, 0, len(call.Args))
	for _, arg := range call.Args {
		found = append(found, c.resolve(arg))
	}

	if len(found) != len(sig.Arguments) {
		c.report(errors.FuncallTypeError{Location: check.Location, Name: call.Name, Expected: sig.Arguments, Found: found})
		return
	}
	for i, t := range found {
		if types.IsUnknown(t) {
			continue
		}
		if !sig.Arguments[i].Compare(t) {
			c.report(errors.FuncallTypeError{Location: check.Location, Name: call.Name, Expected: sig.Arguments, Found: found})
			return
		}
	}
}

// resolve recomputes the type of e now that every function is known.
func (c *Context) resolve(e ast.Expression) types.Type {
	switch n := e.(type) {
	case nil:
		return types.Nil
	case *ast.FunctionCall:
		if !types.IsNone(n.Type()) {
			return n.Type()
		}
		sym, ok := c.Symbols.LookupGlobal(n.Name)
		if !ok || sym.Kind != symtable.Function {
			return types.NewNone()
		}
		return sym.Type.Evaluated()
	case *ast.BinaryOp:
		if !types.IsNone(n.Type()) {
			return n.Type()
		}
		l, r := c.resolve(n.Left), c.resolve(n.Right)
		switch {
		case types.IsUnknown(l) || types.IsUnknown(r):
			return types.NewNone()
		case !types.IsNumber(l) || !types.IsNumber(r):
			return l
		}
		return types.SelectType(l, r)
	}
	return e.Type()
}
