package analyzer

import (
	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/errors"
	"github.com/pontaoski/s3c/symtable"
	"github.com/pontaoski/s3c/types"
)

type lifecycle int

const (
	notStarted lifecycle = iota
	inParameters
	inBody
	closed
)

type function struct {
	name       string
	line       int
	params     []*ast.Variable
	signature  *types.Function
	returnType types.Type
	state      lifecycle
	// accepted is false when the definition was refused because the name
	// was already taken.
	accepted bool
}

// BeginFunction starts the definition of name. A function that is already
// defined is refused: its body is still analyzed, but its signature is not
// registered and it is not added to the program.
func (c *Context) BeginFunction(name string, line int) bool {
	c.function = function{name: name, line: line, state: inParameters, returnType: types.Nil}
	c.Symbols.EnterScope()

	if _, ok := c.Symbols.LookupGlobal(name); ok {
		c.report(errors.MultipleDefinition{Location: c.loc(line), Name: name})
		return false
	}

	plog.Debugf("begin function %s at %s:%d", name, c.file, line)
	c.function.accepted = true
	return true
}

// Parameter declares a scalar parameter of the current function. A
// repeated name is reported but still counts towards the signature.
func (c *Context) Parameter(name string, t types.Type, line int) {
	c.function.params = append(c.function.params, ast.NewVariable(name, t))
	if !c.redefined(name, line) {
		c.Symbols.NewSymbol(name, t, symtable.FunParam)
	}
}

// ArrayParameter declares a parameter that is an array of size elements.
func (c *Context) ArrayParameter(name string, element types.Type, size int, line int) {
	c.function.params = append(c.function.params, ast.NewVariable(name, types.NewStaticArray(element, size)))
	if !c.redefined(name, line) {
		c.Symbols.NewArraySymbol(name, element, size, symtable.LocalArray)
	}
}

// SetFunctionType is called once every parameter is known. From then on
// the function can be called, including by itself.
func (c *Context) SetFunctionType(ret types.Type) {
	if ret == nil {
		ret = types.Nil
	}

	args := make([]types.Type, 0, len(c.function.params))
	for _, p := range c.function.params {
		args = append(args, p.Type())
	}

	c.function.returnType = ret
	c.function.signature = types.NewFunction(ret, args...)
	c.function.state = inBody

	if c.function.accepted {
		c.Symbols.NewGlobalSymbol(c.function.name, c.function.signature, symtable.Function)
	}
}

// EndFunction closes the current function with its body.
func (c *Context) EndFunction(body *ast.Block) {
	if c.function.signature == nil {
		c.SetFunctionType(types.Nil)
	}

	if c.function.accepted {
		c.program.AddFunction(ast.NewFunction(c.function.name, c.function.params, body, c.function.signature))
	} else {
		plog.Debugf("dropping refused definition of %s", c.function.name)
	}
	c.Symbols.LeaveScope()

	c.function.state = closed
}

func (c *Context) redefined(name string, line int) bool {
	if _, ok := c.Symbols.LookupLocal(name); ok {
		c.report(errors.MultipleDefinition{Location: c.loc(line), Name: name})
		return true
	}
	return false
}
