// Package analyzer builds the typed tree of a program while the parser
// feeds it constructs in source order. Checks that need the whole program
// are queued and run by Finalize.
package analyzer

import (
	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/errors"
	"github.com/pontaoski/s3c/symtable"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/s3c", "analyzer")

// Context is the state of one compilation. Nothing in it is shared with
// other compilations.
type Context struct {
	Symbols     *symtable.ContextManager
	Diagnostics *errors.Manager

	program  *ast.Program
	blocks   []*ast.Block
	file     string
	function function

	deferred []DeferredCheck
	draining bool
}

func New() *Context {
	return &Context{
		Symbols:     symtable.NewContextManager(),
		Diagnostics: errors.NewManager(),
		program:     ast.NewProgram(),
	}
}

// SetFile changes the file diagnostics are attributed to.
func (c *Context) SetFile(name string) {
	c.file = name
}

func (c *Context) File() string {
	return c.file
}

// Program returns the program built so far.
func (c *Context) Program() *ast.Program {
	return c.program
}

func (c *Context) loc(line int) errors.Location {
	return errors.Location{File: c.file, Line: line}
}

func (c *Context) report(d errors.Diagnostic) {
	plog.Debugf("diagnostic: %s", d)
	c.Diagnostics.Add(d)
}

// BeginBlock opens a new statement list. Statements built until the
// matching EndBlock are added to it.
func (c *Context) BeginBlock() {
	c.blocks = append(c.blocks, ast.NewBlock())
}

func (c *Context) EndBlock() *ast.Block {
	b := c.blocks[len(c.blocks)-1]
	c.blocks = c.blocks[:len(c.blocks)-1]
	return b
}

func (c *Context) EnterScope() {
	c.Symbols.EnterScope()
}

func (c *Context) LeaveScope() {
	c.Symbols.LeaveScope()
}

func (c *Context) push(n ast.Node) {
	c.blocks[len(c.blocks)-1].Add(n)
}
