package symtable

import (
	"fmt"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/s3c/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/s3c", "symtable")

// UnbalancedScopeError is raised when a scope is left more often than
// entered.
type UnbalancedScopeError struct{}

func (UnbalancedScopeError) Error() string {
	return "left the global scope"
}

// ContextManager tracks the current scope in the scope tree. Functions are
// registered in the global scope, whatever the current scope is.
type ContextManager struct {
	current *Scope
	global  *Scope
	scopes  int
}

func NewContextManager() *ContextManager {
	global := newScope(0, nil)
	return &ContextManager{
		current: global,
		global:  global,
		scopes:  1,
	}
}

// EnterScope creates a child of the current scope and makes it current.
func (c *ContextManager) EnterScope() {
	scope := newScope(c.scopes, c.current)
	c.scopes++
	c.current.children = append(c.current.children, scope)
	c.current = scope
	plog.Debugf("entered scope %d (parent %d)", scope.ID, scope.parent.ID)
}

// LeaveScope makes the parent of the current scope current. Leaving the
// global scope panics with UnbalancedScopeError.
func (c *ContextManager) LeaveScope() {
	if c.current.parent == nil {
		panic(UnbalancedScopeError{})
	}
	plog.Debugf("left scope %d", c.current.ID)
	c.current = c.current.parent
}

// NewSymbol adds a symbol to the current scope. It does not check for
// redefinitions.
func (c *ContextManager) NewSymbol(name string, t types.Type, kind Kind) {
	c.current.add(Symbol{Name: name, Type: t, Kind: kind})
}

// NewArraySymbol adds an array of size elements of the element type of t
// to the current scope.
func (c *ContextManager) NewArraySymbol(name string, t types.Type, size int, kind Kind) {
	element := t
	if types.IsArray(t) {
		element = t.Evaluated()
	}
	c.current.add(Symbol{
		Name: name,
		Type: types.NewStaticArray(element, size),
		Kind: kind,
		Size: size,
	})
}

// NewGlobalSymbol adds a symbol to the global scope.
func (c *ContextManager) NewGlobalSymbol(name string, t types.Type, kind Kind) {
	c.global.add(Symbol{Name: name, Type: t, Kind: kind})
}

func (c *ContextManager) Lookup(name string) (Symbol, bool) {
	return c.current.Lookup(name)
}

func (c *ContextManager) LookupLocal(name string) (Symbol, bool) {
	return c.current.LookupLocal(name)
}

func (c *ContextManager) LookupGlobal(name string) (Symbol, bool) {
	return c.global.LookupLocal(name)
}

func (c *ContextManager) Current() *Scope { return c.current }
func (c *ContextManager) Global() *Scope  { return c.global }

func (c *ContextManager) String() string {
	return fmt.Sprintf("ContextManager{current: %d, scopes: %d}", c.current.ID, c.scopes)
}
