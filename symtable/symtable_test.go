package symtable

import (
	"testing"

	"github.com/nalgeon/be"
	"github.com/pontaoski/s3c/types"
)

func TestLookupWalksParents(t *testing.T) {
	c := NewContextManager()
	c.NewSymbol("g", types.Int, LocalVar)

	c.EnterScope()
	c.NewSymbol("a", types.Flt, FunParam)
	c.EnterScope()
	c.NewSymbol("b", types.Chr, LocalVar)

	for _, name := range []string{"a", "b", "g"} {
		_, ok := c.Lookup(name)
		be.True(t, ok)
	}

	sym, ok := c.Lookup("a")
	be.True(t, ok)
	be.Equal(t, sym.Kind, FunParam)
	be.True(t, sym.Type.Compare(types.Flt))

	_, ok = c.LookupLocal("a")
	be.True(t, !ok)
}

func TestLookupIgnoresSiblings(t *testing.T) {
	c := NewContextManager()

	c.EnterScope()
	c.NewSymbol("x", types.Int, LocalVar)
	c.LeaveScope()

	c.EnterScope()
	_, ok := c.Lookup("x")
	be.True(t, !ok)
	c.LeaveScope()

	_, ok = c.Lookup("x")
	be.True(t, !ok)
	be.Equal(t, len(c.Global().Children()), 2)
}

func TestGlobalSymbolFromNestedScope(t *testing.T) {
	c := NewContextManager()
	c.EnterScope()
	c.EnterScope()
	c.NewGlobalSymbol("f", types.NewFunction(types.Int, types.Int), Function)
	c.LeaveScope()
	c.LeaveScope()

	sym, ok := c.LookupGlobal("f")
	be.True(t, ok)
	be.Equal(t, sym.Kind, Function)

	c.EnterScope()
	_, ok = c.Lookup("f")
	be.True(t, ok)
	c.LeaveScope()
}

func TestScopeTreeIsRetained(t *testing.T) {
	c := NewContextManager()
	c.EnterScope()
	c.NewSymbol("p", types.Int, FunParam)
	c.EnterScope()
	c.NewArraySymbol("s", types.Chr, 10, LocalArray)
	c.LeaveScope()
	c.LeaveScope()

	function := c.Global().Children()[0]
	be.Equal(t, function.Symbols()[0].Name, "p")

	block := function.Children()[0]
	be.True(t, block.Parent() == function)
	sym, ok := block.LookupLocal("s")
	be.True(t, ok)
	be.Equal(t, sym.Size, 10)
	be.Equal(t, sym.Type.String(), "chr[10]")
}

func TestNewArraySymbolFromArrayType(t *testing.T) {
	c := NewContextManager()
	c.NewArraySymbol("a", types.NewStaticArray(types.Int, 3), 5, LocalArray)

	sym, _ := c.Lookup("a")
	be.Equal(t, sym.Type.String(), "int[5]")
}

func TestLeavingGlobalScopePanics(t *testing.T) {
	defer func() {
		_, ok := recover().(UnbalancedScopeError)
		be.True(t, ok)
	}()

	NewContextManager().LeaveScope()
}
