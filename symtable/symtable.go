// Package symtable holds the scope tree of a compilation. Scopes are never
// removed once created, so the whole tree can be inspected after analysis.
package symtable

import (
	"sort"

	"github.com/pontaoski/s3c/types"
)

type Kind int

const (
	Function Kind = iota
	FunParam
	LocalVar
	LocalArray
)

func (k Kind) String() string {
	switch k {
	case Function:
		return "function"
	case FunParam:
		return "parameter"
	case LocalArray:
		return "array"
	}
	return "variable"
}

type Symbol struct {
	Name string
	Type types.Type
	Kind Kind
	// Size is the declared size of array symbols.
	Size int
}

type Scope struct {
	ID       int
	table    map[string]Symbol
	children []*Scope
	parent   *Scope
}

func newScope(id int, parent *Scope) *Scope {
	return &Scope{
		ID:     id,
		table:  map[string]Symbol{},
		parent: parent,
	}
}

// Lookup walks from s up to the root and returns the first symbol named
// name. Sibling and child scopes are never searched.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if sym, ok := scope.table[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// LookupLocal only searches s itself.
func (s *Scope) LookupLocal(name string) (Symbol, bool) {
	sym, ok := s.table[name]
	return sym, ok
}

func (s *Scope) add(sym Symbol) {
	s.table[sym.Name] = sym
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

func (s *Scope) Children() []*Scope {
	return s.children
}

// Symbols returns the symbols of s sorted by name.
func (s *Scope) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(s.table))
	for _, sym := range s.table {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].Name < syms[j].Name })
	return syms
}
