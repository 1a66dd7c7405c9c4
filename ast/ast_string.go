package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pontaoski/s3c/types"
)

func (v *Value) String() string {
	switch t := v.typ.(type) {
	case *types.Primitive:
		switch t.Type {
		case types.INT:
			return strconv.FormatInt(v.Literal.Int, 10)
		case types.FLT:
			return strconv.FormatFloat(v.Literal.Flt, 'g', -1, 64)
		case types.CHR:
			return strconv.QuoteRune(rune(v.Literal.Chr))
		case types.STR:
			return strconv.Quote(v.Literal.Str)
		}
		return "nil"
	case *types.StaticArray:
		return strconv.Quote(v.Literal.Str)
	}
	return "?"
}

func (v *Variable) String() string { return v.Name }

func (a *ArrayAccess) String() string {
	return fmt.Sprintf("%s[%s]", a.Name, a.Index)
}

func (a *Assignment) String() string {
	return fmt.Sprintf("Assignment(%s, %s)", a.Dst, a.Src)
}

func (d *Declaration) String() string {
	return fmt.Sprintf("Declaration(%s %s)", d.Var.Type(), d.Var.Name)
}

func (d *ArrayDeclaration) String() string {
	return fmt.Sprintf("ArrayDeclaration(%s[%d])", d.Var.Name, d.Size)
}

func (f *FunctionCall) String() string {
	return fmt.Sprintf("Funcall(%s, [%s])", f.Name, joinExpressions(f.Args))
}

func (f *Function) String() string {
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	return fmt.Sprintf("Function(%s, [%s], %s)", f.Name, strings.Join(params, ", "), f.Body)
}

func (b *Block) String() string {
	statements := make([]string, 0, len(b.Statements))
	for _, s := range b.Statements {
		statements = append(statements, fmt.Sprint(s))
	}
	return "Block(" + strings.Join(statements, ", ") + ")"
}

func (i *If) String() string {
	if i.Else == nil {
		return fmt.Sprintf("If(%s, %s)", i.Cond, i.Then)
	}
	return fmt.Sprintf("If(%s, %s, Else(%s))", i.Cond, i.Then, i.Else)
}

func (f *For) String() string {
	return fmt.Sprintf("For(%s, range(%s, %s, %s), %s)", f.Var, f.Begin, f.End, f.Step, f.Body)
}

func (w *While) String() string {
	return fmt.Sprintf("While(%s, %s)", w.Cond, w.Body)
}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("%s(%s, %s)", b.Op.Name(), b.Left, b.Right)
}

func (n *Not) String() string { return fmt.Sprintf("NotOP(%s)", n.Operand) }

func (p *Print) String() string {
	if p.Expr == nil {
		return fmt.Sprintf("Print(%q)", p.Str)
	}
	return fmt.Sprintf("Print(%s)", p.Expr)
}

func (r *Read) String() string { return fmt.Sprintf("Read(%s)", r.Dst) }

func (r *Return) String() string {
	if r.Expr == nil {
		return "Return()"
	}
	return fmt.Sprintf("Return(%s)", r.Expr)
}

func (p *Program) String() string {
	functions := make([]string, 0, len(p.Functions))
	for _, f := range p.Functions {
		functions = append(functions, f.String())
	}
	return strings.Join(functions, "\n")
}

func joinExpressions(es []Expression) string {
	parts := make([]string, 0, len(es))
	for _, e := range es {
		parts = append(parts, fmt.Sprint(e))
	}
	return strings.Join(parts, ", ")
}
