package errors

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/pontaoski/s3c/types"
)

func TestManagerErrorsAreSticky(t *testing.T) {
	m := NewManager()
	be.True(t, !m.HasErrors())

	m.Add(TypeAssignedWarning{Location{"a.prog", 3}, "x", types.Int, types.Flt})
	be.True(t, !m.HasErrors())
	be.Equal(t, m.Err(), nil)

	m.Add(NoEntryPoint{})
	m.Add(ReturnTypeWarning{Location{"a.prog", 4}, "f", types.Int, types.Chr})
	be.True(t, m.HasErrors())
	be.Equal(t, len(m.Diagnostics()), 3)
	be.True(t, m.Err() != nil)
	be.True(t, strings.Contains(m.Err().Error(), "no entry point."))
}

func TestReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	be.Err(t, NewManager().Report(&buf), nil)
	be.Equal(t, buf.Len(), 0)
}

func TestReport(t *testing.T) {
	m := NewManager()
	m.Add(UndefinedSymbol{Location{"main.prog", 7}, "x"})
	m.Add(TypeAssignedWarning{Location{"main.prog", 8}, "y", types.Int, types.Flt})

	var buf bytes.Buffer
	be.Err(t, m.Report(&buf), nil)
	be.Equal(t, buf.String(),
		"[ERROR]: main.prog:7: undefined symbol x.\n"+
			"[WARN]: main.prog:8: in assignment, y is of type int but the value assigned is of type flt.\n")
}

func TestReportColor(t *testing.T) {
	m := NewManager()
	m.Color = true
	m.Add(NoEntryPoint{})

	var buf bytes.Buffer
	be.Err(t, m.Report(&buf), nil)
	be.Equal(t, buf.String(), "["+colorError+"ERROR"+colorReset+"]: no entry point.\n")
}

func TestFuncallTypeErrorMessage(t *testing.T) {
	err := FuncallTypeError{
		Location: Location{"lib.prog", 12},
		Name:     "add",
		Expected: []types.Type{types.Int, types.Int},
		Found:    []types.Type{types.Int},
	}
	be.Equal(t, err.Error(), "lib.prog:12: type error in add, the expected type was (int, int) but (int) was found.")
}
