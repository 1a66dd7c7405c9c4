package codegen

import (
	"encoding/json"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/pontaoski/s3c/ast"
	"github.com/ztrue/tracerr"
)

const typeInfoGlobal = "__s3c_types"

// TypeInfo describes the functions of a compiled module. It is embedded
// in LLVM output so other tools can recover the signatures.
type TypeInfo struct {
	Functions map[string]string `json:"functions"`
}

func typeInfoOf(prog *ast.Program) TypeInfo {
	t := TypeInfo{Functions: make(map[string]string, len(prog.Functions))}
	for _, fn := range prog.Functions {
		t.Functions[fn.Name] = fn.Signature().String()
	}
	return t
}

func registerTypeInfoWithModule(t TypeInfo, m *ir.Module) {
	data, err := json.Marshal(t)
	if err != nil {
		panic(err)
	}

	g := m.NewGlobalDef(typeInfoGlobal, constant.NewCharArray(append(data, 0)))
	g.Immutable = true
}

// ReadTypeInfo recovers the type information embedded in m.
func ReadTypeInfo(m *ir.Module) (t TypeInfo, err error) {
	for _, g := range m.Globals {
		if g.Name() != typeInfoGlobal {
			continue
		}
		data, ok := g.Init.(*constant.CharArray)
		if !ok || len(data.X) == 0 {
			break
		}
		err = json.Unmarshal(data.X[:len(data.X)-1], &t)
		return t, tracerr.Wrap(err)
	}
	return TypeInfo{}, tracerr.Wrap(newError("module has no %s global", typeInfoGlobal))
}
