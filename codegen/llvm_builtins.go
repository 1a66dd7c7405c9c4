package codegen

import (
	"hash/fnv"
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

func hash(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	return strconv.FormatUint(uint64(h.Sum32()), 10)
}

// addBuiltins declares the C functions print and read lower to.
func addBuiltins(m *ir.Module) map[string]*ir.Func {
	ret := make(map[string]*ir.Func)
	for _, name := range []string{"printf", "scanf"} {
		fn := m.NewFunc(name, lltypes.I32, ir.NewParam("format", lltypes.I8Ptr))
		fn.Sig.Variadic = true
		ret[name] = fn
	}
	return ret
}

// str returns the global holding s followed by a NUL byte. Identical
// strings share one global.
func (g *llvmGen) str(s string) *ir.Global {
	if global, ok := g.stringConstants[s]; ok {
		return global
	}
	global := g.module.NewGlobalDef("_str_"+hash(s), constant.NewCharArrayFromString(s+"\x00"))
	global.Immutable = true
	g.stringConstants[s] = global
	return global
}

// cstr returns an i8* to the NUL terminated s.
func (g *llvmGen) cstr(s string) value.Value {
	global := g.str(s)
	zero := constant.NewInt(lltypes.I64, 0)
	return g.block.NewGetElementPtr(global.ContentType, global, zero, zero)
}

func (g *llvmGen) printf(format string, args ...value.Value) {
	g.block.NewCall(g.builtins["printf"], append([]value.Value{g.cstr(format)}, args...)...)
}

func (g *llvmGen) scanf(format string, dst value.Value) {
	g.block.NewCall(g.builtins["scanf"], g.cstr(format), dst)
}
