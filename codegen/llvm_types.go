package codegen

import (
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/pontaoski/s3c/types"
)

var (
	Int  = lltypes.I64
	Flt  = lltypes.Double
	Chr  = lltypes.I8
	Bool = lltypes.I1
	Void = lltypes.Void
)

// llvmType maps a scalar or array type to its storage type. Arrays are
// stored inline as [N x T].
func llvmType(t types.Type) lltypes.Type {
	switch kind := t.(type) {
	case *types.Primitive:
		switch kind.Type {
		case types.INT:
			return Int
		case types.FLT:
			return Flt
		case types.CHR:
			return Chr
		case types.NIL:
			return Void
		}
	case *types.StaticArray:
		return lltypes.NewArray(uint64(kind.Size), llvmType(kind.Element))
	case *types.DynamicArray:
		return lltypes.NewPointer(llvmType(kind.Element))
	case *types.Function:
		args := make([]lltypes.Type, 0, len(kind.Arguments))
		for _, a := range kind.Arguments {
			args = append(args, paramType(a))
		}
		return lltypes.NewFunc(llvmType(kind.Return), args...)
	}
	panic(types.UnsupportedTypeError{Type: t, Op: "llvm lowering"})
}

// paramType is the type of a function parameter: arrays are passed as a
// pointer to their first element.
func paramType(t types.Type) lltypes.Type {
	if types.IsArray(t) {
		return lltypes.NewPointer(llvmType(t.Evaluated()))
	}
	return llvmType(t)
}
