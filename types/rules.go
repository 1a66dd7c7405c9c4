package types

// PrimitiveOf returns the primitive kind of t when t is a primitive.
func PrimitiveOf(t Type) (PrimitiveKind, bool) {
	p, ok := t.(*Primitive)
	if !ok {
		return NIL, false
	}
	return p.Type, true
}

// SelectType is the promotion rule of arithmetic operators. Operands must
// already be known to be numbers.
func SelectType(left, right Type) Type {
	l, _ := PrimitiveOf(left.Evaluated())
	r, _ := PrimitiveOf(right.Evaluated())
	if l == INT && r == INT {
		return Int
	}
	return Flt
}

// IsCastableTo reports whether a value of type found may be implicitly
// converted to expected.
func IsCastableTo(expected, found Type) bool {
	e, ok := PrimitiveOf(expected)
	if !ok {
		return false
	}
	f, ok := PrimitiveOf(found)
	if !ok {
		return false
	}

	switch e {
	case INT:
		return f == FLT || f == INT || f == CHR
	case CHR:
		return f == INT || f == CHR
	case FLT:
		return f == INT
	}
	return false
}

func IsNumber(t Type) bool {
	if t == nil {
		return false
	}
	p, ok := PrimitiveOf(t.Evaluated())
	return ok && (p == INT || p == FLT)
}

func IsNil(t Type) bool {
	p, ok := PrimitiveOf(t)
	return ok && p == NIL
}

func IsNone(t Type) bool {
	_, ok := t.(*None)
	return ok
}

// IsUnknown reports types that checks must skip: missing, nil or none.
func IsUnknown(t Type) bool {
	return t == nil || IsNil(t) || IsNone(t)
}

func IsArray(t Type) bool {
	switch t.(type) {
	case *StaticArray, *DynamicArray:
		return true
	}
	return false
}

func IsArrayOfChr(t Type) bool {
	switch a := t.(type) {
	case *StaticArray:
		return a.Element.Compare(Chr)
	case *DynamicArray:
		return a.Element.Compare(Chr)
	}
	return false
}

// ArraySize returns the declared size of a static array.
func ArraySize(t Type) (int, bool) {
	a, ok := t.(*StaticArray)
	if !ok {
		return 0, false
	}
	return a.Size, true
}

// ReturnType returns the return type of a function type, nil otherwise.
func ReturnType(t Type) Type {
	if f, ok := t.(*Function); ok {
		return f.Return
	}
	return Nil
}
