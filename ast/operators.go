package ast

type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
	Eq
	Gt
	Lt
	Ge
	Le
	Or
	And
	Xor
)

var operatorSymbols = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Eq:  "==",
	Gt:  ">",
	Lt:  "<",
	Ge:  ">=",
	Le:  "<=",
	Or:  "or",
	And: "and",
	Xor: "xor",
}

var operatorNames = [...]string{
	Add: "AddOP",
	Sub: "SubOP",
	Mul: "MulOP",
	Div: "DivOP",
	Eq:  "EqOP",
	Gt:  "GtOP",
	Lt:  "LtOP",
	Ge:  "GeOP",
	Le:  "LeOP",
	Or:  "OrOP",
	And: "AndOP",
	Xor: "XorOP",
}

// String returns the operator as written in source.
func (o Operator) String() string { return operatorSymbols[o] }

// Name is the operator name used when displaying trees.
func (o Operator) Name() string { return operatorNames[o] }

func (o Operator) IsArithmetic() bool { return o <= Div }

func (o Operator) IsComparison() bool { return o >= Eq && o <= Le }

func (o Operator) IsBoolean() bool { return o >= Or }
