package token

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL

	COLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	EQUALS

	PLUS
	MINUS
	STAR
	SLASH
	EQ
	GT
	LT
	GE
	LE

	EOS

	INT
	FLOAT
	CHAR
	STRING

	IDENT
	TYPE

	FN
	IF
	ELSE
	FOR
	IN
	RANGE
	WHILE
	RETURN
	PRINT
	READ
	AND
	OR
	XOR
	NOT
)

var kindNames = map[TokenKind]string{
	EOF:      "EOF",
	ILLEGAL:  "ILLEGAL",
	COLON:    "COLON",
	LPAREN:   "LPAREN",
	RPAREN:   "RPAREN",
	LBRACE:   "LBRACE",
	RBRACE:   "RBRACE",
	LBRACKET: "LBRACKET",
	RBRACKET: "RBRACKET",
	COMMA:    "COMMA",
	EQUALS:   "EQUALS",
	PLUS:     "PLUS",
	MINUS:    "MINUS",
	STAR:     "STAR",
	SLASH:    "SLASH",
	EQ:       "EQ",
	GT:       "GT",
	LT:       "LT",
	GE:       "GE",
	LE:       "LE",
	EOS:      "EOS",
	INT:      "INT",
	FLOAT:    "FLOAT",
	CHAR:     "CHAR",
	STRING:   "STRING",
	IDENT:    "IDENT",
	TYPE:     "TYPE",
	FN:       "FN",
	IF:       "IF",
	ELSE:     "ELSE",
	FOR:      "FOR",
	IN:       "IN",
	RANGE:    "RANGE",
	WHILE:    "WHILE",
	RETURN:   "RETURN",
	PRINT:    "PRINT",
	READ:     "READ",
	AND:      "AND",
	OR:       "OR",
	XOR:      "XOR",
	NOT:      "NOT",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// Keywords maps reserved words to their token kinds. The primitive type
// names are lexed as TYPE.
var Keywords = map[string]TokenKind{
	"int":    TYPE,
	"flt":    TYPE,
	"chr":    TYPE,
	"fn":     FN,
	"if":     IF,
	"else":   ELSE,
	"for":    FOR,
	"in":     IN,
	"range":  RANGE,
	"while":  WHILE,
	"return": RETURN,
	"print":  PRINT,
	"read":   READ,
	"and":    AND,
	"or":     OR,
	"xor":    XOR,
	"not":    NOT,
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

type Token struct {
	Kind     TokenKind
	Location Span
}
