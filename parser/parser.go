// Package parser drives the analyzer from the token stream, one
// production at a time in source order.
package parser

import (
	"strconv"

	"github.com/pontaoski/s3c/analyzer"
	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/errors"
	"github.com/pontaoski/s3c/lexer"
	"github.com/pontaoski/s3c/token"
	"github.com/pontaoski/s3c/types"
	"github.com/ztrue/tracerr"
)

type Parser struct {
	l *lexer.Lexer
	c *analyzer.Context
}

func NewParser(l *lexer.Lexer, c *analyzer.Context) Parser {
	return Parser{l, c}
}

// Parse feeds every function of the input to the analyzer. It stops at
// the first syntax error; semantic problems end up in the analyzer's
// diagnostics instead.
func (p *Parser) Parse() (err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	for {
		tok, _ := p.l.LexExpecting(token.FN, token.EOF)
		if tok.Kind == token.EOF {
			return
		}
		p.parseFunction()
	}
}

// at attributes what follows to tok's file and returns its line.
func (p *Parser) at(tok token.Token) int {
	if tok.Location.From.Filename != p.c.File() {
		p.c.SetFile(tok.Location.From.Filename)
	}
	return tok.Location.From.Line
}

var primitives = map[string]types.Type{
	"int": types.Int,
	"flt": types.Flt,
	"chr": types.Chr,
}

func (p *Parser) parseType() types.Type {
	_, lit := p.l.LexExpecting(token.TYPE)
	return primitives[lit]
}

// parseSize reads an array size, [N].
func (p *Parser) parseSize() int {
	p.l.LexExpecting(token.LBRACKET)
	tok, lit := p.l.LexExpecting(token.INT)
	n, err := strconv.Atoi(lit)
	if err != nil {
		panic(errors.MalformedLiteral{Literal: lit, Location: tok.Location})
	}
	p.l.LexExpecting(token.RBRACKET)
	return n
}

// expected to be called after reading the fn keyword.
func (p *Parser) parseFunction() {
	tok, name := p.l.LexExpecting(token.IDENT)
	p.c.BeginFunction(name, p.at(tok))

	p.l.LexExpecting(token.LPAREN)
	if !p.l.PeekIs(token.RPAREN) {
		for {
			t := p.parseType()
			tok, param := p.l.LexExpecting(token.IDENT)
			if p.l.PeekIs(token.LBRACKET) {
				p.c.ArrayParameter(param, t, p.parseSize(), p.at(tok))
			} else {
				p.c.Parameter(param, t, p.at(tok))
			}

			if p.l.PeekIs(token.COMMA) {
				p.l.LexExpecting(token.COMMA)
				continue
			}
			break
		}
	}
	p.l.LexExpecting(token.RPAREN)

	var ret types.Type = types.Nil
	if p.l.PeekIs(token.COLON) {
		p.l.LexExpecting(token.COLON)
		ret = p.parseType()
	}
	p.c.SetFunctionType(ret)

	p.l.LexExpecting(token.LBRACE)
	p.c.BeginBlock()
	p.parseStatements()
	p.c.EndFunction(p.c.EndBlock())
}

// parseBlock reads a nested block, which gets its own scope.
func (p *Parser) parseBlock() *ast.Block {
	p.l.LexExpecting(token.LBRACE)
	p.c.EnterScope()
	p.c.BeginBlock()
	p.parseStatements()
	body := p.c.EndBlock()
	p.c.LeaveScope()
	return body
}

// parseStatements should be called when the parser is past the opening
// brace. It consumes the closing one.
func (p *Parser) parseStatements() {
	for !p.l.PeekIs(token.RBRACE) {
		p.parseStatement()
	}
	p.l.LexExpecting(token.RBRACE)
}

func (p *Parser) parseStatement() {
	tok, lit := p.l.LexExpecting(token.TYPE, token.IDENT, token.IF, token.FOR, token.WHILE, token.RETURN, token.PRINT, token.READ)
	line := p.at(tok)

	switch tok.Kind {
	case token.TYPE:
		_, name := p.l.LexExpecting(token.IDENT)
		if p.l.PeekIs(token.LBRACKET) {
			p.c.DeclareArray(name, primitives[lit], p.parseSize(), line)
		} else {
			p.c.Declare(name, primitives[lit], line)
		}
	case token.IDENT:
		if p.l.PeekIs(token.LPAREN) {
			p.c.CallStatement(p.parseCall(lit, line))
			break
		}
		dst := p.parseLValue(lit, line)
		p.l.LexExpecting(token.EQUALS)
		p.c.Assign(dst, p.parseExpression(), line)
	case token.IF:
		cond := p.parseCondition()
		then := p.parseBlock()
		var els *ast.Block
		if p.l.PeekIs(token.ELSE) {
			p.l.LexExpecting(token.ELSE)
			els = p.parseBlock()
		}
		p.c.If(cond, then, els, line)
		return
	case token.FOR:
		_, name := p.l.LexExpecting(token.IDENT)
		p.l.LexExpecting(token.IN)
		p.l.LexExpecting(token.RANGE)
		p.l.LexExpecting(token.LPAREN)
		begin := p.parseExpression()
		p.l.LexExpecting(token.COMMA)
		end := p.parseExpression()
		var step ast.Expression = ast.NewInt(1)
		if p.l.PeekIs(token.COMMA) {
			p.l.LexExpecting(token.COMMA)
			step = p.parseExpression()
		}
		p.l.LexExpecting(token.RPAREN)

		loop := p.c.ForHeader(name, begin, end, step, line)
		p.c.For(loop, p.parseBlock())
		return
	case token.WHILE:
		cond := p.parseCondition()
		p.c.While(cond, p.parseBlock(), line)
		return
	case token.RETURN:
		if p.l.PeekIs(token.EOS) {
			p.c.Return(nil, line)
		} else {
			p.c.Return(p.parseExpression(), line)
		}
	case token.PRINT:
		p.l.LexExpecting(token.LPAREN)
		if p.l.PeekIs(token.STRING) {
			_, s := p.l.LexExpecting(token.STRING)
			p.c.PrintString(s, line)
		} else {
			p.c.Print(p.parseExpression(), line)
		}
		p.l.LexExpecting(token.RPAREN)
	case token.READ:
		p.l.LexExpecting(token.LPAREN)
		_, name := p.l.LexExpecting(token.IDENT)
		p.c.Read(p.parseLValue(name, line), line)
		p.l.LexExpecting(token.RPAREN)
	}

	p.l.LexExpecting(token.EOS)
}

func (p *Parser) parseCondition() ast.Expression {
	p.l.LexExpecting(token.LPAREN)
	cond := p.parseExpression()
	p.l.LexExpecting(token.RPAREN)
	return cond
}

// parseLValue should be called after reading the name.
func (p *Parser) parseLValue(name string, line int) ast.Expression {
	if !p.l.PeekIs(token.LBRACKET) {
		return p.c.Variable(name, line)
	}
	p.l.LexExpecting(token.LBRACKET)
	index := p.parseExpression()
	p.l.LexExpecting(token.RBRACKET)
	return p.c.ArrayAccess(name, index, line)
}

// parseCall should be called after reading the callee's name.
func (p *Parser) parseCall(name string, line int) *ast.FunctionCall {
	var args []ast.Expression

	p.l.LexExpecting(token.LPAREN)
	if !p.l.PeekIs(token.RPAREN) {
		for {
			args = append(args, p.parseExpression())
			if p.l.PeekIs(token.COMMA) {
				p.l.LexExpecting(token.COMMA)
				continue
			}
			break
		}
	}
	p.l.LexExpecting(token.RPAREN)

	return p.c.FunctionCall(name, args, line)
}
