package parser

import (
	"strconv"

	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/errors"
	"github.com/pontaoski/s3c/token"
)

var (
	orOps             = map[token.TokenKind]ast.Operator{token.OR: ast.Or}
	xorOps            = map[token.TokenKind]ast.Operator{token.XOR: ast.Xor}
	andOps            = map[token.TokenKind]ast.Operator{token.AND: ast.And}
	comparisonOps     = map[token.TokenKind]ast.Operator{token.EQ: ast.Eq, token.GT: ast.Gt, token.LT: ast.Lt, token.GE: ast.Ge, token.LE: ast.Le}
	additiveOps       = map[token.TokenKind]ast.Operator{token.PLUS: ast.Add, token.MINUS: ast.Sub}
	multiplicativeOps = map[token.TokenKind]ast.Operator{token.STAR: ast.Mul, token.SLASH: ast.Div}
)

func (p *Parser) parseExpression() ast.Expression {
	return p.parseOr()
}

// binary parses a left associative chain of ops over next.
func (p *Parser) binary(ops map[token.TokenKind]ast.Operator, next func() ast.Expression) ast.Expression {
	left := next()
	for {
		tok, _ := p.l.Peek()
		op, ok := ops[tok.Kind]
		if !ok {
			return left
		}
		p.l.Lex()
		right := next()
		left = p.c.Operator(op, left, right, p.at(tok))
	}
}

func (p *Parser) parseOr() ast.Expression  { return p.binary(orOps, p.parseXor) }
func (p *Parser) parseXor() ast.Expression { return p.binary(xorOps, p.parseAnd) }
func (p *Parser) parseAnd() ast.Expression { return p.binary(andOps, p.parseNot) }

func (p *Parser) parseNot() ast.Expression {
	if !p.l.PeekIs(token.NOT) {
		return p.parseComparison()
	}
	tok, _ := p.l.LexExpecting(token.NOT)
	line := p.at(tok)
	return p.c.Not(p.parseNot(), line)
}

func (p *Parser) parseComparison() ast.Expression {
	return p.binary(comparisonOps, p.parseAdditive)
}

func (p *Parser) parseAdditive() ast.Expression {
	return p.binary(additiveOps, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() ast.Expression {
	return p.binary(multiplicativeOps, p.parseUnary)
}

// parseUnary builds -x as 0 - x.
func (p *Parser) parseUnary() ast.Expression {
	if !p.l.PeekIs(token.MINUS) {
		return p.parsePrimary()
	}
	tok, _ := p.l.LexExpecting(token.MINUS)
	line := p.at(tok)
	return p.c.Operator(ast.Sub, ast.NewInt(0), p.parseUnary(), line)
}

func (p *Parser) parsePrimary() ast.Expression {
	tok, lit := p.l.LexExpecting(token.INT, token.FLOAT, token.CHAR, token.STRING, token.IDENT, token.LPAREN)
	line := p.at(tok)

	switch tok.Kind {
	case token.INT:
		parsed, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			panic(errors.MalformedLiteral{Literal: lit, Location: tok.Location})
		}
		return ast.NewInt(parsed)
	case token.FLOAT:
		parsed, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			panic(errors.MalformedLiteral{Literal: lit, Location: tok.Location})
		}
		return ast.NewFlt(parsed)
	case token.CHAR:
		return ast.NewChr(lit[0])
	case token.STRING:
		return p.c.String(lit, line)
	case token.IDENT:
		if p.l.PeekIs(token.LPAREN) {
			return p.parseCall(lit, line)
		}
		return p.parseLValue(lit, line)
	}

	expr := p.parseExpression()
	p.l.LexExpecting(token.RPAREN)
	return expr
}
