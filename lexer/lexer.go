package lexer

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pontaoski/s3c/errors"
	"github.com/pontaoski/s3c/token"
)

type Lexer struct {
	pos          token.Position
	reader       *bufio.Reader
	peeked       *token.Token
	peekedString string
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    token.Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 0
}

func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}

	l.pos.Column--
}

func (l *Lexer) kinded(t token.TokenKind) token.Token {
	return token.Token{
		Location: token.SingleCharSpan(l.pos),
		Kind:     t,
	}
}

func (l *Lexer) read() (rune, bool) {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, false
		}
		panic(err)
	}
	l.pos.Column++
	return r, true
}

// accept consumes s if the input continues with it.
func (l *Lexer) accept(s string) bool {
	byt, err := l.reader.Peek(len(s))
	if err != nil && err != io.EOF {
		panic(err)
	}
	if string(byt) != s {
		return false
	}
	for range s {
		l.read()
	}
	return true
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

func (l *Lexer) lexIdent() (token.Position, token.Position, string) {
	var lit strings.Builder
	from := l.pos
	from.Column++
	to := from

	for {
		r, ok := l.read()
		if !ok {
			return from, to, lit.String()
		}

		if !otherChar(r) {
			l.backup()
			return from, to, lit.String()
		}

		lit.WriteRune(r)
		to = l.pos
	}
}

func (l *Lexer) lexNumber() (token.Token, string) {
	var lit strings.Builder
	from := l.pos
	from.Column++
	kind := token.INT

	for {
		r, ok := l.read()
		if !ok {
			break
		}
		if r == '.' && kind == token.INT {
			kind = token.FLOAT
			lit.WriteRune(r)
			continue
		}
		if !unicode.IsDigit(r) {
			l.backup()
			break
		}
		lit.WriteRune(r)
	}

	s := lit.String()
	span := token.Span{From: from, To: l.pos}
	if strings.HasSuffix(s, ".") {
		panic(errors.MalformedLiteral{Literal: s, Location: span})
	}
	return token.Token{Kind: kind, Location: span}, s
}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'0':  0,
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

// lexQuoted reads up to the closing quote, the opening one being
// consumed already. The literal is returned unescaped.
func (l *Lexer) lexQuoted(quote rune) (token.Span, string) {
	var lit strings.Builder
	from := l.pos

	for {
		r, ok := l.read()
		if !ok || r == '\n' {
			span := token.Span{From: from, To: l.pos}
			panic(errors.MalformedLiteral{Literal: string(quote) + lit.String(), Location: span})
		}

		switch r {
		case quote:
			return token.Span{From: from, To: l.pos}, lit.String()
		case '\\':
			e, _ := l.read()
			unescaped, ok := escapes[e]
			if !ok {
				panic(errors.MalformedLiteral{Literal: `\` + string(e), Location: token.SingleCharSpan(l.pos)})
			}
			lit.WriteRune(unescaped)
		default:
			lit.WriteRune(r)
		}
	}
}

// ascii rejects literals with characters that do not fit in a chr.
func ascii(span token.Span, lit string) {
	for _, r := range lit {
		if r > unicode.MaxASCII {
			panic(errors.UnexpectedCharacter{Char: r, Location: span})
		}
	}
}

// lexPragma reads a file marker, -->"<path>"-<line>, whose arrow has
// been consumed. The next line is <line>+1 of <path>.
func (l *Lexer) lexPragma() {
	start := l.pos
	if r, _ := l.read(); r != '"' {
		panic(errors.UnexpectedCharacter{Char: r, Location: token.SingleCharSpan(l.pos)})
	}
	_, path := l.lexQuoted('"')

	line := 0
	if l.accept("-") {
		var digits strings.Builder
		for {
			r, ok := l.read()
			if !ok {
				break
			}
			if !unicode.IsDigit(r) {
				l.backup()
				break
			}
			digits.WriteRune(r)
		}
		n, err := strconv.Atoi(digits.String())
		if err != nil {
			panic(errors.MalformedLiteral{Literal: digits.String(), Location: token.Span{From: start, To: l.pos}})
		}
		line = n
	}

	l.skipLine()
	l.pos.Filename = path
	l.pos.Line = line
	l.pos.Column = 0
}

func (l *Lexer) skipLine() {
	for {
		r, ok := l.read()
		if !ok {
			return
		}
		if r == '\n' {
			l.backup()
			return
		}
	}
}

// Position is where the lexer is, after any token peeked.
func (l *Lexer) Position() token.Position {
	return l.pos
}

func (l *Lexer) Peek() (token.Token, string) {
	if l.peeked != nil {
		return *l.peeked, l.peekedString
	}

	tok, str := l.Lex()
	l.peeked = &tok
	l.peekedString = str

	return tok, str
}

func (l *Lexer) PeekIs(k ...token.TokenKind) bool {
	tok, _ := l.Peek()
	for _, kind := range k {
		if tok.Kind == kind {
			return true
		}
	}

	return false
}

func (l *Lexer) LexExpecting(k ...token.TokenKind) (token.Token, string) {
	tok, lit := l.Lex()
	for _, kind := range k {
		if tok.Kind == kind {
			return tok, lit
		}
	}

	panic(errors.ExpectedOneOfKindGotKind{
		Expected: k,
		Got:      tok.Kind,
		Location: tok.Location,
	})
}

var singleChars = map[rune]token.TokenKind{
	':': token.COLON,
	'(': token.LPAREN,
	')': token.RPAREN,
	'{': token.LBRACE,
	'}': token.RBRACE,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	',': token.COMMA,
	';': token.EOS,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
}

// withEquals are the operators that change meaning when followed by '='.
var withEquals = map[rune][2]token.TokenKind{
	'=': {token.EQUALS, token.EQ},
	'>': {token.GT, token.GE},
	'<': {token.LT, token.LE},
}

func (l *Lexer) Lex() (token.Token, string) {
	if l.peeked != nil {
		defer func() { l.peeked = nil }()
		return *l.peeked, l.peekedString
	}

	for {
		r, ok := l.read()
		if !ok {
			return l.kinded(token.EOF), ""
		}

		switch {
		case r == '\n':
			l.newline()
			continue
		case unicode.IsSpace(r):
			continue
		case r == '#':
			l.skipLine()
			continue
		case r == '-' && l.pos.Column == 1 && l.accept("->"):
			l.lexPragma()
			continue
		}

		if kinds, ok := withEquals[r]; ok {
			tok := l.kinded(kinds[0])
			if l.accept("=") {
				tok.Kind = kinds[1]
				tok.Location.To = l.pos
				return tok, string(r) + "="
			}
			return tok, string(r)
		}

		if kind, ok := singleChars[r]; ok {
			return l.kinded(kind), string(r)
		}

		switch {
		case r == '"':
			span, lit := l.lexQuoted('"')
			ascii(span, lit)
			return token.Token{Kind: token.STRING, Location: span}, lit
		case r == '\'':
			span, lit := l.lexQuoted('\'')
			if len(lit) != 1 {
				panic(errors.MalformedLiteral{Literal: "'" + lit + "'", Location: span})
			}
			return token.Token{Kind: token.CHAR, Location: span}, lit
		case unicode.IsDigit(r):
			l.backup()
			return l.lexNumber()
		case firstChar(r):
			l.backup()
			from, to, lit := l.lexIdent()

			if kind, ok := token.Keywords[lit]; ok {
				return token.Token{Kind: kind, Location: token.Span{From: from, To: to}}, lit
			}

			return token.Token{Kind: token.IDENT, Location: token.Span{From: from, To: to}}, lit
		}

		panic(errors.UnexpectedCharacter{Char: r, Location: token.SingleCharSpan(l.pos)})
	}
}
