package errors

import (
	"fmt"

	"github.com/pontaoski/s3c/token"
)

type ExpectedOneOfKindGotKind struct {
	Expected []token.TokenKind
	Got      token.TokenKind
	Location token.Span
}

func (e ExpectedOneOfKindGotKind) Error() string {
	return fmt.Sprintf("got a %s, expected one of %s. %s", e.Got, e.Expected, e.Location)
}

type UnexpectedCharacter struct {
	Char     rune
	Location token.Span
}

func (e UnexpectedCharacter) Error() string {
	return fmt.Sprintf("unexpected character %q. %s", e.Char, e.Location)
}

type MalformedLiteral struct {
	Literal  string
	Location token.Span
}

func (e MalformedLiteral) Error() string {
	return fmt.Sprintf("malformed literal %s. %s", e.Literal, e.Location)
}

// FileMarkerInSource is reported by the preprocessor when a source line
// looks like one of its own file markers.
type FileMarkerInSource struct {
	File string
	Line int
}

func (e FileMarkerInSource) Error() string {
	return fmt.Sprintf("%s:%d: syntax error.", e.File, e.Line)
}
