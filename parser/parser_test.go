package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/pontaoski/s3c/analyzer"
	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/lexer"
	"github.com/pontaoski/s3c/types"
)

func parse(t *testing.T, src string) (*analyzer.Context, *ast.Program) {
	t.Helper()
	c := analyzer.New()
	p := NewParser(lexer.NewLexer(strings.NewReader(src), "test.prog"), c)
	be.Err(t, p.Parse(), nil)
	return c, c.Finalize()
}

func messages(c *analyzer.Context) []string {
	var out []string
	for _, d := range c.Diagnostics.Diagnostics() {
		out = append(out, d.Error())
	}
	return out
}

func TestParseAdd(t *testing.T) {
	c, prog := parse(t, `
fn add(int a, int b): int {
	return a + b;
}

fn main() {
	print(add(1, 2));
}
`)
	be.Equal(t, messages(c), []string(nil))
	be.Equal(t, prog.String(), "Function(add, [a, b], Block(Return(AddOP(a, b))))\n"+
		"Function(main, [], Block(Print(Funcall(add, [1, 2]))))")
}

func TestParsePrecedence(t *testing.T) {
	c, prog := parse(t, `
fn main() {
	int x;
	int a; int b; int c; int d; int e;
	x = 1 + 2 * 3 - -4;
	x = (1 + 2) * 3 / 4;
	if (not a < b and c or d xor e) { x = 1; }
}
`)
	be.Equal(t, messages(c), []string(nil))

	body := prog.Function("main").Body.Statements
	be.Equal(t, fmt.Sprint(body[6]), "Assignment(x, SubOP(AddOP(1, MulOP(2, 3)), SubOP(0, 4)))")
	be.Equal(t, fmt.Sprint(body[7]), "Assignment(x, DivOP(MulOP(AddOP(1, 2), 3), 4))")
	be.Equal(t, fmt.Sprint(body[8]), "If(OrOP(AndOP(NotOP(LtOP(a, b)), c), XorOP(d, e)), Block(Assignment(x, 1)))")
}

func TestParseStatements(t *testing.T) {
	c, prog := parse(t, `
fn main() {
	chr s[10];
	int i;
	flt f;
	s = "abc";
	s[0] = 'x';
	read(i);
	read(s[1]);
	for i in range(0, 10) {
		print("tick");
	}
	for i in range(10, 0, -1) { }
	while (i > 0) {
		i = i - 1;
	} 
	if (i == 0) { f = 1.5; } else { f = 2.0; }
	return;
}
`)
	be.Equal(t, messages(c), []string(nil))

	body := prog.Function("main").Body.Statements
	var got []string
	for _, s := range body {
		got = append(got, fmt.Sprint(s))
	}
	be.Equal(t, got, []string{
		"ArrayDeclaration(s[10])",
		"Declaration(int i)",
		"Declaration(flt f)",
		`Assignment(s, "abc")`,
		"Assignment(s[0], 'x')",
		"Read(i)",
		"Read(s[1])",
		`For(i, range(0, 10, 1), Block(Print("tick")))`,
		"For(i, range(10, 0, SubOP(0, 1)), Block())",
		"While(GtOP(i, 0), Block(Assignment(i, SubOP(i, 1))))",
		"If(EqOP(i, 0), Block(Assignment(f, 1.5)), Else(Block(Assignment(f, 2))))",
		"Return()",
	})
}

func TestParseArrayParameters(t *testing.T) {
	c, prog := parse(t, `
fn greet(chr name[20]) {
	print(name);
}

fn main() {
	greet("world");
}
`)
	be.Equal(t, messages(c), []string(nil))
	be.Equal(t, prog.Function("greet").Signature().String(), "nil(chr[20])")
}

func TestParseForwardCall(t *testing.T) {
	c, _ := parse(t, `
fn main() {
	int x;
	x = twice(2);
	x = twice(2, 3);
}

fn twice(int n): int {
	return n * 2;
}
`)
	be.Equal(t, messages(c), []string{
		"test.prog:5: type error in twice, the expected type was (int) but (int, int) was found.",
	})
}

func TestParseForwardArithmetic(t *testing.T) {
	c, prog := parse(t, `
fn main() {
	int x;
	x = seven() + 1;
	print(seven() / 2);
}

fn seven(): int {
	return 7;
}
`)
	be.Equal(t, messages(c), []string(nil))

	body := prog.Function("main").Body.Statements
	be.True(t, body[1].(*ast.Assignment).Src.Type().Compare(types.Int))
	be.True(t, body[2].(*ast.Print).Expr.Type().Compare(types.Int))
}

func TestParseDiagnostics(t *testing.T) {
	c, _ := parse(t, `
fn helper(): int {
	int a;
	int a;
	return y;
}
`)
	be.Equal(t, messages(c), []string{
		"test.prog:4: redefinition of a.",
		"test.prog:5: undefined symbol y.",
		"no entry point.",
	})
}

func TestParseFileMarkers(t *testing.T) {
	src := `-->"main.prog"-0
fn main() {
	helper();
}
# include lib;
-->"lib.prog"-0
fn helper() {
	print(y);
}
-->"main.prog"-4
fn other() {
	print(z);
}
`
	c := analyzer.New()
	p := NewParser(lexer.NewLexer(strings.NewReader(src), "merged"), c)
	be.Err(t, p.Parse(), nil)
	c.Finalize()

	be.Equal(t, messages(c), []string{
		"lib.prog:2: undefined symbol y.",
		"main.prog:6: undefined symbol z.",
	})
}

func TestParseSyntaxError(t *testing.T) {
	for _, src := range []string{
		"fn main() { int ; }",
		"fn main() { x = ; }",
		"fn main() { print(1) }",
		"int x;",
		"fn main( {",
		`fn main() { print("é"); }`,
	} {
		c := analyzer.New()
		p := NewParser(lexer.NewLexer(strings.NewReader(src), "bad.prog"), c)
		err := p.Parse()
		be.True(t, err != nil)
	}
}
