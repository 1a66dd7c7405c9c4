package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errs bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errs
	err := app.Run(append([]string{"s3c", "--no-color"}, args...))
	return out.String(), errs.String(), err
}

func write(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	be.Err(t, os.WriteFile(path, []byte(src), 0o644), nil)
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	be.Err(t, err, nil)
	be.Err(t, os.Chdir(dir), nil)
	t.Cleanup(func() { os.Chdir(wd) })
}

const addProgram = `include lib;

fn main() {
	int x;
	x = add(1, 2);
	print(x);
}
`

const libProgram = `fn add(int a, int b): int {
	return a + b;
}
`

func TestBuildDump(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "main.prog", addProgram)
	write(t, dir, "lib.prog", libProgram)

	out, errs, err := run(t, "build", "--dump", src)
	be.Err(t, err, nil)
	be.Equal(t, errs, "")
	be.True(t, strings.HasPrefix(out, "#!/usr/bin/env python3\n"))
	be.True(t, strings.Contains(out, "def add(a, b):\n\treturn (a + b)\n"))
	be.True(t, strings.Contains(out, "\tx = int(add(1, 2))\n"))
}

func TestBuildLLVMDump(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "main.prog", addProgram)
	write(t, dir, "lib.prog", libProgram)

	out, _, err := run(t, "build", "--dump", "--target", "llvm", src)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "define i64 @prog.add(i64 %a, i64 %b)"))
	be.True(t, strings.Contains(out, "@__s3c_types"))
}

func TestTypeInfo(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "main.prog", addProgram)
	write(t, dir, "lib.prog", libProgram)
	ll := filepath.Join(dir, "demo.ll")

	_, _, err := run(t, "build", "--target", "llvm", "--output", ll, src)
	be.Err(t, err, nil)

	out, _, err := run(t, "typeinfo", ll)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, `"add": "int(int, int)"`))
}

func TestBuildWritesOutput(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "main.prog", "fn main() {\n\tprint(\"hi\");\n}\n")
	target := filepath.Join(dir, "out.py")

	_, _, err := run(t, "build", "--output", target, src)
	be.Err(t, err, nil)

	info, err := os.Stat(target)
	be.Err(t, err, nil)
	be.True(t, info.Mode()&0o100 != 0)

	data, err := os.ReadFile(target)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(data), `print("hi", end="")`))
}

func TestCheckReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "main.prog", "fn main() {\n\tint x;\n\tx = missing(1);\n}\n")

	_, errs, err := run(t, "check", src)
	be.Err(t, err, errFailed)
	be.True(t, strings.Contains(errs, "[ERROR]: "+src+":3: undefined symbol missing."))
}

func TestBuildStopsOnErrors(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "main.prog", "fn helper() {\n}\n")
	target := filepath.Join(dir, "out.py")

	_, errs, err := run(t, "build", "--output", target, src)
	be.Err(t, err, errFailed)
	be.True(t, strings.Contains(errs, "[ERROR]"))

	_, err = os.Stat(target)
	be.True(t, os.IsNotExist(err))
}

func TestSyntaxError(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "main.prog", "fn main( {\n}\n")

	_, _, err := run(t, "check", src)
	be.Err(t, err)
	be.True(t, err != errFailed)
}

func TestInitAndBuildProject(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, _, err := run(t, "init", "demo")
	be.Err(t, err, nil)
	write(t, dir, "main.prog", addProgram)
	write(t, dir, "lib.prog", libProgram)

	_, _, err = run(t, "build")
	be.Err(t, err, nil)

	data, err := os.ReadFile(filepath.Join(dir, "demo.py"))
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(data), "def main():"))
}

func TestInitNeedsName(t *testing.T) {
	_, _, err := run(t, "init")
	be.Err(t, err, "no package name provided")
}

func TestBuildMissingManifest(t *testing.T) {
	chdir(t, t.TempDir())
	_, _, err := run(t, "build")
	be.Err(t, err)
}

func TestLinkNeedsLLVM(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "main.prog", "fn main() {\n}\n")

	_, _, err := run(t, "build", "--link", "--output", filepath.Join(dir, "out.py"), src)
	be.Err(t, err, "--link needs the llvm target")
}

func TestDumpAndSymbols(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "main.prog", addProgram)
	write(t, dir, "lib.prog", libProgram)

	out, _, err := run(t, "dump", src)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, `Name: "add"`))

	out, _, err = run(t, "symbols", src)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, `Name: "x"`))
	be.True(t, strings.Contains(out, "Parent: -1"))
}
