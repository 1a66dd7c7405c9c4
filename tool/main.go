// Command tool generates the marker methods that close a sum type.
//
//	tool nodes.adt nodes_gen.go ast
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type SumDecls struct {
	Declarations []*Declaration `@@*`
}

type Declaration struct {
	Name     string   `"sum" @Ident "="`
	Variants []string `["|"] @Ident ("|" @Ident)*`
	I        struct{} `";"`
}

func (d *Declaration) marker() string {
	return "is" + d.Name
}

// Check rejects variants listed twice and names declared twice.
func (s *SumDecls) Check() error {
	seen := map[string]string{}
	for _, decl := range s.Declarations {
		if _, ok := seen[decl.Name]; ok {
			return fmt.Errorf("%s is declared twice", decl.Name)
		}
		seen[decl.Name] = decl.Name
		for _, v := range decl.Variants {
			if other, ok := seen[v]; ok {
				return fmt.Errorf("%s is already a variant of %s", v, other)
			}
			seen[v] = decl.Name
		}
	}
	return nil
}

func GenerateDecls(pkgname, source string, s *SumDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment(fmt.Sprintf("Code generated by tool from %s. DO NOT EDIT.", source))

	for _, decl := range s.Declarations {
		f.Type().Id(decl.Name).Interface(
			Id(decl.marker()).Params(),
		)

		for _, v := range decl.Variants {
			f.Func().Params(Op("*").Id(v)).Id(decl.marker()).Params().Block()
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: tool <in.adt> <out.go> <package>")
		os.Exit(2)
	}

	parser := participle.MustBuild(&SumDecls{})

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	decls := SumDecls{}
	err = parser.ParseBytes(inData, &decls)
	if err != nil {
		panic(err)
	}
	if err = decls.Check(); err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateDecls(pkgname, filepath.Base(in), &decls)), 0o644)
	if err != nil {
		panic(err)
	}
}
