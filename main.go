package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/llir/llvm/asm"
	"github.com/pontaoski/s3c/analyzer"
	"github.com/pontaoski/s3c/codegen"
	"github.com/pontaoski/s3c/config"
	"github.com/pontaoski/s3c/lexer"
	"github.com/pontaoski/s3c/parser"
	"github.com/pontaoski/s3c/preprocessor"
	"github.com/pontaoski/s3c/symtable"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/s3c", "main")

var errFailed = errors.New("compilation failed")

// debug is set from the global flag before any command runs.
var debug bool

// loadModule returns the manifest for this invocation. A file argument
// builds that file alone; otherwise s3c.yaml in the working directory is
// used. Flags override both.
func loadModule(c *cli.Context) (config.Module, error) {
	var (
		m   config.Module
		err error
	)

	if file := c.Args().First(); file != "" {
		m = config.New(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)))
		m.Main = file
	} else {
		m, err = config.Load(config.FileName)
		if err != nil {
			return m, err
		}
	}

	if out := c.String("output"); out != "" {
		m.Output = out
	}
	if target := c.String("target"); target != "" {
		m.Target = config.Target(target)
	}
	if c.Bool("no-color") {
		m.Color = false
	}
	return m, m.Validate()
}

// compile runs the front end over m. Only syntax and I/O failures are
// returned as errors; everything else ends up in the diagnostics.
func compile(m config.Module) (*analyzer.Context, error) {
	var merged bytes.Buffer
	if err := preprocessor.Process(m.Main, &merged); err != nil {
		return nil, err
	}

	ctx := analyzer.New()
	ctx.Diagnostics.Color = m.Color

	p := parser.NewParser(lexer.NewLexer(&merged, m.Main), ctx)
	if err := p.Parse(); err != nil {
		return ctx, err
	}
	ctx.Finalize()

	plog.Debugf("analyzed %s: %d functions, %d diagnostics", m.Main, len(ctx.Program().Functions), len(ctx.Diagnostics.Diagnostics()))
	return ctx, nil
}

// analyze compiles and reports. It fails when hard errors were found.
func analyze(c *cli.Context) (config.Module, *analyzer.Context, error) {
	m, err := loadModule(c)
	if err != nil {
		return m, nil, err
	}

	ctx, err := compile(m)
	if err != nil {
		return m, ctx, err
	}

	if err := ctx.Diagnostics.Report(c.App.ErrWriter); err != nil {
		return m, ctx, tracerr.Wrap(err)
	}
	if ctx.Diagnostics.HasErrors() {
		return m, ctx, errFailed
	}
	return m, ctx, nil
}

func build(c *cli.Context) error {
	m, ctx, err := analyze(c)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	switch m.Target {
	case config.Python:
		err = codegen.Python(&out, ctx.Program())
	case config.LLVM:
		err = codegen.CompileLLVM(&out, ctx.Program())
	}
	if err != nil {
		return err
	}

	if c.Bool("dump") {
		_, err = c.App.Writer.Write(out.Bytes())
		return tracerr.Wrap(err)
	}

	perm := os.FileMode(0o644)
	if m.Target == config.Python {
		perm = 0o755
	}
	path := m.OutputPath()
	if err := os.WriteFile(path, out.Bytes(), perm); err != nil {
		return tracerr.Wrap(err)
	}
	plog.Infof("wrote %s", path)

	if c.Bool("link") {
		if m.Target != config.LLVM {
			return errors.New("--link needs the llvm target")
		}
		cmd := exec.Command("clang", "-o", strings.TrimSuffix(path, filepath.Ext(path)), path)
		cmd.Stdout = c.App.Writer
		cmd.Stderr = c.App.ErrWriter
		return tracerr.Wrap(cmd.Run())
	}
	return nil
}

type scopeDump struct {
	ID      int
	Parent  int
	Symbols []symtable.Symbol
}

// flatten lists s and its descendants depth first. Scopes point at their
// parents, so they are dumped by ID instead.
func flatten(s *symtable.Scope, parent int, out []scopeDump) []scopeDump {
	out = append(out, scopeDump{ID: s.ID, Parent: parent, Symbols: s.Symbols()})
	for _, child := range s.Children() {
		out = flatten(child, s.ID, out)
	}
	return out
}

func printError(w io.Writer, err error) {
	if debug {
		tracerr.PrintSourceColor(err)
		return
	}
	fmt.Fprintf(w, "s3c: %s\n", err)
}

var buildFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write the result to `FILE`",
	},
	&cli.StringFlag{
		Name:  "target",
		Usage: "python or llvm",
	},
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "s3c",
		Usage: "compiler for the s3 teaching language",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "log compiler internals"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable colored diagnostics"},
		},
		Before: func(c *cli.Context) error {
			debug = c.Bool("debug")
			capnslog.SetFormatter(capnslog.NewPrettyFormatter(c.App.ErrWriter, debug))
			if debug {
				capnslog.SetGlobalLogLevel(capnslog.DEBUG)
			} else {
				capnslog.SetGlobalLogLevel(capnslog.NOTICE)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "create s3c.yaml in the working directory",
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return errors.New("no package name provided")
					}
					return config.Save(config.FileName, config.New(name))
				},
			},
			{
				Name:      "build",
				Usage:     "compile the project, or a single file",
				ArgsUsage: "[FILE]",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{Name: "dump", Usage: "print the result instead of writing it"},
					&cli.BoolFlag{Name: "link", Usage: "run clang on llvm output"},
				}, buildFlags...),
				Action: build,
			},
			{
				Name:      "check",
				Usage:     "report diagnostics without generating code",
				ArgsUsage: "[FILE]",
				Action: func(c *cli.Context) error {
					_, _, err := analyze(c)
					return err
				},
			},
			{
				Name:      "dump",
				Usage:     "print the typed tree",
				ArgsUsage: "[FILE]",
				Action: func(c *cli.Context) error {
					_, ctx, err := analyze(c)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, repr.String(ctx.Program(), repr.Indent("  ")))
					return nil
				},
			},
			{
				Name:      "typeinfo",
				Usage:     "print the signatures embedded in llvm output",
				ArgsUsage: "FILE.ll",
				Action: func(c *cli.Context) error {
					file := c.Args().First()
					if file == "" {
						return errors.New("no file provided")
					}
					m, err := asm.ParseFile(file)
					if err != nil {
						return tracerr.Wrap(err)
					}
					info, err := codegen.ReadTypeInfo(m)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, repr.String(info, repr.Indent("  ")))
					return nil
				},
			},
			{
				Name:      "symbols",
				Usage:     "print every scope and its symbols",
				ArgsUsage: "[FILE]",
				Action: func(c *cli.Context) error {
					m, err := loadModule(c)
					if err != nil {
						return err
					}
					ctx, err := compile(m)
					if err != nil {
						return err
					}
					scopes := flatten(ctx.Symbols.Global(), -1, nil)
					fmt.Fprintln(c.App.Writer, repr.String(scopes, repr.Indent("  ")))
					return nil
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
