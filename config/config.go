// Package config reads and writes the project manifest.
package config

import (
	"fmt"
	"os"

	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

// FileName is the manifest looked up in the project directory.
const FileName = "s3c.yaml"

type Target string

const (
	Python Target = "python"
	LLVM   Target = "llvm"
)

var extensions = map[Target]string{
	Python: ".py",
	LLVM:   ".ll",
}

type Module struct {
	Package string `yaml:"package"`
	Main    string `yaml:"main,omitempty"`
	Output  string `yaml:"output,omitempty"`
	Target  Target `yaml:"target,omitempty"`
	Color   bool   `yaml:"color"`
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", FileName, e.Field, e.Reason)
}

// New returns the manifest of a fresh project.
func New(name string) Module {
	m := Module{Package: name, Color: true}
	m.fillDefaults()
	return m
}

func (m *Module) fillDefaults() {
	if m.Main == "" {
		m.Main = "main.prog"
	}
	if m.Target == "" {
		m.Target = Python
	}
}

// OutputPath is where the build writes to: the configured output, or the
// package name with the target's extension.
func (m Module) OutputPath() string {
	if m.Output != "" {
		return m.Output
	}
	return m.Package + extensions[m.Target]
}

func (m Module) Validate() error {
	if m.Package == "" {
		return ValidationError{Field: "package", Reason: "it must not be empty"}
	}
	if _, ok := extensions[m.Target]; !ok {
		return ValidationError{Field: "target", Reason: fmt.Sprintf("unknown target %q", m.Target)}
	}
	return nil
}

// Load reads the manifest at path and fills in defaults.
func Load(path string) (m Module, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Module{}, tracerr.Wrap(err)
	}

	err = yaml.Unmarshal(data, &m)
	if err != nil {
		return Module{}, tracerr.Wrap(err)
	}

	m.fillDefaults()
	return m, m.Validate()
}

func Save(path string, m Module) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return tracerr.Wrap(err)
	}
	return tracerr.Wrap(os.WriteFile(path, out, 0o644))
}
