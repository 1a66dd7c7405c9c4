package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func TestNew(t *testing.T) {
	m := New("hello")
	be.Equal(t, m.Main, "main.prog")
	be.Equal(t, m.Target, Python)
	be.Equal(t, m.OutputPath(), "hello.py")
	be.Err(t, m.Validate(), nil)

	m.Target = LLVM
	be.Equal(t, m.OutputPath(), "hello.ll")
	m.Output = "out/prog.ll"
	be.Equal(t, m.OutputPath(), "out/prog.ll")
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	be.Err(t, Save(path, New("demo")), nil)

	m, err := Load(path)
	be.Err(t, err, nil)
	be.Equal(t, m, New("demo"))
}

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	be.Err(t, os.WriteFile(path, []byte("package: tiny\n"), 0o644), nil)

	m, err := Load(path)
	be.Err(t, err, nil)
	be.Equal(t, m, Module{Package: "tiny", Main: "main.prog", Target: Python})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		m     Module
		field string
	}{
		{Module{Target: Python}, "package"},
		{Module{Package: "x", Target: "cobol"}, "target"},
	}
	for _, test := range tests {
		err := test.m.Validate()
		verr, ok := err.(ValidationError)
		be.True(t, ok)
		be.Equal(t, verr.Field, test.field)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	be.True(t, err != nil)
}
