package errors

import (
	"fmt"
	"io"

	"github.com/coreos/pkg/multierror"
)

const (
	colorError   = "\033[1;31m"
	colorWarning = "\033[1;33m"
	colorReset   = "\033[0m"
)

// Manager accumulates the diagnostics of one compilation. Nothing is
// printed until Report is called.
type Manager struct {
	diagnostics []Diagnostic
	errors      bool

	// Color enables ANSI colors in Report.
	Color bool
}

func NewManager() *Manager {
	return &Manager{}
}

// Add records d. Recording an error marks the compilation as failed for
// good.
func (m *Manager) Add(d Diagnostic) {
	if d.Severity() == Error {
		m.errors = true
	}
	m.diagnostics = append(m.diagnostics, d)
}

// HasErrors reports whether at least one hard error was recorded, in which
// case no output should be emitted.
func (m *Manager) HasErrors() bool {
	return m.errors
}

func (m *Manager) Diagnostics() []Diagnostic {
	return m.diagnostics
}

// Err returns the recorded hard errors as one error, or nil.
func (m *Manager) Err() error {
	var errs multierror.Error
	for _, d := range m.diagnostics {
		if d.Severity() == Error {
			errs = append(errs, d)
		}
	}
	return errs.AsError()
}

// Report writes every recorded diagnostic to w, in the order they were
// found. It writes nothing when there is nothing to report.
func (m *Manager) Report(w io.Writer) error {
	for _, d := range m.diagnostics {
		label, color := "WARN", colorWarning
		if d.Severity() == Error {
			label, color = "ERROR", colorError
		}
		if m.Color {
			label = color + label + colorReset
		}

		if _, err := fmt.Fprintf(w, "[%s]: %s\n", label, d.Error()); err != nil {
			return err
		}
	}
	return nil
}
