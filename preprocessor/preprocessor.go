// Package preprocessor merges a program and the files it includes into
// one stream. File markers in the stream let the lexer attribute every
// line to the file it came from.
package preprocessor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/coreos/pkg/multierror"
	"github.com/pontaoski/s3c/errors"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/s3c", "preprocessor")

// Extension is appended to the names given to include.
const Extension = ".prog"

const markerPrefix = "-->"

var includeLine = regexp.MustCompile(`^include\s+([A-Za-z0-9_./-]+)\s*;$`)

type preprocessor struct {
	dir  string
	seen map[string]bool
	w    *bufio.Writer
	errs multierror.Error
}

// Process writes mainPath, with its includes expanded, to w. Includes are
// resolved next to mainPath and every file is merged at most once. All
// failures are collected and returned together.
func Process(mainPath string, w io.Writer) error {
	p := &preprocessor{
		dir:  filepath.Dir(mainPath),
		seen: make(map[string]bool),
		w:    bufio.NewWriter(w),
	}

	p.file(mainPath)
	if err := p.w.Flush(); err != nil {
		p.errs = append(p.errs, tracerr.Wrap(err))
	}
	return p.errs.AsError()
}

// Marker returns the line that attributes the lines after it to line+1
// and onwards of file.
func Marker(file string, line int) string {
	return fmt.Sprintf("%s\"%s\"-%d", markerPrefix, file, line)
}

func (p *preprocessor) file(path string) {
	path = filepath.Clean(path)
	if p.seen[path] {
		plog.Debugf("%s is already merged", path)
		return
	}
	p.seen[path] = true

	f, err := os.Open(path)
	if err != nil {
		p.errs = append(p.errs, tracerr.Wrap(err))
		return
	}
	defer f.Close()

	plog.Debugf("merging %s", path)
	fmt.Fprintln(p.w, Marker(path, 0))

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()

		if strings.HasPrefix(text, markerPrefix) {
			p.errs = append(p.errs, errors.FileMarkerInSource{File: path, Line: line})
			fmt.Fprintln(p.w)
			continue
		}

		if m := includeLine.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
			fmt.Fprintln(p.w, "# "+text)
			p.file(filepath.Join(p.dir, m[1]+Extension))
			fmt.Fprintln(p.w, Marker(path, line))
			continue
		}

		fmt.Fprintln(p.w, text)
	}
	if err := scanner.Err(); err != nil {
		p.errs = append(p.errs, tracerr.Wrap(err))
	}
}
