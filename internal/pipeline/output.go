// Package pipeline drives whole-playlist operations: reconciling a
// playlist against a library index, normalizing playlists into a target
// encoding and collecting the tracks they reference.
package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/llehouerou/plconv/internal/diag"
	"github.com/llehouerou/plconv/internal/rename"
	"github.com/llehouerou/plconv/internal/textcodec"
)

// Line endings accepted by Output.
const (
	EOLUnix    = "\n"
	EOLWindows = "\r\n"
)

// Output describes where and how playlists are written.
type Output struct {
	Dir    string // "" for the working directory
	Target textcodec.Target
	UseBOM bool // honoured for UTF-8 output only
	EOL    string
	Rename string // rename codes, see package rename
}

// Written describes a playlist file that was written.
type Written struct {
	Path   string
	Lines  int
	Tracks int
	Bytes  int
}

// Path returns the file a playlist titled title is written to.
func (o Output) Path(title string) (string, error) {
	name, err := rename.FileName(title, o.Rename, o.Target.Extension())
	if err != nil {
		return "", err
	}
	return filepath.Join(o.Dir, name), nil
}

// Finish adds the byte-order mark to the header when the output calls for
// one.
func (o Output) Finish(lines []string) []string {
	if o.UseBOM && o.Target == textcodec.UTF8 && len(lines) > 0 {
		lines[0] = textcodec.AddBOM(lines[0])
	}
	return lines
}

// WriteTo writes lines to path in the output encoding.
func (o Output) WriteTo(path string, lines []string) (Written, error) {
	eol := o.EOL
	if eol == "" {
		eol = EOLUnix
	}
	n, err := textcodec.WriteFile(path, lines, o.Target, eol)
	if err != nil {
		return Written{}, fmt.Errorf("write %s: %w", path, err)
	}
	return Written{Path: path, Lines: len(lines), Bytes: n}, nil
}

// Write renames title and writes lines to the resulting file.
func (o Output) Write(title string, lines []string) (Written, error) {
	path, err := o.Path(title)
	if err != nil {
		return Written{}, err
	}
	return o.WriteTo(path, lines)
}

// sourceExists reports whether path can be read. A missing file is
// reported as a warning rather than an error.
func sourceExists(path string, r diag.Reporter) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		diag.Warnf(r, diag.KindMissingSource, "%s does not appear to exist, skipping", path)
		return false, nil
	default:
		return false, err
	}
}
