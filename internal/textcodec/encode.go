package textcodec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Target is the encoding a playlist is written in.
type Target int

const (
	UTF8 Target = iota
	Windows1252
)

// TargetFor returns UTF8 when utf8 is set and Windows1252 otherwise.
func TargetFor(utf8 bool) Target {
	if utf8 {
		return UTF8
	}
	return Windows1252
}

func (t Target) String() string {
	if t == UTF8 {
		return "utf-8"
	}
	return "windows-1252"
}

// Extension is the playlist file extension conventionally used for t.
func (t Target) Extension() string {
	if t == UTF8 {
		return ".m3u8"
	}
	return ".m3u"
}

// EncodeError reports a character the target encoding cannot represent.
type EncodeError struct {
	Target Target
	Line   int // zero-based
	Rune   rune
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("line %d: %q (U+%04X) cannot be encoded as %s", e.Line+1, e.Rune, e.Rune, e.Target)
}

// EncodeLine canonicalises one line of output: trailing spaces, tabs,
// carriage returns and newlines are dropped. Interior text is untouched.
func EncodeLine(line string) string {
	return strings.TrimRight(line, " \t\r\n")
}

// AddBOM prefixes line with a byte-order mark unless it already has one.
func AddBOM(line string) string {
	if strings.HasPrefix(line, BOM) {
		return line
	}
	return BOM + line
}

// WriteLines writes lines to w in encoding t, each followed by eol.
func WriteLines(w io.Writer, lines []string, t Target, eol string) error {
	bw := bufio.NewWriter(w)
	for i, line := range lines {
		if t == UTF8 {
			if _, err := bw.WriteString(line); err != nil {
				return err
			}
		} else if err := writeWindows1252(bw, line, i); err != nil {
			return err
		}
		if _, err := bw.WriteString(eol); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile encodes lines with WriteLines and writes them to path. Nothing
// is written when a line cannot be encoded. It returns the file size.
func WriteFile(path string, lines []string, t Target, eol string) (int, error) {
	var buf bytes.Buffer
	if err := WriteLines(&buf, lines, t, eol); err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func writeWindows1252(w *bufio.Writer, line string, lineNo int) error {
	for _, r := range line {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if ok {
			_, ok = windows1252Rune(b)
		}
		if !ok {
			return &EncodeError{Target: Windows1252, Line: lineNo, Rune: r}
		}
		if err := w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}
