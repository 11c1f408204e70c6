// Package textcodec turns playlist files into lines of text and back,
// coping with the encodings media players actually write.
package textcodec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// BOM is the byte-order mark as it appears once decoded.
const BOM = "\ufeff"

// Scheme selects how raw bytes become text.
type Scheme int

const (
	// SchemeNamed decodes strictly with a caller-supplied encoding.
	SchemeNamed Scheme = iota
	// SchemeUTF8Fallback decodes UTF-8, re-reading single stray bytes
	// as Windows-1252.
	SchemeUTF8Fallback
	// SchemeWindows1252 decodes strictly as Windows-1252.
	SchemeWindows1252
)

func (s Scheme) String() string {
	switch s {
	case SchemeNamed:
		return "named"
	case SchemeUTF8Fallback:
		return "utf-8 (windows-1252 fallback)"
	case SchemeWindows1252:
		return "windows-1252"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// DecodeError reports input that cannot be read under the selected encoding.
type DecodeError struct {
	Encoding string
	Offset   int    // byte offset of the failure, -1 when unknown
	Bytes    []byte // offending bytes, if known
	Reason   string
}

func (e *DecodeError) Error() string {
	if len(e.Bytes) == 0 {
		return fmt.Sprintf("cannot decode as %s: %s", e.Encoding, e.Reason)
	}
	return fmt.Sprintf("cannot decode as %s: %s at offset %d (% x)",
		e.Encoding, e.Reason, e.Offset, e.Bytes)
}

// SchemeFor picks the decoding scheme for a playlist file. An explicit
// encoding always wins; otherwise .m3u8 files are read as UTF-8 and
// everything else as Windows-1252.
func SchemeFor(path, encodingName string) Scheme {
	if encodingName != "" {
		return SchemeNamed
	}
	if strings.EqualFold(filepath.Ext(path), ".m3u8") {
		return SchemeUTF8Fallback
	}
	return SchemeWindows1252
}

// DecodeFile reads path and returns its lines with their terminators.
// A byte-order mark at the start of the first line is removed.
func DecodeFile(path, encodingName string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := Decode(data, SchemeFor(path, encodingName), encodingName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lines := SplitLines(text)
	if len(lines) > 0 {
		lines[0] = RemoveBOM(lines[0])
	}
	return lines, nil
}

// Decode converts data to text. encodingName is only consulted for
// SchemeNamed.
func Decode(data []byte, scheme Scheme, encodingName string) (string, error) {
	switch scheme {
	case SchemeUTF8Fallback:
		return decodeUTF8Fallback(data)
	case SchemeWindows1252:
		return decodeWindows1252(data)
	default:
		return decodeNamed(data, encodingName)
	}
}

// SplitLines splits text after every "\r\n", '\r' or '\n', keeping the
// terminators.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		case '\n':
		default:
			continue
		}
		lines = append(lines, text[start:i+1])
		start = i + 1
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// RemoveBOM strips one leading byte-order mark.
func RemoveBOM(line string) string {
	return strings.TrimPrefix(line, BOM)
}

func decodeUTF8Fallback(data []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(data))
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r != utf8.RuneError || size > 1 {
			sb.Write(data[i : i+size])
			i += size
			continue
		}
		n := invalidRun(data[i:])
		if n > 1 {
			return "", &DecodeError{
				Encoding: "utf-8",
				Offset:   i,
				Bytes:    data[i : i+n],
				Reason:   "invalid multi-byte sequence",
			}
		}
		fb, ok := windows1252Rune(data[i])
		if !ok {
			return "", &DecodeError{
				Encoding: "utf-8",
				Offset:   i,
				Bytes:    data[i : i+1],
				Reason:   "invalid byte with no windows-1252 equivalent",
			}
		}
		sb.WriteRune(fb)
		i++
	}
	return sb.String(), nil
}

// invalidRun returns how many bytes an invalid UTF-8 sequence at the
// start of p spans: the lead byte plus every continuation byte that was
// still acceptable before the sequence broke off.
func invalidRun(p []byte) int {
	need := 0
	switch lead := p[0]; {
	case lead >= 0xC2 && lead <= 0xDF:
		need = 2
	case lead >= 0xE0 && lead <= 0xEF:
		need = 3
	case lead >= 0xF0 && lead <= 0xF4:
		need = 4
	default:
		return 1
	}
	for j := 1; j < need; j++ {
		if j >= len(p) || !continuationOK(p[0], j, p[j]) {
			return j
		}
	}
	return need
}

func continuationOK(lead byte, pos int, b byte) bool {
	lo, hi := byte(0x80), byte(0xBF)
	if pos == 1 {
		switch lead {
		case 0xE0:
			lo = 0xA0
		case 0xED:
			hi = 0x9F
		case 0xF0:
			lo = 0x90
		case 0xF4:
			hi = 0x8F
		}
	}
	return b >= lo && b <= hi
}

// Bytes left undefined by Windows-1252. x/text maps them to C1 controls;
// Windows itself refuses them.
var windows1252Undefined = [...]byte{0x81, 0x8D, 0x8F, 0x90, 0x9D}

func windows1252Rune(b byte) (rune, bool) {
	for _, u := range windows1252Undefined {
		if b == u {
			return 0, false
		}
	}
	return charmap.Windows1252.DecodeByte(b), true
}

func decodeWindows1252(data []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(data))
	for i, b := range data {
		r, ok := windows1252Rune(b)
		if !ok {
			return "", &DecodeError{
				Encoding: "windows-1252",
				Offset:   i,
				Bytes:    data[i : i+1],
				Reason:   "undefined byte",
			}
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// Spellings accepted on the command line that the IANA and WHATWG
// indexes do not know.
var encodingAliases = map[string]string{
	"utf8":    "utf-8",
	"u8":      "utf-8",
	"cp1252":  "windows-1252",
	"latin-1": "iso-8859-1",
	"latin1":  "iso-8859-1",
	"ascii":   "us-ascii",
	"cp437":   "ibm437",
	"cp850":   "ibm850",
}

func canonicalName(name string) string {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if alias, ok := encodingAliases[n]; ok {
		return alias
	}
	return n
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	n := canonicalName(name)
	if e, err := ianaindex.IANA.Encoding(n); err == nil && e != nil {
		return e, nil
	}
	if e, err := htmlindex.Get(n); err == nil {
		return e, nil
	}
	return nil, &DecodeError{Encoding: name, Offset: -1, Reason: "unknown encoding"}
}

func decodeNamed(data []byte, name string) (string, error) {
	switch canonicalName(name) {
	case "utf-8":
		if i := firstInvalidUTF8(data); i >= 0 {
			return "", &DecodeError{
				Encoding: "utf-8",
				Offset:   i,
				Bytes:    data[i : i+invalidRun(data[i:])],
				Reason:   "invalid sequence",
			}
		}
		return string(data), nil
	case "us-ascii":
		for i, b := range data {
			if b >= 0x80 {
				return "", &DecodeError{Encoding: name, Offset: i, Bytes: data[i : i+1], Reason: "byte out of range"}
			}
		}
		return string(data), nil
	case "windows-1252":
		return decodeWindows1252(data)
	}

	enc, err := lookupEncoding(name)
	if err != nil {
		return "", err
	}
	if cm, ok := enc.(*charmap.Charmap); ok {
		var sb strings.Builder
		for i, b := range data {
			r := cm.DecodeByte(b)
			if r == utf8.RuneError {
				return "", &DecodeError{Encoding: name, Offset: i, Bytes: data[i : i+1], Reason: "undefined byte"}
			}
			sb.WriteRune(r)
		}
		return sb.String(), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &DecodeError{Encoding: name, Offset: -1, Reason: err.Error()}
	}
	// Multi-byte decoders substitute U+FFFD instead of failing.
	if strings.ContainsRune(string(out), utf8.RuneError) {
		return "", &DecodeError{Encoding: name, Offset: -1, Reason: "invalid sequence"}
	}
	return string(out), nil
}

func firstInvalidUTF8(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
