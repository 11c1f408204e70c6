package m3u

import (
	"errors"
	"fmt"
	"strings"

	"github.com/llehouerou/plconv/internal/textcodec"
)

// Header is the mandatory first line of an extended M3U playlist.
const Header = "#EXTM3U"

// FormatError reports a playlist that does not start with Header.
type FormatError struct {
	Path  string
	First string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("not an M3U playlist: first line is %q", e.First)
	}
	return fmt.Sprintf("%s is not an M3U playlist: first line is %q", e.Path, e.First)
}

// Parse reads decoded playlist lines. Each entry is a path line,
// optionally preceded by its #EXTINF line. Blank lines and other
// comment lines are skipped; an #EXTINF line with no path after it is
// dropped.
func Parse(lines []string) ([]*Track, error) {
	if len(lines) == 0 {
		return nil, &FormatError{}
	}
	if first := strings.TrimSpace(textcodec.RemoveBOM(lines[0])); first != Header {
		return nil, &FormatError{First: first}
	}

	var (
		tracks  []*Track
		pending *ExtInf
	)
	for _, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if info, ok := ParseExtInf(line); ok {
			pending = info
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		tracks = append(tracks, NewTrack(line, pending))
		pending = nil
	}
	return tracks, nil
}

// ParseFile decodes and parses the playlist at path. encoding may be
// empty to let the file extension decide.
func ParseFile(path, encoding string) ([]*Track, error) {
	lines, err := textcodec.DecodeFile(path, encoding)
	if err != nil {
		return nil, err
	}
	tracks, err := Parse(lines)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	return tracks, nil
}

// Format renders tracks as playlist lines, header first. Every line is
// canonicalised with textcodec.EncodeLine.
func Format(tracks []*Track, useBOM bool) []string {
	header := Header
	if useBOM {
		header = textcodec.AddBOM(header)
	}
	lines := make([]string, 0, 1+2*len(tracks))
	lines = append(lines, header)
	for _, t := range tracks {
		if t.Info != nil {
			lines = append(lines, textcodec.EncodeLine(t.Info.Line()))
		}
		lines = append(lines, textcodec.EncodeLine(t.Path))
	}
	return lines
}
