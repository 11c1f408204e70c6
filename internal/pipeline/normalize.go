package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/llehouerou/plconv/internal/diag"
	"github.com/llehouerou/plconv/internal/m3u"
	"github.com/llehouerou/plconv/internal/replace"
	"github.com/llehouerou/plconv/internal/textcodec"
)

// Normalizer re-encodes playlists, rewrites their lines with replacement
// rules and writes them under a new name.
type Normalizer struct {
	Encoding string // input encoding, "" to infer from the extension
	Rules    replace.Rules
	Output   Output
	Reporter diag.Reporter
}

// Title is the playlist title implied by a file name: its base name
// without extension.
func Title(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NormalizeFile normalizes the playlist at path and writes it as title.
// ok is false when path does not exist; that is reported, not returned
// as an error.
func (n *Normalizer) NormalizeFile(title, path string) (w Written, ok bool, err error) {
	ok, err = sourceExists(path, n.Reporter)
	if err != nil || !ok {
		return Written{}, false, err
	}

	lines, err := textcodec.DecodeFile(path, n.Encoding)
	if err != nil {
		return Written{}, false, err
	}
	w, err = n.write(title, n.Normalize(lines))
	if err != nil {
		return Written{}, false, err
	}
	w.Tracks = countTracks(lines)
	return w, true, nil
}

// Normalize canonicalises every line, applies the rules and adds the
// byte-order mark when the output calls for one.
func (n *Normalizer) Normalize(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = textcodec.EncodeLine(line)
	}
	return n.Output.Finish(n.Rules.Apply(out))
}

// Export writes tracks as a playlist titled title.
func (n *Normalizer) Export(title string, tracks []*m3u.Track) (Written, error) {
	lines := m3u.Format(tracks, false)
	w, err := n.write(title, n.Output.Finish(n.Rules.Apply(lines)))
	if err != nil {
		return Written{}, err
	}
	w.Tracks = len(tracks)
	return w, nil
}

func (n *Normalizer) write(title string, lines []string) (Written, error) {
	w, err := n.Output.Write(title, lines)
	if err != nil {
		return Written{}, err
	}
	diag.Infof(n.Reporter, diag.KindWritten, "%q => %q", title, filepath.Base(w.Path))
	return w, nil
}

// countTracks counts the path lines of a playlist.
func countTracks(lines []string) int {
	n := 0
	for _, line := range lines {
		line = strings.TrimSpace(textcodec.RemoveBOM(line))
		if line != "" && !strings.HasPrefix(line, "#") {
			n++
		}
	}
	return n
}
