package pipeline

import (
	"errors"
	"fmt"

	"github.com/llehouerou/plconv/internal/diag"
	"github.com/llehouerou/plconv/internal/library"
	"github.com/llehouerou/plconv/internal/m3u"
	"github.com/llehouerou/plconv/internal/match"
	"github.com/llehouerou/plconv/internal/replace"
	"github.com/llehouerou/plconv/internal/textcodec"
)

// Reconciler rewrites playlists so that every entry points at a track of
// the indexed library.
type Reconciler struct {
	Index       *library.Index
	MaxDistance int    // 0 for no limit
	Encoding    string // input encoding, "" to infer from the extension
	Rules       replace.Rules
	UseBOM      bool
	Reporter    diag.Reporter
}

// Result is the outcome of reconciling one playlist.
type Result struct {
	Lines   []string
	Tracks  int // entries read
	Matched int // entries written
	Stages  map[match.Stage]int
	Skipped bool // source file missing
}

// Dropped is the number of tracks that found no match.
func (r Result) Dropped() int { return r.Tracks - r.Matched }

// ConvertFile reconciles the playlist at path. A missing file yields a
// skipped result and a warning, not an error.
func (r *Reconciler) ConvertFile(path string) (Result, error) {
	ok, err := sourceExists(path, r.Reporter)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Skipped: true}, nil
	}

	lines, err := textcodec.DecodeFile(path, r.Encoding)
	if err != nil {
		return Result{}, err
	}
	res, err := r.Convert(lines)
	var fe *m3u.FormatError
	if errors.As(err, &fe) {
		fe.Path = path
	}
	return res, err
}

// Convert reconciles decoded playlist lines.
func (r *Reconciler) Convert(lines []string) (Result, error) {
	tracks, err := m3u.Parse(lines)
	if err != nil {
		return Result{}, err
	}

	m := &match.Matcher{Index: r.Index, MaxDistance: r.MaxDistance, Reporter: r.Reporter}
	res := Result{Tracks: len(tracks), Stages: make(map[match.Stage]int)}
	matched := make([]*m3u.Track, 0, len(tracks))
	for _, t := range tracks {
		got, ok := m.Match(t)
		if !ok {
			diag.Warnf(r.Reporter, diag.KindNoMatch, "no match for %s, dropping it", describe(t))
			continue
		}
		res.Stages[got.Stage]++
		matched = append(matched, m3u.NewTrack(got.Location, got.Info))
	}
	res.Matched = len(matched)

	out := m3u.Format(matched, false)
	out[0] = textcodec.EncodeLine(textcodec.RemoveBOM(lines[0]))
	out = r.Rules.Apply(out)
	if r.UseBOM {
		out[0] = textcodec.AddBOM(out[0])
	}
	res.Lines = out
	return res, nil
}

func describe(t *m3u.Track) string {
	if text := match.Text(t.Artist(), t.Title()); text != "" {
		return fmt.Sprintf("%q (%s)", text, t.Path)
	}
	return t.Path
}
