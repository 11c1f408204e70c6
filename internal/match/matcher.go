package match

import (
	"fmt"

	"github.com/llehouerou/plconv/internal/diag"
	"github.com/llehouerou/plconv/internal/library"
	"github.com/llehouerou/plconv/internal/m3u"
)

// Stage identifies which strategy produced a match.
type Stage int

const (
	StageNone Stage = iota
	StageExact
	StageExtInf
	StageWeighted
	StageUnweighted
)

func (s Stage) String() string {
	switch s {
	case StageExact:
		return "track info"
	case StageExtInf:
		return "extinf artist & track"
	case StageWeighted:
		return "extinf duration"
	case StageUnweighted:
		return "fallback"
	default:
		return "none"
	}
}

// Match pairs a track's own extended information with the library
// location it resolved to.
type Match struct {
	Info     *m3u.ExtInf
	Location string
	Stage    Stage
}

// Matcher resolves playlist tracks against an index. The zero
// MaxDistance means no limit.
type Matcher struct {
	Index       *library.Index
	MaxDistance int
	Reporter    diag.Reporter
}

// strategy tries one way of finding a track's location.
type strategy struct {
	stage Stage
	try   func(m *Matcher, t *m3u.Track) (string, bool)
}

// strategies run in order; the first hit wins.
var strategies = []strategy{
	{StageExact, (*Matcher).exactKey},
	{StageExtInf, (*Matcher).parsedKey},
	{StageWeighted, (*Matcher).weighted},
	{StageUnweighted, (*Matcher).unweighted},
}

// Match finds the library location of t.
func (m *Matcher) Match(t *m3u.Track) (Match, bool) {
	diag.Debugf(m.Reporter, diag.KindGeneral, "track %v =>", t)
	for _, s := range strategies {
		if loc, ok := s.try(m, t); ok {
			diag.Debugf(m.Reporter, diag.KindMatched, "    (%v, %s) (%s)", t.Info, loc, s.stage)
			return Match{Info: t.Info, Location: loc, Stage: s.stage}, true
		}
	}
	diag.Debugf(m.Reporter, diag.KindGeneral, "    none")
	return Match{}, false
}

func (m *Matcher) exactKey(t *m3u.Track) (string, bool) {
	rec, ok := m.Index.Lookup(library.Key{Artist: t.Artist(), Title: t.Title()})
	return rec.Location, ok
}

func (m *Matcher) parsedKey(t *m3u.Track) (string, bool) {
	if t.Info == nil || !t.Info.Parsed() {
		return "", false
	}
	rec, ok := m.Index.Lookup(library.Key{Artist: t.Info.Artist(), Title: t.Info.Track()})
	return rec.Location, ok
}

func (m *Matcher) weighted(t *m3u.Track) (string, bool) {
	if t.Info == nil {
		return "", false
	}
	artist, title := guess(t)
	return m.best(artist, title, t.Info.Duration)
}

func (m *Matcher) unweighted(t *m3u.Track) (string, bool) {
	artist, title := guess(t)
	return m.best(artist, title, 0)
}

func (m *Matcher) best(artist, title string, duration int) (string, bool) {
	res, ok := BestMatch(m.Index, artist, title, duration, m.MaxDistance)
	if ok {
		diag.Debugf(m.Reporter, diag.KindGeneral, "    = %d => %q/%s", res.Distance, res.Compared, res.Location)
		return res.Location, true
	}
	if res.Location != "" {
		diag.Warnf(m.Reporter, diag.KindRejected,
			"the best match to %q (duration %s) was %q (%s), which has an edit distance of %d, greater than the maximum (%d)... skipping",
			res.Query, durationText(duration), res.Compared, res.Location, res.Distance, m.MaxDistance)
	}
	return "", false
}

// guess is the best available artist and title: the ones parsed from the
// extended information when there are any, else the track's own.
func guess(t *m3u.Track) (artist, title string) {
	if t.Info != nil && t.Info.Parsed() {
		return t.Info.Artist(), t.Info.Track()
	}
	return t.Artist(), t.Title()
}

func durationText(seconds int) string {
	if seconds <= 0 {
		return "nil"
	}
	return fmt.Sprintf("%ds", seconds)
}
