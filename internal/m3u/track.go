// Package m3u reads and writes extended M3U playlists and derives the
// artist and title each entry refers to.
package m3u

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// UnknownDuration is written in #EXTINF lines when no duration is known.
const UnknownDuration = -1

var extInfRe = regexp.MustCompile(`^\s*#\s*EXTINF\s*:\s*(-?\d+)?\s*,\s*(.*)$`)

// ExtInf is the extended information carried by an #EXTINF line.
type ExtInf struct {
	Duration int // seconds, UnknownDuration if absent
	Title    string

	artist string
	track  string
	parsed bool
}

// NewExtInf builds extended information and splits title into artist and
// track when it follows the "Artist - Title" convention.
func NewExtInf(duration int, title string) *ExtInf {
	e := &ExtInf{Duration: duration, Title: title}
	e.artist, e.track, e.parsed = SplitArtistTitle(title)
	return e
}

// ParseExtInf parses an #EXTINF line. ok is false when line is not one.
func ParseExtInf(line string) (info *ExtInf, ok bool) {
	m := extInfRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil, false
	}
	duration := UnknownDuration
	if m[1] != "" {
		d, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, false
		}
		duration = d
	}
	return NewExtInf(duration, m[2]), true
}

// Parsed reports whether Title followed the "Artist - Title" convention.
func (e *ExtInf) Parsed() bool { return e.parsed }

// Artist is the artist parsed from Title, or "".
func (e *ExtInf) Artist() string { return e.artist }

// Track is the track name parsed from Title, or "".
func (e *ExtInf) Track() string { return e.track }

// Line renders e as an #EXTINF directive.
func (e *ExtInf) Line() string {
	return fmt.Sprintf("#EXTINF:%d,%s", e.Duration, e.Title)
}

func (e *ExtInf) String() string {
	if e.parsed {
		return fmt.Sprintf("{%d, %q, %q, %q}", e.Duration, e.Title, e.artist, e.track)
	}
	return fmt.Sprintf("{%d, %q, nil, nil}", e.Duration, e.Title)
}

// SplitArtistTitle splits s at its first hyphen into a trimmed artist and
// title. ok is false when s has no hyphen or starts with one.
func SplitArtistTitle(s string) (artist, title string, ok bool) {
	i := strings.IndexByte(s, '-')
	if i <= 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
}

// Track is one playlist entry: a path plus optional extended information.
type Track struct {
	Path string
	Info *ExtInf

	artist string
	title  string
}

// NewTrack builds a track and derives its artist and title. The file's
// base name is tried first ("Artist - Title.mp3"); failing that the
// extended information is used.
func NewTrack(path string, info *ExtInf) *Track {
	t := &Track{Path: path, Info: info}
	if artist, title, ok := SplitArtistTitle(baseName(path)); ok {
		t.artist, t.title = artist, title
	} else if info != nil {
		if info.parsed {
			t.artist, t.title = info.artist, info.track
		} else {
			t.title = info.Title
		}
	}
	return t
}

// Artist is the derived artist, "" when unknown.
func (t *Track) Artist() string { return t.artist }

// Title is the derived title, "" when unknown.
func (t *Track) Title() string { return t.title }

func (t *Track) String() string {
	return fmt.Sprintf("{%v, %q, %q}", t.Info, t.artist, t.title)
}

// baseName returns the last path element without its extension. Both
// '/' and '\' separate elements since playlists travel between systems.
func baseName(path string) string {
	name := path[strings.LastIndexAny(path, `/\`)+1:]
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}
