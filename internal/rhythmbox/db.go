// Package rhythmbox reads the Rhythmbox song database (rhythmdb.xml) and
// its static playlists (playlists.xml).
package rhythmbox

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/llehouerou/plconv/internal/library"
	"github.com/llehouerou/plconv/internal/m3u"
	"github.com/llehouerou/plconv/internal/textcodec"
)

type rhythmdb struct {
	Entries []dbEntry `xml:"entry"`
}

type dbEntry struct {
	Type     string `xml:"type,attr"`
	Title    string `xml:"title"`
	Artist   string `xml:"artist"`
	Duration *int   `xml:"duration"` // seconds
	Location string `xml:"location"`
}

// Song is a track known to Rhythmbox.
type Song struct {
	Artist   string
	Title    string
	Location string // filesystem path
	Duration int    // seconds, 0 when unknown
}

// Display is the "Artist - Title" text playlists show for s.
func (s Song) Display() string {
	if s.Artist == "" {
		return s.Title
	}
	return s.Artist + " - " + s.Title
}

// DB maps filesystem paths to songs.
type DB map[string]Song

// LoadDB reads the songs of the database at path.
func LoadDB(path string) (DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	db, err := ParseDB(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

// ParseDB reads a database from r. Entries that are not songs, or have
// no location, are skipped.
func ParseDB(r io.Reader) (DB, error) {
	var doc rhythmdb
	if err := textcodec.NewXMLDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	db := make(DB, len(doc.Entries))
	for _, e := range doc.Entries {
		if e.Type != "song" || e.Location == "" {
			continue
		}
		loc := textcodec.DecodeTrackLocation(e.Location)
		if loc == "" {
			continue
		}
		s := Song{Artist: e.Artist, Title: e.Title, Location: loc}
		if e.Duration != nil {
			s.Duration = *e.Duration
		}
		db[loc] = s
	}
	return db, nil
}

// IndexEntries returns every song as a library entry, ordered by
// location, so a Rhythmbox database can serve as a reconciliation target.
func (db DB) IndexEntries() []library.Entry {
	locations := make([]string, 0, len(db))
	for loc := range db {
		locations = append(locations, loc)
	}
	slices.Sort(locations)

	entries := make([]library.Entry, 0, len(locations))
	for _, loc := range locations {
		s := db[loc]
		entries = append(entries, library.Entry{
			Artist:      s.Artist,
			Title:       s.Title,
			Location:    s.Location,
			DurationMS:  int64(s.Duration) * 1000,
			HasDuration: s.Duration > 0,
		})
	}
	return entries
}

// Tracks turns the locations of pl into playlist tracks. Songs found in
// db get extended information; others are written as bare paths.
func (db DB) Tracks(pl Playlist) []*m3u.Track {
	tracks := make([]*m3u.Track, 0, len(pl.Locations))
	for _, loc := range pl.Locations {
		s, ok := db[loc]
		if !ok {
			tracks = append(tracks, m3u.NewTrack(loc, nil))
			continue
		}
		duration := s.Duration
		if duration <= 0 {
			duration = m3u.UnknownDuration
		}
		tracks = append(tracks, m3u.NewTrack(loc, m3u.NewExtInf(duration, s.Display())))
	}
	return tracks
}
