// Package itunes reads the track catalogue of an iTunes "Music Library.xml"
// property list.
package itunes

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strconv"

	"howett.net/plist"

	"github.com/llehouerou/plconv/internal/library"
	"github.com/llehouerou/plconv/internal/textcodec"
)

type libraryFile struct {
	Tracks map[string]track `plist:"Tracks"`
}

type track struct {
	TrackID   int64  `plist:"Track ID"`
	Name      string `plist:"Name"`
	Artist    string `plist:"Artist"`
	TotalTime *int64 `plist:"Total Time"` // milliseconds
	Location  string `plist:"Location"`
}

// LoadIndexEntries reads the tracks of the library at path. Locations are
// decoded to filesystem paths. Entries come back in track ID order, so
// that a later duplicate of an artist and title wins when indexed.
func LoadIndexEntries(path string) ([]library.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	entries, err := ParseIndexEntries(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ParseIndexEntries is LoadIndexEntries on an in-memory property list.
func ParseIndexEntries(data []byte) ([]library.Entry, error) {
	var lib libraryFile
	if _, err := plist.Unmarshal(data, &lib); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(lib.Tracks))
	for id := range lib.Tracks {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		return cmp.Or(
			cmp.Compare(trackOrder(lib.Tracks[a], a), trackOrder(lib.Tracks[b], b)),
			cmp.Compare(a, b),
		)
	})

	entries := make([]library.Entry, 0, len(ids))
	for _, id := range ids {
		t := lib.Tracks[id]
		e := library.Entry{Artist: t.Artist, Title: t.Name}
		if t.Location != "" {
			e.Location = textcodec.DecodeTrackLocation(t.Location)
		}
		if t.TotalTime != nil {
			e.DurationMS = *t.TotalTime
			e.HasDuration = true
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// trackOrder is the numeric track ID, taken from the dictionary key when
// the track itself does not carry one.
func trackOrder(t track, key string) int64 {
	if t.TrackID != 0 {
		return t.TrackID
	}
	n, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
