// Package library indexes the tracks of a target media library by artist
// and title.
package library

import (
	"cmp"
	"iter"
	"math"
	"slices"

	"github.com/llehouerou/plconv/internal/diag"
)

// Key identifies a track by exact, case-sensitive artist and title.
// A missing artist or title is the empty string.
type Key struct {
	Artist string
	Title  string
}

func (k Key) String() string {
	if k.Artist == "" {
		return k.Title
	}
	return k.Artist + " - " + k.Title
}

// Record is where a track lives in the target library.
type Record struct {
	Location string
	Duration int // whole seconds, 0 when unknown
}

// Entry is one catalogue row as read from a library export.
type Entry struct {
	Artist      string
	Title       string
	Location    string
	DurationMS  int64
	HasDuration bool
}

// Index maps track keys to library records. It is not modified after
// Build returns.
type Index struct {
	records map[Key]Record
	keys    []Key // sorted
}

// Build indexes entries in order. A later entry with the same key
// replaces an earlier one. Entries without a location are dropped with
// a warning; entries with neither artist nor title are dropped with a
// debug event.
func Build(entries []Entry, r diag.Reporter) *Index {
	records := make(map[Key]Record, len(entries))
	for _, e := range entries {
		if e.Location == "" {
			diag.Warnf(r, diag.KindNoLocation,
				"%q contains no usable location data", Key{e.Artist, e.Title}.String())
			continue
		}
		if e.Artist == "" && e.Title == "" {
			diag.Debugf(r, diag.KindNoKey, "%s has neither artist nor title", e.Location)
			continue
		}
		key := Key{Artist: e.Artist, Title: e.Title}
		rec := Record{Location: e.Location}
		if e.HasDuration {
			rec.Duration = MillisToSeconds(e.DurationMS)
		}
		if prev, ok := records[key]; ok {
			diag.Debugf(r, diag.KindDuplicateKey, "%s: %s replaced by %s", key, prev.Location, rec.Location)
		}
		diag.Debugf(r, diag.KindGeneral, "(%q, %q) => (%q, %d)", key.Artist, key.Title, rec.Location, rec.Duration)
		records[key] = rec
	}
	return newIndex(records)
}

// FromRecords builds an index directly from a key/record map. The map is
// copied.
func FromRecords(m map[Key]Record) *Index {
	records := make(map[Key]Record, len(m))
	for k, v := range m {
		records[k] = v
	}
	return newIndex(records)
}

func newIndex(records map[Key]Record) *Index {
	keys := make([]Key, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return &Index{records: records, keys: keys}
}

func compareKeys(a, b Key) int {
	if c := cmp.Compare(a.Artist, b.Artist); c != 0 {
		return c
	}
	return cmp.Compare(a.Title, b.Title)
}

// Lookup returns the record stored under k.
func (ix *Index) Lookup(k Key) (Record, bool) {
	if ix == nil {
		return Record{}, false
	}
	rec, ok := ix.records[k]
	return rec, ok
}

// Len returns the number of indexed tracks.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.keys)
}

// All yields every key and record, ordered by artist then title.
func (ix *Index) All() iter.Seq2[Key, Record] {
	return func(yield func(Key, Record) bool) {
		if ix == nil {
			return
		}
		for _, k := range ix.keys {
			if !yield(k, ix.records[k]) {
				return
			}
		}
	}
}

// MillisToSeconds converts a duration in milliseconds to whole seconds,
// rounding halves to even.
func MillisToSeconds(ms int64) int {
	return int(math.RoundToEven(float64(ms) / 1000))
}
