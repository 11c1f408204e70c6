package match

import (
	"slices"

	"github.com/llehouerou/plconv/internal/library"
)

// Result describes the closest index entry found by BestMatch.
type Result struct {
	Location string
	Distance int
	Query    string // text searched for
	Compared string // text of the closest entry
	Ties     int    // entries sharing Distance
}

// Text joins artist and title the way playlists display them: "A - T"
// when both are set, otherwise whichever one is.
func Text(artist, title string) string {
	switch {
	case artist != "" && title != "":
		return artist + " - " + title
	case artist != "":
		return artist
	default:
		return title
	}
}

// BestMatch scans the whole index for the entry closest to artist and
// title. When duration is positive the difference in seconds between it
// and each entry's duration is added to the edit distance. Among entries
// at the minimum distance the smallest location wins.
//
// ok is false when the index is empty or, with maxDistance positive, when
// the minimum distance exceeds it. The closest entry is still described
// in the returned Result in the latter case.
func BestMatch(idx *library.Index, artist, title string, duration, maxDistance int) (Result, bool) {
	res := Result{Query: Text(artist, title), Distance: -1}

	var candidates []string
	for key, rec := range idx.All() {
		text := Text(key.Artist, key.Title)
		d := Levenshtein(res.Query, text)
		if duration > 0 {
			d += abs(duration - rec.Duration)
		}

		switch {
		case res.Distance < 0 || d < res.Distance:
			res.Distance = d
			res.Compared = text
			candidates = append(candidates[:0], rec.Location)
		case d == res.Distance:
			candidates = append(candidates, rec.Location)
		}
	}

	if len(candidates) == 0 {
		return res, false
	}
	res.Location = slices.Min(candidates)
	res.Ties = len(candidates)
	if maxDistance > 0 && res.Distance > maxDistance {
		return res, false
	}
	return res, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
