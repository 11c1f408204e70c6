package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"slices"

	"github.com/llehouerou/plconv/internal/diag"
	"github.com/llehouerou/plconv/internal/m3u"
)

// CollectTracks returns the distinct track paths referenced by the given
// playlists, sorted. With onlyMissing set, only paths that do not exist
// on this machine are returned. Missing playlists are reported and
// skipped.
func CollectTracks(paths []string, encoding string, onlyMissing bool, r diag.Reporter) ([]string, error) {
	seen := make(map[string]struct{})
	for _, p := range paths {
		ok, err := sourceExists(p, r)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		tracks, err := m3u.ParseFile(p, encoding)
		if err != nil {
			return nil, err
		}
		for _, t := range tracks {
			seen[t.Path] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		if onlyMissing && exists(p) {
			continue
		}
		out = append(out, p)
	}
	slices.Sort(out)
	return out, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
