// Package winamp reads the playlist list of a Winamp Media Library
// (Plugins/ml/playlists.xml).
package winamp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/llehouerou/plconv/internal/textcodec"
)

type playlistsDoc struct {
	Playlists []playlistElem `xml:"playlist"`
}

type playlistElem struct {
	Filename string `xml:"filename,attr"`
	Title    string `xml:"title,attr"`
	Songs    int    `xml:"songs,attr"`
	Seconds  int    `xml:"seconds,attr"`
}

// Playlist is one Media Library playlist. Its tracks live in the M3U file
// at Path.
type Playlist struct {
	Title   string
	Path    string
	Songs   int
	Seconds int
}

// LoadPlaylists reads the playlists listed in the playlists.xml at path
// whose titles keep accepts. Playlist files are resolved relative to the
// directory holding path. A nil keep accepts every playlist.
func LoadPlaylists(path string, keep func(title string) bool) ([]Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pls, err := ParsePlaylists(f, filepath.Dir(path), keep)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pls, nil
}

// ParsePlaylists is LoadPlaylists on a reader, resolving file names
// against dir.
func ParsePlaylists(r io.Reader, dir string, keep func(title string) bool) ([]Playlist, error) {
	var doc playlistsDoc
	if err := textcodec.NewXMLDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	var out []Playlist
	for _, p := range doc.Playlists {
		if keep != nil && !keep(p.Title) {
			continue
		}
		out = append(out, Playlist{
			Title:   p.Title,
			Path:    filepath.Join(dir, p.Filename),
			Songs:   p.Songs,
			Seconds: p.Seconds,
		})
	}
	return out, nil
}
