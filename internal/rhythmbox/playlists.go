package rhythmbox

import (
	"fmt"
	"io"
	"os"

	"github.com/llehouerou/plconv/internal/textcodec"
)

type playlistsDoc struct {
	Playlists []playlistElem `xml:"playlist"`
}

type playlistElem struct {
	Name      string   `xml:"name,attr"`
	Type      string   `xml:"type,attr"`
	Locations []string `xml:"location"`
}

// Playlist is a static Rhythmbox playlist.
type Playlist struct {
	Name      string
	Locations []string // filesystem paths
}

// LoadPlaylists reads the static playlists at path whose names keep
// accepts. A nil keep accepts every playlist.
func LoadPlaylists(path string, keep func(name string) bool) ([]Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pls, err := ParsePlaylists(f, keep)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pls, nil
}

// ParsePlaylists is LoadPlaylists on a reader. Automatic and queue
// playlists are skipped.
func ParsePlaylists(r io.Reader, keep func(name string) bool) ([]Playlist, error) {
	var doc playlistsDoc
	if err := textcodec.NewXMLDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	var out []Playlist
	for _, p := range doc.Playlists {
		if p.Type != "static" {
			continue
		}
		if keep != nil && !keep(p.Name) {
			continue
		}
		pl := Playlist{Name: p.Name, Locations: make([]string, 0, len(p.Locations))}
		for _, loc := range p.Locations {
			pl.Locations = append(pl.Locations, textcodec.DecodeTrackLocation(loc))
		}
		out = append(out, pl)
	}
	return out, nil
}
