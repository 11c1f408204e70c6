//nolint:goconst // test cases intentionally repeat strings for readability
package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/plconv/internal/diag"
	"github.com/llehouerou/plconv/internal/m3u"
	"github.com/llehouerou/plconv/internal/replace"
	"github.com/llehouerou/plconv/internal/textcodec"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/p/Road Trip.m3u", "Road Trip"},
		{"Road Trip.m3u8", "Road Trip"},
		{"/p/noext", "noext"},
		{"/p/a.b.m3u", "a.b"},
	}
	for _, tt := range tests {
		if got := Title(tt.path); got != tt.expected {
			t.Errorf("Title(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestNormalizeFile(t *testing.T) {
	in := writePlaylist(t, "Road Trip.m3u",
		"#EXTM3U\r\n#EXTINF:186,Mot\xf6rhead - Ace of Spades  \r\nM:\\M\\Mot\xf6rhead - Ace of Spades.mp3\r\n")
	outDir := t.TempDir()

	rules, err := replace.CompileAll([]string{`^M:=>/mnt/music`, `\\=>/`})
	require.NoError(t, err)

	n := &Normalizer{
		Rules:  rules,
		Output: Output{Dir: outDir, Target: textcodec.UTF8, UseBOM: true, Rename: "l-"},
	}
	w, ok, err := n.NormalizeFile(Title(in), in)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(outDir, "road-trip.m3u8"), w.Path)
	assert.Equal(t, 1, w.Tracks)
	assert.Equal(t, 3, w.Lines)

	data, err := os.ReadFile(w.Path)
	require.NoError(t, err)
	assert.Equal(t,
		"\ufeff#EXTM3U\n#EXTINF:186,Motörhead - Ace of Spades\n/mnt/music/M/Motörhead - Ace of Spades.mp3\n",
		string(data))
	assert.Equal(t, len(data), w.Bytes)
}

func TestNormalizeFile_Windows1252(t *testing.T) {
	in := writePlaylist(t, "mix.m3u8", "#EXTM3U\n/m/Motörhead.mp3\n")
	outDir := t.TempDir()

	n := &Normalizer{Output: Output{Dir: outDir, Target: textcodec.Windows1252, UseBOM: true, EOL: EOLWindows}}
	w, ok, err := n.NormalizeFile("mix", in)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(outDir, "mix.m3u"), w.Path)

	data, err := os.ReadFile(w.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("#EXTM3U\r\n/m/Mot\xf6rhead.mp3\r\n"), data, "no BOM outside UTF-8")
}

func TestNormalizeFile_CarriageReturnLineEndings(t *testing.T) {
	in := writePlaylist(t, "mac.m3u", "#EXTM3U\r#EXTINF:100,A - B\r/y/A - B.mp3\r")
	outDir := t.TempDir()

	n := &Normalizer{Output: Output{Dir: outDir, Target: textcodec.UTF8}}
	w, ok, err := n.NormalizeFile("mac", in)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, w.Tracks)

	data, err := os.ReadFile(w.Path)
	require.NoError(t, err)
	assert.Equal(t, "#EXTM3U\n#EXTINF:100,A - B\n/y/A - B.mp3\n", string(data))
}

func TestNormalizeFile_Missing(t *testing.T) {
	var rec diag.Recorder
	n := &Normalizer{Output: Output{Dir: t.TempDir()}, Reporter: &rec}
	_, ok, err := n.NormalizeFile("x", filepath.Join(t.TempDir(), "missing.m3u"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, rec.Count(diag.KindMissingSource))
}

func TestNormalizeFile_BadRenameCode(t *testing.T) {
	in := writePlaylist(t, "mix.m3u", "#EXTM3U\n")
	n := &Normalizer{Output: Output{Dir: t.TempDir(), Rename: "z"}}
	_, _, err := n.NormalizeFile("mix", in)
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	outDir := t.TempDir()
	var rec diag.Recorder
	n := &Normalizer{
		Output:   Output{Dir: outDir, Target: textcodec.UTF8},
		Reporter: &rec,
	}
	w, err := n.Export("Fall 2013", []*m3u.Track{
		m3u.NewTrack("/music/a.mp3", m3u.NewExtInf(200, "A - Song")),
		m3u.NewTrack("/music/b.mp3", nil),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, w.Tracks)

	data, err := os.ReadFile(filepath.Join(outDir, "Fall 2013.m3u8"))
	require.NoError(t, err)
	assert.Equal(t, "#EXTM3U\n#EXTINF:200,A - Song\n/music/a.mp3\n/music/b.mp3\n", string(data))
	assert.Equal(t, 1, rec.Count(diag.KindWritten))
}
