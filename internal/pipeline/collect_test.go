package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/plconv/internal/diag"
	"github.com/llehouerou/plconv/internal/m3u"
)

func TestCollectTracks(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.mp3")
	require.NoError(t, os.WriteFile(present, nil, 0o644))
	absent := filepath.Join(dir, "absent.mp3")

	a := writePlaylist(t, "a.m3u8", "#EXTM3U\n"+absent+"\n"+present+"\n")
	b := writePlaylist(t, "b.m3u8", "#EXTM3U\n#EXTINF:1,x\n"+present+"\n/zz/other.mp3\n")
	missing := filepath.Join(dir, "missing.m3u")

	var rec diag.Recorder
	got, err := CollectTracks([]string{a, b, missing}, "", false, &rec)
	require.NoError(t, err)
	assert.Equal(t, []string{absent, present, "/zz/other.mp3"}, got)
	assert.Equal(t, 1, rec.Count(diag.KindMissingSource))

	got, err = CollectTracks([]string{a, b}, "", true, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{absent, "/zz/other.mp3"}, got)
}

func TestCollectTracks_BadPlaylist(t *testing.T) {
	bad := writePlaylist(t, "bad.m3u", "not a playlist\n")
	_, err := CollectTracks([]string{bad}, "", false, nil)
	var fe *m3u.FormatError
	assert.ErrorAs(t, err, &fe)
}
