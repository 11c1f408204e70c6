//nolint:goconst // test cases intentionally repeat strings for readability
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate moves the test into an empty directory and hides any user
// configuration.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg-config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "xdg-data"))
	t.Setenv("DEBUG", "")
	t.Setenv("LOG_LEVEL", "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	t.Chdir(dir)
	return dir
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	code = run(root, args, &errOut)
	return out.String(), errOut.String(), code
}

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNormalizeM3U(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "Road Trip.m3u8")
	writeFile(t, in, []byte("#EXTM3U\n#EXTINF:100,A - B  \n/music/A - B.mp3\n"))
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	_, stderr, code := runCLI(t, "normalize-m3u", "-o", outDir, "-u", "-r", "l-", "-p", "^/music=>/mnt/music", in)
	require.Equal(t, 0, code, stderr)

	got := readFile(t, filepath.Join(outDir, "road-trip.m3u8"))
	assert.Equal(t, "#EXTM3U\n#EXTINF:100,A - B\n/mnt/music/A - B.mp3\n", got)
	assert.Contains(t, stderr, "wrote 1 playlists with 1 tracks")
	assert.Contains(t, stderr, ", 0 warnings")
}

func TestNormalizeM3U_MissingFileIsSkipped(t *testing.T) {
	dir := isolate(t)

	_, stderr, code := runCLI(t, "normalize-m3u", "-o", dir, filepath.Join(dir, "nope.m3u"))
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "does not appear to exist")
	assert.Contains(t, stderr, "wrote 0 playlists")
	assert.Contains(t, stderr, ", 1 warnings")
}

func TestNormalizeM3U_ConfigRules(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), []byte("utf8 = true\nreplace = ['\\\\=>/']\n"))
	in := filepath.Join(dir, "win.m3u8")
	writeFile(t, in, []byte("#EXTM3U\nM:\\Music\\x.mp3\n"))
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	_, stderr, code := runCLI(t, "normalize-m3u", "-o", outDir, in)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "#EXTM3U\nM:/Music/x.mp3\n", readFile(t, filepath.Join(outDir, "win.m3u8")))
}

func TestNormalizeM3U_BadRenameCode(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "a.m3u8")
	writeFile(t, in, []byte("#EXTM3U\n"))

	_, stderr, code := runCLI(t, "normalize-m3u", "-r", "z", in)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error:")
}

func TestGetTracks(t *testing.T) {
	dir := isolate(t)
	present := filepath.Join(dir, "present.mp3")
	writeFile(t, present, []byte("x"))
	missing := filepath.Join(dir, "missing.mp3")

	a := filepath.Join(dir, "a.m3u8")
	b := filepath.Join(dir, "b.m3u8")
	writeFile(t, a, []byte("#EXTM3U\n"+present+"\n"+missing+"\n"))
	writeFile(t, b, []byte("#EXTM3U\n#EXTINF:1,x\n"+missing+"\n"))

	stdout, stderr, code := runCLI(t, "get-tracks", a, b)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, missing+"\n"+present+"\n", stdout)

	stdout, stderr, code = runCLI(t, "get-tracks", "-m", a, b)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, missing+"\n", stdout)
}

func TestGetTracks_NotAPlaylist(t *testing.T) {
	dir := isolate(t)
	bad := filepath.Join(dir, "bad.m3u8")
	writeFile(t, bad, []byte("/music/a.mp3\n"))

	_, stderr, code := runCLI(t, "get-tracks", bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Failed to collect tracks")
}

const itunesLibrary = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple Computer//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Tracks</key>
	<dict>
		<key>1</key>
		<dict>
			<key>Track ID</key><integer>1</integer>
			<key>Name</key><string>The Body Of An American</string>
			<key>Artist</key><string>Pogues, The</string>
			<key>Total Time</key><integer>290742</integer>
			<key>Location</key><string>file://localhost/Users/mgh/Music/Pogues.mp3</string>
		</dict>
	</dict>
</dict>
</plist>
`

func TestItunifyM3U(t *testing.T) {
	dir := isolate(t)
	lib := filepath.Join(dir, "library.xml")
	writeFile(t, lib, []byte(itunesLibrary))
	in := filepath.Join(dir, "mix.m3u8")
	writeFile(t, in, []byte("#EXTM3U\n"+
		"/old/Pogues, The - The Body Of An American.mp3\n"+
		"#EXTINF:200,Zzz - Qqq\n"+
		"/old/Zzz - Qqq.mp3\n"))
	out := filepath.Join(dir, "itunes.m3u8")

	_, stderr, code := runCLI(t, "itunify-m3u", "-i", lib, "-m", "2", "-o", out, in)
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, "#EXTM3U\n/Users/mgh/Music/Pogues.mp3\n", readFile(t, out))
	assert.Contains(t, stderr, "matched 1 of 2 tracks")
	assert.Contains(t, stderr, "edit distance")
	assert.Contains(t, stderr, "no match for")
}

func TestItunifyM3U_DefaultOutputAndRhythmboxIndex(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "rhythmdb.xml")
	writeFile(t, db, []byte(rhythmboxDB))
	in := filepath.Join(dir, "mix.m3u")
	writeFile(t, in, []byte("#EXTM3U\r\n#EXTINF:186,Gin Blossoms - Not Only Numb\r\nD:\\mp3\\track01.mp3\r\n"))

	_, stderr, code := runCLI(t, "itunify-m3u", "--rhythmbox-db", db, "-b", in)
	require.Equal(t, 0, code, stderr)

	got := readFile(t, filepath.Join(dir, "mix.m3u8"))
	assert.Equal(t, "\ufeff#EXTM3U\n#EXTINF:186,Gin Blossoms - Not Only Numb\n/home/mgh/Music/numb.mp3\n", got)
}

func TestItunifyM3U_MissingLibrary(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "mix.m3u8")
	writeFile(t, in, []byte("#EXTM3U\n"))

	_, stderr, code := runCLI(t, "itunify-m3u", "-i", filepath.Join(dir, "nope.xml"), in)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Failed to read iTunes library")
}

const rhythmboxDB = `<?xml version="1.0" standalone="yes"?>
<rhythmdb version="2.0">
  <entry type="song">
    <title>Not Only Numb</title>
    <artist>Gin Blossoms</artist>
    <duration>186</duration>
    <location>file:///home/mgh/Music/numb.mp3</location>
  </entry>
</rhythmdb>
`

const rhythmboxPlaylists = `<?xml version="1.0"?>
<rhythmdb-playlists>
  <playlist name="Fall 2013" type="static">
    <location>file:///home/mgh/Music/numb.mp3</location>
    <location>file:///home/mgh/Music/gone.mp3</location>
  </playlist>
  <playlist name="Other" type="static">
    <location>file:///home/mgh/Music/numb.mp3</location>
  </playlist>
</rhythmdb-playlists>
`

func TestGetPlaylistsXML(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "rhythmdb.xml")
	pls := filepath.Join(dir, "playlists.xml")
	writeFile(t, db, []byte(rhythmboxDB))
	writeFile(t, pls, []byte(rhythmboxPlaylists))
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	_, stderr, code := runCLI(t, "get-playlists-xml", "-o", outDir, "-u", "-y", "Fall 2013", db, pls)
	require.Equal(t, 0, code, stderr)

	assert.Equal(t,
		"#EXTM3U\n#EXTINF:186,Gin Blossoms - Not Only Numb\n/home/mgh/Music/numb.mp3\n/home/mgh/Music/gone.mp3\n",
		readFile(t, filepath.Join(outDir, "Fall 2013.m3u8")))
	assert.NoFileExists(t, filepath.Join(outDir, "Other.m3u8"))
}

func TestGetPlaylistsXML_DefaultPaths(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg-data", "rhythmbox", "rhythmdb.xml"), []byte(rhythmboxDB))
	writeFile(t, filepath.Join(dir, "xdg-data", "rhythmbox", "playlists.xml"), []byte(rhythmboxPlaylists))

	_, stderr, code := runCLI(t, "get-playlists-xml", "-x", "Fall 2013")
	require.Equal(t, 0, code, stderr)

	assert.Equal(t,
		"#EXTM3U\n#EXTINF:186,Gin Blossoms - Not Only Numb\n/home/mgh/Music/numb.mp3\n",
		readFile(t, filepath.Join(dir, "Other.m3u")))
}

func TestGetPlaylistsXML_NothingSelected(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "rhythmdb.xml")
	pls := filepath.Join(dir, "playlists.xml")
	writeFile(t, db, []byte(rhythmboxDB))
	writeFile(t, pls, []byte(rhythmboxPlaylists))

	_, stderr, code := runCLI(t, "get-playlists-xml", "-y", "Nope", db, pls)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "no playlists selected")
}

func TestGetWinampML(t *testing.T) {
	dir := isolate(t)
	ml := filepath.Join(dir, "ml")
	writeFile(t, filepath.Join(ml, "playlists.xml"), []byte(`<?xml version="1.0" encoding="UTF-8"?>
<playlists playlists="2">
<playlist filename="plf1.m3u8" title="Café Mix" songs="1" seconds="200"/>
<playlist filename="plf2.m3u8" title="Skipped" songs="0" seconds="0"/>
</playlists>
`))
	writeFile(t, filepath.Join(ml, "plf1.m3u8"), []byte("\ufeff#EXTM3U\n#EXTINF:200,Café - Olé\nC:\\Music\\Café - Olé.mp3\n"))
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	_, stderr, code := runCLI(t, "get-winamp-ml", "-o", outDir, "-x", "Skipped", filepath.Join(ml, "playlists.xml"))
	require.Equal(t, 0, code, stderr)

	want := "#EXTM3U\n#EXTINF:200,Caf\xe9 - Ol\xe9\nC:\\Music\\Caf\xe9 - Ol\xe9.mp3\n"
	assert.Equal(t, want, readFile(t, filepath.Join(outDir, "Café Mix.m3u")))
	assert.Contains(t, stderr, "wrote 1 playlists")
}

func TestConfigFlag(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "a.m3u8")
	writeFile(t, in, []byte("#EXTM3U\n"))

	_, stderr, code := runCLI(t, "--config", filepath.Join(dir, "missing.toml"), "get-tracks", in)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Failed to load configuration")
}

func TestDebugFlag(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "a.m3u8")
	writeFile(t, in, []byte("#EXTM3U\n"))
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	_, stderr, code := runCLI(t, "normalize-m3u", "-o", outDir, in)
	require.Equal(t, 0, code, stderr)
	assert.NotContains(t, stderr, "debug:")

	writeFile(t, filepath.Join(dir, "lib.xml"), []byte(itunesLibrary))
	_, stderr, code = runCLI(t, "--debug", "itunify-m3u", "-i", filepath.Join(dir, "lib.xml"), "-o", filepath.Join(outDir, "x.m3u8"), in)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "debug: indexed 1 tracks")
}

func TestSelection(t *testing.T) {
	tests := []struct {
		name     string
		sel      selection
		playlist string
		expected bool
	}{
		{"no filter", selection{}, "A", true},
		{"only keeps listed", selection{only: []string{"A"}}, "A", true},
		{"only drops others", selection{only: []string{"A"}}, "B", false},
		{"exclude drops listed", selection{exclude: []string{"A"}}, "A", false},
		{"exclude wins over only", selection{only: []string{"A"}, exclude: []string{"A"}}, "A", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.keep(tt.playlist); got != tt.expected {
				t.Errorf("keep(%q) = %v, want %v", tt.playlist, got, tt.expected)
			}
		})
	}
}
