// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Setup
	OpConfigLoad   Op = "load configuration"
	OpRulesCompile Op = "compile replacement rules"

	// Catalogues
	OpITunesLoad             Op = "read iTunes library"
	OpRhythmboxDBLoad        Op = "read Rhythmbox database"
	OpRhythmboxPlaylistsLoad Op = "read Rhythmbox playlists"
	OpWinampPlaylistsLoad    Op = "read Winamp playlists"

	// Playlist operations
	OpPlaylistConvert   Op = "convert playlist"
	OpPlaylistNormalize Op = "normalize playlist"
	OpPlaylistExport    Op = "export playlist"
	OpPlaylistWrite     Op = "write playlist"

	// Track listing
	OpTracksCollect Op = "collect tracks"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error wraps err so it prints as FormatWith does while staying
// inspectable with errors.Is and errors.As.
func Error(op Op, context string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, context: context, err: err}
}

type opError struct {
	op      Op
	context string
	err     error
}

func (e *opError) Error() string { return FormatWith(e.op, e.context, e.err) }

func (e *opError) Unwrap() error { return e.err }
