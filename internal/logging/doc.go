// Package logging writes leveled diagnostics to the terminal.
//
// Levels, lowest first:
//   - debug: matching decisions and skipped catalogue entries
//   - info: files written
//   - warn: tracks that could not be matched, missing files
//   - error: failures that abort a command
//
// The threshold comes from the --debug flag, the [log] level setting,
// or the DEBUG and LOG_LEVEL environment variables.
package logging
