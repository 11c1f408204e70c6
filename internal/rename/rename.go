// Package rename turns playlist titles into output file names.
package rename

import (
	"fmt"
	"regexp"
	"strings"
)

// Rename codes understood by Apply.
const (
	CodeLower = 'l' // lower-case the title
	CodeDash  = '-' // replace spaces with dashes
)

// UnknownCodeError reports a rename code Apply does not understand.
type UnknownCodeError struct {
	Code rune
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown rename code '%c'", e.Code)
}

var (
	// reIllegalFileChars matches characters not allowed in file names, with surrounding whitespace
	reIllegalFileChars = regexp.MustCompile(`\s*[/\\><*:|?"]+\s*`)
	reMultiSpace       = regexp.MustCompile(`\s+`)
)

// Apply runs each rename code in codes over title, left to right.
func Apply(title, codes string) (string, error) {
	name := title
	for _, c := range codes {
		switch c {
		case CodeLower:
			name = strings.ToLower(name)
		case CodeDash:
			name = strings.ReplaceAll(name, " ", "-")
		default:
			return "", &UnknownCodeError{Code: c}
		}
	}
	return name, nil
}

// Validate checks codes without applying them.
func Validate(codes string) error {
	_, err := Apply("", codes)
	return err
}

// FileName renames title with codes, makes the result safe to use as a
// file name and appends ext.
func FileName(title, codes, ext string) (string, error) {
	name, err := Apply(cleanForFilename(title), codes)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = "playlist"
	}
	return name + ext, nil
}

// cleanForFilename replaces illegal file name characters with " - " and
// normalizes spaces.
func cleanForFilename(s string) string {
	s = reIllegalFileChars.ReplaceAllString(s, " - ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.Trim(s, "-. ")
}
