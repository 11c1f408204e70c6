package textcodec

import (
	"html"
	"net/url"
	"strings"
)

// DecodeTrackLocation turns a catalogue location such as
// "file:///music/A%20-%20B.mp3" into a filesystem path. iTunes and
// Rhythmbox store locations as XML-escaped, percent-encoded URIs.
func DecodeTrackLocation(location string) string {
	s := html.UnescapeString(location)
	if u, err := url.Parse(s); err == nil {
		if u.Opaque != "" {
			return unquote(u.Opaque)
		}
		return u.Path
	}
	return unquote(uriPath(s))
}

// uriPath extracts the path component of a URI that net/url rejected.
func uriPath(s string) string {
	if i := strings.Index(s, "://"); i >= 0 && !strings.ContainsAny(s[:i], "/?#") {
		s = s[i+3:]
		if j := strings.IndexByte(s, '/'); j >= 0 {
			s = s[j:]
		} else {
			s = ""
		}
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return s
}

// unquote decodes %XX escapes, leaving malformed ones as they are.
func unquote(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			sb.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}
