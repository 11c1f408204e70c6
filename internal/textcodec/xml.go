package textcodec

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewXMLDecoder returns an XML decoder for catalogue files. A leading
// byte-order mark selects UTF-8 or UTF-16; otherwise the encoding named
// in the XML declaration is honoured.
func NewXMLDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	d.CharsetReader = charsetReader
	return d
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	name := canonicalName(label)
	// Unicode input was already converted to UTF-8 by BOMOverride.
	if name == "utf-8" || strings.HasPrefix(name, "utf-16") {
		return input, nil
	}
	enc, err := lookupEncoding(label)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder().Reader(input), nil
}
