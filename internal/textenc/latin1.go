// Package textenc decodes the string encodings found in audio tags:
// ISO 8859-1 (Latin1), UTF-8 and the three UTF-16 flavors used by ID3v2.
package textenc

import (
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// DecodeLatin1 decodes b as ISO 8859-1. Every byte sequence is valid
// Latin1, so this cannot fail.
func DecodeLatin1(b []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// ISO 8859-1 maps all 256 byte values.
		return string(b)
	}
	return string(decoded)
}

// TrimPadding drops everything after the last alphanumeric byte. Fixed-width
// tag fields (the ID3v1 block) pad with NULs or spaces; some writers pad
// with other junk, so the trim keys off alphanumerics rather than a fixed
// pad byte.
func TrimPadding(b []byte) []byte {
	for i := len(b) - 1; i >= 0; i-- {
		r := rune(b[i]) // Latin1 code points coincide with Unicode
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return b[:i+1]
		}
	}
	return b[:0]
}
