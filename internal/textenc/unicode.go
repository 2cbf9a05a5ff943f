package textenc

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

var (
	errInvalidUTF8  = errors.New("invalid UTF-8 sequence")
	errInvalidUTF16 = errors.New("invalid UTF-16 sequence")
)

// DecodeUTF8 decodes b as UTF-8, rejecting invalid sequences.
func DecodeUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", errInvalidUTF8
	}
	return string(b), nil
}

// DecodeUTF16 decodes b as UTF-16 with an optional byte-order mark.
// Without a BOM the data is taken as big-endian, which is what tag writers
// emit in practice.
func DecodeUTF16(b []byte) (string, error) {
	return decodeUTF16(b, unicode.UTF16(unicode.BigEndian, unicode.UseBOM))
}

// DecodeUTF16BE decodes b as UTF-16 big-endian without a BOM.
func DecodeUTF16BE(b []byte) (string, error) {
	return decodeUTF16(b, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM))
}

// DecodeUTF16LE decodes b as UTF-16 little-endian without a BOM.
func DecodeUTF16LE(b []byte) (string, error) {
	return decodeUTF16(b, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM))
}

func decodeUTF16(b []byte, enc encoding.Encoding) (string, error) {
	if len(b)%2 != 0 {
		return "", errInvalidUTF16
	}

	decoded, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", errInvalidUTF16
	}

	// The x/text decoder substitutes U+FFFD for unpaired surrogates
	// instead of failing; a corrupt payload must abort the parse.
	if strings.ContainsRune(string(decoded), utf8.RuneError) {
		return "", errInvalidUTF16
	}

	return string(decoded), nil
}
