// Package registry manages format-specific tag parsers.
package registry

import (
	"io"

	"github.com/hGriff0n/tags/internal/types"
)

// Parser is the interface all format parsers implement.
type Parser interface {
	// Parse extracts the tag from an audio file. The reader is only valid
	// for the duration of the call; the returned Tag must not retain it.
	Parse(r io.ReaderAt, size int64, path string) (types.Tag, error)
}

// parsers maps formats to their parsers.
var parsers = make(map[types.Format]Parser)

// Register registers a parser for a format.
// Format packages call this from their init functions.
func Register(format types.Format, parser Parser) {
	parsers[format] = parser
}

// Get returns the parser for a format, or nil if none is registered.
func Get(format types.Format) Parser {
	return parsers[format]
}
