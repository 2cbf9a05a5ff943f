package types

import "fmt"

// CorruptedFileError is returned when the binary tag structure is invalid:
// bad atom or frame sizes, invalid header flags, non-ASCII frame ids,
// genre indexes out of range, or undecodable text payloads.
//
// It is distinct from UnsupportedFormatError so callers can tell a corrupt
// file apart from a feature this library deliberately does not implement.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// UnsupportedFormatError is returned for file formats and tag features this
// library does not implement: unknown file extensions, compressed or
// encrypted ID3v2 frames.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// TagNotFoundError is returned when a file has no readable tag structure:
// no moov > udta > meta > ilst chain in an MPEG-4 container, or no ID3v2,
// ID3v1 or APE tag found by any probe in an MPEG file.
type TagNotFoundError struct {
	Path   string
	Reason string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("%s: required tag not found: %s", e.Path, e.Reason)
}
