// Package binary provides bounds-checked binary reading primitives.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SafeReader wraps io.ReaderAt with bounds checking and error messages that
// name what was being read. Every read the parsers perform goes through it,
// so a truncated or hostile file surfaces as a descriptive error instead of
// a short read deep inside a decoder.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a SafeReader over r, which holds size bytes.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the total number of readable bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt fills b from the given offset. what is included in any error.
// A zero-length read succeeds anywhere up to and including end of file;
// an empty structure ending exactly at EOF is valid.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off > sr.size {
		return fmt.Errorf("%s: %s at offset %d lies outside the file (%d bytes)",
			sr.path, what, off, sr.size)
	}

	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: %s needs %d bytes at offset %d but the file holds %d",
			sr.path, what, len(b), off, sr.size)
	}

	if len(b) == 0 {
		return nil
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: reading %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: %s truncated at offset %d: %d of %d bytes",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// Read reads a big-endian value of type T from the given offset.
// Both MPEG-4 atoms and ID3v2 frames store multi-byte integers big-endian.
func Read[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	var zero T
	var size int

	switch any(zero).(type) {
	case uint8:
		size = 1
	case uint16:
		size = 2
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	buf := make([]byte, size)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		val = T(binary.BigEndian.Uint16(buf))
	case uint32:
		val = T(binary.BigEndian.Uint32(buf))
	case uint64:
		val = T(binary.BigEndian.Uint64(buf))
	}

	return val, nil
}
