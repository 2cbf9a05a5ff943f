package mpeg

import (
	"fmt"

	"github.com/hGriff0n/tags/internal/binary"
	"github.com/hGriff0n/tags/internal/types"
)

// tagHeaderSize is the fixed ID3v2 tag header width.
const tagHeaderSize = 10

// footerSize is the width of the optional ID3v2.4 footer.
const footerSize = 10

// TagHeader is the parsed 10-byte ID3v2 tag header. Size excludes the
// header itself.
type TagHeader struct {
	Size         uint64
	MajorVersion uint8
	Revision     uint8
	Unsynch      bool
	Extended     bool
	Experimental bool
	Footer       bool
}

// parseTagHeader decodes the 10-byte header. Each of the four size bytes
// must have its high bit clear; anything else is corruption, not a size to
// fall back on.
func parseTagHeader(buf []byte, path string) (TagHeader, error) {
	if len(buf) < tagHeaderSize {
		return TagHeader{}, &types.CorruptedFileError{
			Path:   path,
			Reason: "tag header too small",
		}
	}

	for _, b := range buf[6:10] {
		if b >= 128 {
			return TagHeader{}, &types.CorruptedFileError{
				Path:   path,
				Reason: "tag size byte has its high bit set",
			}
		}
	}

	return TagHeader{
		MajorVersion: buf[3],
		Revision:     buf[4],
		Size:         uint64(decodeSynchsafe(buf[6:10])),
		Unsynch:      buf[5]&0x80 != 0,
		Extended:     buf[5]&0x40 != 0,
		Experimental: buf[5]&0x20 != 0,
		Footer:       buf[5]&0x10 != 0,
	}, nil
}

// readID3v2 reads and decodes the ID3v2 tag at the given offset.
func readID3v2(sr *binary.SafeReader, offset int64) (*Tag, error) {
	header := make([]byte, tagHeaderSize)
	if err := sr.ReadAt(header, offset, "ID3v2 tag header"); err != nil {
		return nil, err
	}

	th, err := parseTagHeader(header, sr.Path())
	if err != nil {
		return nil, err
	}

	if th.Size == 0 {
		return nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: "tag must contain at least one frame",
		}
	}

	if offset+tagHeaderSize+int64(th.Size) > sr.Size() {
		return nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: "declared tag size reaches past end of file",
		}
	}

	buf := make([]byte, th.Size)
	if err := sr.ReadAt(buf, offset+tagHeaderSize, "ID3v2 frame data"); err != nil {
		return nil, err
	}

	return tagFromBuffer(buf, &th, sr.Path())
}

// tagFromBuffer iterates frames over the tag's frame region, inserting
// last-wins per frame id.
//
// Iteration stops cleanly when the remaining bytes cannot hold a frame
// header, a padding byte is reached, the next frame is structurally
// invalid, or a frame declares size zero. Already-decoded frames are kept
// in every soft-stop case.
func tagFromBuffer(buf []byte, th *TagHeader, path string) (*Tag, error) {
	if th.Unsynch && th.MajorVersion <= 3 {
		// v2.4 applies unsynchronization per frame instead.
		buf = decodeUnsynchronization(buf)
	}

	// TODO: decode the extended header instead of treating its bytes as
	// frame data (taglib skips frameDataPosition past it).
	_ = th.Extended

	bufEnd := len(buf)
	if th.Footer && footerSize <= bufEnd {
		bufEnd -= footerSize
	}

	hdrSize := frameHeaderSize(th.MajorVersion)
	frames := make(map[string]FrameValue)

	pos := 0
	for pos < bufEnd-hdrSize {
		if buf[pos] == 0 {
			if th.Footer {
				return nil, &types.CorruptedFileError{
					Path:   path,
					Offset: int64(pos),
					Reason: "padding and footers are not allowed together",
				}
			}
			break
		}

		frame, err := parseFrame(buf[pos:bufEnd], th, path)
		if err != nil {
			return nil, err
		}
		if frame == nil || frame.Size == 0 {
			break
		}

		// Numeric extraction for date and track frames is not wired up
		// yet; force the placeholder the accessors expect.
		switch frame.ID {
		case "TDRC", "TRCK":
			frame.Value = UintValue(0)
		}

		frames[frame.ID] = frame.Value
		pos += hdrSize + frame.Size
	}

	return &Tag{frames: frames}, nil
}

// String returns a short description of the header for diagnostics.
func (h TagHeader) String() string {
	return fmt.Sprintf("ID3v2.%d.%d (%d bytes)", h.MajorVersion, h.Revision, h.Size)
}
