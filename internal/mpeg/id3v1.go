package mpeg

import (
	"github.com/hGriff0n/tags/internal/binary"
	"github.com/hGriff0n/tags/internal/textenc"
	"github.com/hGriff0n/tags/internal/types"
)

// id3v1Size is the fixed length of an ID3v1 trailer block.
const id3v1Size = 128

// readID3v1 parses the fixed 128-byte legacy trailer at the given offset.
//
// The block is "TAG", then three 30-byte Latin1 fields (title, artist,
// album), a 4-byte year, a 30-byte comment and a genre byte. When byte 125
// is zero and byte 126 is not, the file uses the ID3v1.1 layout: the
// comment shrinks to 28 bytes and byte 126 becomes the track number.
//
// Fields are stored under their ID3v2 frame ids so the unifier can fold
// both sources over the same keys.
func readID3v1(sr *binary.SafeReader, offset int64) (*Tag, error) {
	buf := make([]byte, id3v1Size)
	if err := sr.ReadAt(buf, offset, "ID3v1 tag block"); err != nil {
		return nil, err
	}

	if string(buf[0:3]) != "TAG" {
		return nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: "ID3v1 block does not start with TAG",
		}
	}

	frames := map[string]FrameValue{
		"TIT2": latin1Value(buf[3:33]),
		"TPE1": latin1Value(buf[33:63]),
		"TALB": latin1Value(buf[63:93]),
	}

	if buf[125] == 0 && buf[126] != 0 {
		// ID3v1.1: the last two comment bytes become a NUL separator
		// and the track number.
		frames["COMM"] = latin1Value(buf[97:125])
		frames["TRCK"] = UintValue(uint64(buf[126]))
	} else {
		frames["COMM"] = latin1Value(buf[97:127])
	}

	// The genre code is read but not yet mapped through the genre table.
	_ = buf[127]

	return &Tag{frames: frames}, nil
}

func latin1Value(b []byte) FrameValue {
	return TextValue(textenc.DecodeLatin1(textenc.TrimPadding(b)), EncodingLatin1)
}
