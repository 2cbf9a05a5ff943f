package mpeg

import (
	"io"

	"github.com/hGriff0n/tags/internal/binary"
	"github.com/hGriff0n/tags/internal/registry"
	"github.com/hGriff0n/tags/internal/types"
)

// apeFooterSize is the fixed length of an APEv2 tag footer.
const apeFooterSize = 32

// parser implements registry.Parser for MPEG audio files.
type parser struct{}

// Parse probes for every tag source the file carries - an ID3v2 header at
// offset 0, an ID3v1 trailer 128 bytes before end-of-file, an APE footer -
// and unifies them into one logical tag, ID3v2 taking priority. A file
// with no source at all has no tag.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (types.Tag, error) {
	sr := binary.NewSafeReader(r, size, path)

	var sources []*Tag

	if offset, ok := findID3v2(sr); ok {
		tag, err := readID3v2(sr, offset)
		if err != nil {
			return nil, err
		}
		sources = append(sources, tag)
	}

	if offset, ok := findID3v1(sr); ok {
		tag, err := readID3v1(sr, offset)
		if err != nil {
			return nil, err
		}
		sources = append(sources, tag)
	}

	if _, ok := findAPE(sr); ok {
		// APE parsing is a stub: the footer is recognized so the file
		// is not rejected, but it contributes no frames.
		sources = append(sources, &Tag{frames: map[string]FrameValue{}})
	}

	if len(sources) == 0 {
		return nil, &types.TagNotFoundError{
			Path:   path,
			Reason: "no ID3v2, ID3v1 or APE tag found",
		}
	}

	return unify(sources), nil
}

// findID3v2 probes for an "ID3" tag header at the front of the file.
func findID3v2(sr *binary.SafeReader) (int64, bool) {
	magic := make([]byte, 3)
	if err := sr.ReadAt(magic, 0, "ID3v2 probe"); err != nil {
		return 0, false
	}

	if string(magic) == "ID3" {
		return 0, true
	}

	return 0, false
}

// findID3v1 probes for a "TAG" block 128 bytes before end-of-file.
func findID3v1(sr *binary.SafeReader) (int64, bool) {
	offset := sr.Size() - id3v1Size
	if offset < 0 {
		return 0, false
	}

	magic := make([]byte, 3)
	if err := sr.ReadAt(magic, offset, "ID3v1 probe"); err != nil {
		return 0, false
	}

	if string(magic) == "TAG" {
		return offset, true
	}

	return 0, false
}

// findAPE probes for an "APETAGEX" footer at end-of-file, both at the very
// end and tucked in front of an ID3v1 trailer.
func findAPE(sr *binary.SafeReader) (int64, bool) {
	for _, offset := range []int64{
		sr.Size() - apeFooterSize,
		sr.Size() - apeFooterSize - id3v1Size,
	} {
		if offset < 0 {
			continue
		}

		magic := make([]byte, 8)
		if err := sr.ReadAt(magic, offset, "APE probe"); err != nil {
			continue
		}

		if string(magic) == "APETAGEX" {
			return offset, true
		}
	}

	return 0, false
}

func init() {
	registry.Register(types.FormatMP3, &parser{})
}
