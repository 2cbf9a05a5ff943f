package mpeg

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/hGriff0n/tags/internal/textenc"
	"github.com/hGriff0n/tags/internal/types"
)

// Encoding is the ID3v2 text encoding selector, stored as the first
// payload byte of every text frame.
type Encoding uint8

const (
	// EncodingLatin1 is ISO 8859-1.
	EncodingLatin1 Encoding = 0
	// EncodingUTF16 is UTF-16 with a byte-order mark.
	EncodingUTF16 Encoding = 1
	// EncodingUTF16BE is UTF-16 big-endian without a BOM (v2.4).
	EncodingUTF16BE Encoding = 2
	// EncodingUTF8 is UTF-8 (v2.4).
	EncodingUTF8 Encoding = 3
	// EncodingUTF16LE is UTF-16 little-endian without a BOM.
	EncodingUTF16LE Encoding = 4
)

func (e Encoding) alignment() int {
	switch e {
	case EncodingLatin1, EncodingUTF8:
		return 1
	default:
		return 2
	}
}

// FrameValueKind discriminates the variants of a FrameValue.
type FrameValueKind int

const (
	// FrameUnknown is a recognized frame whose payload is not decoded.
	FrameUnknown FrameValueKind = iota
	// FrameText is a decoded text frame.
	FrameText
	// FrameUint is an integer frame.
	FrameUint
)

// FrameValue is the decoded content of one ID3 frame: a tagged union over
// {Text(string, Encoding), Uint, Unknown}.
type FrameValue struct {
	text    string
	uintVal uint64
	kind    FrameValueKind
	enc     Encoding
}

// TextValue returns a Text variant tagged with its source encoding.
func TextValue(s string, enc Encoding) FrameValue {
	return FrameValue{kind: FrameText, text: s, enc: enc}
}

// UintValue returns a Uint variant.
func UintValue(v uint64) FrameValue {
	return FrameValue{kind: FrameUint, uintVal: v}
}

// UnknownValue returns the Unknown variant.
func UnknownValue() FrameValue {
	return FrameValue{kind: FrameUnknown}
}

// Kind returns the variant discriminator.
func (v FrameValue) Kind() FrameValueKind { return v.kind }

// Text returns the decoded string; ok is false unless this is a Text value.
func (v FrameValue) Text() (string, bool) {
	return v.text, v.kind == FrameText
}

// Uint returns the integer; ok is false unless this is a Uint value.
func (v FrameValue) Uint() (uint64, bool) {
	return v.uintVal, v.kind == FrameUint
}

// TextEncoding returns the encoding a Text value was decoded from.
func (v FrameValue) TextEncoding() Encoding { return v.enc }

// String implements fmt.Stringer for diagnostics and the dump tool.
func (v FrameValue) String() string {
	switch v.kind {
	case FrameText:
		return v.text
	case FrameUint:
		return fmt.Sprintf("%d", v.uintVal)
	default:
		return "<unknown>"
	}
}

// Frame is one parsed ID3v2 frame: its declared payload size, corrected
// id, and decoded value.
type Frame struct {
	ID    string
	Value FrameValue
	Size  int
}

// frameHeader is the version-specific frame header, normalized.
type frameHeader struct {
	id                  string
	size                uint64
	version             uint8
	dataLengthIndicator bool
	unsynch             bool
	compression         bool
	encryption          bool
}

// frameHeaderSize returns the on-disk frame header width for a tag
// version: 6 bytes for v2.2, 10 for v2.3 and v2.4.
func frameHeaderSize(version uint8) int {
	if version < 3 {
		return 6
	}
	return 10
}

// parseFrameHeader decodes the version-specific frame header layout.
// v2.2: 3-byte id + 3-byte size. v2.3: 4-byte id + plain 4-byte size +
// 2 flag bytes. v2.4: like v2.3 but the size is synch-safe and the flag
// bits sit in different positions.
func parseFrameHeader(buf []byte, version uint8) frameHeader {
	h := frameHeader{version: version}

	if version < 3 {
		if len(buf) < 3 {
			return h
		}
		h.id = textenc.DecodeLatin1(buf[0:3])
		if len(buf) >= 6 {
			h.size = uint64(buf[3])<<16 | uint64(buf[4])<<8 | uint64(buf[5])
		}
		return h
	}

	if len(buf) < 4 {
		return h
	}
	h.id = textenc.DecodeLatin1(buf[0:4])
	if len(buf) < 10 {
		return h
	}

	if version == 3 {
		h.size = uint64(binary.BigEndian.Uint32(buf[4:8]))
		h.compression = buf[9]&0x80 != 0
		h.encryption = buf[9]&0x40 != 0
	} else {
		h.size = uint64(decodeSynchsafe(buf[4:8]))
		h.compression = buf[9]&0x08 != 0
		h.encryption = buf[9]&0x04 != 0
		h.unsynch = buf[9]&0x02 != 0
		h.dataLengthIndicator = buf[9]&0x01 != 0
	}

	return h
}

// updateFrameID remaps legacy ids to their modern equivalents and checks
// the per-version deny-list of ids with no v3/v4 counterpart. Denied
// frames are kept with an Unknown value rather than decoded.
func updateFrameID(id string, version uint8) (string, bool) {
	switch id {
	case "TORY":
		id = "TDOR"
	case "TYER":
		id = "TDRC"
	case "IPLS":
		id = "TIPL"
	}

	switch version {
	case 2:
		switch id {
		case "CRM", "EQU", "LNK", "RVA", "TIM", "TDA", "TSI":
			return id, true
		}
	case 3:
		switch id {
		case "EQUA", "RVAD", "TIME", "TRDA", "TSIZ", "TDAT":
			return id, true
		}
	}

	return id, false
}

// isTextFrame reports whether an id carries a text payload: every T-frame
// plus the iTunes additions.
func isTextFrame(id string) bool {
	if strings.HasPrefix(id, "T") {
		return true
	}
	switch id {
	case "WFED", "MVNM", "MVIN":
		return true
	}
	return false
}

// parseFrame decodes the frame at the start of buf, which is bounded by
// the end of the tag's frame region.
//
// A structurally invalid frame (short id, zero or overlong size) returns
// (nil, nil): iteration stops and already-parsed frames are kept.
// Compressed and encrypted frames fail with an unsupported-format error;
// a frame id outside [A-Z0-9] is corruption.
func parseFrame(buf []byte, th *TagHeader, path string) (*Frame, error) {
	version := th.MajorVersion
	h := parseFrameHeader(buf, version)
	hdrSize := frameHeaderSize(version)

	wantIDLen := 4
	if version < 3 {
		wantIDLen = 3
	}

	minSize := uint64(0)
	if h.dataLengthIndicator {
		minSize = 4
	}

	if len(h.id) != wantIDLen || h.size <= minSize || h.size > uint64(len(buf)-hdrSize) {
		return nil, nil
	}

	// iTunes writes v2.3 tags with v2.2-style 3-character ids padded
	// with a trailing NUL. Truncate and revalidate under v2.2 rules.
	idVersion := version
	if version == 3 && h.id[3] == 0 {
		h.id = h.id[:3]
		idVersion = 2
	}

	for _, c := range []byte(h.id) {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return nil, &types.CorruptedFileError{
				Path:   path,
				Reason: fmt.Sprintf("frame id %q is not uppercase alphanumeric", h.id),
			}
		}
	}

	if h.compression {
		return nil, &types.UnsupportedFormatError{
			Path:   path,
			Reason: "compressed frames are not supported",
		}
	}
	if h.encryption {
		return nil, &types.UnsupportedFormatError{
			Path:   path,
			Reason: "encrypted frames are not supported",
		}
	}

	id, denied := updateFrameID(h.id, idVersion)
	frame := &Frame{ID: id, Size: int(h.size), Value: UnknownValue()}
	if denied {
		return frame, nil
	}

	payload := buf[hdrSize : hdrSize+int(h.size)]
	if version > 3 && (th.Unsynch || h.unsynch) {
		// v2.4 unsynchronizes per frame, not per tag.
		payload = decodeUnsynchronization(payload)
	}

	switch {
	case isTextFrame(id):
		value, err := decodeTextFrame(payload, h, path)
		if err != nil {
			return nil, err
		}
		frame.Value = value

	case id == "COMM", id == "APIC", id == "PIC", id == "RVA2", id == "UFID",
		id == "GEOB", id == "USLT", id == "SYLT", id == "ETCO", id == "POPM",
		id == "PRIV", id == "OWNE", id == "CHAP", id == "CTOC", id == "PCST",
		strings.HasPrefix(id, "W"):
		// Recognized but intentionally left undecoded.

	default:
	}

	return frame, nil
}

// decodeTextFrame decodes a text frame payload: one encoding byte, then
// the string, with trailing NUL padding stripped to the encoding's natural
// alignment before decoding.
func decodeTextFrame(payload []byte, h frameHeader, path string) (FrameValue, error) {
	data := payload
	if h.dataLengthIndicator {
		if len(data) < 4 {
			return FrameValue{}, textFrameError(path, "data length indicator is truncated")
		}
		data = data[4:]
	}

	if len(data) < 2 {
		return FrameValue{}, textFrameError(path, "text frame did not contain enough data")
	}

	if data[0] > uint8(EncodingUTF16LE) {
		return FrameValue{}, textFrameError(path, fmt.Sprintf("invalid text encoding %d", data[0]))
	}
	enc := Encoding(data[0])

	content := data[1:]
	n := len(content)
	for n > 0 && content[n-1] == 0 {
		n--
	}
	// UTF-16 strings may legitimately end in a zero byte; realign. The
	// realignment must not reach past the payload into the next frame: an
	// odd-length UTF-16 payload stays odd and fails the decode below.
	if n%enc.alignment() != 0 && n < len(content) {
		n++
	}
	content = content[:n]

	text, err := decodeText(content, enc)
	if err != nil {
		return FrameValue{}, textFrameError(path, err.Error())
	}

	return TextValue(text, enc), nil
}

func decodeText(b []byte, enc Encoding) (string, error) {
	switch enc {
	case EncodingLatin1:
		return textenc.DecodeLatin1(b), nil
	case EncodingUTF16:
		return textenc.DecodeUTF16(b)
	case EncodingUTF16BE:
		return textenc.DecodeUTF16BE(b)
	case EncodingUTF8:
		return textenc.DecodeUTF8(b)
	case EncodingUTF16LE:
		return textenc.DecodeUTF16LE(b)
	default:
		return "", fmt.Errorf("invalid text encoding %d", enc)
	}
}

func textFrameError(path, reason string) error {
	return &types.CorruptedFileError{Path: path, Reason: reason}
}
