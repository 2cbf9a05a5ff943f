package mpeg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hGriff0n/tags/internal/binary"
	"github.com/hGriff0n/tags/internal/types"
)

// buildTagHeader assembles a 10-byte ID3v2 tag header with a synch-safe
// size field.
func buildTagHeader(version, flags byte, size int) []byte {
	return []byte{
		'I', 'D', '3', version, 0x00, flags,
		byte(size >> 21 & 0x7F),
		byte(size >> 14 & 0x7F),
		byte(size >> 7 & 0x7F),
		byte(size & 0x7F),
	}
}

// buildFrameV3 assembles a v2.3 frame: 4-byte id, plain big-endian size,
// two flag bytes, payload.
func buildFrameV3(id string, formatFlags byte, payload []byte) []byte {
	frame := []byte(id)
	size := len(payload)
	frame = append(frame, byte(size>>24), byte(size>>16), byte(size>>8), byte(size))
	frame = append(frame, 0x00, formatFlags)
	return append(frame, payload...)
}

// buildFrameV2 assembles a v2.2 frame: 3-byte id, 3-byte big-endian size,
// payload.
func buildFrameV2(id string, payload []byte) []byte {
	frame := []byte(id)
	size := len(payload)
	frame = append(frame, byte(size>>16), byte(size>>8), byte(size))
	return append(frame, payload...)
}

// textPayload prefixes a text frame payload with its encoding byte.
func textPayload(enc Encoding, text []byte) []byte {
	return append([]byte{byte(enc)}, text...)
}

func parseTag(t *testing.T, version, flags byte, body []byte) (*Tag, error) {
	t.Helper()

	file := append(buildTagHeader(version, flags, len(body)), body...)
	sr := binary.NewSafeReader(bytes.NewReader(file), int64(len(file)), "test.mp3")
	return readID3v2(sr, 0)
}

func TestParseTagHeader(t *testing.T) {
	buf := buildTagHeader(4, 0xE0, 257)

	th, err := parseTagHeader(buf, "test.mp3")
	if err != nil {
		t.Fatalf("parseTagHeader: %v", err)
	}

	if th.MajorVersion != 4 {
		t.Errorf("MajorVersion = %d, want 4", th.MajorVersion)
	}
	if th.Size != 257 {
		t.Errorf("Size = %d, want 257", th.Size)
	}
	if !th.Unsynch || !th.Extended || !th.Experimental {
		t.Errorf("flags = %+v, want unsynch, extended and experimental set", th)
	}
	if th.Footer {
		t.Error("Footer = true, want false")
	}
}

func TestParseTagHeader_SizeHighBitSet(t *testing.T) {
	buf := buildTagHeader(3, 0x00, 0)
	buf[7] = 0x80

	var corrupted *types.CorruptedFileError
	if _, err := parseTagHeader(buf, "test.mp3"); !errors.As(err, &corrupted) {
		t.Fatalf("parseTagHeader = %v, want CorruptedFileError", err)
	}
}

func TestReadID3v2_TagSizeBeyondEOF(t *testing.T) {
	// The declared tag size must fit the file before the frame region is
	// allocated and read.
	file := buildTagHeader(3, 0x00, 1024)
	sr := binary.NewSafeReader(bytes.NewReader(file), int64(len(file)), "test.mp3")

	var corrupted *types.CorruptedFileError
	if _, err := readID3v2(sr, 0); !errors.As(err, &corrupted) {
		t.Fatalf("readID3v2 = %v, want CorruptedFileError", err)
	}
}

func TestReadID3v2_EmptyTag(t *testing.T) {
	var corrupted *types.CorruptedFileError
	if _, err := parseTag(t, 3, 0x00, nil); !errors.As(err, &corrupted) {
		t.Fatalf("readID3v2 with zero size = %v, want CorruptedFileError", err)
	}
}

func TestReadID3v2_Latin1Text(t *testing.T) {
	body := buildFrameV3("TIT2", 0x00, textPayload(EncodingLatin1, []byte("Song Title\x00")))

	tag, err := parseTag(t, 3, 0x00, body)
	if err != nil {
		t.Fatalf("readID3v2: %v", err)
	}

	title, ok := tag.Title()
	if !ok || title != "Song Title" {
		t.Errorf("Title() = %q, %v, want \"Song Title\", true", title, ok)
	}
}

func TestReadID3v2_UTF16WithBOM(t *testing.T) {
	// Little-endian BOM, then "A" with a trailing NUL the realignment must
	// keep as part of the final code unit.
	body := buildFrameV3("TIT2", 0x00, []byte{0x01, 0xFF, 0xFE, 0x41, 0x00})

	tag, err := parseTag(t, 3, 0x00, body)
	if err != nil {
		t.Fatalf("readID3v2: %v", err)
	}

	title, ok := tag.Title()
	if !ok || title != "A" {
		t.Errorf("Title() = %q, %v, want \"A\", true", title, ok)
	}

	if v, _ := tag.Frame("TIT2"); v.TextEncoding() != EncodingUTF16 {
		t.Errorf("TextEncoding() = %d, want EncodingUTF16", v.TextEncoding())
	}
}

func TestReadID3v2_UTF8TextV4(t *testing.T) {
	body := buildFrameV3("TPE1", 0x00, textPayload(EncodingUTF8, []byte("Ärtìst")))

	tag, err := parseTag(t, 4, 0x00, body)
	if err != nil {
		t.Fatalf("readID3v2: %v", err)
	}

	artist, ok := tag.Artist()
	if !ok || artist != "Ärtìst" {
		t.Errorf("Artist() = %q, %v, want \"Ärtìst\", true", artist, ok)
	}
}

func TestReadID3v2_ITunesNulPaddedID(t *testing.T) {
	// iTunes writes v2.2-style 3-character ids inside v2.3 tags, padded
	// with a trailing NUL.
	body := buildFrameV3("TT2\x00", 0x00, textPayload(EncodingLatin1, []byte("Tune")))

	tag, err := parseTag(t, 3, 0x00, body)
	if err != nil {
		t.Fatalf("readID3v2: %v", err)
	}

	v, ok := tag.Frame("TT2")
	if !ok {
		t.Fatalf("Frame(TT2) missing, keys = %v", tag.Keys())
	}
	if text, _ := v.Text(); text != "Tune" {
		t.Errorf("Frame(TT2) = %q, want \"Tune\"", text)
	}
}

func TestReadID3v2_V22Frames(t *testing.T) {
	body := buildFrameV2("TT2", textPayload(EncodingLatin1, []byte("Old School")))

	tag, err := parseTag(t, 2, 0x00, body)
	if err != nil {
		t.Fatalf("readID3v2: %v", err)
	}

	v, ok := tag.Frame("TT2")
	if !ok {
		t.Fatalf("Frame(TT2) missing, keys = %v", tag.Keys())
	}
	if text, _ := v.Text(); text != "Old School" {
		t.Errorf("Frame(TT2) = %q, want \"Old School\"", text)
	}
}

func TestReadID3v2_RemappedIDs(t *testing.T) {
	body := buildFrameV3("TYER", 0x00, textPayload(EncodingLatin1, []byte("1999")))
	body = append(body, buildFrameV3("IPLS", 0x00, textPayload(EncodingLatin1, []byte("producer")))...)

	tag, err := parseTag(t, 3, 0x00, body)
	if err != nil {
		t.Fatalf("readID3v2: %v", err)
	}

	// TYER lands under TDRC, which the placeholder rule then forces to 0.
	if v, ok := tag.Frame("TDRC"); !ok {
		t.Error("Frame(TDRC) missing after TYER remap")
	} else if u, isUint := v.Uint(); !isUint || u != 0 {
		t.Errorf("Frame(TDRC) = %v, want Uint(0)", v)
	}

	if v, ok := tag.Frame("TIPL"); !ok {
		t.Error("Frame(TIPL) missing after IPLS remap")
	} else if text, _ := v.Text(); text != "producer" {
		t.Errorf("Frame(TIPL) = %q, want \"producer\"", text)
	}
}

func TestReadID3v2_TrackPlaceholder(t *testing.T) {
	body := buildFrameV3("TRCK", 0x00, textPayload(EncodingLatin1, []byte("7/12")))

	tag, err := parseTag(t, 3, 0x00, body)
	if err != nil {
		t.Fatalf("readID3v2: %v", err)
	}

	track, ok := tag.Track()
	if !ok || track != 0 {
		t.Errorf("Track() = %d, %v, want 0, true", track, ok)
	}
}

func TestReadID3v2_DeniedFrameKeptAsUnknown(t *testing.T) {
	body := buildFrameV3("TSIZ", 0x00, textPayload(EncodingLatin1, []byte("4096")))
	body = append(body, buildFrameV3("TIT2", 0x00, textPayload(EncodingLatin1, []byte("After")))...)

	tag, err := parseTag(t, 3, 0x00, body)
	if err != nil {
		t.Fatalf("readID3v2: %v", err)
	}

	v, ok := tag.Frame("TSIZ")
	if !ok {
		t.Fatal("Frame(TSIZ) missing, denied frames should be kept")
	}
	if v.Kind() != FrameUnknown {
		t.Errorf("Frame(TSIZ).Kind() = %d, want FrameUnknown", v.Kind())
	}

	// Iteration must continue past the denied frame.
	if title, ok := tag.Title(); !ok || title != "After" {
		t.Errorf("Title() = %q, %v, want \"After\", true", title, ok)
	}
}

func TestReadID3v2_LastFrameWins(t *testing.T) {
	body := buildFrameV3("TIT2", 0x00, textPayload(EncodingLatin1, []byte("First")))
	body = append(body, buildFrameV3("TIT2", 0x00, textPayload(EncodingLatin1, []byte("Second")))...)

	tag, err := parseTag(t, 3, 0x00, body)
	if err != nil {
		t.Fatalf("readID3v2: %v", err)
	}

	if title, _ := tag.Title(); title != "Second" {
		t.Errorf("Title() = %q, want \"Second\"", title)
	}
}

func TestReadID3v2_InvalidFrameID(t *testing.T) {
	body := buildFrameV3("ti t", 0x00, textPayload(EncodingLatin1, []byte("x")))

	var corrupted *types.CorruptedFileError
	if _, err := parseTag(t, 3, 0x00, body); !errors.As(err, &corrupted) {
		t.Fatalf("readID3v2 = %v, want CorruptedFileError", err)
	}
}

func TestReadID3v2_CompressedFrame(t *testing.T) {
	body := buildFrameV3("TIT2", 0x00, textPayload(EncodingLatin1, []byte("x")))
	body[9] = 0x80 // compression flag

	var unsupported *types.UnsupportedFormatError
	if _, err := parseTag(t, 3, 0x00, body); !errors.As(err, &unsupported) {
		t.Fatalf("readID3v2 = %v, want UnsupportedFormatError", err)
	}
}

func TestReadID3v2_EncryptedFrameV4(t *testing.T) {
	body := buildFrameV3("TIT2", 0x04, textPayload(EncodingUTF8, []byte("x")))

	var unsupported *types.UnsupportedFormatError
	if _, err := parseTag(t, 4, 0x00, body); !errors.As(err, &unsupported) {
		t.Fatalf("readID3v2 = %v, want UnsupportedFormatError", err)
	}
}

func TestReadID3v2_PaddingStopsIteration(t *testing.T) {
	body := buildFrameV3("TIT2", 0x00, textPayload(EncodingLatin1, []byte("Kept")))
	body = append(body, make([]byte, 30)...)

	tag, err := parseTag(t, 3, 0x00, body)
	if err != nil {
		t.Fatalf("readID3v2: %v", err)
	}

	if title, ok := tag.Title(); !ok || title != "Kept" {
		t.Errorf("Title() = %q, %v, want \"Kept\", true", title, ok)
	}
	if got := len(tag.Keys()); got != 1 {
		t.Errorf("len(Keys()) = %d, want 1", got)
	}
}

func TestReadID3v2_PaddingWithFooter(t *testing.T) {
	body := buildFrameV3("TIT2", 0x00, textPayload(EncodingLatin1, []byte("Kept")))
	body = append(body, make([]byte, 30)...)

	var corrupted *types.CorruptedFileError
	if _, err := parseTag(t, 3, 0x10, body); !errors.As(err, &corrupted) {
		t.Fatalf("readID3v2 with padding and footer = %v, want CorruptedFileError", err)
	}
}

func TestReadID3v2_WholeTagUnsynchronization(t *testing.T) {
	// The frame declares the de-unsynchronized size; the raw stream carries
	// a stuffed 0x00 after the 0xFF.
	frame := buildFrameV3("TIT2", 0x00, nil)
	frame[7] = 3 // payload size after unsynchronization removal
	body := append(frame, 0x00, 0xFF, 0x00, 0x41)

	tag, err := parseTag(t, 3, 0x80, body)
	if err != nil {
		t.Fatalf("readID3v2: %v", err)
	}

	if title, _ := tag.Title(); title != "ÿA" {
		t.Errorf("Title() = %q, want %q", title, "ÿA")
	}
}

func TestReadID3v2_TruncatedFrameStopsCleanly(t *testing.T) {
	good := buildFrameV3("TIT2", 0x00, textPayload(EncodingLatin1, []byte("Kept")))
	// Declares 200 payload bytes but the region ends first.
	bad := buildFrameV3("TALB", 0x00, nil)
	bad[7] = 200
	bad = append(bad, []byte("short")...)

	tag, err := parseTag(t, 3, 0x00, append(good, bad...))
	if err != nil {
		t.Fatalf("readID3v2: %v", err)
	}

	if title, ok := tag.Title(); !ok || title != "Kept" {
		t.Errorf("Title() = %q, %v, want \"Kept\", true", title, ok)
	}
	if _, ok := tag.Album(); ok {
		t.Error("Album() present, truncated frame should stop iteration")
	}
}

func TestReadID3v2_OddUTF16PayloadAtTagEnd(t *testing.T) {
	// A UTF-16 payload with an odd byte count cannot be realigned without
	// reading past the frame region.
	body := buildFrameV3("TIT2", 0x00, []byte{0x01, 0xFF, 0xFE, 0x41})

	var corrupted *types.CorruptedFileError
	if _, err := parseTag(t, 3, 0x00, body); !errors.As(err, &corrupted) {
		t.Fatalf("readID3v2 = %v, want CorruptedFileError", err)
	}
}

func TestReadID3v2_OddUTF16PayloadBeforeNextFrame(t *testing.T) {
	// With another frame following, realignment must not pull that frame's
	// first byte into the decoded string.
	body := buildFrameV3("TIT2", 0x00, []byte{0x01, 0xFF, 0xFE, 0x41})
	body = append(body, buildFrameV3("TALB", 0x00, textPayload(EncodingLatin1, []byte("Album")))...)

	var corrupted *types.CorruptedFileError
	if _, err := parseTag(t, 3, 0x00, body); !errors.As(err, &corrupted) {
		t.Fatalf("readID3v2 = %v, want CorruptedFileError", err)
	}
}

func TestReadID3v2_InvalidTextEncoding(t *testing.T) {
	body := buildFrameV3("TIT2", 0x00, []byte{0x05, 'x', 'y'})

	var corrupted *types.CorruptedFileError
	if _, err := parseTag(t, 3, 0x00, body); !errors.As(err, &corrupted) {
		t.Fatalf("readID3v2 = %v, want CorruptedFileError", err)
	}
}
