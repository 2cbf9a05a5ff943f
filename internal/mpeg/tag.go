package mpeg

import (
	"maps"
	"slices"
)

// Tag is one logical MPEG tag: a map from frame id to decoded value.
// Built fully during parse, then immutable and safe to share.
type Tag struct {
	frames map[string]FrameValue
}

// Frame returns the raw decoded value for a frame id.
func (t *Tag) Frame(id string) (FrameValue, bool) {
	v, ok := t.frames[id]
	return v, ok
}

// Keys returns all stored frame ids, sorted.
func (t *Tag) Keys() []string {
	return slices.Sorted(maps.Keys(t.frames))
}

// Title returns the TIT2 text value.
func (t *Tag) Title() (string, bool) {
	return t.text("TIT2")
}

// Artist returns the TPE1 text value.
func (t *Tag) Artist() (string, bool) {
	return t.text("TPE1")
}

// Album returns the TALB text value.
func (t *Tag) Album() (string, bool) {
	return t.text("TALB")
}

// Comment returns the COMM text value. ID3v2 comment frames are kept
// undecoded, so this only yields a value from an ID3v1 source.
func (t *Tag) Comment() (string, bool) {
	return t.text("COMM")
}

// Genre returns the TCON text value.
func (t *Tag) Genre() (string, bool) {
	return t.text("TCON")
}

// Year returns the TDRC integer value. Numeric extraction from the
// recording-time text is not wired up yet, so a present frame reads as 0.
func (t *Tag) Year() (uint64, bool) {
	if v, ok := t.frames["TDRC"]; ok {
		return v.Uint()
	}
	return 0, false
}

// Track returns the TRCK integer value.
func (t *Tag) Track() (uint32, bool) {
	if v, ok := t.frames["TRCK"]; ok {
		if u, isUint := v.Uint(); isUint {
			return uint32(u), true
		}
	}
	return 0, false
}

func (t *Tag) text(id string) (string, bool) {
	if v, ok := t.frames[id]; ok {
		return v.Text()
	}
	return "", false
}

// unify folds an ordered list of tag sources, highest priority first, into
// one tag holding the union of their keys.
//
// A key already present is only overwritten when its current value is a
// Text value tagged with the UTF16 encoding marker. That is a deliberate
// workaround for unreliable UTF-16 decoding, kept narrow on purpose; in
// every other case the first writer wins.
func unify(sources []*Tag) *Tag {
	merged := make(map[string]FrameValue)

	for _, src := range sources {
		if src == nil {
			continue
		}

		for id, value := range src.frames {
			if cur, ok := merged[id]; ok {
				if cur.Kind() != FrameText || cur.TextEncoding() != EncodingUTF16 {
					continue
				}
			}

			merged[id] = value
		}
	}

	return &Tag{frames: merged}
}
