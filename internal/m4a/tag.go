package m4a

import (
	"maps"
	"slices"

	"github.com/hGriff0n/tags/internal/types"
)

// Tag is the decoded ilst metadata of one MPEG-4 file, keyed by atom name
// (or "----:mean:name" for free-form atoms). Built once, then immutable.
type Tag struct {
	items map[string]types.TagData
}

// Item returns the raw decoded value for a tag atom key.
func (t *Tag) Item(key string) (types.TagData, bool) {
	data, ok := t.items[key]
	return data, ok
}

// Keys returns all stored tag atom keys, sorted.
func (t *Tag) Keys() []string {
	return slices.Sorted(maps.Keys(t.items))
}

// Title returns the ©nam text value.
func (t *Tag) Title() (string, bool) {
	return t.str("©nam")
}

// Artist returns the ©ART text value.
func (t *Tag) Artist() (string, bool) {
	return t.str("©ART")
}

// Album returns the ©alb text value.
func (t *Tag) Album() (string, bool) {
	return t.str("©alb")
}

// Comment returns the ©cmt text value.
func (t *Tag) Comment() (string, bool) {
	return t.str("©cmt")
}

// Genre returns the gnre value, already mapped through the genre table.
func (t *Tag) Genre() (string, bool) {
	return t.str("gnre")
}

// Year matches ©day against the integer variant. iTunes stores ©day as
// text, so this yields false until numeric extraction is implemented.
func (t *Tag) Year() (uint64, bool) {
	if data, ok := t.items["©day"]; ok {
		return data.Uint()
	}
	return 0, false
}

// Track returns the first element of the trkn integer pair.
func (t *Tag) Track() (uint32, bool) {
	if data, ok := t.items["trkn"]; ok {
		if fst, _, ok := data.IntPair(); ok {
			return fst, true
		}
	}
	return 0, false
}

func (t *Tag) str(key string) (string, bool) {
	if data, ok := t.items[key]; ok {
		return data.Str()
	}
	return "", false
}
