package types

import "fmt"

// TagDataKind discriminates the variants of a TagData value.
type TagDataKind int

const (
	// KindEmpty is a tag atom that carried no usable data payloads.
	KindEmpty TagDataKind = iota
	// KindBool is a boolean flag tag (compilation, gapless, ...).
	KindBool
	// KindUint is a single unsigned integer tag.
	KindUint
	// KindIntPair is a pair of integers (track/total, disc/total).
	KindIntPair
	// KindStr is a text tag.
	KindStr
	// KindUnimplemented marks a value kind this library recognizes but
	// deliberately does not decode (cover art).
	KindUnimplemented
)

// TagData is one decoded metadata value, independent of the source format.
//
// TagData is a closed variant type: exactly one of the accessors matches,
// selected by Kind(). Values are immutable once constructed.
type TagData struct {
	str     string
	uintVal uint64
	pairFst uint32
	pairSnd uint32
	kind    TagDataKind
	boolVal bool
}

// EmptyData returns the Empty variant.
func EmptyData() TagData { return TagData{kind: KindEmpty} }

// BoolData returns a Bool variant holding v.
func BoolData(v bool) TagData { return TagData{kind: KindBool, boolVal: v} }

// UintData returns a Uint variant holding v.
func UintData(v uint64) TagData { return TagData{kind: KindUint, uintVal: v} }

// IntPairData returns an IntPair variant holding (fst, snd).
func IntPairData(fst, snd uint32) TagData {
	return TagData{kind: KindIntPair, pairFst: fst, pairSnd: snd}
}

// StrData returns a Str variant holding s.
func StrData(s string) TagData { return TagData{kind: KindStr, str: s} }

// UnimplementedData returns the Unimplemented variant.
func UnimplementedData() TagData { return TagData{kind: KindUnimplemented} }

// Kind returns the variant discriminator.
func (d TagData) Kind() TagDataKind { return d.kind }

// Bool returns the boolean value; ok is false unless Kind is KindBool.
func (d TagData) Bool() (v, ok bool) {
	return d.boolVal, d.kind == KindBool
}

// Uint returns the integer value; ok is false unless Kind is KindUint.
func (d TagData) Uint() (uint64, bool) {
	return d.uintVal, d.kind == KindUint
}

// IntPair returns both integers; ok is false unless Kind is KindIntPair.
func (d TagData) IntPair() (fst, snd uint32, ok bool) {
	return d.pairFst, d.pairSnd, d.kind == KindIntPair
}

// Str returns the text value; ok is false unless Kind is KindStr.
func (d TagData) Str() (string, bool) {
	return d.str, d.kind == KindStr
}

// String implements fmt.Stringer for diagnostics and the dump tool.
func (d TagData) String() string {
	switch d.kind {
	case KindEmpty:
		return "<empty>"
	case KindBool:
		return fmt.Sprintf("%t", d.boolVal)
	case KindUint:
		return fmt.Sprintf("%d", d.uintVal)
	case KindIntPair:
		return fmt.Sprintf("%d/%d", d.pairFst, d.pairSnd)
	case KindStr:
		return d.str
	case KindUnimplemented:
		return "<unimplemented>"
	default:
		return "<invalid>"
	}
}
