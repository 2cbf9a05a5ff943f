package m4a

import (
	stdbinary "encoding/binary"
	"fmt"
	"strings"

	"github.com/hGriff0n/tags/internal/binary"
	"github.com/hGriff0n/tags/internal/textenc"
	"github.com/hGriff0n/tags/internal/types"
)

// anyFlags disables flag filtering in extractData.
const anyFlags = ^uint32(0)

// utf8Flags marks a data sub-atom whose payload is UTF-8 text.
const utf8Flags = uint32(1)

// dataAtom is one (flags, payload) pair extracted from a data sub-atom
// (or a mean/name sub-atom in free-form mode).
type dataAtom struct {
	payload []byte
	flags   uint32
}

// decodeIlst interprets the children of the located ilst atom into the
// tag's value map.
func decodeIlst(sr *binary.SafeReader, ilst *Atom) (map[string]types.TagData, error) {
	items := make(map[string]types.TagData)

	for i := range ilst.Children {
		child := &ilst.Children[i]

		key, data, keep, err := decodeTagAtom(sr, child)
		if err != nil {
			return nil, err
		}
		if keep {
			items[key] = data
		}
	}

	return items, nil
}

// decodeTagAtom dispatches one ilst child atom to its typed decoder.
// keep is false only for free-form atoms with too few sub-atoms, which are
// dropped rather than stored as Empty.
func decodeTagAtom(sr *binary.SafeReader, atom *Atom) (key string, data types.TagData, keep bool, err error) {
	switch atom.Name {
	case "----":
		return decodeFreeForm(sr, atom)

	case "trkn", "disk":
		data, err = decodeIntPair(sr, atom)

	case "cpil", "pgap", "pcst", "hdvd":
		data, err = decodeBool(sr, atom)

	case "tmpo", "tvsn", "tves", "cnID", "sfID", "atID", "geID", "plID":
		data, err = decodeInt(sr, atom)

	case "stik", "rtng", "akID":
		data, err = decodeByte(sr, atom)

	case "gnre":
		data, err = decodeGenre(sr, atom)

	case "covr":
		// Cover art is recognized but deliberately not decoded.
		data = types.UnimplementedData()

	default:
		data, err = decodeString(sr, atom)
	}

	return atom.Name, data, err == nil, err
}

// extractData reads the payload of a tag atom (its byte range past the
// 8-byte header) and splits it into data sub-atoms. Each sub-atom is a
// 4-byte length (>= 12), 4-byte name, 4-byte flags, 4 reserved bytes and
// the payload. Only entries matching expectedFlags are returned.
//
// In free-form mode the first two sub-atoms must be mean and name instead
// of data; anything else signals malformed input.
func extractData(sr *binary.SafeReader, atom *Atom, expectedFlags uint32, freeForm bool) ([]dataAtom, error) {
	buf := make([]byte, atom.Length-8)
	if err := sr.ReadAt(buf, int64(atom.Offset)+8, fmt.Sprintf("%s tag payload", atom.Name)); err != nil {
		return nil, err
	}

	var out []dataAtom

	offset := 0
	for iter := 0; offset < len(buf); iter++ {
		if offset+12 > len(buf) {
			return nil, corrupted(sr, atom, "tag data atom is too short")
		}

		length := int(stdbinary.BigEndian.Uint32(buf[offset : offset+4]))
		if length < 12 {
			return nil, corrupted(sr, atom, "tag data atom is too short")
		}
		if offset+length > len(buf) {
			return nil, corrupted(sr, atom, "tag data atom overruns its parent")
		}

		name := textenc.DecodeLatin1(buf[offset+4 : offset+8])
		flags := stdbinary.BigEndian.Uint32(buf[offset+8 : offset+12])

		if freeForm && iter < 2 {
			if iter == 0 && name != "mean" {
				return nil, corrupted(sr, atom, "unexpected atom: expected mean")
			}
			if iter == 1 && name != "name" {
				return nil, corrupted(sr, atom, "unexpected atom: expected name")
			}
		} else if name != "data" {
			return nil, corrupted(sr, atom, "unexpected atom: expected data")
		}

		if expectedFlags == anyFlags || flags == expectedFlags {
			var payload []byte
			if length > 16 {
				payload = buf[offset+16 : offset+length]
			}
			out = append(out, dataAtom{flags: flags, payload: payload})
		}

		offset += length
	}

	return out, nil
}

// decodeInt reads the first two payload bytes as a big-endian uint16.
func decodeInt(sr *binary.SafeReader, atom *Atom) (types.TagData, error) {
	entries, err := extractData(sr, atom, anyFlags, false)
	if err != nil {
		return types.TagData{}, err
	}
	if len(entries) == 0 {
		return types.EmptyData(), nil
	}

	if len(entries[0].payload) < 2 {
		return types.TagData{}, corrupted(sr, atom, "integer tag payload too short")
	}

	return types.UintData(uint64(stdbinary.BigEndian.Uint16(entries[0].payload[0:2]))), nil
}

// decodeByte reads the first payload byte.
func decodeByte(sr *binary.SafeReader, atom *Atom) (types.TagData, error) {
	entries, err := extractData(sr, atom, anyFlags, false)
	if err != nil {
		return types.TagData{}, err
	}
	if len(entries) == 0 {
		return types.EmptyData(), nil
	}

	if len(entries[0].payload) < 1 {
		return types.TagData{}, corrupted(sr, atom, "byte tag payload is empty")
	}

	return types.UintData(uint64(entries[0].payload[0])), nil
}

// decodeIntPair reads payload bytes [2,4) and [4,6) as two big-endian
// uint16 values. trkn and disk reserve the leading two bytes.
func decodeIntPair(sr *binary.SafeReader, atom *Atom) (types.TagData, error) {
	entries, err := extractData(sr, atom, anyFlags, false)
	if err != nil {
		return types.TagData{}, err
	}
	if len(entries) == 0 {
		return types.EmptyData(), nil
	}

	payload := entries[0].payload
	if len(payload) < 6 {
		return types.TagData{}, corrupted(sr, atom, "integer pair payload too short")
	}

	fst := stdbinary.BigEndian.Uint16(payload[2:4])
	snd := stdbinary.BigEndian.Uint16(payload[4:6])

	return types.IntPairData(uint32(fst), uint32(snd)), nil
}

// decodeBool is true iff the payload is non-empty and its first byte is
// non-zero.
func decodeBool(sr *binary.SafeReader, atom *Atom) (types.TagData, error) {
	entries, err := extractData(sr, atom, anyFlags, false)
	if err != nil {
		return types.TagData{}, err
	}
	if len(entries) == 0 {
		return types.EmptyData(), nil
	}

	payload := entries[0].payload

	return types.BoolData(len(payload) > 0 && payload[0] != 0), nil
}

// decodeGenre maps a 1-based big-endian uint16 index through the ID3v1
// genre table. An out-of-range index is a hard failure, not a blank genre.
func decodeGenre(sr *binary.SafeReader, atom *Atom) (types.TagData, error) {
	entries, err := extractData(sr, atom, anyFlags, false)
	if err != nil {
		return types.TagData{}, err
	}
	if len(entries) == 0 {
		return types.EmptyData(), nil
	}

	if len(entries[0].payload) < 2 {
		return types.TagData{}, corrupted(sr, atom, "genre tag payload too short")
	}

	index := int(stdbinary.BigEndian.Uint16(entries[0].payload[0:2]))
	name, ok := types.GenreByIndex(index)
	if !ok {
		return types.TagData{}, corrupted(sr, atom, fmt.Sprintf("genre index %d out of range", index))
	}

	return types.StrData(name), nil
}

// decodeString joins every UTF-8 text data payload with ", ". Payloads
// that are not valid UTF-8 are excluded from the join.
func decodeString(sr *binary.SafeReader, atom *Atom) (types.TagData, error) {
	entries, err := extractData(sr, atom, utf8Flags, false)
	if err != nil {
		return types.TagData{}, err
	}
	if len(entries) == 0 {
		return types.EmptyData(), nil
	}

	var parts []string
	for _, entry := range entries {
		if s, err := textenc.DecodeUTF8(entry.payload); err == nil {
			parts = append(parts, s)
		}
	}

	return types.StrData(strings.Join(parts, ", ")), nil
}

// decodeFreeForm handles ---- atoms: a mean sub-atom, a name sub-atom,
// then one or more data entries. The composite key is
// "----:{mean}:{name}". With fewer than three sub-atoms the entry is
// dropped entirely.
func decodeFreeForm(sr *binary.SafeReader, atom *Atom) (string, types.TagData, bool, error) {
	entries, err := extractData(sr, atom, anyFlags, true)
	if err != nil {
		return "", types.TagData{}, false, err
	}
	if len(entries) <= 2 {
		return "", types.EmptyData(), false, nil
	}

	mean, err := textenc.DecodeUTF8(entries[0].payload)
	if err != nil {
		return "", types.TagData{}, false, corrupted(sr, atom, "free-form mean is not valid UTF-8")
	}
	name, err := textenc.DecodeUTF8(entries[1].payload)
	if err != nil {
		return "", types.TagData{}, false, corrupted(sr, atom, "free-form name is not valid UTF-8")
	}

	key := fmt.Sprintf("----:%s:%s", mean, name)

	// The first data entry's flags pick the decoding for all values.
	dataType := entries[2].flags

	var parts []string
	for _, entry := range entries[2:] {
		if dataType == 0 {
			if s, err := textenc.DecodeUTF8(entry.payload); err == nil {
				parts = append(parts, s)
			}
		} else {
			parts = append(parts, textenc.DecodeLatin1(entry.payload))
		}
	}

	return key, types.StrData(strings.Join(parts, ", ")), true, nil
}

func corrupted(sr *binary.SafeReader, atom *Atom, reason string) error {
	return &types.CorruptedFileError{
		Path:   sr.Path(),
		Offset: int64(atom.Offset),
		Reason: reason,
	}
}
