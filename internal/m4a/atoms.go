// Package m4a parses iTunes-style metadata from MPEG-4 audio containers.
package m4a

import (
	"fmt"

	"github.com/hGriff0n/tags/internal/binary"
	"github.com/hGriff0n/tags/internal/textenc"
	"github.com/hGriff0n/tags/internal/types"
)

// Atom represents one MPEG-4 box: a length-prefixed, named, possibly
// nested record. The tree is built once per open and read-only afterward.
type Atom struct {
	Children []Atom
	Name     string
	Offset   uint64
	Length   uint64
	Extended bool // 64-bit extended size field present
}

// End returns the file offset one past the atom's last byte.
func (a *Atom) End() int64 {
	return int64(a.Offset + a.Length)
}

// Child returns the first direct child with the given name.
func (a *Atom) Child(name string) *Atom {
	return findAtom(a.Children, name)
}

// containerNames is the fixed allow-list of atoms that hold child atoms.
// Anything else is a leaf regardless of its payload.
var containerNames = map[string]bool{
	"moov": true,
	"udta": true,
	"mdia": true,
	"meta": true,
	"ilst": true,
	"stbl": true,
	"minf": true,
	"moof": true,
	"traf": true,
	"trak": true,
	"stsd": true,
}

// extraHeaderSkip returns the number of version/flag bytes that sit between
// an atom's header and its first child. meta and stsd are format quirks;
// getting these wrong misaligns every child offset beneath them.
func extraHeaderSkip(name string) int64 {
	switch name {
	case "meta":
		return 4
	case "stsd":
		return 8
	default:
		return 0
	}
}

// readTree reads the file's top-level atoms. A read failure mid-stream
// means no more atoms, not a corrupt file, so errors terminate the loop
// silently and whatever parsed so far is kept.
func readTree(sr *binary.SafeReader) []Atom {
	var atoms []Atom

	offset := int64(0)
	for offset < sr.Size() {
		atom, err := readAtom(sr, offset)
		if err != nil {
			break
		}

		atoms = append(atoms, atom)
		offset = atom.End()
	}

	return atoms
}

// readAtom reads the atom starting at offset, recursing into containers.
func readAtom(sr *binary.SafeReader, offset int64) (Atom, error) {
	size32, err := binary.Read[uint32](sr, offset, "atom size")
	if err != nil {
		return Atom{}, err
	}

	nameBytes := make([]byte, 4)
	if err := sr.ReadAt(nameBytes, offset+4, "atom name"); err != nil {
		return Atom{}, err
	}

	atom := Atom{
		// Atom names are Latin1; © (0xA9) opens the iTunes text atoms.
		Name:   textenc.DecodeLatin1(nameBytes),
		Offset: uint64(offset),
	}

	headerSize := int64(8)
	if size32 == 1 {
		// Flag value: the real 64-bit size follows the name.
		size64, err := binary.Read[uint64](sr, offset+8, "extended atom size")
		if err != nil {
			return Atom{}, err
		}
		atom.Length = size64
		atom.Extended = true
		headerSize = 16
	} else {
		atom.Length = uint64(size32)
	}

	minSize := uint64(headerSize)
	if atom.Length < minSize {
		return Atom{}, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: fmt.Sprintf("invalid atom size %d (minimum is %d)", atom.Length, minSize),
		}
	}

	// Both checks are needed: a huge 64-bit size can wrap End() around
	// before the boundary comparison.
	if atom.Length > uint64(sr.Size()) || atom.End() > sr.Size() {
		return Atom{}, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: fmt.Sprintf("atom size %d reaches past end of file", atom.Length),
		}
	}

	if containerNames[atom.Name] {
		cursor := offset + headerSize + extraHeaderSkip(atom.Name)
		for cursor < atom.End() {
			child, err := readAtom(sr, cursor)
			if err != nil {
				// Re-sync at the parent boundary, discarding the
				// unconsumed tail of this atom.
				break
			}

			atom.Children = append(atom.Children, child)
			cursor = child.End()
		}
	}

	return atom, nil
}

// findAtom returns the first atom in atoms with the given name.
func findAtom(atoms []Atom, name string) *Atom {
	for i := range atoms {
		if atoms[i].Name == name {
			return &atoms[i]
		}
	}
	return nil
}
