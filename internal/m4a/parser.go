package m4a

import (
	"io"

	"github.com/hGriff0n/tags/internal/binary"
	"github.com/hGriff0n/tags/internal/registry"
	"github.com/hGriff0n/tags/internal/types"
)

// parser implements registry.Parser for MPEG-4 containers.
type parser struct{}

// Parse builds the atom tree and decodes the metadata under
// moov > udta > meta > ilst. A file without that chain has no tag.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (types.Tag, error) {
	sr := binary.NewSafeReader(r, size, path)

	atoms := readTree(sr)

	ilst := findIlst(atoms)
	if ilst == nil {
		return nil, &types.TagNotFoundError{
			Path:   path,
			Reason: "required atom (moov > udta > meta > ilst) not found",
		}
	}

	items, err := decodeIlst(sr, ilst)
	if err != nil {
		return nil, err
	}

	return &Tag{items: items}, nil
}

// findIlst walks the fixed moov > udta > meta > ilst chain.
func findIlst(atoms []Atom) *Atom {
	moov := findAtom(atoms, "moov")
	if moov == nil {
		return nil
	}

	udta := moov.Child("udta")
	if udta == nil {
		return nil
	}

	meta := udta.Child("meta")
	if meta == nil {
		return nil
	}

	return meta.Child("ilst")
}

func init() {
	registry.Register(types.FormatM4A, &parser{})
}
