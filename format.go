package tags

import (
	"github.com/hGriff0n/tags/internal/types"
)

// Format is an alias to types.Format.
// Re-exported from internal/types to keep the public API at the root.
type Format = types.Format

// Re-export the format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatM4A     = types.FormatM4A
	FormatMP3     = types.FormatMP3
)

// FormatFromPath selects a format by file extension.
func FormatFromPath(path string) Format {
	return types.FormatFromPath(path)
}
