package tags

import (
	"github.com/hGriff0n/tags/internal/types"
)

// CorruptedFileError is an alias to types.CorruptedFileError.
// Re-exported from internal/types to keep the public API at the root.
type CorruptedFileError = types.CorruptedFileError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exported from internal/types to keep the public API at the root.
type UnsupportedFormatError = types.UnsupportedFormatError

// TagNotFoundError is an alias to types.TagNotFoundError.
// Re-exported from internal/types to keep the public API at the root.
type TagNotFoundError = types.TagNotFoundError
