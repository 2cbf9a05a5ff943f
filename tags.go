package tags

import (
	"github.com/hGriff0n/tags/internal/types"
)

// Tag is the normalized, read-only metadata view of one audio file.
// Re-exported from internal/types so format packages can implement it
// without importing this package.
type Tag = types.Tag
