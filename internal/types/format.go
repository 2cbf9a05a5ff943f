package types

import (
	"path/filepath"
	"strings"
)

// Format represents the container format selected for a file.
type Format int

const (
	// FormatUnknown represents an unrecognized or unsupported format.
	FormatUnknown Format = iota
	// FormatM4A represents MPEG-4 audio containers (.m4a, .mp4).
	FormatM4A
	// FormatMP3 represents MPEG audio files carrying ID3 tags (.mp3).
	FormatMP3
)

// String returns the human-readable name of the format.
func (f Format) String() string {
	switch f {
	case FormatM4A:
		return "M4A"
	case FormatMP3:
		return "MP3"
	case FormatUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// Extensions returns the file extensions dispatched to this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatM4A:
		return []string{".m4a", ".mp4"}
	case FormatMP3:
		return []string{".mp3"}
	case FormatUnknown:
		return nil
	default:
		return nil
	}
}

// FormatFromPath selects a format by file extension. Tag parsing itself is
// driven purely by the bytes; the extension only picks the reader.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m4a", ".mp4":
		return FormatM4A
	case ".mp3":
		return FormatMP3
	default:
		return FormatUnknown
	}
}
