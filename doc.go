// Package tags extracts descriptive metadata from audio media files by
// parsing their native container and tag formats directly from raw bytes,
// without decoding any audio content.
//
// Two format families are supported:
//
//   - MPEG-4/M4A containers (.m4a, .mp4) carrying iTunes-style ilst
//     metadata atoms
//   - MPEG audio files (.mp3) carrying ID3v1 and/or ID3v2 (2.2-2.4) tags
//
// # Quick Start
//
// Reading metadata from an audio file:
//
//	file, err := tags.Open("song.m4a")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if title, ok := file.Tag().Title(); ok {
//		fmt.Println("Title:", title)
//	}
//
// The format is selected by file extension; any other extension fails
// with an UnsupportedFormatError. The file handle is closed before Open
// returns - the parsed Tag is an immutable snapshot that outlives it and
// is safe to share across goroutines.
//
// # The Tag view
//
// A Tag exposes seven normalized accessors: Title, Artist, Album, Comment
// and Genre as strings, Year and Track as numbers. Each looks up one fixed
// key in the parsed value map and type-matches it; a missing key or a
// value of the wrong kind yields ok == false, never an error. MPEG files
// may carry several tag sources at once (ID3v2 plus an ID3v1 trailer);
// they are merged into a single logical tag, the ID3v2 frames taking
// priority.
//
// # Error Handling
//
// Fatal errors are typed so callers can tell them apart with errors.As:
//
//   - CorruptedFileError: the binary tag structure is invalid
//   - UnsupportedFormatError: unknown extension, compressed or encrypted
//     frames - not a bug, not implemented
//   - TagNotFoundError: the file has no readable tag structure at all
//
// Truncated frame regions and padding are not errors: frame iteration
// stops and whatever was already decoded is kept.
//
// # Non-goals
//
// Writing tags, decoding audio, extracting stream properties (bitrate,
// sample rate, channels, length) and decoding cover art are out of scope.
// Cover art atoms and picture frames are recognized but left undecoded.
package tags
