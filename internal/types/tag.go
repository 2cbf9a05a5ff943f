package types

// Tag is the normalized, read-only view of one file's metadata.
//
// Each accessor looks up one fixed key in the underlying value map and
// type-matches it. A missing key or a value of the wrong variant yields
// ok == false, never an error.
//
// A Tag is built fully during Open and immutable afterward, so it is safe
// to share across goroutines and it outlives the file handle it was
// parsed from.
type Tag interface {
	// Title returns the track title.
	Title() (string, bool)
	// Artist returns the performing artist.
	Artist() (string, bool)
	// Album returns the album name.
	Album() (string, bool)
	// Comment returns the free-text comment.
	Comment() (string, bool)
	// Genre returns the genre name.
	Genre() (string, bool)
	// Year returns the release year.
	Year() (uint64, bool)
	// Track returns the track number.
	Track() (uint32, bool)
}
