package types

// genreList is the standard ID3v1 genre table. The gnre atom in MPEG-4
// files stores a 1-based index into this list, so index 1 is "Blues".
var genreList = []string{
	"Blues", "Classic Rock", "Country", "Dance", "Disco", "Funk",
	"Grunge", "Hip-Hop", "Jazz", "Metal", "New Age", "Oldies",
	"Other", "Pop", "R&B", "Rap", "Reggae", "Rock",
	"Techno", "Industrial", "Alternative", "Ska", "Death Metal", "Pranks",
	"Soundtrack", "Euro-Techno", "Ambient", "Trip-Hop", "Vocal", "Jazz+Funk",
	"Fusion", "Trance", "Classical", "Instrumental", "Acid", "House",
	"Game", "Sound Clip", "Gospel", "Noise", "Alternative Rock", "Bass",
	"Soul", "Punk", "Space", "Meditative", "Instrumental Pop", "Instrumental Rock",
	"Ethnic", "Gothic", "Darkwave", "Techno-Industrial", "Electronic", "Pop-Folk",
	"Eurodance", "Dream", "Southern Rock", "Comedy", "Cult", "Gangsta",
	"Top 40", "Christian Rap", "Pop/Funk", "Jungle", "Native American", "Cabaret",
	"New Wave", "Psychedelic", "Rave", "Showtunes", "Trailer", "Lo-Fi",
	"Tribal", "Acid Punk", "Acid Jazz", "Polka", "Retro", "Musical",
	"Rock & Roll", "Hard Rock",
}

// GenreByIndex looks up a 1-based ID3v1 genre code. Index 0 or an index
// past the end of the table is not a valid genre; ok is false and callers
// must treat the file as malformed.
func GenreByIndex(index int) (string, bool) {
	if index < 1 || index > len(genreList) {
		return "", false
	}
	return genreList[index-1], true
}

// GenreCount returns the number of entries in the genre table.
func GenreCount() int { return len(genreList) }
