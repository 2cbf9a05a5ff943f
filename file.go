package tags

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hGriff0n/tags/internal/registry"
	"github.com/hGriff0n/tags/internal/types"

	// Register the format parsers.
	_ "github.com/hGriff0n/tags/internal/m4a"
	_ "github.com/hGriff0n/tags/internal/mpeg"
)

// File is an opened audio file with its parsed metadata.
//
// The underlying file handle is released before Open returns; a File holds
// only the immutable parsed Tag plus basic file facts, so it is safe to
// keep and share for as long as needed.
type File struct {
	// Path the file was opened from.
	Path string

	// Format selected for the file (by extension).
	Format Format

	// Size of the file in bytes.
	Size int64

	tag Tag
}

// Tag returns the file's parsed metadata.
func (f *File) Tag() Tag {
	return f.tag
}

// Open opens an audio file and parses its metadata.
//
// The reader is selected by file extension: .m4a and .mp4 use the MPEG-4
// atom reader, .mp3 the ID3 reader. Any other extension fails with an
// UnsupportedFormatError. Parsing either completes fully or returns an
// error; there is no partially-open state, and the file handle is closed
// in both cases before Open returns.
//
// Example:
//
//	file, err := tags.Open("song.mp3")
//	if err != nil {
//		return err
//	}
//	if artist, ok := file.Tag().Artist(); ok {
//		fmt.Println(artist)
//	}
func Open(path string) (*File, error) {
	format := types.FormatFromPath(path)

	parser := registry.Get(format)
	if parser == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: "unimplemented file extension",
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	size := stat.Size()

	tag, err := parser.Parse(f, size, path)
	if err != nil {
		return nil, err
	}

	return &File{
		Path:   path,
		Format: format,
		Size:   size,
		tag:    tag,
	}, nil
}

// OpenMany opens multiple audio files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines
// and results are returned in the same order as the input paths. The
// first failure cancels the remaining work and is returned.
//
// Example:
//
//	files, err := tags.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range files {
//		title, _ := f.Tag().Title()
//		fmt.Printf("%s: %s\n", f.Path, title)
//	}
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
