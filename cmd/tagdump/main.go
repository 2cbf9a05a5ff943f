// Package main provides tagdump, a small CLI that prints the normalized
// metadata fields of audio files.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hGriff0n/tags"
)

func main() {
	build := tags.Build()

	cmd := &cli.Command{
		Name:      "tagdump",
		Usage:     "Print audio file metadata (M4A/MP4 ilst atoms, MP3 ID3 tags)",
		Version:   fmt.Sprintf("%s (commit %s, %s)", build.Version, build.Commit, build.GoVersion),
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "emit one JSON object per file",
			},
			&cli.BoolFlag{
				Name:    "keys",
				Aliases: []string{"k"},
				Usage:   "include the raw tag keys found in each file",
			},
		},
		Action: runDump,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)

		os.Exit(1)
	}
}

// fields is the JSON shape of one file's normalized tag.
type fields struct {
	Path    string  `json:"path"`
	Format  string  `json:"format"`
	Title   *string `json:"title,omitempty"`
	Artist  *string `json:"artist,omitempty"`
	Album   *string `json:"album,omitempty"`
	Comment *string `json:"comment,omitempty"`
	Genre   *string `json:"genre,omitempty"`
	Year    *uint64 `json:"year,omitempty"`
	Track   *uint32 `json:"track,omitempty"`

	Keys []string `json:"keys,omitempty"`
}

func runDump(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return fmt.Errorf("expected at least one file argument")
	}

	enc := json.NewEncoder(os.Stdout)

	failures := 0
	for _, path := range cmd.Args().Slice() {
		file, err := tags.Open(path)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
			failures++

			continue
		}

		out := collect(file, cmd.Bool("keys"))
		if cmd.Bool("json") {
			if err := enc.Encode(out); err != nil {
				return err
			}

			continue
		}

		printFields(out)
	}

	if failures > 0 {
		return fmt.Errorf("%d file(s) could not be read", failures)
	}

	return nil
}

func collect(file *tags.File, withKeys bool) fields {
	tag := file.Tag()
	out := fields{
		Path:   file.Path,
		Format: file.Format.String(),
	}

	if withKeys {
		// Both format tags expose their raw key set beyond the
		// normalized accessors.
		if k, ok := tag.(interface{ Keys() []string }); ok {
			out.Keys = k.Keys()
		}
	}

	if v, ok := tag.Title(); ok {
		out.Title = &v
	}
	if v, ok := tag.Artist(); ok {
		out.Artist = &v
	}
	if v, ok := tag.Album(); ok {
		out.Album = &v
	}
	if v, ok := tag.Comment(); ok {
		out.Comment = &v
	}
	if v, ok := tag.Genre(); ok {
		out.Genre = &v
	}
	if v, ok := tag.Year(); ok {
		out.Year = &v
	}
	if v, ok := tag.Track(); ok {
		out.Track = &v
	}

	return out
}

func printFields(out fields) {
	fmt.Printf("%s (%s)\n", out.Path, out.Format)

	print := func(name string, v any) {
		fmt.Printf("  %-8s %v\n", name+":", v)
	}

	if out.Title != nil {
		print("title", *out.Title)
	}
	if out.Artist != nil {
		print("artist", *out.Artist)
	}
	if out.Album != nil {
		print("album", *out.Album)
	}
	if out.Comment != nil {
		print("comment", *out.Comment)
	}
	if out.Genre != nil {
		print("genre", *out.Genre)
	}
	if out.Year != nil {
		print("year", *out.Year)
	}
	if out.Track != nil {
		print("track", *out.Track)
	}
	if out.Keys != nil {
		print("keys", strings.Join(out.Keys, ", "))
	}
}
