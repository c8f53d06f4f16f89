package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/beatporter/beatporter/internal/format"
)

// Offline converter: parse one library file and render it into one or
// more target formats without going through the HTTP API.
func main() {
	in := flag.String("in", "", "Input library file")
	outDir := flag.String("out", ".", "Output directory")
	formats := flag.String("formats", "m3u", "Comma-separated output formats (m3u, serato, rekordbox, traktor, tracklist)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: beatporter -in <library file> [-out <dir>] [-formats m3u,serato,...]")
		os.Exit(2)
	}

	if err := run(*in, *outDir, strings.Split(*formats, ",")); err != nil {
		slog.Error("Conversion failed", "error", err)
		os.Exit(1)
	}
}

func run(inPath, outDir string, formatNames []string) error {
	content, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	detected := format.Detect(filepath.Base(inPath), content)
	if detected == format.FormatUnknown {
		return fmt.Errorf("could not detect format of %s", inPath)
	}

	parser, err := format.ParserFor(detected)
	if err != nil {
		return err
	}
	lib, meta, err := parser.Parse(filepath.Base(inPath), content)
	if err != nil {
		return err
	}
	fmt.Printf("Parsed %s: %d tracks, %d playlists (%s)\n",
		inPath, meta.TrackCount, meta.PlaylistCount, meta.SourceFormat)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	bar := progressbar.NewOptions(
		len(formatNames),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Rendering[reset] output formats..."),
	)

	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	for _, name := range formatNames {
		target := format.Format(strings.TrimSpace(name))
		renderer, err := format.RendererFor(target)
		if err != nil {
			return err
		}
		rendered, err := renderer.Render(lib.Tracks)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", target, err)
		}
		outPath := filepath.Join(outDir, fmt.Sprintf("%s.%s", base, format.Extension(target)))
		if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
			return err
		}
		bar.Add(1)
	}
	fmt.Println()
	return nil
}
