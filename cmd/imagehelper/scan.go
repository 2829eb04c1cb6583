package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"imagehelper/internal/config"
	"imagehelper/internal/gallery"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command
func NewScanCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan [folder]",
		Short: "List the images the viewer would show for a folder",
		Long: `Scan a folder the way the gallery does: only files directly inside it
whose names match the configured patterns, skipping files that do not decode.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runScan(cmd.OutOrStdout(), cfg, dir, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output one JSON object per image")

	return cmd
}

func runScan(w io.Writer, cfg *config.Config, dir string, jsonOutput bool) error {
	if cfg == nil {
		cfg = config.New()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return fmt.Errorf("not a folder: %s", abs)
	}

	scanner, err := gallery.NewScanner(cfg.Gallery.Patterns)
	if err != nil {
		return err
	}
	files, err := scanner.List(abs)
	if err != nil {
		return err
	}

	if !jsonOutput {
		fmt.Fprintln(w, titleText("Images in "+abs))
	}
	shown, skipped := 0, 0
	for _, f := range files {
		img, err := gallery.Decode(f.Path)
		if err != nil {
			skipped++
			if !jsonOutput {
				fmt.Fprintf(w, "  %s %s\n", errorText("✗"), statusText(f.Name()+" (cannot decode)"))
			}
			continue
		}
		shown++
		if jsonOutput {
			fmt.Fprintln(w, f.ToJSON())
			continue
		}

		b := img.Bounds()
		tw, th := gallery.FitSize(b.Dx(), b.Dy(), cfg.Gallery.ThumbnailSize)
		kind := "unknown"
		if mt, err := mimetype.DetectFile(f.Path); err == nil {
			kind = mt.String()
		}
		fmt.Fprintf(w, "  %s %s\n", successText("✓"), nameStyle.Render(f.Name()))
		fmt.Fprintf(w, "      %dx%d (thumbnail %dx%d)  %s  %s  %s\n",
			b.Dx(), b.Dy(), tw, th, kind,
			humanize.Bytes(uint64(f.Size)), humanize.Time(f.ModTime))
	}

	if !jsonOutput {
		fmt.Fprintln(w, statusText(fmt.Sprintf("%d images, %d skipped", shown, skipped)))
	}
	return nil
}
