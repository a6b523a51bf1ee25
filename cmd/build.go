package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/spritepack/internal/atlas"
	"github.com/AnyUserName/spritepack/internal/encoder"
	"github.com/AnyUserName/spritepack/internal/export"
	"github.com/AnyUserName/spritepack/internal/hasher"
	"github.com/AnyUserName/spritepack/internal/loader"
	"github.com/AnyUserName/spritepack/internal/manifest"
)

var (
	buildOutDir  string
	buildFormat  string
	buildName    string
	buildWorkers int
)

var buildCmd = &cobra.Command{
	Use:   "build <manifest>",
	Short: "Build a texture atlas and layout document from a manifest",
	Long: `Decodes a spritepack manifest (.json or .toml), loads every source image
relative to the manifest location, and packs all regions into one atlas.

Writes two artifacts to the output directory:
  <name>.<w>x<h>.<hash>.<ext>   the atlas image (content-addressed)
  <name>.layout.json            the region layout document`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", ".", "output directory")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "png", "atlas image format (png, bmp, tiff)")
	buildCmd.Flags().StringVar(&buildName, "name", "", "atlas base name (default: manifest file name)")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel image loads (0 = NumCPU)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(_ *cobra.Command, args []string) error {
	start := time.Now()

	absManifest, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve manifest path: %w", err)
	}

	reg := encoder.NewRegistry()
	enc := reg.Get(buildFormat)
	if enc == nil {
		return fmt.Errorf("unknown atlas format %q (want one of: %s)",
			buildFormat, strings.Join(reg.Available(), ", "))
	}

	m, err := manifest.DecodeFile(absManifest)
	if err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}
	logger.Debug("manifest decoded",
		"entries", len(m.Textures),
		"regions", m.RegionCount(),
		"format", m.Configuration.Format,
	)

	resolver := loader.New(filepath.Dir(absManifest))
	a, err := atlas.Build(m, resolver, atlas.WithWorkers(buildWorkers))
	if err != nil {
		return fmt.Errorf("build atlas: %w", err)
	}
	logger.Debug("atlas packed",
		"size", fmt.Sprintf("%dx%d", a.Image.Width, a.Image.Height),
		"regions", len(a.Layout),
	)

	nrgba, err := a.Image.ToNRGBA()
	if err != nil {
		return fmt.Errorf("prepare atlas for encoding: %w", err)
	}
	data, err := enc.Encode(nrgba)
	if err != nil {
		return fmt.Errorf("encode atlas: %w", err)
	}

	name := buildName
	if name == "" {
		base := filepath.Base(absManifest)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	hash := hasher.Content(data, 0)
	atlasFile := fmt.Sprintf("%s.%dx%d.%s.%s",
		name, a.Image.Width, a.Image.Height, hash[:8], enc.Extension())

	if err := os.MkdirAll(buildOutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(buildOutDir, atlasFile), data, 0o644); err != nil {
		return fmt.Errorf("write atlas: %w", err)
	}

	doc, err := export.NewDocument(m, a, args[0], atlasFile, hash)
	if err != nil {
		return fmt.Errorf("layout document: %w", err)
	}
	layoutFile := name + ".layout.json"
	if err := export.WriteJSON(doc, filepath.Join(buildOutDir, layoutFile)); err != nil {
		return err
	}

	printBuildReport(doc, atlasFile, layoutFile, int64(len(data)), time.Since(start))
	return nil
}

func printBuildReport(doc *export.Document, atlasFile, layoutFile string, atlasBytes int64, elapsed time.Duration) {
	fmt.Println()
	fmt.Printf("  Atlas:     %s\n", atlasFile)
	fmt.Printf("  Size:      %dx%d %s (%s on disk)\n",
		doc.Atlas.Width, doc.Atlas.Height, doc.Atlas.Format, formatBytes(atlasBytes))
	fmt.Printf("  Regions:   %d across %d entries\n", doc.Stats.Regions, doc.Stats.Entries)
	fmt.Printf("  Occupancy: %.1f%%\n", doc.Stats.Occupancy*100)
	fmt.Printf("  Layout:    %s\n", layoutFile)
	fmt.Printf("  Time:      %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncPath(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
