package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/spritepack/internal/export"
	"github.com/AnyUserName/spritepack/internal/hasher"
	"github.com/AnyUserName/spritepack/internal/manifest"
)

var inspectLayout bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <manifest|layout>",
	Short: "Print the configuration and region breakdown of a manifest",
	Long: `Decodes a manifest and prints its configuration and per-entry region
counts. With --layout the argument is a built layout document instead:
prints the atlas summary and verifies that the referenced atlas image
still exists next to the layout with its recorded content hash.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVarP(&inspectLayout, "layout", "l", false, "inspect a layout document and verify its atlas file")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	if inspectLayout {
		return runInspectLayout(args[0])
	}
	m, err := manifest.DecodeFile(args[0])
	if err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}
	printManifest(m)
	return nil
}

func runInspectLayout(path string) error {
	doc, err := export.ReadJSON(path)
	if err != nil {
		return fmt.Errorf("read layout: %w", err)
	}
	printLayout(doc)

	if err := verifyAtlasFile(doc, filepath.Dir(path)); err != nil {
		fmt.Printf("  ✗ %s\n", err)
		fmt.Println()
		return err
	}
	fmt.Println("  ✓ Atlas file present, hash matches")
	fmt.Println()
	return nil
}

// verifyAtlasFile checks that the atlas image referenced by the layout
// exists in dir and still has the recorded content hash.
func verifyAtlasFile(doc *export.Document, dir string) error {
	f, err := os.Open(filepath.Join(dir, doc.Atlas.Path))
	if err != nil {
		return fmt.Errorf("atlas file: %w", err)
	}
	defer f.Close()

	hash, err := hasher.ContentReader(f, len(doc.Atlas.Hash))
	if err != nil {
		return fmt.Errorf("hash atlas: %w", err)
	}
	if hash != doc.Atlas.Hash {
		return fmt.Errorf("atlas hash mismatch: layout records %s, file is %s", doc.Atlas.Hash, hash)
	}
	return nil
}

func printManifest(m *manifest.Manifest) {
	cfg := m.Configuration
	fmt.Println()
	fmt.Printf("  Format:        %s\n", cfg.Format)
	fmt.Printf("  Initial size:  %dx%d\n", cfg.InitialSize.X, cfg.InitialSize.Y)
	fmt.Printf("  Max size:      %dx%d\n", cfg.MaxSize.X, cfg.MaxSize.Y)
	fmt.Printf("  Padding:       (%d,%d)\n", cfg.Padding.X, cfg.Padding.Y)
	fmt.Printf("  Always pack:   %t\n", cfg.AlwaysPack)
	fmt.Printf("  Auto convert:  %t\n", cfg.AutoFormatConversion)
	fmt.Println()

	for i, e := range m.Textures {
		fmt.Printf("    [%d] %-40s %-13s %5d region(s)\n",
			i, truncPath(e.Path, 40), sheetKind(e.SpriteSheet), e.RegionCount())
	}
	fmt.Println()
	fmt.Printf("  Entries: %d   Regions: %d\n", len(m.Textures), m.RegionCount())
	fmt.Println()
}

func printLayout(doc *export.Document) {
	fmt.Println()
	fmt.Printf("  Manifest:   %s\n", doc.Manifest)
	fmt.Printf("  Generated:  %s\n", doc.GeneratedAt.Format(time.RFC3339))
	fmt.Printf("  Atlas:      %s (%dx%d %s)\n", doc.Atlas.Path, doc.Atlas.Width, doc.Atlas.Height, doc.Atlas.Format)
	fmt.Printf("  Regions:    %d across %d entries\n", doc.Stats.Regions, doc.Stats.Entries)
	fmt.Printf("  Occupancy:  %.1f%%\n", doc.Stats.Occupancy*100)
	fmt.Println()

	var order []string
	counts := map[string]int{}
	for _, r := range doc.Regions {
		if counts[r.Path] == 0 {
			order = append(order, r.Path)
		}
		counts[r.Path]++
	}
	for i, p := range order {
		fmt.Printf("    [%d] %-40s %5d region(s)\n", i, truncPath(p, 40), counts[p])
	}
	fmt.Println()
}

func sheetKind(s manifest.SpriteSheet) string {
	switch s.(type) {
	case manifest.Homogeneous:
		return "homogeneous"
	case manifest.Heterogeneous:
		return "heterogeneous"
	default:
		return "whole"
	}
}
