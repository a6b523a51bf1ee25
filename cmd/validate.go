package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/spritepack/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>",
	Short: "Check a manifest without loading any images",
	Long: `Decodes the manifest and reports every problem that can be detected
statically: schema errors, empty or duplicate entries, degenerate grids,
and regions that cannot fit the maximum atlas size even alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	m, err := manifest.DecodeFile(args[0])
	if err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}

	errs := validateManifest(m)
	if len(errs) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d entries expanding to %d regions\n", len(m.Textures), m.RegionCount())
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest) []string {
	var errs []string

	if err := m.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	cfg := m.Configuration

	seen := map[string]bool{}
	for i, e := range m.Textures {
		if e.Path == "" {
			errs = append(errs, fmt.Sprintf("textures[%d]: empty path", i))
		} else if seen[e.Path] {
			errs = append(errs, fmt.Sprintf("textures[%d]: duplicate path %q", i, e.Path))
		}
		seen[e.Path] = true

		switch s := e.SpriteSheet.(type) {
		case manifest.Homogeneous:
			if s.Columns == 0 || s.Rows == 0 {
				errs = append(errs, fmt.Sprintf("textures[%d]: empty grid (%d columns, %d rows)", i, s.Columns, s.Rows))
			}
			if s.TileSize.X == 0 || s.TileSize.Y == 0 {
				errs = append(errs, fmt.Sprintf("textures[%d]: zero tile_size (%d,%d)", i, s.TileSize.X, s.TileSize.Y))
			}
			if !fitsMaxSize(s.TileSize, cfg) {
				errs = append(errs, fmt.Sprintf("textures[%d]: tile %dx%d cannot fit max_size %dx%d with padding (%d,%d)",
					i, s.TileSize.X, s.TileSize.Y, cfg.MaxSize.X, cfg.MaxSize.Y, cfg.Padding.X, cfg.Padding.Y))
			}
		case manifest.Heterogeneous:
			if len(s) == 0 {
				errs = append(errs, fmt.Sprintf("textures[%d]: empty region list", i))
			}
			for j, r := range s {
				if r.Size.X == 0 || r.Size.Y == 0 {
					errs = append(errs, fmt.Sprintf("textures[%d] region %d: zero size", i, j))
				}
				if !fitsMaxSize(r.Size, cfg) {
					errs = append(errs, fmt.Sprintf("textures[%d] region %d: %dx%d cannot fit max_size %dx%d with padding (%d,%d)",
						i, j, r.Size.X, r.Size.Y, cfg.MaxSize.X, cfg.MaxSize.Y, cfg.Padding.X, cfg.Padding.Y))
				}
			}
		}
	}

	return errs
}

// fitsMaxSize reports whether a region of the given size, inflated by
// padding on all sides, could ever be placed in the maximum atlas.
func fitsMaxSize(size manifest.Vec2, cfg manifest.Configuration) bool {
	w := uint64(size.X) + 2*uint64(cfg.Padding.X)
	h := uint64(size.Y) + 2*uint64(cfg.Padding.Y)
	return w <= uint64(cfg.MaxSize.X) && h <= uint64(cfg.MaxSize.Y)
}
