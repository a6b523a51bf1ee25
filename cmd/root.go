package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
	logger  *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "spritepack",
	Short: "Declarative texture atlas builder",
	Long: `spritepack packs sprite images into a single texture atlas driven by a
JSON or TOML manifest. Entries may be whole images, uniform grids, or
explicit sub-rectangles; the output is a content-addressed atlas image
plus a layout document mapping every region to its pixel rectangle.`,
	Version: version,
	PersistentPreRun: func(*cobra.Command, []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"spritepack %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}
