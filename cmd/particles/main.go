// particles previews, benchmarks and records 2D particle effects.
//
// Usage:
//
//	particles view                  - Open the desktop viewer
//	particles term [effect]         - Preview effects in the terminal
//	particles simulate <effect>     - Run an effect headless and report counts
//	particles simulate --all        - Run every effect concurrently
//	particles list                  - List effects in the library
//	particles runs [effect]         - Show recorded simulation runs
//
// Global flags:
//
//	--config <path>   - Viewer config file (default: search path, then embedded)
//	--effects <dir>   - Directory of effect YAML files (default: built-in effects)
//	--seed <value>    - RNG seed (0 = time based)
//	--verbose         - Enable debug logging
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/decker502/sparks/pkg/config"
	"github.com/decker502/sparks/pkg/embedded"
	"github.com/decker502/sparks/pkg/game"
)

const appName = "sparks"

var (
	// Global flags
	flagConfig  string
	flagEffects string
	flagSeed    uint64
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "particles",
	Short: "Preview and benchmark 2D particle effects",
	Long: `particles loads a library of YAML particle effects and plays them in a
desktop window, in the terminal, or headless.

Examples:
  particles view
  particles term fountain
  particles simulate explosion --frames 600 --db ~/.sparks/runs.db
  particles simulate --all
  particles list --filter smo
  particles runs explosion`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Viewer config file")
	rootCmd.PersistentFlags().StringVar(&flagEffects, "effects", "", "Directory of effect YAML files")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runsCmd)
}

// newLogger creates the process logger; --verbose enables debug output.
func newLogger() *log.Logger {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: flagVerbose,
		Prefix:          appName,
		Level:           level,
	})
}

// loadConfig loads the viewer config and applies global flag overrides.
func loadConfig() (*config.ViewerConfig, error) {
	cfg, err := config.LoadViewerConfig(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagEffects != "" {
		cfg.EffectsDir = flagEffects
	}
	return cfg, nil
}

// loadLibrary loads the effect library from cfg.EffectsDir, or the
// built-in effects when it is empty.
func loadLibrary(cfg *config.ViewerConfig, logger *log.Logger) (*game.EffectLibrary, error) {
	var (
		fsys fs.FS = embedded.FS()
		dir        = "data/effects"
	)
	if cfg.EffectsDir != "" {
		fsys, dir = os.DirFS(cfg.EffectsDir), "."
	}

	lib, err := game.LoadEffectLibrary(fsys, dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load effects: %w", err)
	}
	logger.Debug("effects loaded", "count", lib.Len(), "dir", cfg.EffectsDir)
	return lib, nil
}

// setup loads everything the subcommands share.
func setup() (*config.ViewerConfig, *game.EffectLibrary, *log.Logger, error) {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Debug("config loaded", "source", cfg.Source)

	lib, err := loadLibrary(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, lib, logger, nil
}
