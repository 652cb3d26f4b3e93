// jigsaw turns pictures into square grid puzzles in the terminal.
//
// Usage:
//
//	jigsaw shuffle <image>     - Cut, shuffle and save a puzzle bundle
//	jigsaw reassemble <dir>    - Restore the picture from a bundle
//	jigsaw play <image|dir>    - Solve a puzzle interactively
//	jigsaw serve               - Start SSH server for remote play
//	jigsaw setup               - Unpack sample picture archives
//	jigsaw history             - Show recent runs and best solves
//
// Global flags:
//
//	--config <path>      - Config file (YAML or TOML)
//	--difficulty <name>  - Preset: easy, normal, hard
//	--seed <value>       - RNG seed for reproducible shuffles
//	--db <path>          - History database path
//	--verbose            - Debug logging
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/config"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagVerbose    bool

	// appConfig is loaded before any subcommand runs.
	appConfig config.Config
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jigsaw",
	Short: "Jigsaw - cut pictures into grid puzzles and solve them in your terminal",
	Long: `Jigsaw crops a picture to a square, cuts it into an n x n grid,
shuffles and turns the tiles, and can put them back together exactly.

Available commands:
  shuffle     - Write a shuffled puzzle bundle
  reassemble  - Rebuild the picture from a bundle
  play        - Solve a puzzle interactively
  serve       - Start SSH server for remote play
  setup       - Unpack sample picture archives
  history     - View runs and best solves

Examples:
  jigsaw shuffle cat.jpg --grid 4
  jigsaw reassemble cat_puzzle --verify cat.jpg
  jigsaw play cat.jpg --difficulty easy
  jigsaw serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(shuffleCmd)
	rootCmd.AddCommand(reassembleCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(historyCmd)
}

// setupRoot attaches the logger and loads the configuration.
func setupRoot(cmd *cobra.Command, _ []string) error {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level)
	cmd.SetContext(withLogger(cmd.Context(), logger))

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := config.ApplyPreset(&cfg, config.Preset(flagDifficulty)); err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	logger.Debug("config loaded", "grid", cfg.Grid.Size, "rotate", cfg.Grid.Rotate, "db", cfg.Storage.DBPath)
	return nil
}

// openStore opens the history database. History is optional, so a failure is
// logged and nil returned.
func openStore(cmd *cobra.Command) *storage.Store {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		loggerFromContext(cmd.Context()).Warn("could not open history database", "error", err)
		return nil
	}
	return store
}
