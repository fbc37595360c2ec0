// unblocked is a terminal tile-matching puzzle game.
//
// Usage:
//
//	unblocked                - Open the level menu
//	unblocked play [level]   - Play a level directly
//	unblocked demo [level]   - Watch the built-in demo or a saved replay
//	unblocked scores         - Browse per-level records
//	unblocked levels         - List the levels in the active set
//	unblocked serve          - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.unblocked/config.yaml)
//	--fps <rate>     - Override tick rate
//	--db <path>      - Override scores database path
//	--replays <dir>  - Override replay directory
//	--levels <path>  - Override level set file (default: built-in levels)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rionnag/unblocked/internal/config"
	"github.com/rionnag/unblocked/internal/core"
	"github.com/rionnag/unblocked/internal/level"
	"github.com/rionnag/unblocked/internal/storage"
)

var (
	// Global flags
	flagConfig  string
	flagFPS     int
	flagDBPath  string
	flagReplays string
	flagLevels  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "unblocked",
	Short: "Unblocked - a tile-matching puzzle in your terminal",
	Long: `Unblocked is a terminal puzzle game: throw your brick into the pile,
match kinds to clear them, and empty the board in as few throws as you can.

Available commands:
  play     - Play a level directly
  demo     - Watch the built-in demo or a saved replay
  scores   - Browse per-level records
  levels   - List the levels in the active set
  serve    - Start SSH server for remote play

Run with no command to open the level menu.

Examples:
  unblocked
  unblocked play 3
  unblocked demo
  unblocked scores
  unblocked serve --ssh :2222`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagReplays, "replays", "", "Path to replay directory")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to a level set file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the YAML config and applies any flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Game.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Paths.Database = flagDBPath
	}
	if flagReplays != "" {
		cfg.Paths.Replays = flagReplays
	}
	if flagLevels != "" {
		cfg.Paths.Levels = flagLevels
	}
	return cfg, nil
}

// loadLevels returns the configured level set, falling back to the
// built-in one when no file is configured.
func loadLevels(cfg config.Config) (*level.Set, error) {
	if cfg.Paths.Levels == "" {
		return level.Embedded()
	}
	f, err := os.Open(config.ExpandHome(cfg.Paths.Levels))
	if err != nil {
		return nil, fmt.Errorf("cannot open level set: %w", err)
	}
	defer f.Close()
	return level.Parse(f)
}

// openStore opens the scores database, or returns nil so the game still
// runs without persistence.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Paths.Database)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "unblocked",
	})
}

// terminalRuntime builds the runtime config from the current terminal.
func terminalRuntime(cfg config.Config) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Game.TickRate,
	}
}
