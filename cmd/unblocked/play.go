package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rionnag/unblocked/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level, or the highest unlocked one.

Controls:
  W/Up, S/Down - Move your brick between rows
  Space        - Throw the brick
  F1/H         - Watch the saved replay for this level
  F5           - Save the current attempt as the level replay
  Esc          - Back to the menu
  Q/Ctrl+C     - Quit

Examples:
  unblocked play
  unblocked play 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runMenu(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	levels, err := loadLevels(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger()
	store := openStore(cfg, logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	game := tui.NewGame(cfg, logger, levels, store)
	if err := tui.Run(tui.NewMenuScene(game), terminalRuntime(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	levels, err := loadLevels(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger()
	store := openStore(cfg, logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	game := tui.NewGame(cfg, logger, levels, store)

	levelNum := game.Progress.Curr
	if len(args) == 1 {
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
			os.Exit(1)
		}
		if n < 1 || n >= levels.Count() {
			fmt.Fprintf(os.Stderr, "Error: level %d out of range (1-%d)\n", n, levels.Count()-1)
			os.Exit(1)
		}
		if n > game.Progress.Max {
			fmt.Fprintf(os.Stderr, "Error: level %d is locked (unlocked up to %d)\n", n, game.Progress.Max)
			os.Exit(1)
		}
		levelNum = n
	}

	if err := tui.Run(tui.NewPlayScene(game, levelNum), terminalRuntime(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
