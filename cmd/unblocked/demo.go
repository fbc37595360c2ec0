package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rionnag/unblocked/internal/platform/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo [level]",
	Short: "Watch the demo or a saved replay",
	Long: `Play back a recording against its level.

Without an argument this shows the built-in demonstration. With a level
number it plays the replay previously saved there with F5.

Examples:
  unblocked demo
  unblocked demo 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) {
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

	levelNum := 0
	if len(args) == 1 {
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil || n < 0 || n >= levels.Count() {
			fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
			os.Exit(1)
		}
		levelNum = n
	}

	logger := newLogger()
	game := tui.NewGame(cfg, logger, levels, nil)
	if err := game.Replay.Load(levelNum); err != nil {
		fmt.Fprintf(os.Stderr, "Error: no usable replay for level %d: %v\n", levelNum, err)
		os.Exit(1)
	}

	if err := tui.Run(tui.NewDemoScene(game, levelNum), terminalRuntime(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error running demo: %v\n", err)
		os.Exit(1)
	}
}
