package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rionnag/unblocked/internal/core"
	"github.com/rionnag/unblocked/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels in the active set",
	Long:  `Shows every level in the active set with its puzzle size and start brick.`,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
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

	fmt.Printf("Level set: %d levels (level 0 is the demo)\n\n", levels.Count())
	fmt.Printf("  %-5s  %-6s  %-6s  %s\n", "Level", "Size", "Bricks", "Start")
	fmt.Printf("  %-5s  %-6s  %-6s  %s\n", "-----", "----", "------", "-----")

	for i := 0; i < levels.Count(); i++ {
		lvl := levels.Level(i)

		width := 0
		bricks := 0
		for _, row := range lvl.Rows {
			width = core.Max(width, len(row))
			for _, k := range row {
				if k != level.KindNone {
					bricks++
				}
			}
		}

		fmt.Printf("  %-5d  %dx%-4d  %-6d  %c\n", i, len(lvl.Rows), width, bricks, lvl.Start.Rune())
	}

	fmt.Println()
	fmt.Println("Run 'unblocked play <level>' to play one.")
}
