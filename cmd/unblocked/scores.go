package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rionnag/unblocked/internal/platform/tui"
	"github.com/rionnag/unblocked/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Browse per-level records",
	Long: `Show the record table: attempts, wins, best throw count, first-win
date, and whether the replay help was used, for every level played.

Examples:
  unblocked scores`,
	Run: runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Paths.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	model := tui.NewScoreboardModel(store, width, height)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error showing scores: %v\n", err)
		os.Exit(1)
	}
}
