package tui

import (
	"github.com/charmbracelet/log"

	"github.com/rionnag/unblocked/internal/config"
	"github.com/rionnag/unblocked/internal/field"
	"github.com/rionnag/unblocked/internal/level"
	"github.com/rionnag/unblocked/internal/replay"
	"github.com/rionnag/unblocked/internal/storage"
)

// Game bundles the long-lived parts every scene works against: the level
// set, the live field, persistence, and the replay engine. Scenes share
// one instance through the whole session.
type Game struct {
	Cfg      config.Config
	Logger   *log.Logger
	Levels   *level.Set
	Field    *field.Field
	Store    *storage.Store
	Replay   *replay.Engine
	Progress storage.Progress
}

// NewGame wires the shared game context. Store may be nil; scores are then
// simply not persisted (useful for tests and ephemeral SSH sessions).
func NewGame(cfg config.Config, logger *log.Logger, levels *level.Set, store *storage.Store) *Game {
	maxLevel := 1
	if store != nil {
		if m, err := store.MaxLevel(); err == nil {
			maxLevel = m
		} else {
			logger.Warn("cannot read progress", "err", err)
		}
	}
	if maxLevel >= levels.Count() {
		maxLevel = levels.Count() - 1
	}

	return &Game{
		Cfg:      cfg,
		Logger:   logger,
		Levels:   levels,
		Field:    field.New(levels),
		Store:    store,
		Replay:   replay.NewEngine(config.ExpandHome(cfg.Paths.Replays), logger),
		Progress: storage.NewProgress(maxLevel),
	}
}

// recordWin persists a solved level and unlocks the next one.
func (g *Game) recordWin(levelNum, throws int) {
	next := levelNum + 1
	if next >= g.Levels.Count() {
		next = levelNum
	}
	g.Progress.Unlock(next)
	if g.Store == nil {
		return
	}
	if err := g.Store.RecordWin(levelNum, throws); err != nil {
		g.Logger.Warn("cannot record win", "level", levelNum, "err", err)
	}
	if err := g.Store.AdvanceMax(next); err != nil {
		g.Logger.Warn("cannot advance progress", "err", err)
	}
}

// recordFail persists a failed attempt.
func (g *Game) recordFail(levelNum int) {
	if g.Store == nil {
		return
	}
	if err := g.Store.RecordFail(levelNum); err != nil {
		g.Logger.Warn("cannot record fail", "level", levelNum, "err", err)
	}
}

// recordHelp marks the level as played back with help.
func (g *Game) recordHelp(levelNum int) {
	if g.Store == nil {
		return
	}
	if err := g.Store.RecordHelpUsed(levelNum); err != nil {
		g.Logger.Warn("cannot record help", "level", levelNum, "err", err)
	}
}
