package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rionnag/unblocked/internal/core"
	"github.com/rionnag/unblocked/internal/field"
)

// PlayScene runs one level interactively. Game actions are buffered into
// an input frame and applied on the next tick, so a key press and its
// recorded tick always agree. Every accepted action is also fed to the
// replay recorder, so the running attempt can be saved at any point with
// F5 and watched again later.
type PlayScene struct {
	game     *Game
	km       *KeyMapper
	frame    core.InputFrame
	levelNum int
	tick     uint64
	hiscore  int
	recorded bool // terminal state has been written to the store
	saved    bool // replay saved during this attempt
}

// NewPlayScene creates the scene for one level.
func NewPlayScene(g *Game, levelNum int) *PlayScene {
	return &PlayScene{game: g, km: NewKeyMapper(), frame: core.NewInputFrame(), levelNum: levelNum}
}

// Enter (re)starts the level: a fresh field, a fresh recording, tick zero.
func (p *PlayScene) Enter() {
	p.game.Field.Load(p.levelNum)
	p.game.Replay.StartRecording()
	p.frame.Clear()
	p.tick = 0
	p.recorded = false
	p.saved = false

	p.hiscore = 0
	if p.game.Store != nil {
		if score, err := p.game.Store.Score(p.levelNum); err == nil {
			p.hiscore = score.Hiscore
		}
	}
}

// HandleKey processes one key press.
func (p *PlayScene) HandleKey(msg tea.KeyMsg) Transition {
	act, isQuit := p.km.MapKey(msg)
	if isQuit {
		p.abandon()
		return Transition{Kind: TransQuit}
	}

	switch act {
	case core.ActionBack:
		p.abandon()
		return Transition{Kind: TransPop}

	case core.ActionConfirm:
		return p.confirm()

	case core.ActionSave:
		if p.game.Replay.IsRecording() {
			if err := p.game.Replay.Save(p.levelNum); err != nil {
				p.game.Logger.Warn("cannot save replay", "level", p.levelNum, "err", err)
			} else {
				p.saved = true
			}
		}

	case core.ActionHelp:
		if err := p.game.Replay.Load(p.levelNum); err != nil {
			return Transition{}
		}
		p.game.recordHelp(p.levelNum)
		return Transition{Kind: TransPush, Next: NewDemoScene(p.game, p.levelNum)}

	case core.ActionUp, core.ActionDown, core.ActionThrow:
		p.frame.Set(act)
	}

	return Transition{}
}

// applyFrame feeds one frame of edge-triggered actions to the field,
// always in the order up, down, throw, and reports which actions the
// field accepted. Replaying the same frames therefore reproduces the
// same board.
func applyFrame(f *field.Field, frame core.InputFrame) []core.Action {
	if !f.IsInteractive() {
		return nil
	}
	var applied []core.Action
	if frame.Has(core.ActionUp) {
		f.PlayerUp()
		applied = append(applied, core.ActionUp)
	}
	if frame.Has(core.ActionDown) {
		f.PlayerDown()
		applied = append(applied, core.ActionDown)
	}
	if frame.Has(core.ActionThrow) && f.CanThrow() {
		f.ThrowBrick()
		applied = append(applied, core.ActionThrow)
	}
	return applied
}

// confirm advances past a terminal state: the next level after a win, a
// restart after a loss, back to the menu after the final level.
func (p *PlayScene) confirm() Transition {
	switch p.game.Field.State {
	case field.Winner:
		p.levelNum++
		p.Enter()
	case field.Looser:
		p.Enter()
	case field.Completed:
		return Transition{Kind: TransPop}
	}
	return Transition{}
}

// abandon counts leaving mid-level as a failed attempt, but only once the
// player has actually engaged with it.
func (p *PlayScene) abandon() {
	f := p.game.Field
	if f.State == field.Unfinished && f.Throws >= p.game.Cfg.Game.MinThrows {
		p.game.recordFail(p.levelNum)
	}
}

// Tick applies the buffered input frame, advances the simulation, and
// persists a freshly reached terminal state exactly once.
func (p *PlayScene) Tick() Transition {
	f := p.game.Field
	for _, act := range applyFrame(f, p.frame) {
		p.game.Replay.Record(p.tick, act)
	}
	p.frame.Clear()

	p.tick++
	f.Update()

	if f.State != field.Unfinished && !p.recorded {
		p.recorded = true
		switch f.State {
		case field.Winner, field.Completed:
			p.game.recordWin(p.levelNum, f.Throws)
		case field.Looser:
			p.game.recordFail(p.levelNum)
		}
	}
	return Transition{}
}

// Render draws the board, the info panel, and the state line.
func (p *PlayScene) Render(s *core.Screen) {
	f := p.game.Field
	drawField(s, f, 0, 0)
	p.drawPanel(s)

	if f.State != field.Unfinished {
		s.DrawTextColored(0, field.Height, f.State.String()+"  [enter]", core.ColorBrightYellow)
	} else {
		s.DrawTextColored(0, field.Height, "w/s move · space throw · F1 help · F5 save · esc menu", core.ColorGray)
	}
}

// drawPanel fills the walled-off info columns on the right of the board.
func (p *PlayScene) drawPanel(s *core.Screen) {
	f := p.game.Field
	x := (field.Width - field.InfoWidth) * cellW

	s.DrawTextColored(x, 1, " LEVEL", core.ColorBrightWhite)
	s.DrawText(x, 2, fmt.Sprintf(" %4d", p.levelNum))
	s.DrawTextColored(x, 4, " THROWS", core.ColorBrightWhite)
	s.DrawText(x, 5, fmt.Sprintf(" %4d", f.Throws))
	s.DrawTextColored(x, 7, " BEST", core.ColorBrightWhite)
	if p.hiscore > 0 {
		s.DrawText(x, 8, fmt.Sprintf(" %4d", p.hiscore))
	} else {
		s.DrawText(x, 8, "    -")
	}

	if p.game.Replay.IsRecording() {
		mark := " REC"
		if p.saved {
			mark = " REC*"
		}
		s.DrawTextColored(x, 10, mark, core.ColorBrightRed)
	}
}
