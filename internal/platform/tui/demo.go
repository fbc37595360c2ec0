package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rionnag/unblocked/internal/core"
	"github.com/rionnag/unblocked/internal/field"
)

// DemoScene plays a loaded replay against the level. Nothing is scored
// here; when the recording runs out the level is shown as solved so the
// viewer always leaves on a clean board state.
type DemoScene struct {
	game     *Game
	km       *KeyMapper
	frame    core.InputFrame
	levelNum int
	tick     uint64
	finished bool
}

// NewDemoScene creates the playback scene. The replay engine must already
// hold the moves for the level.
func NewDemoScene(g *Game, levelNum int) *DemoScene {
	return &DemoScene{game: g, km: NewKeyMapper(), frame: core.NewInputFrame(), levelNum: levelNum}
}

// Enter restarts playback from the first move.
func (d *DemoScene) Enter() {
	d.game.Field.Load(d.levelNum)
	d.game.Replay.StartReplaying(0)
	d.frame.Clear()
	d.tick = 0
	d.finished = false
}

// HandleKey leaves the demo on any navigation key.
func (d *DemoScene) HandleKey(msg tea.KeyMsg) Transition {
	act, isQuit := d.km.MapKey(msg)
	if isQuit {
		return Transition{Kind: TransQuit}
	}
	switch act {
	case core.ActionBack, core.ActionConfirm:
		return Transition{Kind: TransPop}
	}
	return Transition{}
}

// Tick drains every due replay action into an input frame and applies it
// the same way live play does, so playback cannot drift from the board
// the recording produced.
func (d *DemoScene) Tick() Transition {
	d.tick++
	f := d.game.Field

	for {
		act, ok := d.game.Replay.Next(d.tick)
		if !ok {
			break
		}
		d.frame.Set(act)
	}
	applyFrame(f, d.frame)
	d.frame.Clear()

	f.Update()

	player := f.Player()
	if !d.finished && !d.game.Replay.IsReplaying() && !player.IsMoving() {
		// Recording exhausted and the board is at rest: call it solved.
		d.finished = true
		f.State = field.Winner
	}
	return Transition{}
}

// Render draws the board with a playback bar instead of the info panel
// numbers.
func (d *DemoScene) Render(s *core.Screen) {
	f := d.game.Field
	drawField(s, f, 0, 0)

	x := (field.Width - field.InfoWidth) * cellW
	s.DrawTextColored(x, 1, " DEMO", core.ColorBrightCyan)
	s.DrawText(x, 3, progressBar(d.game.Replay.Percent(), field.InfoWidth*cellW-2))

	if d.finished {
		s.DrawTextColored(0, field.Height, "demo finished  [enter]", core.ColorBrightYellow)
	} else {
		s.DrawTextColored(0, field.Height, "watching replay · esc to stop", core.ColorGray)
	}
}

// progressBar renders playback progress as a fixed-width bar.
func progressBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}
	filled := core.Clamp(int(percent*float64(width)+0.5), 0, width)
	return " " + strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
