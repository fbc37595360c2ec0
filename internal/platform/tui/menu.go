package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rionnag/unblocked/internal/core"
	"github.com/rionnag/unblocked/internal/storage"
)

// menu cursor jump for left/right
const menuFastStep = 10

// MenuScene is the level-select screen. The cursor walks the unlocked
// levels; the stats for the highlighted level are shown below it.
type MenuScene struct {
	game  *Game
	km    *KeyMapper
	score storage.LevelScore
}

// NewMenuScene creates the menu over the shared game context.
func NewMenuScene(g *Game) *MenuScene {
	return &MenuScene{game: g, km: NewKeyMapper()}
}

// Enter refreshes the stats for the highlighted level; progress may have
// changed while a level was being played.
func (m *MenuScene) Enter() {
	m.refreshScore()
}

func (m *MenuScene) refreshScore() {
	m.score = storage.LevelScore{Level: m.game.Progress.Curr}
	if m.game.Store == nil {
		return
	}
	if score, err := m.game.Store.Score(m.game.Progress.Curr); err == nil {
		m.score = score
	}
}

// HandleKey processes menu navigation.
func (m *MenuScene) HandleKey(msg tea.KeyMsg) Transition {
	switch m.km.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		return Transition{Kind: TransQuit}

	case MenuActionUp:
		m.game.Progress.Inc(1)
		m.refreshScore()
	case MenuActionDown:
		m.game.Progress.Dec(1)
		m.refreshScore()
	case MenuActionUpFast:
		m.game.Progress.Inc(menuFastStep)
		m.refreshScore()
	case MenuActionDownFast:
		m.game.Progress.Dec(menuFastStep)
		m.refreshScore()

	case MenuActionSelect:
		return Transition{Kind: TransPush, Next: NewPlayScene(m.game, m.game.Progress.Curr)}

	case MenuActionDemo:
		if err := m.game.Replay.Load(0); err != nil {
			return Transition{}
		}
		return Transition{Kind: TransPush, Next: NewDemoScene(m.game, 0)}
	}
	return Transition{}
}

// Tick is a no-op; the menu is static between key presses.
func (m *MenuScene) Tick() Transition {
	return Transition{}
}

// Render draws a framed menu: the title, the level cursor, and the
// highlighted level's record.
func (m *MenuScene) Render(s *core.Screen) {
	p := m.game.Progress

	s.DrawBox(0, 0, s.Width(), s.Height())
	s.DrawTextCentered(2, "U N B L O C K E D")
	s.DrawTextCentered(4, fmt.Sprintf("Level %d of %d unlocked", p.Curr, p.Max))

	y := 7
	if m.score.Attempts == 0 {
		s.DrawTextCentered(y, "not played yet")
	} else {
		s.DrawTextCentered(y, fmt.Sprintf("attempts %d   wins %d", m.score.Attempts, m.score.Wins))
		if m.score.Wins > 0 {
			best := fmt.Sprintf("best %d throws", m.score.Hiscore)
			if !m.score.FirstWin.IsZero() {
				best += "   first win " + m.score.FirstWin.Format("Jan 02 2006")
			}
			s.DrawTextCentered(y+1, best)
		}
		if m.score.HelpUsed {
			s.DrawTextCentered(y+2, "solved with help")
		}
	}

	s.DrawTextCentered(s.Height()-3, "w/s select level · left/right jump · enter play")
	s.DrawTextCentered(s.Height()-2, "d demo · q quit")
}
