package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/rionnag/unblocked/internal/config"
	"github.com/rionnag/unblocked/internal/core"
	"github.com/rionnag/unblocked/internal/field"
	"github.com/rionnag/unblocked/internal/level"
)

// stubScene counts lifecycle calls and returns canned transitions.
type stubScene struct {
	entered int
	ticked  int
	onKey   Transition
	onTick  Transition
}

func (s *stubScene) Enter()                        { s.entered++ }
func (s *stubScene) HandleKey(tea.KeyMsg) Transition { return s.onKey }
func (s *stubScene) Tick() Transition              { s.ticked++; return s.onTick }
func (s *stubScene) Render(scr *core.Screen)       { scr.DrawText(0, 0, "stub") }

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 60}
}

func TestStackPushPopReentersScenes(t *testing.T) {
	top := &stubScene{}
	root := &stubScene{onKey: Transition{Kind: TransPush, Next: top}}
	m := NewModel(root, testRuntime())

	if root.entered != 1 {
		t.Fatalf("root entered %d times, want 1", root.entered)
	}

	// Key on the root pushes the second scene and enters it.
	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)
	if top.entered != 1 {
		t.Fatalf("pushed scene entered %d times, want 1", top.entered)
	}

	// Ticks go to the top scene only.
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if top.ticked != 1 || root.ticked != 0 {
		t.Errorf("tick went to the wrong scene: top %d, root %d", top.ticked, root.ticked)
	}

	// Popping re-enters the scene below.
	top.onKey = Transition{Kind: TransPop}
	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)
	if root.entered != 2 {
		t.Errorf("root entered %d times after pop, want 2", root.entered)
	}
	if m.top() != Scene(root) {
		t.Error("root scene is not on top after pop")
	}
}

func TestPoppingLastSceneQuits(t *testing.T) {
	root := &stubScene{onKey: Transition{Kind: TransPop}}
	m := NewModel(root, testRuntime())

	next, cmd := m.Update(keyMsg("esc"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func testGame(t *testing.T) *Game {
	t.Helper()
	set, err := level.ParseString("# a\nstart:S\nSS\nSS\n# b\nstart:S\nSS\nSS\n")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Paths.Replays = t.TempDir()
	return NewGame(cfg, log.New(io.Discard), set, nil)
}

func TestMenuSelectPushesPlayScene(t *testing.T) {
	g := testGame(t)
	menu := NewMenuScene(g)
	menu.Enter()

	tr := menu.HandleKey(keyMsg("enter"))
	if tr.Kind != TransPush {
		t.Fatalf("transition kind = %v, want push", tr.Kind)
	}
	if _, ok := tr.Next.(*PlayScene); !ok {
		t.Fatalf("pushed scene is %T, want *PlayScene", tr.Next)
	}
}

func TestMenuDemoPushesDemoScene(t *testing.T) {
	g := testGame(t)
	menu := NewMenuScene(g)
	menu.Enter()

	tr := menu.HandleKey(keyMsg("d"))
	if tr.Kind != TransPush {
		t.Fatalf("transition kind = %v, want push", tr.Kind)
	}
	if _, ok := tr.Next.(*DemoScene); !ok {
		t.Fatalf("pushed scene is %T, want *DemoScene", tr.Next)
	}
	if !g.Replay.IsLoaded() {
		t.Error("demo replay not loaded")
	}
}

func TestPlaySceneRecordsActions(t *testing.T) {
	g := testGame(t)
	play := NewPlayScene(g, 1)
	play.Enter()

	if !g.Replay.IsRecording() {
		t.Fatal("entering a level should start recording")
	}

	play.HandleKey(keyMsg("w"))
	play.HandleKey(keyMsg("space"))
	if g.Replay.Count() != 0 {
		t.Fatalf("recorded %d moves before the tick, want 0", g.Replay.Count())
	}

	play.Tick()
	if g.Replay.Count() != 2 {
		t.Errorf("recorded %d moves, want 2", g.Replay.Count())
	}
}

func TestPlaySceneDropsInputWhileResolving(t *testing.T) {
	g := testGame(t)
	play := NewPlayScene(g, 1)
	play.Enter()

	play.HandleKey(keyMsg("space"))
	play.Tick()
	if g.Replay.Count() != 1 {
		t.Fatalf("recorded %d moves after the throw, want 1", g.Replay.Count())
	}

	// The thrown brick is still in flight, so the next frame is refused.
	play.HandleKey(keyMsg("w"))
	play.Tick()
	if g.Replay.Count() != 1 {
		t.Errorf("recorded %d moves, want 1: a move landed mid-flight", g.Replay.Count())
	}
}

func TestMenuRenderDrawsFrame(t *testing.T) {
	g := testGame(t)
	menu := NewMenuScene(g)
	menu.Enter()

	s := core.NewScreen(60, 20)
	menu.Render(s)
	if s.Get(0, 0) != '┌' || s.Get(59, 0) != '┐' || s.Get(0, 19) != '└' || s.Get(59, 19) != '┘' {
		t.Errorf("menu frame corners missing:\n%s", s.String())
	}
}

func TestDemoSceneFinishesAfterReplay(t *testing.T) {
	g := testGame(t)
	if err := g.Replay.Load(0); err != nil {
		t.Fatal(err)
	}
	demo := NewDemoScene(g, 0)
	demo.Enter()

	for i := 0; i < 2000 && !demo.finished; i++ {
		demo.Tick()
	}
	if !demo.finished {
		t.Fatal("demo never finished")
	}
	if g.Field.State != field.Winner {
		t.Errorf("field state = %v after the demo, want %v", g.Field.State, field.Winner)
	}
}
