// Package replay records the player's actions during a level and plays
// them back tick-accurately. Recordings are stored one file per level; the
// first level ships with a built-in demonstration instead.
package replay

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/rionnag/unblocked/internal/core"
)

// MaxDelay is the longest pause, in ticks, kept between two recorded
// actions. Longer gaps (including the lead-in before the first action) are
// squeezed down on save so playback never sits idle.
const MaxDelay uint64 = 180

// Move is one recorded action at an absolute tick since recording started.
type Move struct {
	Tick uint64
	Act  core.Action
}

// State tracks what the engine is currently doing.
type State uint8

const (
	Idle State = iota
	Recording
	Replaying
)

// Engine is the recorder and player. It is driven by the same tick counter
// as the simulation, so a recording replayed against the same level
// reproduces the run exactly.
type Engine struct {
	logger *log.Logger
	dir    string

	state State
	moves []Move
	next  int
	base  uint64
}

// NewEngine creates an idle engine storing recordings under dir.
func NewEngine(dir string, logger *log.Logger) *Engine {
	return &Engine{logger: logger, dir: dir}
}

// Path returns the recording file for a level.
func (e *Engine) Path(levelNum int) string {
	return filepath.Join(e.dir, fmt.Sprintf("level-%04d.rpl", levelNum))
}

// StartRecording discards any previous moves and begins a new recording.
func (e *Engine) StartRecording() {
	e.state = Recording
	e.moves = e.moves[:0]
	e.next = 0
}

// Record appends an action at the given tick. Ignored unless recording.
func (e *Engine) Record(tick uint64, act core.Action) {
	if e.state != Recording {
		return
	}
	e.moves = append(e.moves, Move{Tick: tick, Act: act})
}

// Reset drops the current moves and returns the engine to idle.
func (e *Engine) Reset() {
	e.state = Idle
	e.moves = e.moves[:0]
	e.next = 0
}

// Save normalizes the recorded gaps and writes the recording as the
// level's replay file, creating the directory if needed. The engine keeps
// recording state untouched; saving mid-run is allowed.
func (e *Engine) Save(levelNum int) error {
	normalized := normalize(e.moves)

	var buf bytes.Buffer
	if err := encode(&buf, normalized); err != nil {
		return fmt.Errorf("encode replay: %w", err)
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create replay dir: %w", err)
	}
	path := e.Path(levelNum)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write replay: %w", err)
	}
	e.logger.Info("replay saved", "level", levelNum, "moves", len(normalized), "path", path)
	return nil
}

// normalize rewrites ticks so no gap between consecutive actions (nor the
// lead-in before the first) exceeds MaxDelay. Relative order and sub-limit
// gaps are preserved exactly.
func normalize(moves []Move) []Move {
	out := make([]Move, len(moves))
	var prev, shift uint64
	for i, m := range moves {
		t := m.Tick - shift
		if gap := t - prev; gap > MaxDelay {
			shift += gap - MaxDelay
			t = prev + MaxDelay
		}
		out[i] = Move{Tick: t, Act: m.Act}
		prev = t
	}
	return out
}

// Load reads the level's replay into the engine, replacing any current
// moves. The first level always loads the built-in demonstration. A file
// that cannot be read or decoded is rejected with a warning; the engine is
// left empty but usable.
func (e *Engine) Load(levelNum int) error {
	e.state = Idle
	e.moves = e.moves[:0]
	e.next = 0

	if levelNum == 0 {
		e.moves = append(e.moves, demoMoves...)
		return nil
	}

	path := e.Path(levelNum)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read replay: %w", err)
	}
	moves, err := decode(bytes.NewReader(data))
	if err != nil {
		e.logger.Warn("replay rejected", "level", levelNum, "path", path, "err", err)
		return fmt.Errorf("decode replay: %w", err)
	}
	// Files written by Save are already normalized; doing it again here
	// keeps the lead-in bound for recordings from older builds too.
	e.moves = normalize(moves)
	return nil
}

// StartReplaying begins playback relative to the given tick. A no-op when
// nothing is loaded.
func (e *Engine) StartReplaying(tick uint64) {
	if len(e.moves) == 0 {
		return
	}
	e.state = Replaying
	e.next = 0
	e.base = tick
}

// Next returns the next action once its tick is due. Callers drain it in a
// loop each tick; it reports false when no further action is due yet.
// Playback ends (the engine goes idle) after the last action is returned.
func (e *Engine) Next(tick uint64) (core.Action, bool) {
	if e.state != Replaying {
		return core.ActionNone, false
	}
	if e.moves[e.next].Tick > tick-e.base {
		return core.ActionNone, false
	}
	act := e.moves[e.next].Act
	e.next++
	if e.next >= len(e.moves) {
		e.state = Idle
	}
	return act, true
}

// IsReplaying reports whether playback is in progress.
func (e *Engine) IsReplaying() bool {
	return e.state == Replaying
}

// IsRecording reports whether a recording is in progress.
func (e *Engine) IsRecording() bool {
	return e.state == Recording
}

// IsLoaded reports whether any moves are held.
func (e *Engine) IsLoaded() bool {
	return len(e.moves) > 0
}

// Count returns the number of held moves.
func (e *Engine) Count() int {
	return len(e.moves)
}

// Percent returns playback progress in [0, 1].
func (e *Engine) Percent() float64 {
	if len(e.moves) == 0 {
		return 0
	}
	p := float64(e.next) / float64(len(e.moves))
	if p > 1 {
		p = 1
	}
	return p
}
