package field

import (
	"github.com/rionnag/unblocked/internal/core"
	"github.com/rionnag/unblocked/internal/level"
)

// Field is one level in play: the static wall mask, the brick set, and the
// player brick with its throw state machine. The wall mask never changes
// during play; only the brick set mutates.
type Field struct {
	walls  [Height * Width]bool
	bricks []Brick

	player    Brick
	playerRow int  // home row recorded at throw time
	goingBack bool // the player brick is flying back after a throw

	levels *level.Set

	Level  int       // current level number inside the set
	Throws int       // throws made on this level so far
	State  GameState // recomputed after every resolved throw

	// Aiming lookahead for the player's current row, recomputed whenever
	// the player can act: where the brick would first stop, and the kind
	// of the first brick it would meet.
	ArrowX, ArrowY int
	ArrowDown      bool
	FirstKind      level.Kind
}

// New creates a field over a loaded level set. Call Load before use.
func New(levels *level.Set) *Field {
	return &Field{
		levels:    levels,
		player:    NewBrick(Width-InfoWidth-1, Height-2, level.KindJoker),
		playerRow: Height - 2,
	}
}

func idx(x, y int) int {
	return y*Width + x
}

// WallAt reports whether the cell holds a wall.
func (f *Field) WallAt(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return true
	}
	return f.walls[idx(x, y)]
}

// Player returns a copy of the player brick.
func (f *Field) Player() Brick {
	return f.player
}

// Bricks returns the live brick set for rendering. Callers must not mutate.
func (f *Field) Bricks() []Brick {
	return f.bricks
}

// BrickCount returns the number of bricks left on the board.
func (f *Field) BrickCount() int {
	return len(f.bricks)
}

// LevelCount returns the number of levels in the loaded set.
func (f *Field) LevelCount() int {
	return f.levels.Count()
}

// Load resets the field for the given level: border walls, info-panel
// walls, the default diagonal corner (when the level supplies none) or the
// explicit corner pattern, then the initial bricks bottom-aligned so the
// lowest row rests directly above the floor. Panics on an out-of-range
// level number.
func (f *Field) Load(n int) {
	lvl := f.levels.Level(n)

	f.Level = n
	f.State = Unfinished
	f.Throws = 0
	f.goingBack = false
	f.walls = [Height * Width]bool{}

	for i := 0; i < Width; i++ {
		f.walls[idx(i, 0)] = true
		f.walls[idx(i, Height-1)] = true
	}
	for i := 1; i < Height-1; i++ {
		f.walls[idx(0, i)] = true
		for p := 0; p < InfoWidth; p++ {
			f.walls[idx(Width-p-1, i)] = true
		}
	}

	f.player = NewBrick(Width-InfoWidth-1, Height-2, lvl.Start)
	f.playerRow = f.player.Y

	if len(lvl.Corner) == 0 {
		for i := 1; i <= level.MaxPuzzle; i++ {
			for j := 1; j <= level.MaxPuzzle-i; j++ {
				f.walls[idx(j, i)] = true
			}
		}
	} else {
		y := 1
		for _, lineLen := range lvl.Corner {
			for x := 1; x <= lineLen; x++ {
				f.walls[idx(x, y)] = true
			}
			y++
		}
	}

	f.bricks = f.bricks[:0]
	cnt := len(lvl.Rows)
	for yi, row := range lvl.Rows {
		for xi, k := range row {
			if k == level.KindNone {
				continue
			}
			f.bricks = append(f.bricks, NewBrick(xi+1, Height-cnt+yi-1, k))
		}
	}

	f.recalcTarget()
}

// IsInteractive reports whether user input is processed: it is not while
// the player brick flies back or after the game is over.
func (f *Field) IsInteractive() bool {
	return !f.goingBack && f.State == Unfinished
}

// Update advances the simulation by one tick: all moving bricks integrate
// their motion, then the player's arrival (if its motion completed this
// tick) is resolved.
func (f *Field) Update() {
	for i := range f.bricks {
		f.bricks[i].Update()
	}
	f.updatePlayer()
}

// updatePlayer resolves the throw state machine. Resolution happens only on
// the tick the player brick's velocity transitions nonzero to zero.
func (f *Field) updatePlayer() {
	moved := f.player.IsMoving()
	movedDown := f.player.IsMovingDown()
	f.player.Update()
	stopped := moved && !f.player.IsMoving()
	if !stopped {
		return
	}

	// The brick returned home: the throw is fully resolved.
	if f.goingBack {
		f.goingBack = false
		f.recalcTarget()
		f.State = f.CalcState()
		return
	}

	if movedDown {
		f.resolveVertical()
	} else {
		f.resolveHorizontal()
	}
}

// resolveVertical handles the player brick stopping after a downward move.
func (f *Field) resolveVertical() {
	// hit the floor
	if f.player.Y == Height-2 {
		f.player.Stop()
		f.goBack()
		return
	}

	x, y := f.player.X, f.player.Y
	exists, matched, newKind := f.probe(x, y+1)

	if exists && !matched {
		// A brick of a different kind: swallow it and carry its kind home.
		f.player.Kind = newKind
		f.annihilate(x, y+1)
		f.player.Stop()
		f.goBack()
		return
	}

	// Empty below, or an annihilated match: keep falling.
	f.player.Kind = newKind
	f.player.Fall(ThrowSpeed)
	if exists {
		f.annihilate(x, y+1)
	}
}

// resolveHorizontal handles the player brick stopping after a leftward move.
func (f *Field) resolveHorizontal() {
	x, y := f.player.X, f.player.Y

	dx, dy := -1, 0
	if f.WallAt(x-1, y) {
		// The wall redirects the throw into a fall.
		dx, dy = 0, 1
	}

	tx, ty := x+dx, y+dy
	exists, matched, newKind := f.probe(tx, ty)

	if !exists && dx != 0 {
		// The common slide-left case: keep moving toward the target.
		f.player.StartMoving(core.V(-ThrowSpeed, 0), core.V(float64(tx)*CellSize, float64(y)*CellSize))
		return
	}

	if matched {
		f.player.Kind = newKind
		f.annihilate(tx, ty)
		if dx != 0 {
			// Annihilated in the row: advance one more cell.
			f.player.StartMoving(core.V(-ThrowSpeed, 0), core.V(float64(tx)*CellSize, float64(y)*CellSize))
			return
		}
		if f.player.Y == Height-2 {
			f.player.Stop()
			f.goBack()
			return
		}
		f.player.Fall(ThrowSpeed)
		return
	}
	if exists {
		f.player.Stop()
		f.player.Kind = newKind
		f.annihilate(tx, ty)
		f.goBack()
		return
	}

	// Wall below and nothing to hit: floor stops the brick, otherwise fall.
	if f.player.Y == Height-2 {
		f.player.Stop()
		f.goBack()
		return
	}
	f.player.Fall(ThrowSpeed)
}

// probe inspects the cell for a brick: whether one is there, whether it
// matches the player's kind (Joker matches everything), and the kind the
// player would carry afterwards.
func (f *Field) probe(x, y int) (exists, matched bool, newKind level.Kind) {
	newKind = f.player.Kind
	for _, b := range f.bricks {
		if b.X != x || b.Y != y {
			continue
		}
		exists = true
		if b.Kind == newKind || newKind == level.KindJoker {
			matched = true
		}
		newKind = b.Kind
	}
	return exists, matched, newKind
}

// annihilate removes the brick at (x, y) and starts a one-cell fall for
// every brick in the same column with a strictly smaller row index. The
// removal set and the fall set are computed against the same snapshot, so
// a brick never falls twice for one removal.
func (f *Field) annihilate(x, y int) {
	keep := f.bricks[:0]
	for _, b := range f.bricks {
		if b.X == x && b.Y == y {
			continue
		}
		keep = append(keep, b)
	}
	f.bricks = keep
	for i := range f.bricks {
		if f.bricks[i].X == x && f.bricks[i].Y < y {
			f.bricks[i].Fall(CascadeFallSpeed)
		}
	}
}

// goBack starts the player brick's straight-line return to its pre-throw
// position; the vertical speed is chosen so both axes arrive together.
func (f *Field) goBack() {
	f.goingBack = true
	xlimit := float64(Width-InfoWidth-1) * CellSize
	ylimit := float64(f.playerRow) * CellSize
	xn := (xlimit - f.player.Pos.X) / ThrowSpeed
	dy := (ylimit - f.player.Pos.Y) / xn
	f.player.StartMoving(core.V(ThrowSpeed, dy), core.V(xlimit, ylimit))
}

// CanThrow reports whether a throw is currently legal: the player brick is
// stationary, the game is unfinished, and the first brick in its path
// matches its kind (or the player holds the Joker).
func (f *Field) CanThrow() bool {
	return !f.player.IsMoving() &&
		f.State == Unfinished &&
		f.FirstKind != level.KindNone &&
		(f.player.Kind == level.KindJoker || f.player.Kind == f.FirstKind)
}

// ThrowBrick launches the player brick leftward toward the cell one past
// the furthest brick in its row, or one past the furthest wall cell when
// the row holds no bricks. A no-op when the throw is not legal.
func (f *Field) ThrowBrick() {
	if !f.CanThrow() {
		return
	}
	f.Throws++
	f.playerRow = f.player.Y

	x := 0
	for _, b := range f.bricks {
		if b.Y == f.player.Y && b.X > x {
			x = b.X
		}
	}
	if x == 0 {
		for i := 0; i < level.MaxPuzzle+4; i++ {
			if f.WallAt(i, f.player.Y) {
				x = i
			}
		}
	}
	x++
	f.player.StartMoving(core.V(-ThrowSpeed, 0), core.V(float64(x)*CellSize, float64(f.player.Y)*CellSize))
}

// PlayerUp moves the stationary player brick one row up.
func (f *Field) PlayerUp() {
	f.movePlayerRow(-1)
}

// PlayerDown moves the stationary player brick one row down.
func (f *Field) PlayerDown() {
	f.movePlayerRow(1)
}

// movePlayerRow shifts the player by delta rows, clamped to the rows
// inside the border walls.
func (f *Field) movePlayerRow(delta int) {
	if f.player.IsMoving() {
		return
	}
	f.player.Y = core.Clamp(f.player.Y+delta, 1, Height-2)
	f.player.Pos = core.V(float64(f.player.X)*CellSize, float64(f.player.Y)*CellSize)
	f.recalcTarget()
}

// target determines, for a throw from the given row, whether the next
// obstacle is reached by falling (the row is empty) or horizontally (a
// brick blocks the row), the cell where the brick would stop, and the kind
// of the first brick it would encounter. A lookahead that finds no open
// cell where one is structurally guaranteed is a programming-logic failure
// and panics.
func (f *Field) target(row int) (down bool, bx, by int, first level.Kind) {
	first = level.KindNone
	by = row

	down = row < Height-1-level.MaxPuzzle
	if !down {
		down = true
		for _, b := range f.bricks {
			if b.Y == row {
				down = false
				break
			}
		}
	}

	if down {
		if row >= Height-1-level.MaxPuzzle {
			bx = 1
		} else {
			n := 0
			for i := 0; i < level.MaxPuzzle+4; i++ {
				if !f.WallAt(i, row) {
					n = i
					break
				}
			}
			if n == 0 {
				panic("field: target lookahead found no open cell")
			}
			bx = n
		}
		by = Height - 1
		for _, b := range f.bricks {
			if b.X == bx && b.Y >= row && b.Y < by {
				by = b.Y
				first = b.Kind
			}
		}
		by--
	} else {
		bx = 0
		for _, b := range f.bricks {
			if b.Y == row && b.X > bx {
				bx = b.X
			}
		}
		bx++
		for _, b := range f.bricks {
			if b.Y == row && b.X == bx-1 {
				first = b.Kind
			}
		}
	}
	return down, bx, by, first
}

// recalcTarget refreshes the aiming lookahead for the player's row.
func (f *Field) recalcTarget() {
	down, x, y, kind := f.target(f.player.Y)
	if down {
		f.ArrowX = x
	} else {
		f.ArrowX = x + 1
	}
	f.ArrowY = y
	f.ArrowDown = down
	f.FirstKind = kind
}

// CalcState computes the terminal state of the board: Completed or Winner
// when the brick set is empty (depending on whether more levels remain),
// Unfinished while the player holds the Joker or any row's first brick
// matches the player's kind, Looser otherwise.
func (f *Field) CalcState() GameState {
	if len(f.bricks) == 0 {
		if f.Level+1 >= f.levels.Count() {
			return Completed
		}
		return Winner
	}
	if f.player.Kind == level.KindJoker {
		return Unfinished
	}

	for y := 1; y < Height-1; y++ {
		_, _, _, kind := f.target(y)
		if kind == f.player.Kind {
			return Unfinished
		}
	}
	return Looser
}
