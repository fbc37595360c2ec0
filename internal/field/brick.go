// Package field implements the puzzle simulation: the static wall grid,
// the brick set, per-tick motion integration, and the state machine that
// resolves a throw into moves, merges, cascade falls, and a terminal state.
package field

import (
	"github.com/rionnag/unblocked/internal/core"
	"github.com/rionnag/unblocked/internal/level"
)

// Board geometry, in cells. The info panel occupies the rightmost columns
// and is walled off from the play area.
const (
	Width     = 21
	Height    = 16
	InfoWidth = 5
)

// CellSize is the width and height of one cell in screen points. Continuous
// brick positions are measured in points; grid positions in whole cells.
const CellSize = 48.0

// Motion speeds in points per tick.
const (
	ThrowSpeed       = 48.0 // player brick during a throw and the return flight
	CascadeFallSpeed = 16.0 // bricks dropped by an annihilation below them
)

// moveEpsilon guards the moving/stationary distinction against float
// rounding. A brick is moving iff a velocity component exceeds it.
const moveEpsilon = 0.1

// Brick is a single tile. It is either stationary (X, Y authoritative,
// velocity zero) or moving (velocity nonzero, X, Y stale until the motion
// completes and the grid position is rederived from the continuous one).
type Brick struct {
	X, Y  int        // position in whole cells, valid only when stationary
	Pos   core.Vec2  // exact position in points
	Kind  level.Kind // what the brick matches as
	Vel   core.Vec2  // points per tick
	Limit core.Vec2  // motion stops when Pos reaches this
}

// NewBrick creates a stationary brick at the given cell.
func NewBrick(x, y int, kind level.Kind) Brick {
	return Brick{
		X:    x,
		Y:    y,
		Kind: kind,
		Pos:  core.V(float64(x)*CellSize, float64(y)*CellSize),
	}
}

// StartMoving launches the brick toward limit with the given velocity.
func (b *Brick) StartMoving(vel, limit core.Vec2) {
	b.Vel = vel
	b.Limit = limit
}

// Fall starts a one-cell downward fall at the given speed. If the brick is
// already falling, the existing limit is extended by one more cell instead,
// so cascading falls coalesce into one continuous motion.
func (b *Brick) Fall(speed float64) {
	if !b.IsMoving() {
		b.Vel = core.V(0, speed)
		b.Limit = core.V(b.Pos.X, b.Pos.Y+CellSize)
	} else {
		b.Limit.Y += CellSize
	}
}

// IsMoving reports whether the brick is in motion.
func (b *Brick) IsMoving() bool {
	return core.AbsF(b.Vel.X) > moveEpsilon || core.AbsF(b.Vel.Y) > moveEpsilon
}

// IsMovingDown reports whether the brick has a vertical velocity component.
func (b *Brick) IsMovingDown() bool {
	return core.AbsF(b.Vel.Y) > moveEpsilon
}

// Stop halts the brick immediately and rederives its grid position from the
// continuous one.
func (b *Brick) Stop() {
	b.Vel = core.Vec2{}
	b.X = int(b.Pos.X / CellSize)
	b.Y = int(b.Pos.Y / CellSize)
}

// Update advances the brick by its velocity for one tick. The position is
// clamped to the limit in the direction of travel, never overshooting
// visibly; on arrival the position snaps to the limit, the grid position is
// rederived by rounding, and the velocity drops to zero.
func (b *Brick) Update() {
	if !b.IsMoving() {
		return
	}

	b.Pos = b.Pos.Add(b.Vel)

	if (b.Pos.X > b.Limit.X && b.Vel.X > 0) || (b.Pos.X < b.Limit.X && b.Vel.X < 0) {
		b.Pos.X = b.Limit.X
	}
	if (b.Pos.Y > b.Limit.Y && b.Vel.Y > 0) || (b.Pos.Y < b.Limit.Y && b.Vel.Y < 0) {
		b.Pos.Y = b.Limit.Y
	}

	if core.AbsF(b.Pos.X-b.Limit.X) < moveEpsilon && core.AbsF(b.Pos.Y-b.Limit.Y) < moveEpsilon {
		b.X = int(b.Pos.X/CellSize + 0.5)
		b.Y = int(b.Pos.Y/CellSize + 0.5)
		b.Vel = core.Vec2{}
	}
}
