package field

import (
	"testing"

	"github.com/rionnag/unblocked/internal/level"
)

func testField(t *testing.T, src string) *Field {
	t.Helper()
	set, err := level.ParseString(src)
	if err != nil {
		t.Fatalf("parse levels: %v", err)
	}
	f := New(set)
	f.Load(0)
	return f
}

// settle runs the simulation until nothing moves anymore. The throw may
// end the game, so this cannot wait on IsInteractive.
func settle(t *testing.T, f *Field) {
	t.Helper()
	for i := 0; i < 500; i++ {
		f.Update()
		if f.goingBack || f.player.IsMoving() {
			continue
		}
		moving := false
		for _, b := range f.bricks {
			if b.IsMoving() {
				moving = true
				break
			}
		}
		if !moving {
			return
		}
	}
	t.Fatal("field did not settle within 500 ticks")
}

func TestLoadLayout(t *testing.T) {
	f := testField(t, "# test\nstart:S\nSS\nSS\n")

	// border and info panel walls
	if !f.WallAt(0, 5) || !f.WallAt(5, 0) || !f.WallAt(5, Height-1) {
		t.Error("border walls missing")
	}
	for p := 0; p < InfoWidth; p++ {
		if !f.WallAt(Width-p-1, 5) {
			t.Errorf("info panel wall missing at column %d", Width-p-1)
		}
	}

	// default diagonal corner
	if !f.WallAt(1, 1) || !f.WallAt(level.MaxPuzzle-1, 1) || !f.WallAt(1, level.MaxPuzzle-1) {
		t.Error("default corner walls missing")
	}
	if f.WallAt(level.MaxPuzzle, 1) {
		t.Error("corner extends past the diagonal")
	}

	// bricks bottom-aligned directly above the floor
	if f.BrickCount() != 4 {
		t.Fatalf("brick count = %d, want 4", f.BrickCount())
	}
	for _, b := range f.Bricks() {
		if b.Y != Height-2 && b.Y != Height-3 {
			t.Errorf("brick at row %d, want %d or %d", b.Y, Height-3, Height-2)
		}
		if b.X != 1 && b.X != 2 {
			t.Errorf("brick at column %d, want 1 or 2", b.X)
		}
	}

	p := f.Player()
	if p.X != Width-InfoWidth-1 || p.Y != Height-2 {
		t.Errorf("player at (%d,%d), want (%d,%d)", p.X, p.Y, Width-InfoWidth-1, Height-2)
	}
	if p.Kind != level.K1 {
		t.Errorf("player kind = %v, want %v", p.Kind, level.K1)
	}
	if f.State != Unfinished || f.Throws != 0 {
		t.Errorf("state = %v throws = %d after load", f.State, f.Throws)
	}
}

func TestExplicitCorner(t *testing.T) {
	f := testField(t, "# test\nstart:S\n*****\n**\n\nSS\nSS\n")

	if !f.WallAt(5, 1) || !f.WallAt(2, 2) {
		t.Error("explicit corner walls missing")
	}
	if f.WallAt(3, 2) || f.WallAt(1, 3) {
		t.Error("walls outside the explicit corner pattern")
	}
}

func TestCanThrow(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"matching first kind", "# t\nstart:S\nXX\nXS\n", true},
		{"mismatching first kind", "# t\nstart:X\nSS\nSS\n", false},
		{"joker matches anything", "# t\nstart:?\nSS\nSS\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testField(t, tt.src)
			if got := f.CanThrow(); got != tt.want {
				t.Errorf("CanThrow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestThrowMatchChainsThroughRow(t *testing.T) {
	f := testField(t, "# test\nstart:S\nSS\nSS\n")

	f.ThrowBrick()
	if f.Throws != 1 {
		t.Fatalf("throws = %d, want 1", f.Throws)
	}
	settle(t, f)

	// Both bottom-row bricks match and are annihilated in one throw; the
	// top row falls into their place.
	if f.BrickCount() != 2 {
		t.Fatalf("brick count = %d, want 2", f.BrickCount())
	}
	for _, b := range f.Bricks() {
		if b.Y != Height-2 {
			t.Errorf("surviving brick at row %d, want %d", b.Y, Height-2)
		}
	}
	p := f.Player()
	if p.X != Width-InfoWidth-1 || p.Y != Height-2 {
		t.Errorf("player did not return home, at (%d,%d)", p.X, p.Y)
	}
	if f.State != Unfinished {
		t.Errorf("state = %v, want %v", f.State, Unfinished)
	}
}

func TestThrowMismatchAdoptsKindAndStops(t *testing.T) {
	f := testField(t, "# test\nstart:S\nSS\nXS\n")

	f.ThrowBrick()
	settle(t, f)

	// The rightmost S matches and is annihilated; the X behind it is a
	// mismatch: it is swallowed and its kind carried home.
	if f.BrickCount() != 2 {
		t.Fatalf("brick count = %d, want 2", f.BrickCount())
	}
	if got := f.Player().Kind; got != level.K2 {
		t.Errorf("player kind = %v, want %v", got, level.K2)
	}
	// Two S bricks remain and the player now holds X: no throw can match.
	if f.State != Looser {
		t.Errorf("state = %v, want %v", f.State, Looser)
	}
}

func TestThrowIntoEmptyRowFallsOntoColumn(t *testing.T) {
	f := testField(t, "# test\nstart:S\nSS\nSS\n")

	// Lift the player to an empty row: the throw slides to the far wall,
	// then drops down column 1 annihilating both matching bricks.
	for i := 0; i < 4; i++ {
		f.PlayerUp()
	}
	if !f.ArrowDown {
		t.Fatal("lookahead should point down from an empty row")
	}
	f.ThrowBrick()
	settle(t, f)

	if f.BrickCount() != 2 {
		t.Fatalf("brick count = %d, want 2", f.BrickCount())
	}
	for _, b := range f.Bricks() {
		if b.X != 2 {
			t.Errorf("surviving brick at column %d, want 2", b.X)
		}
	}
}

func TestCascadeFallsExactlyOneCell(t *testing.T) {
	f := testField(t, "# test\nstart:S\nXX\nSS\n")

	f.ThrowBrick()
	settle(t, f)

	// The bottom S pair is annihilated; each X above falls exactly one
	// cell into the vacated row, no further.
	if f.BrickCount() != 2 {
		t.Fatalf("brick count = %d, want 2", f.BrickCount())
	}
	for _, b := range f.Bricks() {
		if b.Kind != level.K2 {
			t.Errorf("surviving brick kind = %v, want %v", b.Kind, level.K2)
		}
		if b.Y != Height-2 {
			t.Errorf("fallen brick at row %d, want %d", b.Y, Height-2)
		}
		if b.IsMoving() {
			t.Error("brick still moving after settle")
		}
	}
}

func TestJokerAdoptsAnnihilatedKind(t *testing.T) {
	f := testField(t, "# test\nstart:?\nXX\nXX\n")

	f.ThrowBrick()
	settle(t, f)

	// The joker matches everything but takes on the kind of the first
	// brick it annihilates.
	if got := f.Player().Kind; got != level.K2 {
		t.Errorf("player kind = %v, want %v", got, level.K2)
	}
}

func TestPlayerRowClamps(t *testing.T) {
	f := testField(t, "# test\nstart:S\nSS\nSS\n")

	for i := 0; i < Height*2; i++ {
		f.PlayerUp()
	}
	if got := f.Player().Y; got != 1 {
		t.Errorf("player row = %d after moving up, want 1", got)
	}
	for i := 0; i < Height*2; i++ {
		f.PlayerDown()
	}
	if got := f.Player().Y; got != Height-2 {
		t.Errorf("player row = %d after moving down, want %d", got, Height-2)
	}
}

func TestInputIgnoredWhileMoving(t *testing.T) {
	f := testField(t, "# test\nstart:S\nSS\nSS\n")

	f.ThrowBrick()
	row := f.Player().Y
	f.PlayerUp()
	if got := f.Player().Y; got != row {
		t.Errorf("player row changed to %d while moving", got)
	}
	f.ThrowBrick()
	if f.Throws != 1 {
		t.Errorf("throws = %d, want 1", f.Throws)
	}
}

func TestCalcState(t *testing.T) {
	src := "# one\nstart:S\nSS\nSS\n# two\nstart:S\nSS\nSS\n"

	t.Run("cleared non-final level wins", func(t *testing.T) {
		f := testField(t, src)
		f.bricks = f.bricks[:0]
		if got := f.CalcState(); got != Winner {
			t.Errorf("CalcState() = %v, want %v", got, Winner)
		}
	})

	t.Run("cleared final level completes the game", func(t *testing.T) {
		f := testField(t, src)
		f.Load(1)
		f.bricks = f.bricks[:0]
		if got := f.CalcState(); got != Completed {
			t.Errorf("CalcState() = %v, want %v", got, Completed)
		}
	})

	t.Run("joker always keeps playing", func(t *testing.T) {
		f := testField(t, src)
		f.player.Kind = level.KindJoker
		if got := f.CalcState(); got != Unfinished {
			t.Errorf("CalcState() = %v, want %v", got, Unfinished)
		}
	})

	t.Run("no reachable match loses", func(t *testing.T) {
		f := testField(t, src)
		f.player.Kind = level.K2
		if got := f.CalcState(); got != Looser {
			t.Errorf("CalcState() = %v, want %v", got, Looser)
		}
	})
}

func TestLookaheadHorizontal(t *testing.T) {
	f := testField(t, "# test\nstart:S\nXX\nXS\n")

	if f.ArrowDown {
		t.Error("lookahead should be horizontal on an occupied row")
	}
	// One past the rightmost brick, plus one for the arrow cell.
	if f.ArrowX != 4 || f.ArrowY != Height-2 {
		t.Errorf("arrow at (%d,%d), want (4,%d)", f.ArrowX, f.ArrowY, Height-2)
	}
	if f.FirstKind != level.K1 {
		t.Errorf("first kind = %v, want %v", f.FirstKind, level.K1)
	}
}
