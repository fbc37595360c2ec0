package level

import "fmt"

// MaxPuzzle is the maximum puzzle dimension: puzzles are at most 7x7.
const MaxPuzzle = 7

// Validate checks the structural invariants of a level. A violation means
// the level assets are corrupt and the game is not playable; the returned
// error is always an *InvalidLevelError.
//
// Invariants:
//   - corner pattern is omitted, or has 2 to MaxPuzzle-1 lines
//   - no corner line exceeds MaxPuzzle cells
//   - puzzle has 2 to MaxPuzzle rows and 2 to MaxPuzzle columns
//   - no column has an empty cell below a filled one
func Validate(lvl *Level, n int) error {
	fail := func(format string, args ...any) error {
		return &InvalidLevelError{Level: n, Reason: fmt.Sprintf(format, args...)}
	}

	if len(lvl.Corner) > MaxPuzzle-1 || len(lvl.Corner) == 1 {
		return fail("corner pattern must be omitted or have between 2 and %d lines, found %d",
			MaxPuzzle-1, len(lvl.Corner))
	}
	for _, l := range lvl.Corner {
		if l > MaxPuzzle {
			return fail("corner line exceeds %d cells: %d", MaxPuzzle, l)
		}
	}

	if len(lvl.Rows) > MaxPuzzle || len(lvl.Rows) < 2 {
		return fail("puzzle must have between 2 and %d rows, found %d", MaxPuzzle, len(lvl.Rows))
	}
	maxW := 0
	for _, row := range lvl.Rows {
		if len(row) > maxW {
			maxW = len(row)
		}
	}
	if maxW < 2 || maxW > MaxPuzzle {
		return fail("puzzle must have between 2 and %d columns, found %d", MaxPuzzle, maxW)
	}

	// Cells past the end of a short row count as empty.
	for col := 0; col < maxW; col++ {
		found := false
		for _, row := range lvl.Rows {
			var cell Kind
			if col < len(row) {
				cell = row[col]
			}
			if cell == KindNone && found {
				return fail("hole in column %d", col)
			}
			if cell != KindNone {
				found = true
			}
		}
	}
	return nil
}
