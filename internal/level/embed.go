package level

import (
	_ "embed"
)

// The bundled level set. The very first level is the reserved DEMO level:
// it is not selectable in normal play and its replay is compiled into the
// binary, so changing it requires re-recording the demo replay.
//
//go:embed assets/std_puzzles
var stdPuzzles string

// Embedded parses and validates the bundled level set.
func Embedded() (*Set, error) {
	return ParseString(stdPuzzles)
}
