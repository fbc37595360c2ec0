package level

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultStart is the player's starting brick when a level does not set one.
const DefaultStart = KindJoker

// Level is one validated puzzle: an optional top-left corner wall pattern
// (line lengths, top to bottom), the initial brick rows (top to bottom),
// and the player's starting brick.
type Level struct {
	Corner []int
	Rows   [][]Kind
	Start  Kind
}

// InvalidLevelError reports a level that fails structural validation.
// It indicates corrupt level assets: there is no defined recovery, callers
// are expected to abort.
type InvalidLevelError struct {
	Level  int
	Reason string
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("level %d: %s", e.Level, e.Reason)
}

// Set is an ordered collection of validated levels. Level 0 is the reserved
// demo level and must not be selectable in normal play.
type Set struct {
	levels []Level
}

// Count returns the number of loaded levels, demo included.
func (s *Set) Count() int {
	return len(s.levels)
}

// Level returns a level by number. An out-of-range number is a programming
// error (it cannot happen without manual modification of the score store)
// and panics.
func (s *Set) Level(n int) *Level {
	if n < 0 || n >= len(s.levels) {
		panic(fmt.Sprintf("level: number %d out of range (have %d)", n, len(s.levels)))
	}
	return &s.levels[n]
}

// Parse reads a level set from line-oriented text.
//
// Format:
//
//	; comment
//	# starts a new level (text after # is ignored)
//	start:K  optional, sets the player's starting brick
//	****     corner pattern lines, terminated by a blank line
//	$%=      puzzle rows, one character per cell (see ParseKind)
//
// Every level is validated before being added; the first invalid level
// aborts the parse with an *InvalidLevelError.
func Parse(r io.Reader) (*Set, error) {
	set := &Set{}
	cur := Level{Start: DefaultStart}

	flush := func() error {
		if len(cur.Rows) == 0 {
			return nil
		}
		if err := Validate(&cur, len(set.levels)); err != nil {
			return err
		}
		set.levels = append(set.levels, cur)
		cur = Level{Start: DefaultStart}
		return nil
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")

		// A blank line terminates a corner pattern; otherwise ignored.
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "start:") {
			rest := strings.TrimSpace(strings.TrimPrefix(line, "start:"))
			if rest == "" {
				continue
			}
			cur.Start = ParseKind([]rune(rest)[0])
			continue
		}
		if strings.HasPrefix(line, "#") {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if strings.HasPrefix(line, "*") {
			cur.Corner = append(cur.Corner, len(line))
			continue
		}

		row := make([]Kind, 0, len(line))
		for _, c := range line {
			row = append(row, ParseKind(c))
		}
		cur.Rows = append(cur.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("level: read: %w", err)
	}

	// The last level has no trailing '#'.
	if err := flush(); err != nil {
		return nil, err
	}
	return set, nil
}

// ParseString is Parse over an in-memory level set.
func ParseString(s string) (*Set, error) {
	return Parse(strings.NewReader(s))
}
