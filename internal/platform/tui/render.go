package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rionnag/unblocked/internal/core"
	"github.com/rionnag/unblocked/internal/field"
	"github.com/rionnag/unblocked/internal/level"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// kindColors maps brick kinds to display colors. The joker is white so it
// reads as "matches anything".
var kindColors = map[level.Kind]core.Color{
	level.K1:        core.ColorRed,
	level.K2:        core.ColorGreen,
	level.K3:        core.ColorYellow,
	level.K4:        core.ColorBlue,
	level.K5:        core.ColorMagenta,
	level.K6:        core.ColorCyan,
	level.KindJoker: core.ColorBrightWhite,
}

func kindColor(k level.Kind) core.Color {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return core.ColorDefault
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Cells are drawn two characters wide so the board looks roughly square in
// a terminal.
const cellW = 2

// brickCell returns the screen cell a brick currently occupies, derived
// from its continuous position so moving bricks render mid-flight.
func brickCell(b field.Brick) (int, int) {
	return int(b.Pos.X/field.CellSize + 0.5), int(b.Pos.Y/field.CellSize + 0.5)
}

func drawDoubled(s *core.Screen, cx, cy int, r rune, c core.Color, offX, offY int) {
	for i := 0; i < cellW; i++ {
		s.SetCell(offX+cx*cellW+i, offY+cy, core.Cell{Rune: r, Color: c})
	}
}

// drawField renders the walls, bricks, player, and the aiming arrow onto
// the screen at the given character offset.
func drawField(s *core.Screen, f *field.Field, offX, offY int) {
	for y := 0; y < field.Height; y++ {
		for x := 0; x < field.Width; x++ {
			if f.WallAt(x, y) {
				drawDoubled(s, x, y, '▒', core.ColorGray, offX, offY)
			}
		}
	}

	for _, b := range f.Bricks() {
		cx, cy := brickCell(b)
		drawDoubled(s, cx, cy, b.Kind.Rune(), kindColor(b.Kind), offX, offY)
	}

	p := f.Player()
	cx, cy := brickCell(p)
	drawDoubled(s, cx, cy, p.Kind.Rune(), kindColor(p.Kind), offX, offY)

	if f.IsInteractive() {
		arrow := '←'
		if f.ArrowDown {
			arrow = '↓'
		}
		drawDoubled(s, f.ArrowX, f.ArrowY, arrow, core.ColorBrightWhite, offX, offY)
	}
}
