package core

// Color is a foreground color for a screen cell. The platform layer maps
// each value to a terminal style; the simulation only ever stores them.
type Color uint8

const (
	ColorDefault Color = iota

	// Brick kind colors.
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorBrightWhite // joker, matches everything

	// UI accents.
	ColorBrightRed    // recording marker
	ColorBrightYellow // terminal state line
	ColorBrightCyan   // demo label
	ColorGray         // walls, hint lines
)
