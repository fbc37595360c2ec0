// Package level defines the brick vocabulary, the line-oriented level file
// format, and the structural validation every level must pass before play.
package level

// Kind identifies what occupies a puzzle cell: one of six matchable brick
// kinds, the wildcard Joker, or None for an empty cell.
type Kind uint8

const (
	KindNone Kind = iota
	K1
	K2
	K3
	K4
	K5
	K6
	KindJoker
)

// ParseKind maps a level-file character to a brick kind.
// Unknown characters mean an empty cell.
func ParseKind(c rune) Kind {
	switch c {
	case 'S', 's', '$', '1':
		return K1
	case 'X', 'x', '%', '2':
		return K2
	case 'O', 'o', '@', '3':
		return K3
	case 'T', 't', '=', '4':
		return K4
	case 'Z', 'z', '+', '5':
		return K5
	case 'W', 'w', ':', '6':
		return K6
	case '?':
		return KindJoker
	default:
		return KindNone
	}
}

// Rune returns the display glyph for a kind.
func (k Kind) Rune() rune {
	switch k {
	case K1:
		return 'S'
	case K2:
		return 'X'
	case K3:
		return 'O'
	case K4:
		return 'T'
	case K5:
		return 'Z'
	case K6:
		return 'W'
	case KindJoker:
		return '?'
	default:
		return ' '
	}
}

func (k Kind) String() string {
	if k == KindNone {
		return "none"
	}
	return string(k.Rune())
}
