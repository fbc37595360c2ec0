package field

// GameState is the computed terminal state of a level. It is derived from
// the board, never stored redundantly.
type GameState uint8

const (
	Unfinished GameState = iota // keep playing
	Winner                      // level cleared
	Looser                      // no moves available
	Completed                   // last level cleared
)

func (s GameState) String() string {
	switch s {
	case Unfinished:
		return "playing..."
	case Winner:
		return "level solved"
	case Looser:
		return "level failed"
	case Completed:
		return "game completed"
	default:
		return "unknown"
	}
}
