package replay

import "github.com/rionnag/unblocked/internal/core"

// demoMoves is the built-in demonstration played on the reserved first
// level. It ships compiled in rather than as a file so the demo works on a
// fresh install with an empty replay directory.
var demoMoves = []Move{
	{Tick: 100, Act: core.ActionUp},
	{Tick: 180, Act: core.ActionDown},
	{Tick: 260, Act: core.ActionThrow},
	{Tick: 420, Act: core.ActionThrow},
}
