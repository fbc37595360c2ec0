package storage

// Progress is the in-memory level cursor for the menu: the currently
// selected level and the highest unlocked one. Level 0 is the demo and is
// never selected directly, so the cursor floors at 1.
type Progress struct {
	Curr int
	Max  int
}

// NewProgress starts the cursor at the highest unlocked level.
func NewProgress(maxLevel int) Progress {
	if maxLevel < 1 {
		maxLevel = 1
	}
	return Progress{Curr: maxLevel, Max: maxLevel}
}

// Inc moves the cursor up by delta, clamped to the highest unlocked level.
func (p *Progress) Inc(delta int) {
	if p.Curr+delta < p.Max {
		p.Curr += delta
	} else {
		p.Curr = p.Max
	}
}

// Dec moves the cursor down by delta, never below the first level.
func (p *Progress) Dec(delta int) {
	if p.Curr-1 > delta {
		p.Curr -= delta
	} else {
		p.Curr = 1
	}
}

// Unlock raises the highest unlocked level, keeping the cursor valid.
func (p *Progress) Unlock(levelNum int) {
	if levelNum > p.Max {
		p.Max = levelNum
	}
}
