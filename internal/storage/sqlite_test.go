package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestUnplayedLevelIsZero(t *testing.T) {
	store := testStore(t)

	score, err := store.Score(5)
	if err != nil {
		t.Fatalf("Score() failed: %v", err)
	}
	if score.Level != 5 || score.Attempts != 0 || score.Wins != 0 || score.Hiscore != 0 {
		t.Errorf("Expected zero record for an unplayed level, got %+v", score)
	}
	if !score.FirstWin.IsZero() {
		t.Errorf("Expected zero first-win time, got %v", score.FirstWin)
	}
}

func TestRecordWin(t *testing.T) {
	store := testStore(t)

	if err := store.RecordWin(3, 12); err != nil {
		t.Fatalf("RecordWin() failed: %v", err)
	}

	score, err := store.Score(3)
	if err != nil {
		t.Fatalf("Score() failed: %v", err)
	}
	if score.Wins != 1 || score.Attempts != 1 {
		t.Errorf("Expected 1 win / 1 attempt, got %d / %d", score.Wins, score.Attempts)
	}
	if score.Hiscore != 12 {
		t.Errorf("Expected hiscore 12, got %d", score.Hiscore)
	}
	if score.FirstWin.IsZero() {
		t.Error("Expected first-win time to be set")
	}
	firstWin := score.FirstWin

	// A worse run keeps the hiscore; a better one improves it. The
	// first-win date never changes.
	if err := store.RecordWin(3, 20); err != nil {
		t.Fatalf("RecordWin() failed: %v", err)
	}
	if err := store.RecordWin(3, 7); err != nil {
		t.Fatalf("RecordWin() failed: %v", err)
	}

	score, err = store.Score(3)
	if err != nil {
		t.Fatalf("Score() failed: %v", err)
	}
	if score.Wins != 3 || score.Attempts != 3 {
		t.Errorf("Expected 3 wins / 3 attempts, got %d / %d", score.Wins, score.Attempts)
	}
	if score.Hiscore != 7 {
		t.Errorf("Expected hiscore 7, got %d", score.Hiscore)
	}
	if !score.FirstWin.Equal(firstWin) {
		t.Errorf("First-win time changed from %v to %v", firstWin, score.FirstWin)
	}
}

func TestRecordWinClampsThrows(t *testing.T) {
	store := testStore(t)

	if err := store.RecordWin(1, 5000); err != nil {
		t.Fatalf("RecordWin() failed: %v", err)
	}
	score, err := store.Score(1)
	if err != nil {
		t.Fatalf("Score() failed: %v", err)
	}
	if score.Hiscore != MaxHiscore {
		t.Errorf("Expected hiscore clamped to %d, got %d", MaxHiscore, score.Hiscore)
	}
}

func TestRecordFail(t *testing.T) {
	store := testStore(t)

	if err := store.RecordFail(2); err != nil {
		t.Fatalf("RecordFail() failed: %v", err)
	}
	if err := store.RecordFail(2); err != nil {
		t.Fatalf("RecordFail() failed: %v", err)
	}

	score, err := store.Score(2)
	if err != nil {
		t.Fatalf("Score() failed: %v", err)
	}
	if score.Attempts != 2 || score.Wins != 0 {
		t.Errorf("Expected 2 attempts / 0 wins, got %d / %d", score.Attempts, score.Wins)
	}
}

func TestRecordHelpUsedOnlyBeforeFirstWin(t *testing.T) {
	store := testStore(t)

	if err := store.RecordHelpUsed(4); err != nil {
		t.Fatalf("RecordHelpUsed() failed: %v", err)
	}
	score, _ := store.Score(4)
	if !score.HelpUsed {
		t.Error("Expected help mark to be set before the first win")
	}

	// After a self-earned win on another level the mark cannot appear.
	if err := store.RecordWin(6, 9); err != nil {
		t.Fatalf("RecordWin() failed: %v", err)
	}
	if err := store.RecordHelpUsed(6); err != nil {
		t.Fatalf("RecordHelpUsed() failed: %v", err)
	}
	score, _ = store.Score(6)
	if score.HelpUsed {
		t.Error("Help mark set after the level was already won")
	}
}

func TestProgressPersistence(t *testing.T) {
	store := testStore(t)

	maxLevel, err := store.MaxLevel()
	if err != nil {
		t.Fatalf("MaxLevel() failed: %v", err)
	}
	if maxLevel != 1 {
		t.Errorf("Expected a fresh database to unlock level 1, got %d", maxLevel)
	}

	if err := store.AdvanceMax(4); err != nil {
		t.Fatalf("AdvanceMax() failed: %v", err)
	}
	// Progress never regresses.
	if err := store.AdvanceMax(2); err != nil {
		t.Fatalf("AdvanceMax() failed: %v", err)
	}

	maxLevel, err = store.MaxLevel()
	if err != nil {
		t.Fatalf("MaxLevel() failed: %v", err)
	}
	if maxLevel != 4 {
		t.Errorf("Expected max level 4, got %d", maxLevel)
	}
}

func TestAllScores(t *testing.T) {
	store := testStore(t)

	store.RecordWin(3, 10)
	store.RecordFail(1)
	store.RecordWin(2, 5)

	scores, err := store.AllScores()
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(scores))
	}
	// Ordered by level number
	for i, want := range []int{1, 2, 3} {
		if scores[i].Level != want {
			t.Errorf("Record %d is level %d, want %d", i, scores[i].Level, want)
		}
	}
}

func TestProgressCursor(t *testing.T) {
	p := NewProgress(5)
	if p.Curr != 5 || p.Max != 5 {
		t.Fatalf("NewProgress(5) = %+v", p)
	}

	p.Dec(1)
	if p.Curr != 4 {
		t.Errorf("Curr = %d after Dec(1), want 4", p.Curr)
	}
	p.Dec(10)
	if p.Curr != 1 {
		t.Errorf("Curr = %d after a large Dec, want 1", p.Curr)
	}
	p.Inc(10)
	if p.Curr != 5 {
		t.Errorf("Curr = %d after a large Inc, want 5", p.Curr)
	}
	p.Unlock(7)
	p.Inc(1)
	if p.Curr != 6 {
		t.Errorf("Curr = %d after Unlock and Inc(1), want 6", p.Curr)
	}
}
