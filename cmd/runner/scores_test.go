package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/storage"
)

func TestScoresTitleShowsHighScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if got := scoresTitle(store); strings.Contains(got, "high score") {
		t.Errorf("empty history should not show a high score, got %q", got)
	}

	for _, score := range []int{1200, 3200, 800} {
		if _, err := store.SaveRun(storage.RunRecord{Score: score, Outcome: storage.OutcomeDefeat}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if got := scoresTitle(store); !strings.HasSuffix(got, "(high score 3200)") {
		t.Errorf("scoresTitle() = %q", got)
	}
}

func TestScoresClearEmptiesHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(storage.RunRecord{Score: 500, Outcome: storage.OutcomeVictory}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	oldPath, oldClear := flagDBPath, flagClear
	t.Cleanup(func() { flagDBPath, flagClear = oldPath, oldClear })
	flagDBPath, flagClear = dbPath, true

	runScores(nil, nil)

	store, err = storage.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected an empty history after --clear, got %d runs", len(runs))
	}
	if got := scoresTitle(store); strings.Contains(got, "high score") {
		t.Errorf("cleared history should not show a high score, got %q", got)
	}
}
