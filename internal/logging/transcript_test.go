package logging

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestLogger(t *testing.T) *TranscriptLogger {
	t.Helper()
	tl, err := NewTranscriptLogger(filepath.Join(t.TempDir(), "transcript.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { tl.Close() })
	return tl
}

func TestLogAndReadTurns(t *testing.T) {
	tl := newTestLogger(t)

	command := map[string]string{"action": "go", "target": "north"}
	if err := tl.LogTurn("session-1", "hallway", "go north", "rule", command, "You head north.", 3*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if err := tl.LogTurn("session-1", "garden", "look", "local", map[string]string{"action": "look"}, "A quiet garden.", 480*time.Millisecond); err != nil {
		t.Fatal(err)
	}

	turns, err := tl.GetRecentTurns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	for _, turn := range turns {
		if turn.SessionID != "session-1" {
			t.Errorf("session id = %q", turn.SessionID)
		}
		if turn.Rating != nil {
			t.Errorf("unrated turn has rating %d", *turn.Rating)
		}
	}
}

func TestRateTurn(t *testing.T) {
	tl := newTestLogger(t)

	if err := tl.LogTurn("session-1", "hallway", "xyzzy", "rule", map[string]string{"action": "invalid"}, "I don't understand that.", time.Millisecond); err != nil {
		t.Fatal(err)
	}
	turns, err := tl.GetRecentTurns(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 1 {
		t.Fatalf("got %d turns", len(turns))
	}

	if err := tl.RateTurn(turns[0].ID, 2, "should have matched the magic word"); err != nil {
		t.Fatal(err)
	}
	turns, err = tl.GetRecentTurns(1)
	if err != nil {
		t.Fatal(err)
	}
	if turns[0].Rating == nil || *turns[0].Rating != 2 {
		t.Errorf("rating = %v, want 2", turns[0].Rating)
	}
	if turns[0].Notes != "should have matched the magic word" {
		t.Errorf("notes = %q", turns[0].Notes)
	}
}

func TestRateMissingTurn(t *testing.T) {
	tl := newTestLogger(t)
	if err := tl.RateTurn(99, 5, ""); err == nil {
		t.Error("rating a missing turn succeeded")
	}
}
