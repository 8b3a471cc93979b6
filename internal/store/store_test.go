package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/wordsprint/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "wordsprint.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	langs := []string{"en", "de", "en"}
	for i, lang := range langs {
		start := base.Add(time.Duration(i) * time.Hour)
		stats := model.SessionStats{
			ID:           "session-" + lang + string(rune('a'+i)),
			StartedAt:    start,
			EndedAt:      start.Add(30 * time.Second),
			Lang:         lang,
			Words:        5,
			MaxLength:    6,
			Timed:        true,
			Expired:      i == 2,
			CorrectWords: 4,
			MissedWords:  1,
			CorrectChars: 14,
			DurationMs:   30000,
		}
		if _, err := st.InsertSession(ctx, stats); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	sessions, err := st.ListSessions(ctx, model.StatsConfig{Lang: "en"})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 en sessions, got %d", len(sessions))
	}
	if !sessions[0].EndedAt.Before(sessions[1].EndedAt) {
		t.Fatalf("expected sessions ordered by end time")
	}
	if sessions[0].Expired || !sessions[1].Expired {
		t.Fatalf("unexpected expired flags: %+v", sessions)
	}
	if sessions[1].CorrectWords != 4 || sessions[1].CorrectChars != 14 {
		t.Fatalf("unexpected aggregate: %+v", sessions[1])
	}

	since := base.Add(90 * time.Minute)
	recent, err := st.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list sessions since: %v", err)
	}
	if len(recent) != 1 || recent[0].UUID != "session-enc" {
		t.Fatalf("unexpected since filter result: %+v", recent)
	}
}

func TestInsertSessionRequiresID(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.InsertSession(context.Background(), model.SessionStats{}); err == nil {
		t.Fatalf("expected error for empty session id")
	}
}
