package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/Lectern/core/passage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testPassage(chapter, verse int) passage.Passage {
	return passage.Passage{
		Book:         "John",
		FullBookName: "John",
		Chapter:      chapter,
		StartVerse:   verse,
		EndVerse:     verse,
		Translation:  passage.TranslationDefault,
	}
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, "session-a", "John 3:16", testPassage(3, 16)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, "session-a", "verse 17", testPassage(3, 17)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.Recent(ctx, "session-a", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Input != "verse 17" || entries[1].Input != "John 3:16" {
		t.Errorf("order = %q, %q", entries[0].Input, entries[1].Input)
	}
	e := entries[0]
	if e.ID == "" {
		t.Error("entry ID is empty")
	}
	if e.SessionID != "session-a" {
		t.Errorf("session = %q", e.SessionID)
	}
	if e.Reference != "John 3:17" {
		t.Errorf("reference = %q", e.Reference)
	}
	if e.Passage.FullBookName != "John" {
		t.Errorf("book name not restored: %+v", e.Passage)
	}
	if e.CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}
}

func TestRecentFiltersBySession(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, "session-a", "John 3:16", testPassage(3, 16)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, "session-b", "John 5:1", testPassage(5, 1)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.Recent(ctx, "session-b", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].SessionID != "session-b" {
		t.Errorf("entries = %+v, want one session-b entry", entries)
	}

	all, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("Recent all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d entries across sessions, want 2", len(all))
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for v := 1; v <= 5; v++ {
		if err := store.Record(ctx, "session-a", "input", testPassage(3, v)); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.Recent(ctx, "session-a", 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Passage.StartVerse != 5 {
		t.Errorf("newest entry verse = %d, want 5", entries[0].Passage.StartVerse)
	}
}

func TestRecentDefaultLimit(t *testing.T) {
	store := openTestStore(t)
	entries, err := store.Recent(context.Background(), "nobody", 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries for unknown session", len(entries))
	}
}
