package dedup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreMarkAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	processed, err := store.IsProcessed(context.Background(), "evt_1")
	if err != nil || processed {
		t.Fatalf("expected unprocessed before mark, got %v %v", processed, err)
	}

	if err := store.MarkProcessed(context.Background(), "evt_1", []byte(`{"id":"evt_1"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	processed, err = store.IsProcessed(context.Background(), "evt_1")
	if err != nil || !processed {
		t.Fatalf("expected processed after mark, got %v %v", processed, err)
	}
}

func TestFileStoreSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.MarkProcessed(context.Background(), "evt_1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.MarkProcessed(context.Background(), "evt_2", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh store on the same path must see the marks taken before.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []string{"evt_1", "evt_2"} {
		processed, err := reopened.IsProcessed(context.Background(), id)
		if err != nil || !processed {
			t.Fatalf("expected %s to survive restart, got %v %v", id, processed, err)
		}
	}
	processed, err := reopened.IsProcessed(context.Background(), "evt_3")
	if err != nil || processed {
		t.Fatalf("expected evt_3 unprocessed, got %v %v", processed, err)
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "never-written.json"))
	if err != nil {
		t.Fatalf("expected empty store for missing file, got %v", err)
	}
	processed, err := store.IsProcessed(context.Background(), "evt_1")
	if err != nil || processed {
		t.Fatalf("expected unprocessed, got %v %v", processed, err)
	}
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.json")
	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewFileStore(path); err == nil {
		t.Fatal("expected error for corrupt dedup file")
	}
}
