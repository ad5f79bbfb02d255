package checkpoint

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints.db")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	row := Row{
		RunID:           "run-1",
		RequestHash:     "abc123",
		LastCheckedSeed: 4242,
		CheckedCount:    4243,
		UpdatedAt:       time.Now(),
	}
	if err := store.Save(row); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Load("run-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("expected checkpoint to exist")
	}
	if got.LastCheckedSeed != row.LastCheckedSeed || got.CheckedCount != row.CheckedCount {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, row)
	}
}

func TestSaveOverwritesSameRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints.db")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	_ = store.Save(Row{RunID: "run-1", RequestHash: "h", LastCheckedSeed: 10, CheckedCount: 11, UpdatedAt: time.Now()})
	_ = store.Save(Row{RunID: "run-1", RequestHash: "h", LastCheckedSeed: 20, CheckedCount: 21, UpdatedAt: time.Now()})

	got, ok, err := store.Load("run-1")
	if err != nil || !ok {
		t.Fatalf("Load: err=%v ok=%v", err, ok)
	}
	if got.LastCheckedSeed != 20 || got.CheckedCount != 21 {
		t.Fatalf("expected overwrite to latest values, got %+v", got)
	}
}

func TestLoadMissingRunNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints.db")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	_, ok, err := store.Load("does-not-exist")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatalf("expected no checkpoint for unknown run")
	}
}

func TestLoadByHashFindsRunByRequestHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints.db")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	_ = store.Save(Row{RunID: "run-old", RequestHash: "same-params", CheckedCount: 500, UpdatedAt: time.Now()})

	got, ok, err := store.LoadByHash("same-params")
	if err != nil {
		t.Fatalf("LoadByHash: %v", err)
	}
	if !ok {
		t.Fatalf("expected a checkpoint for a known request hash")
	}
	if got.RunID != "run-old" || got.CheckedCount != 500 {
		t.Fatalf("unexpected row: %+v", got)
	}

	if _, ok, err := store.LoadByHash("never-seen"); err != nil {
		t.Fatalf("LoadByHash: %v", err)
	} else if ok {
		t.Fatalf("expected no checkpoint for an unknown request hash")
	}
}

func TestDeleteRemovesCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints.db")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	_ = store.Save(Row{RunID: "run-1", RequestHash: "h", LastCheckedSeed: 1, CheckedCount: 1, UpdatedAt: time.Now()})
	if err := store.Delete("run-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, ok, err := store.Load("run-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatalf("expected checkpoint to be gone after Delete")
	}
}
