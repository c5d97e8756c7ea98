package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewRecord(t *testing.T) {
	rec := New("render")
	if rec.ID == "" {
		t.Error("New should assign an ID")
	}
	if rec.Operation != "render" {
		t.Errorf("Operation = %q, want render", rec.Operation)
	}
	if rec.StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}
	if rec.ID == New("render").ID {
		t.Error("IDs should be unique")
	}
}

func TestFileStoreAppendGet(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	rec := New("render")
	rec.ScenePath = "scene.yaml"
	rec.OutputPath = "out.png"
	rec.Width = 800
	rec.Height = 450
	rec.FailedRays = 3

	if err := store.Append(ctx, rec); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ScenePath != rec.ScenePath || got.Width != rec.Width || got.FailedRays != rec.FailedRays {
		t.Errorf("Get = %+v, want %+v", got, rec)
	}
}

func TestFileStoreGetNotFound(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(context.Background(), "missing-id"); err != ErrNotFound {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestFileStoreListOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	base := time.Now()
	var ids []string
	for i := 0; i < 5; i++ {
		rec := New("render")
		rec.StartedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append error: %v", err)
		}
		ids = append(ids, rec.ID)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("List returned %d records, want 5", len(all))
	}
	// Newest first.
	for i := range all {
		if all[i].ID != ids[len(ids)-1-i] {
			t.Fatalf("List[%d].ID = %s, want %s", i, all[i].ID, ids[len(ids)-1-i])
		}
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d records", len(limited))
	}
	if len(limited) == 2 && limited[0].ID != ids[4] {
		t.Error("limited list should keep the newest records")
	}
}

func TestFileStoreListSkipsCorruptRecords(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Append(ctx, New("render")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("List returned %d records, want 1 (corrupt file skipped)", len(records))
	}
}

func TestFileStoreClear(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := store.Append(ctx, New("generate")); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("List after Clear returned %d records", len(records))
	}

	// Store stays usable.
	if err := store.Append(ctx, New("render")); err != nil {
		t.Errorf("Append after Clear error: %v", err)
	}
}

func TestFileStorePath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if store.Path() != dir {
		t.Errorf("Path = %q, want %q", store.Path(), dir)
	}
}
