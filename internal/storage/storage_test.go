package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/navtoolbar/internal/model"
	"github.com/nikbrunner/navtoolbar/internal/storage"
)

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.json")

	store := &model.Store{
		Tabs: []model.Tab{
			{ID: "t1", Title: "Test", URL: "https://example.com", Pinned: true, PinOrder: 3},
		},
	}

	s := storage.NewJSONStorage(path)
	if err := s.Save(store); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("storage file was not created")
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if len(loaded.Tabs) != 1 {
		t.Fatalf("expected 1 tab, got %d", len(loaded.Tabs))
	}
	if loaded.Tabs[0].Title != "Test" || !loaded.Tabs[0].Pinned || loaded.Tabs[0].PinOrder != 3 {
		t.Errorf("unexpected tab after load: %+v", loaded.Tabs[0])
	}
}

func TestJSONStorage_LoadNonexistent(t *testing.T) {
	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "nonexistent.json"))

	store, err := s.Load()
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if store.Tabs == nil || len(store.Tabs) != 0 {
		t.Error("expected empty, non-nil tab slice for missing file")
	}
}

func TestJSONStorage_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := storage.NewJSONStorage(path).Load(); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestJSONStorage_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tabs.json")

	if err := storage.NewJSONStorage(path).Save(model.NewStore()); err != nil {
		t.Fatalf("failed to save with nested dir: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("storage file was not created in nested directory")
	}
}

func TestJSONStorage_PreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.json")

	store := &model.Store{
		Tabs: []model.Tab{
			{ID: "t1", Title: "First"},
			{ID: "t2", Title: "Second"},
			{ID: "t3", Title: "Third"},
		},
	}

	s := storage.NewJSONStorage(path)
	if err := s.Save(store); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	for i, title := range []string{"First", "Second", "Third"} {
		if loaded.Tabs[i].Title != title {
			t.Errorf("order not preserved: expected %q at position %d, got %q", title, i, loaded.Tabs[i].Title)
		}
	}
}

func TestOpen(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := storage.Open(storage.BackendJSON, "")
	if err != nil {
		t.Fatalf("failed to open json: %v", err)
	}
	js, ok := s.(*storage.JSONStorage)
	if !ok {
		t.Fatalf("expected JSONStorage, got %T", s)
	}
	want, _ := storage.DefaultJSONPath()
	if js.Path() != want {
		t.Errorf("expected default path %q, got %q", want, js.Path())
	}

	// Without a backend, JSON wins until a database exists.
	s, err = storage.Open("", "")
	if err != nil {
		t.Fatalf("failed to open default: %v", err)
	}
	if _, ok := s.(*storage.JSONStorage); !ok {
		t.Errorf("expected JSON fallback, got %T", s)
	}

	db, err := storage.Open(storage.BackendSQLite, "")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db.(*storage.SQLiteStorage).Close()

	s, err = storage.Open("", "")
	if err != nil {
		t.Fatalf("failed to open default: %v", err)
	}
	sq, ok := s.(*storage.SQLiteStorage)
	if !ok {
		t.Fatalf("expected existing database to be preferred, got %T", s)
	}
	sq.Close()

	if _, err := storage.Open("yaml", ""); err == nil {
		t.Error("expected error for unknown backend")
	}
}
