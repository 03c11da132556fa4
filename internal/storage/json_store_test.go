package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func setupJSONStore(t *testing.T) (*JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "daycards.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return store, path
}

func TestJSONStoreLoadUninitialized(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
	if _, _, err := store.GetItem("k"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("GetItem() error = %v, want ErrNotLoaded", err)
	}
}

func TestJSONStoreInitTwice(t *testing.T) {
	store, path := setupJSONStore(t)
	if err := NewJSONStore(path).Init(); err == nil {
		t.Error("second Init() should fail")
	}
	if store.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", store.GetConfigPath(), path)
	}
}

func TestJSONStoreSlots(t *testing.T) {
	store, path := setupJSONStore(t)

	if err := store.SetItem("b", "2"); err != nil {
		t.Fatalf("SetItem() failed: %v", err)
	}
	if err := store.SetItem("a", `{"lists":[]}`); err != nil {
		t.Fatalf("SetItem() failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	value, ok, err := reopened.GetItem("a")
	if err != nil || !ok || value != `{"lists":[]}` {
		t.Errorf("GetItem(a) = %q, %v, %v", value, ok, err)
	}
	keys, err := reopened.Keys()
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Errorf("Keys() = %v", keys)
	}

	if err := reopened.RemoveItem("b"); err != nil {
		t.Fatalf("RemoveItem() failed: %v", err)
	}
	if err := reopened.RemoveItem("never-set"); err != nil {
		t.Errorf("RemoveItem() of absent key failed: %v", err)
	}
	if _, ok, _ := reopened.GetItem("b"); ok {
		t.Error("slot b still present after RemoveItem()")
	}
}

func TestJSONStoreFileFormat(t *testing.T) {
	store, path := setupJSONStore(t)
	if err := store.SetItem("todo_user_name", "Ada"); err != nil {
		t.Fatalf("SetItem() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	var file struct {
		Version int               `json:"version"`
		Slots   map[string]string `json:"slots"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		t.Fatalf("store file is not JSON: %v", err)
	}
	if file.Version != 1 || file.Slots["todo_user_name"] != "Ada" {
		t.Errorf("unexpected file content: %s", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %v, want 0600", perm)
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daycards.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(path).Load(); err == nil {
		t.Error("Load() of corrupt file should fail")
	}
}
