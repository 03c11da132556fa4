package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/julianstephens/daycards/internal/constants"
	"github.com/julianstephens/daycards/internal/models"
)

func sampleDatabase() models.Database {
	return models.Database{Lists: []models.List{
		{Date: "2024-01-02", Tasks: []models.Task{{ID: "1", Text: "Buy milk", Done: true}, {ID: "2", Text: "Call mom"}}},
		{Date: "2024-01-01", Tasks: []models.Task{}},
	}}
}

func TestListStoreRoundTrip(t *testing.T) {
	jsonStore, _ := setupJSONStore(t)

	providers := map[string]Provider{
		"memory": NewMemoryStore(),
		"json":   jsonStore,
	}

	for name, provider := range providers {
		t.Run(name, func(t *testing.T) {
			store := NewListStore(provider)
			db := sampleDatabase()
			if err := store.Save(db); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}
			if got := store.Load(); !reflect.DeepEqual(got, db) {
				t.Errorf("Load() = %+v, want %+v", got, db)
			}
		})
	}
}

func TestListStoreLoadEmptyOrCorrupt(t *testing.T) {
	tests := []struct {
		name  string
		value *string
	}{
		{name: "absent"},
		{name: "not json", value: ptr("{{{")},
		{name: "wrong shape", value: ptr(`[1,2,3]`)},
		{name: "null lists", value: ptr(`{"lists":null}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewMemoryStore()
			if tt.value != nil {
				_ = provider.SetItem(constants.ListsKey, *tt.value)
			}
			got := NewListStore(provider).Load()
			if got.Lists == nil || len(got.Lists) != 0 {
				t.Errorf("Load() = %+v, want empty lists", got)
			}
		})
	}
}

func TestListStoreSaveFailure(t *testing.T) {
	provider := NewMemoryStore()
	provider.FailWrites = errors.New("disk full")
	err := NewListStore(provider).Save(sampleDatabase())
	if !errors.Is(err, provider.FailWrites) {
		t.Errorf("Save() error = %v, want wrapped disk full", err)
	}
}

func TestListStoreIgnoresOtherKeys(t *testing.T) {
	provider := NewMemoryStore()
	_ = provider.SetItem("todo_lists_v1", `{"lists":[{"date":"2020-01-01","tasks":[]}]}`)
	if got := NewListStore(provider).Load(); len(got.Lists) != 0 {
		t.Errorf("Load() picked up a foreign slot: %+v", got)
	}
}

func TestListStoreRaw(t *testing.T) {
	provider := NewMemoryStore()
	store := NewListStore(provider)
	if _, ok, _ := store.Raw(); ok {
		t.Error("Raw() reported a value before any save")
	}
	_ = store.Save(models.NewDatabase())
	raw, ok, err := store.Raw()
	if err != nil || !ok || raw != `{"lists":[]}` {
		t.Errorf("Raw() = %q, %v, %v", raw, ok, err)
	}
}

func TestUserName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daycards.json")
	provider := NewJSONStore(path)
	if err := provider.Init(); err != nil {
		t.Fatal(err)
	}
	store := NewListStore(provider)
	if name := store.UserName(); name != "" {
		t.Errorf("UserName() = %q before any write", name)
	}
	for _, name := range []string{"A", "Ad", "Ada", "  spaced  "} {
		if err := store.SetUserName(name); err != nil {
			t.Fatalf("SetUserName(%q) failed: %v", name, err)
		}
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	if name := NewListStore(reopened).UserName(); name != "  spaced  " {
		t.Errorf("UserName() = %q, want the last value unchanged", name)
	}
}

func ptr(s string) *string { return &s }
