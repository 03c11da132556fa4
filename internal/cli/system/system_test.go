package system

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/julianstephens/daycards/internal/cli"
	"github.com/julianstephens/daycards/internal/config"
	"github.com/julianstephens/daycards/internal/storage/sqlite"
)

// setupTestDB returns a context over an uninitialized SQLite file.
func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	ctx, err := cli.NewContext(store, config.Config{Storage: dbPath, Timezone: "UTC", ConfigDir: tempDir})
	if err != nil {
		t.Fatalf("failed to create context: %v", err)
	}
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out, dbPath
}
