package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/daycards/internal/cli"
	"github.com/julianstephens/daycards/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete the existing storage file before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Provider.GetConfigPath()

	if c.Force {
		if !isFileStore(ctx) {
			return fmt.Errorf("--force is only supported for SQLite and JSON file storage")
		}
		if _, err := os.Stat(path); err == nil {
			// Close first so SQLite releases its file handle.
			if err := ctx.Provider.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			ctx.Printf("Deleted existing storage at: %s\n", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	} else {
		err := ctx.Provider.Load()
		if err == nil {
			ctx.Printf("daycards storage already initialized at: %s\n", path)
			return nil
		}
		if !errors.Is(err, storage.ErrNotInitialized) {
			return err
		}
	}

	if err := ctx.Provider.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized daycards storage at: %s\n", path)
	return nil
}

func isFileStore(ctx *cli.Context) bool {
	path := ctx.Provider.GetConfigPath()
	return path != "" && path != ":memory:" && !cli.IsPostgres(path)
}
