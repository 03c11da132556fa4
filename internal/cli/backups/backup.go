package backups

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/daycards/internal/backup"
	"github.com/julianstephens/daycards/internal/cli"
	"github.com/julianstephens/daycards/internal/constants"
	"github.com/julianstephens/daycards/internal/logger"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := backup.NewManager(ctx.Provider.GetConfigPath())
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := backup.NewManager(ctx.Provider.GetConfigPath())
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Printf("No backups found.\n")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		ctx.Printf("  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Restore without asking for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := backup.NewManager(ctx.Provider.GetConfigPath())
	if err != nil {
		return err
	}
	backupPath, err := mgr.ResolvePath(c.BackupFile)
	if err != nil {
		return err
	}

	ctx.Printf("⚠️  WARNING: This will replace your current cards with the backup.\n")
	ctx.Printf("⚠️  IMPORTANT: Close every other daycards process (including the TUI) first.\n")
	ctx.Printf("A backup of your current store will be created before restoring.\n")
	ctx.Printf("\nRestore from: %s\n", backupPath)

	ok, err := ctx.Confirm("Continue?", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Printf("Restore cancelled.\n")
		return nil
	}

	// The store file is swapped underneath us, so release it first.
	if err := ctx.Provider.Close(); err != nil {
		logger.Warn("Failed to close store before restore", "error", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("restored, but failed to reopen store: %w", err)
	}

	db := ctx.Service.Database()
	ctx.Printf("✓ Restored %d card(s) from %s\n", len(db.Lists), filepath.Base(backupPath))
	return nil
}
