package system

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/daycards/internal/backup"
	"github.com/julianstephens/daycards/internal/cli"
	"github.com/julianstephens/daycards/internal/constants"
	"github.com/julianstephens/daycards/internal/keyring"
	"github.com/julianstephens/daycards/internal/schema"
	"github.com/julianstephens/daycards/internal/utils"
)

var (
	processesFunc = ps.Processes
	nowFunc       = time.Now
)

// skipError marks a check that does not apply to the current backend.
type skipError struct{ reason string }

func (e skipError) Error() string { return e.reason }

type checkLevel int

const (
	levelFail checkLevel = iota
	levelWarn
)

type check struct {
	name string
	// opens is the check that opens the storage; needsStore checks are
	// skipped when it fails.
	opens      bool
	needsStore bool
	level      checkLevel
	run        func(*cli.Context) error
}

var checks = []check{
	{name: "Storage reachable", opens: true, level: levelFail, run: checkStorageReachable},
	{name: "Schema version", needsStore: true, level: levelFail, run: checkSchemaVersion},
	{name: "Card data", needsStore: true, level: levelFail, run: checkCardData},
	{name: "Backups present", level: levelWarn, run: checkBackupsPresent},
	{name: "Clock/timezone", level: levelFail, run: checkClockTimezone},
	{name: "Keyring", level: levelWarn, run: checkKeyring},
	{name: "Other daycards processes", level: levelWarn, run: checkOtherProcesses},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Printf("Running diagnostics...\n\n")

	hasError := false
	reachable := true

	for _, c := range checks {
		if c.needsStore && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		var skip skipError
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &skip):
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", c.name, skip.reason)
		case c.level == levelWarn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.opens {
				reachable = false
			}
		}
	}

	ctx.Printf("\n")
	if hasError {
		ctx.Printf("Diagnostics completed with errors.\n")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Printf("All diagnostics passed!\n")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, _, err := ctx.Provider.GetItem(constants.ListsKey); err != nil {
		return fmt.Errorf("failed to read storage: %w", err)
	}
	return nil
}

// versioned is a backend whose schema is managed by migrations.
type versioned interface {
	SchemaVersion() (current, latest int, err error)
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Provider.(versioned)
	if !ok {
		return skipError{"only tracked for SQL backends"}
	}
	current, latest, err := store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkCardData fails when the stored document would be discarded on load.
func checkCardData(ctx *cli.Context) error {
	raw, ok, err := ctx.Store.Raw()
	if err != nil {
		return fmt.Errorf("failed to read cards: %w", err)
	}
	if !ok {
		return nil
	}
	if _, err := schema.Validate([]byte(raw)); err != nil {
		return fmt.Errorf("%w (the TUI will show no cards; restore a backup or import a fixed export)", err)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := backup.NewManager(ctx.Provider.GetConfigPath())
	if errors.Is(err, backup.ErrUnsupported) {
		return skipError{"not supported for this storage"}
	}
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'daycards backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := nowFunc()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := utils.LoadLocation(ctx.Config.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", ctx.Config.Timezone, err)
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !cli.IsPostgres(ctx.Config.Storage) {
		return skipError{"only used for PostgreSQL"}
	}
	if os.Getenv(constants.EnvDBConnection) != "" {
		return nil
	}
	status := keyring.CurrentStatus()
	if !status.Available {
		return keyring.ErrKeyringUnavailable
	}
	if !status.Stored && !strings.Contains(ctx.Config.Storage, "://") {
		return fmt.Errorf("no connection string stored - run 'daycards keyring set'")
	}
	return nil
}

// checkOtherProcesses warns about concurrent writers, which are last-write-wins.
func checkOtherProcesses(ctx *cli.Context) error {
	procs, err := processesFunc()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	var pids []string
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if p.Executable() == constants.AppName {
			pids = append(pids, fmt.Sprint(p.Pid()))
		}
	}
	if len(pids) > 0 {
		return fmt.Errorf("another daycards process is running (pid %s); concurrent edits overwrite each other", strings.Join(pids, ", "))
	}
	return nil
}
