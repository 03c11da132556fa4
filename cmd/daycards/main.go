package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daycards/internal/cli"
	"github.com/julianstephens/daycards/internal/cli/backups"
	"github.com/julianstephens/daycards/internal/cli/cards"
	"github.com/julianstephens/daycards/internal/cli/settings"
	"github.com/julianstephens/daycards/internal/cli/system"
	"github.com/julianstephens/daycards/internal/cli/tasks"
	"github.com/julianstephens/daycards/internal/cli/transfer"
	"github.com/julianstephens/daycards/internal/config"
	"github.com/julianstephens/daycards/internal/constants"
	apperrors "github.com/julianstephens/daycards/internal/errors"
	"github.com/julianstephens/daycards/internal/logger"
)

var CLI struct {
	Version     kong.VersionFlag
	Config      string `help:"Storage location: a SQLite file, a .json file, 'postgres', or a PostgreSQL URL without a password. Defaults to ~/.config/daycards/daycards.db." env:"DAYCARDS_CONFIG"`
	DebugFlag   *bool  `name:"debug" help:"Log at debug level and mirror logs to stderr." env:"DAYCARDS_DEBUG"`
	Timezone    string `help:"IANA timezone for the clock and today's date."`
	IDGenerator string `help:"Task id scheme: uuid or clock."`

	Init   system.InitCmd   `cmd:"" help:"Initialize daycards storage."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive board." default:"1"`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`

	Card struct {
		Add    cards.CardAddCmd    `cmd:"" help:"Create a card for a date."`
		Delete cards.CardDeleteCmd `cmd:"" help:"Delete a card and its tasks."`
		Rename cards.CardRenameCmd `cmd:"" help:"Change a card's date."`
		List   cards.CardListCmd   `cmd:"" help:"List cards in board order." default:"1"`
	} `cmd:"" help:"Manage date cards."`
	Task struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a task to a card."`
		Done   tasks.TaskDoneCmd   `cmd:"" help:"Toggle a task's done state."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Change a task's text."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks on a card."`
	Reorder cards.ReorderCmd   `cmd:"" help:"Set the board order of cards."`
	Name    settings.NameCmd   `cmd:"" help:"Show or set the display name."`
	Export  transfer.ExportCmd `cmd:"" help:"Export the card database as JSON."`
	Import  transfer.ImportCmd `cmd:"" help:"Replace the card database from a JSON export."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability."`
	} `cmd:"" help:"Manage PostgreSQL credentials in the OS keyring."`
	Debug struct {
		Path system.DebugPathCmd `cmd:"" help:"Show storage, config and log paths."`
		Dump system.DebugDumpCmd `cmd:"" help:"Dump every stored slot as JSON."`
	} `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Date-keyed to-do cards for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir, err := config.DefaultConfigDir()
	if err != nil {
		apperrors.Fatal(err)
	}
	cfg, err := config.Load(configDir, config.Overrides{
		Storage:     CLI.Config,
		Timezone:    CLI.Timezone,
		Debug:       CLI.DebugFlag,
		IDGenerator: CLI.IDGenerator,
	})
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	command := ctx.Command()
	appCtx, err := newAppContext(command, cfg)
	if err != nil {
		apperrors.Fatal(err)
	}

	err = ctx.Run(appCtx)
	if appCtx.Provider != nil {
		if closeErr := appCtx.Provider.Close(); closeErr != nil {
			logger.Warn("Failed to close storage", "error", closeErr)
		}
	}
	if err != nil {
		apperrors.Fatal(err)
	}
}

// newAppContext opens the storage for command. Keyring commands run without
// storage; init and doctor open it themselves; everything else gets a loaded
// store, initialized on first use.
func newAppContext(command string, cfg config.Config) (*cli.Context, error) {
	if strings.HasPrefix(command, "keyring") {
		return &cli.Context{Config: cfg}, nil
	}

	provider, err := cli.OpenProvider(cfg.Storage)
	if err != nil {
		return nil, err
	}
	appCtx, err := cli.NewContext(provider, cfg)
	if err != nil {
		_ = provider.Close()
		return nil, err
	}

	if strings.HasPrefix(command, "init") || strings.HasPrefix(command, "doctor") || strings.HasPrefix(command, "debug path") {
		return appCtx, nil
	}

	if err := cli.Prepare(provider); err != nil {
		return nil, err
	}
	return appCtx, nil
}
