package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "daycards"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/daycards/daycards.db"
	ConfigFileName     = "daycards.toml"
	Version            = "v0.2.0"

	// ListsKey is the slot holding the card database. The v2 suffix is the schema version;
	// slots written by older schemas live under other keys and are ignored.
	ListsKey = "todo_lists_v2"
	// UserNameKey is the slot holding the last entered display name.
	UserNameKey = "todo_user_name"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ClockDateFormat and ClockTimeFormat render the header clock, e.g. "Wed, 14 Oct 2026" and "09:41:07 AM".
	ClockDateFormat = "Mon, 02 Jan 2006"
	ClockTimeFormat = "03:04:05 PM"

	// DefaultTimezone is the zone the header clock shows unless configured (IST).
	DefaultTimezone = "Asia/Kolkata"
	ClockInterval   = time.Second

	// ID generator names accepted in config
	IDGeneratorUUID  = "uuid"
	IDGeneratorClock = "clock"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daycards-"

	// EnvDBConnection holds a PostgreSQL connection string when storage is "postgres".
	EnvDBConnection = "DAYCARDS_DB_CONNECTION"
)

// Session States
const (
	StateCards SessionState = iota
	StateCreateCard
	StateRenameCard
	StateAddTask
	StateEditTask
	StateEditName
	StateConfirmDelete
)

// CardPalette holds the card background colours, chosen by card index modulo its length.
var CardPalette = []string{
	"#fff1dd",
	"#fef3c7",
	"#e7f7ee",
	"#e6f0ff",
	"#fde7f3",
	"#efeaff",
	"#e6fbfb",
}
