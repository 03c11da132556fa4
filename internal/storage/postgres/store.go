// Package postgres stores slots in a PostgreSQL schema named after the app.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"sort"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/daycards/internal/constants"
	"github.com/julianstephens/daycards/internal/logger"
	"github.com/julianstephens/daycards/internal/migration"
	"github.com/julianstephens/daycards/internal/storage"
	"github.com/julianstephens/daycards/migrations"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// settings is a connection string as key/value pairs. URLs go through
// pq.ParseURL first so both forms are read the same way.
type settings map[string]string

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

func parseSettings(connStr string) (settings, error) {
	dsn := strings.TrimSpace(connStr)
	if isURL(dsn) {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return nil, err
		}
		dsn = converted
	}

	s := settings{}
	rest := strings.TrimLeft(dsn, " ")
	for rest != "" {
		eq := strings.IndexAny(rest, "= ")
		if eq <= 0 || rest[eq] != '=' {
			return nil, fmt.Errorf("malformed setting near %q", rest)
		}
		key := strings.ToLower(rest[:eq])
		value, tail, err := readValue(rest[eq+1:])
		if err != nil {
			return nil, err
		}
		s[key] = value
		rest = strings.TrimLeft(tail, " ")
	}
	return s, nil
}

// readValue reads one DSN value, either bare up to the next space or single
// quoted with backslash escapes, and returns what follows it.
func readValue(in string) (string, string, error) {
	if !strings.HasPrefix(in, "'") {
		if i := strings.IndexByte(in, ' '); i >= 0 {
			return in[:i], in[i:], nil
		}
		return in, "", nil
	}

	var b strings.Builder
	for i := 1; i < len(in); i++ {
		switch c := in[i]; {
		case c == '\\' && i+1 < len(in):
			i++
			b.WriteByte(in[i])
		case c == '\'':
			return b.String(), in[i+1:], nil
		default:
			b.WriteByte(c)
		}
	}
	return "", "", errors.New("unterminated quoted value")
}

func (s settings) has(key string) bool {
	_, ok := s[key]
	return ok
}

// String renders s as a keyword/value DSN, quoting values lib/pq would split.
func (s settings) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	quote := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	parts := make([]string, len(keys))
	for i, k := range keys {
		v := s[k]
		if v == "" || strings.ContainsAny(v, ` '\`) {
			v = "'" + quote.Replace(v) + "'"
		}
		parts[i] = k + "=" + v
	}
	return strings.Join(parts, " ")
}

// ValidateConnString rejects connection strings lib/pq cannot use and any that
// carry a password, which belongs in the keyring, the environment or .pgpass.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	s, err := parseSettings(connStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	if s.has("password") {
		return ErrEmbeddedCredentials
	}
	if u, err := url.Parse(connStr); err == nil && isURL(connStr) && u.User != nil {
		// pq.ParseURL drops an empty password, but "user:@host" still sets one.
		if _, set := u.User.Password(); set {
			return ErrEmbeddedCredentials
		}
	}
	if isURL(connStr) && len(s) == 0 {
		return fmt.Errorf("%w: connection URL names no host, user or database", ErrInvalidConnectionString)
	}
	return nil
}

// withSearchPath pins search_path to the app schema unless connStr sets one.
func withSearchPath(connStr string) string {
	s, err := parseSettings(connStr)
	if err != nil {
		logger.Warn("Failed to parse Postgres connection string", "error", err)
		return connStr
	}
	if s.has("search_path") {
		return connStr
	}
	s["search_path"] = constants.AppName
	return s.String()
}

type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	return &Store{connStr: withSearchPath(connStr)}
}

// connect opens a small pool and checks the server answers. One CLI process
// rarely holds more than a single connection.
func (s *Store) connect() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return s.explain(err)
	}
	s.db = db
	return nil
}

func (s *Store) explain(err error) error {
	if strings.Contains(err.Error(), "SSL is not enabled on the server") {
		if params, perr := parseSettings(s.connStr); perr == nil && !params.has("sslmode") {
			return fmt.Errorf("failed to connect to database: %w (hint: add sslmode=disable to the connection string)", err)
		}
	}
	return fmt.Errorf("failed to connect to database: %w", err)
}

func (s *Store) Init() error {
	if s.db == nil {
		if err := s.connect(); err != nil {
			return err
		}
	}
	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(constants.AppName)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	if _, err := runner.Up(context.Background()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.connect(); err != nil {
		return err
	}

	var exists bool
	if err := s.db.QueryRow("SELECT to_regclass($1) IS NOT NULL", constants.AppName+".slots").Scan(&exists); err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}
	if !exists {
		return storage.ErrNotInitialized
	}

	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return runner.Check(context.Background())
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) migrationRunner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.New(s.db, sub, migration.Postgres)
}

// SchemaVersion returns the applied and the latest known migration versions.
func (s *Store) SchemaVersion() (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, storage.ErrNotLoaded
	}
	runner, err := s.migrationRunner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.Current(context.Background()); err != nil {
		return 0, 0, err
	}
	return current, runner.Latest(), nil
}

// GetConfigPath names the backend without exposing the connection string.
func (s *Store) GetConfigPath() string {
	return "postgresql"
}
