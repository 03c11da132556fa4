// Package migration applies the versioned schema files that back the slot
// stores. Every applied version is recorded in schema_version; the highest row
// is the database's current version.
package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/julianstephens/daycards/internal/logger"
)

// ErrSchemaTooNew means the database was migrated by a newer build.
var ErrSchemaTooNew = errors.New("database schema is newer than this version of daycards supports, please upgrade")

// Dialect covers the SQL differences the runner's bookkeeping depends on.
type Dialect struct {
	Name string
	// Bind returns the placeholder for the nth argument, counting from 1.
	Bind func(n int) string
}

var (
	SQLite   = Dialect{Name: "sqlite", Bind: func(int) string { return "?" }}
	Postgres = Dialect{Name: "postgres", Bind: func(n int) string { return "$" + strconv.Itoa(n) }}
)

// Migration is one NNN_name.sql file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var fileName = regexp.MustCompile(`^(\d+)_(\w+)\.sql$`)

// Parse reads the *.sql files at the root of fsys in version order.
func Parse(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	seen := make(map[int]string, len(names))
	out := make([]Migration, 0, len(names))
	for _, name := range names {
		m := fileName.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("migration %s: name must look like 001_init.sql", name)
		}
		version, err := strconv.Atoi(m[1])
		if err != nil || version < 1 {
			return nil, fmt.Errorf("migration %s: version must be a number from 1", name)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %d", other, name, version)
		}
		seen[version] = name

		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		out = append(out, Migration{Version: version, Name: m[2], SQL: string(body)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Runner migrates one database with a fixed set of migrations.
type Runner struct {
	db         *sql.DB
	dialect    Dialect
	migrations []Migration
}

// New parses fsys up front, so a malformed set fails before db is touched.
func New(db *sql.DB, fsys fs.FS, dialect Dialect) (*Runner, error) {
	migrations, err := Parse(fsys)
	if err != nil {
		return nil, err
	}
	return &Runner{db: db, dialect: dialect, migrations: migrations}, nil
}

// Latest is the highest version known to this build, 0 with no migrations.
func (r *Runner) Latest() int {
	if len(r.migrations) == 0 {
		return 0
	}
	return r.migrations[len(r.migrations)-1].Version
}

const versionTable = `CREATE TABLE IF NOT EXISTS schema_version (
	version    INTEGER PRIMARY KEY,
	applied_at TEXT NOT NULL
)`

func (r *Runner) ensureTable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, versionTable); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}
	return nil
}

// Current returns the applied version, 0 for a fresh database.
func (r *Runner) Current(ctx context.Context) (int, error) {
	if err := r.ensureTable(ctx); err != nil {
		return 0, err
	}
	var version int
	if err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Check returns ErrSchemaTooNew when the database is ahead of Latest.
func (r *Runner) Check(ctx context.Context) error {
	current, err := r.Current(ctx)
	if err != nil {
		return err
	}
	return r.compatible(current)
}

func (r *Runner) compatible(current int) error {
	if current > r.Latest() {
		return fmt.Errorf("%w (database %d, supported %d)", ErrSchemaTooNew, current, r.Latest())
	}
	return nil
}

// Up applies the pending migrations in order and returns how many ran. Each one
// commits together with its schema_version row, so a failure leaves the
// database at the last good version.
func (r *Runner) Up(ctx context.Context) (int, error) {
	current, err := r.Current(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.compatible(current); err != nil {
		return 0, err
	}

	record := fmt.Sprintf("INSERT INTO schema_version (version, applied_at) VALUES (%s, %s)",
		r.dialect.Bind(1), r.dialect.Bind(2))
	start := time.Now()
	applied := 0
	for _, m := range r.migrations {
		if m.Version <= current {
			continue
		}
		logger.Info("Applying migration", "dialect", r.dialect.Name, "version", m.Version, "name", m.Name)
		if err := r.apply(ctx, m, record); err != nil {
			return applied, err
		}
		applied++
	}

	if applied > 0 {
		logger.Info("Schema migrated", "from", current, "to", r.Latest(), "took", time.Since(start))
	} else {
		logger.Debug("Schema up to date", "version", current)
	}
	return applied, nil
}

func (r *Runner) apply(ctx context.Context, m Migration, record string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
	}
	if _, err := tx.ExecContext(ctx, record, m.Version, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("migration %d: failed to record version: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %d: failed to commit: %w", m.Version, err)
	}
	return nil
}
