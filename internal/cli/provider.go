package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/daycards/internal/constants"
	"github.com/julianstephens/daycards/internal/keyring"
	"github.com/julianstephens/daycards/internal/logger"
	"github.com/julianstephens/daycards/internal/storage"
	"github.com/julianstephens/daycards/internal/storage/postgres"
	"github.com/julianstephens/daycards/internal/storage/sqlite"
)

// ErrNoConnectionString is returned when storage is "postgres" but neither the
// environment nor the keyring holds a connection string.
var ErrNoConnectionString = errors.New("no PostgreSQL connection string: set " + constants.EnvDBConnection + " or run 'daycards keyring set'")

// IsPostgres reports whether location names a PostgreSQL backend.
func IsPostgres(location string) bool {
	return location == "postgres" || location == "postgresql" ||
		strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// OpenProvider picks the slot backend for location: a postgres URL or the bare
// word "postgres", a .json file, or otherwise a SQLite file. The provider is
// returned unloaded.
func OpenProvider(location string) (storage.Provider, error) {
	switch {
	case location == "postgres" || location == "postgresql":
		connStr, err := resolveConnString()
		if err != nil {
			return nil, err
		}
		return postgres.New(connStr), nil
	case IsPostgres(location):
		if err := postgres.ValidateConnString(location); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: use the OS keyring ('daycards keyring set'), %s, or a .pgpass file", err, constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(location), nil
	case strings.EqualFold(filepath.Ext(location), ".json"):
		return storage.NewJSONStore(location), nil
	default:
		return sqlite.NewStore(location), nil
	}
}

// Prepare loads provider, initializing it when it has never been set up. On
// failure the provider is closed before the error is returned.
func Prepare(provider storage.Provider) error {
	err := provider.Load()
	if errors.Is(err, storage.ErrNotInitialized) {
		logger.Info("Initializing storage on first use", "path", provider.GetConfigPath())
		err = provider.Init()
	}
	if err != nil {
		if closeErr := provider.Close(); closeErr != nil {
			logger.Warn("Failed to close storage", "error", closeErr)
		}
		return err
	}
	return nil
}

// resolveConnString reads the connection string from the environment, then the
// keyring. Credentials kept there may include a password.
func resolveConnString() (string, error) {
	if connStr := os.Getenv(constants.EnvDBConnection); connStr != "" {
		logger.Debug("Using connection string from environment", "var", constants.EnvDBConnection)
		return connStr, nil
	}
	connStr, err := keyring.GetConnectionString()
	if err == nil {
		logger.Debug("Using connection string from keyring")
		return connStr, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoConnectionString
	}
	return "", err
}
