// Package config resolves runtime settings from flags, environment and the
// optional daycards.toml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/julianstephens/daycards/internal/board"
	"github.com/julianstephens/daycards/internal/constants"
	"github.com/julianstephens/daycards/internal/utils"
)

// Source records where a resolved value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceFlag    Source = "flag"
)

// File is the on-disk shape of daycards.toml.
type File struct {
	Storage     string `toml:"storage"`
	Timezone    string `toml:"timezone"`
	Debug       *bool  `toml:"debug"`
	IDGenerator string `toml:"id_generator"`
}

// Overrides holds values given on the command line or through the environment.
// Empty strings and a nil Debug mean "not set".
type Overrides struct {
	Storage     string
	Timezone    string
	Debug       *bool
	IDGenerator string
}

// Config is the fully resolved configuration.
type Config struct {
	// Storage is a postgres:// URL, the word "postgres", or a file path with ~ expanded.
	Storage     string
	Timezone    string
	Debug       bool
	IDGenerator string
	// ConfigDir holds daycards.toml, logs and backups.
	ConfigDir string
	// FilePath is the config file that was read, or "" if none was found.
	FilePath string
	Sources  map[string]Source
}

// DefaultConfigDir returns ~/.config/daycards.
func DefaultConfigDir() (string, error) {
	return ExpandHome(filepath.Dir(constants.DefaultConfigPath))
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ReadFile decodes a config file. Unknown keys are rejected so typos surface.
func ReadFile(path string) (File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return f, nil
}

// Load resolves the configuration: defaults, then configDir/daycards.toml if it
// exists, then overrides.
func Load(configDir string, o Overrides) (Config, error) {
	cfg := Config{
		Storage:     constants.DefaultConfigPath,
		Timezone:    constants.DefaultTimezone,
		IDGenerator: constants.IDGeneratorUUID,
		ConfigDir:   configDir,
		Sources: map[string]Source{
			"storage":      SourceDefault,
			"timezone":     SourceDefault,
			"debug":        SourceDefault,
			"id_generator": SourceDefault,
		},
	}

	path := filepath.Join(configDir, constants.ConfigFileName)
	f, err := ReadFile(path)
	switch {
	case err == nil:
		cfg.FilePath = path
		apply(&cfg, f, SourceFile)
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
	}

	apply(&cfg, File(o), SourceFlag)

	if cfg.Storage, err = ExpandHome(cfg.Storage); err != nil {
		return Config{}, err
	}
	if _, err := utils.LoadLocation(cfg.Timezone); err != nil {
		return Config{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	if _, err := board.NewIDGenerator(cfg.IDGenerator); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func apply(cfg *Config, v File, source Source) {
	if v.Storage != "" {
		cfg.Storage = v.Storage
		cfg.Sources["storage"] = source
	}
	if v.Timezone != "" {
		cfg.Timezone = v.Timezone
		cfg.Sources["timezone"] = source
	}
	if v.Debug != nil {
		cfg.Debug = *v.Debug
		cfg.Sources["debug"] = source
	}
	if v.IDGenerator != "" {
		cfg.IDGenerator = v.IDGenerator
		cfg.Sources["id_generator"] = source
	}
}
