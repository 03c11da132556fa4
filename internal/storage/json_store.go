package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type slotFile struct {
	Version int               `json:"version"`
	Slots   map[string]string `json:"slots"`
}

// JSONStore keeps every slot in a single JSON file. Each write replaces the
// file through a temp file and rename, so a crash leaves the old or the new
// content, never a torn one.
type JSONStore struct {
	path  string
	store *slotFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &slotFile{
		Version: 1,
		Slots:   make(map[string]string),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &slotFile{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if s.store.Slots == nil {
		s.store.Slots = make(map[string]string)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetItem(key string) (string, bool, error) {
	if s.store == nil {
		return "", false, ErrNotLoaded
	}
	value, ok := s.store.Slots[key]
	return value, ok, nil
}

func (s *JSONStore) SetItem(key, value string) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	prev, had := s.store.Slots[key]
	s.store.Slots[key] = value
	if err := s.save(); err != nil {
		if had {
			s.store.Slots[key] = prev
		} else {
			delete(s.store.Slots, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) RemoveItem(key string) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	prev, had := s.store.Slots[key]
	if !had {
		return nil
	}
	delete(s.store.Slots, key)
	if err := s.save(); err != nil {
		s.store.Slots[key] = prev
		return err
	}
	return nil
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.store.Slots))
	for k := range s.store.Slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
