package storage

import (
	"fmt"

	"github.com/julianstephens/daycards/internal/constants"
	"github.com/julianstephens/daycards/internal/logger"
	"github.com/julianstephens/daycards/internal/models"
)

// ListStore reads and writes the card database and the user name on top of a
// slot Provider. It satisfies board.Store.
type ListStore struct {
	provider Provider
}

func NewListStore(provider Provider) *ListStore {
	return &ListStore{provider: provider}
}

// Provider returns the backing slot store.
func (s *ListStore) Provider() Provider {
	return s.provider
}

// Load returns the stored database. A missing, unreadable or malformed slot
// yields an empty database; the failure is only logged.
func (s *ListStore) Load() models.Database {
	raw, ok, err := s.provider.GetItem(constants.ListsKey)
	if err != nil {
		logger.Debug("Failed to read card slot", "key", constants.ListsKey, "error", err)
		return models.NewDatabase()
	}
	if !ok {
		return models.NewDatabase()
	}
	db, err := models.Parse([]byte(raw))
	if err != nil {
		logger.Debug("Discarding unreadable card slot", "key", constants.ListsKey, "error", err)
		return models.NewDatabase()
	}
	return db
}

// Save overwrites the slot with db.
func (s *ListStore) Save(db models.Database) error {
	data, err := models.Encode(db)
	if err != nil {
		return fmt.Errorf("failed to serialize card database: %w", err)
	}
	if err := s.provider.SetItem(constants.ListsKey, string(data)); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

// Raw returns the slot content exactly as stored.
func (s *ListStore) Raw() (string, bool, error) {
	return s.provider.GetItem(constants.ListsKey)
}

// UserName returns the last saved display name, or "" if none.
func (s *ListStore) UserName() string {
	name, _, err := s.provider.GetItem(constants.UserNameKey)
	if err != nil {
		logger.Debug("Failed to read name slot", "key", constants.UserNameKey, "error", err)
		return ""
	}
	return name
}

func (s *ListStore) SetUserName(name string) error {
	if err := s.provider.SetItem(constants.UserNameKey, name); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}
