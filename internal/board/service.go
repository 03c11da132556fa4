package board

import (
	"errors"
	"fmt"

	"github.com/julianstephens/daycards/internal/logger"
	"github.com/julianstephens/daycards/internal/models"
)

// maxIDAttempts bounds how often AddTask asks for a fresh id after a collision.
const maxIDAttempts = 5

// Store loads and saves the whole card database. Load never fails: a missing or
// unreadable document is an empty database.
type Store interface {
	Load() models.Database
	Save(models.Database) error
}

// Service runs each command as load, mutate a fresh copy, save. Nothing is cached
// between calls, so every action sees what the previous one wrote.
type Service struct {
	store Store
	ids   IDGenerator
}

func NewService(store Store, ids IDGenerator) *Service {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Service{store: store, ids: ids}
}

// Database returns a freshly loaded copy of the current document.
func (s *Service) Database() models.Database {
	return s.store.Load()
}

func (s *Service) CreateList(date string) error {
	return s.apply("create list", func(db models.Database) (models.Database, error) {
		return CreateList(db, date)
	})
}

func (s *Service) DeleteList(date string) error {
	return s.apply("delete list", func(db models.Database) (models.Database, error) {
		return DeleteList(db, date)
	})
}

func (s *Service) RenameList(from, to string) error {
	return s.apply("rename list", func(db models.Database) (models.Database, error) {
		return RenameList(db, from, to)
	})
}

// AddTask appends a task with a freshly generated id and returns it.
func (s *Service) AddTask(date, text string) (models.Task, error) {
	var added models.Task
	err := s.apply("add task", func(db models.Database) (models.Database, error) {
		var lastErr error
		for attempt := 0; attempt < maxIDAttempts; attempt++ {
			next, task, err := AddTask(db, date, s.ids.NewID(), text)
			if err == nil {
				added = task
				return next, nil
			}
			if !errors.Is(err, ErrDuplicateTaskID) {
				return db, err
			}
			lastErr = err
		}
		return db, lastErr
	})
	return added, err
}

func (s *Service) ToggleTask(date, id string) error {
	return s.apply("toggle task", func(db models.Database) (models.Database, error) {
		return ToggleTask(db, date, id)
	})
}

func (s *Service) EditTask(date, id, text string) error {
	return s.apply("edit task", func(db models.Database) (models.Database, error) {
		return EditTask(db, date, id, text)
	})
}

func (s *Service) DeleteTask(date, id string) error {
	return s.apply("delete task", func(db models.Database) (models.Database, error) {
		return DeleteTask(db, date, id)
	})
}

// Reorder persists the given card order.
func (s *Service) Reorder(order []string) error {
	return s.apply("reorder", func(db models.Database) (models.Database, error) {
		return Reorder(db, order), nil
	})
}

// Move shifts one card by delta positions and persists the result.
func (s *Service) Move(date string, delta int) error {
	return s.apply("move list", func(db models.Database) (models.Database, error) {
		if !db.HasDate(date) {
			return db, fmt.Errorf("%w: %s", ErrListNotFound, date)
		}
		return Reorder(db, MoveBy(db.Dates(), date, delta)), nil
	})
}

// Replace overwrites the whole document after checking its invariants.
func (s *Service) Replace(db models.Database) error {
	if err := db.Validate(); err != nil {
		return err
	}
	return s.apply("replace", func(models.Database) (models.Database, error) {
		return db.Clone(), nil
	})
}

func (s *Service) apply(op string, mutate func(models.Database) (models.Database, error)) error {
	db := s.store.Load()
	next, err := mutate(db)
	if err != nil {
		logger.Debug("Command rejected", "op", op, "error", err)
		return err
	}
	if err := s.store.Save(next); err != nil {
		logger.Error("Failed to save card database", "op", op, "error", err)
		return err
	}
	logger.Debug("Command applied", "op", op, "lists", len(next.Lists))
	return nil
}
