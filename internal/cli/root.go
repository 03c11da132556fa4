// Package cli holds the state shared by every daycards command.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycards/internal/backup"
	"github.com/julianstephens/daycards/internal/board"
	"github.com/julianstephens/daycards/internal/config"
	"github.com/julianstephens/daycards/internal/logger"
	"github.com/julianstephens/daycards/internal/models"
	"github.com/julianstephens/daycards/internal/storage"
	"github.com/julianstephens/daycards/internal/utils"
)

type Context struct {
	Provider storage.Provider
	Store    *storage.ListStore
	Service  *board.Service
	Config   config.Config

	// Out and In default to the process's stdout and stdin. When In is set,
	// confirmations read a y/N line from it instead of showing a prompt.
	Out io.Writer
	In  io.Reader
}

// NewContext wires the card service on top of provider.
func NewContext(provider storage.Provider, cfg config.Config) (*Context, error) {
	ids, err := board.NewIDGenerator(cfg.IDGenerator)
	if err != nil {
		return nil, err
	}
	store := storage.NewListStore(provider)
	return &Context{
		Provider: provider,
		Store:    store,
		Service:  board.NewService(store, ids),
		Config:   cfg,
	}, nil
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes to the command's output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Today returns the current date in the configured timezone.
func (c *Context) Today() (string, error) {
	return utils.TodayInTimezone(c.Config.Timezone)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := backup.NewManager(c.Provider.GetConfigPath())
	if err != nil {
		logger.Debug("Automatic backup skipped", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question. yes skips the question.
func (c *Context) Confirm(question string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if c.In != nil {
		fmt.Fprintf(c.Stdout(), "%s [y/N]: ", question)
		response, err := bufio.NewReader(c.In).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		return response == "y" || response == "yes", nil
	}

	var ok bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// FindList returns the list for date from a fresh load.
func (c *Context) FindList(date string) (models.List, error) {
	db := c.Service.Database()
	idx := db.Find(date)
	if idx < 0 {
		return models.List{}, fmt.Errorf("%w: %s", board.ErrListNotFound, date)
	}
	return db.Lists[idx], nil
}
