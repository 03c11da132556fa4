package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Task is a single to-do item on a card.
type Task struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// List is the date-keyed collection of tasks shown as one card.
type List struct {
	Date  string `json:"date"` // YYYY-MM-DD format
	Tasks []Task `json:"tasks"`
}

// Database is the whole persisted document. Order of Lists is display and drag order.
type Database struct {
	Lists []List `json:"lists"`
}

// NewDatabase returns an empty database.
func NewDatabase() Database {
	return Database{Lists: []List{}}
}

// Parse decodes a persisted document. Missing or null arrays become empty slices.
func Parse(data []byte) (Database, error) {
	var db Database
	if err := json.Unmarshal(data, &db); err != nil {
		return NewDatabase(), err
	}
	db.Normalize()
	return db, nil
}

// Encode serializes the database in the at-rest format.
func Encode(db Database) ([]byte, error) {
	out := db.Clone()
	out.Normalize()
	return json.Marshal(out)
}

// Normalize replaces nil slices with empty ones so the document always encodes
// "lists": [] and "tasks": [] rather than null.
func (db *Database) Normalize() {
	if db.Lists == nil {
		db.Lists = []List{}
	}
	for i := range db.Lists {
		if db.Lists[i].Tasks == nil {
			db.Lists[i].Tasks = []Task{}
		}
	}
}

// Clone returns a deep copy. Nil slices stay nil.
func (db Database) Clone() Database {
	if db.Lists == nil {
		return Database{}
	}
	out := Database{Lists: make([]List, len(db.Lists))}
	for i, l := range db.Lists {
		out.Lists[i] = l.Clone()
	}
	return out
}

// Find returns the index of the list for date, or -1.
func (db Database) Find(date string) int {
	for i, l := range db.Lists {
		if l.Date == date {
			return i
		}
	}
	return -1
}

// HasDate reports whether a list for date exists.
func (db Database) HasDate(date string) bool {
	return db.Find(date) >= 0
}

// Dates returns the list dates in order.
func (db Database) Dates() []string {
	dates := make([]string, len(db.Lists))
	for i, l := range db.Lists {
		dates[i] = l.Date
	}
	return dates
}

// TaskCount returns the number of tasks across all lists and how many are done.
func (db Database) TaskCount() (total, done int) {
	for _, l := range db.Lists {
		for _, t := range l.Tasks {
			total++
			if t.Done {
				done++
			}
		}
	}
	return total, done
}

// Validate checks the at-rest invariants: unique dates, unique task ids per list,
// and non-empty task text.
func (db Database) Validate() error {
	seen := make(map[string]bool, len(db.Lists))
	for _, l := range db.Lists {
		if l.Date == "" {
			return fmt.Errorf("list date cannot be empty")
		}
		if seen[l.Date] {
			return fmt.Errorf("duplicate list date: %s", l.Date)
		}
		seen[l.Date] = true
		if err := l.Validate(); err != nil {
			return fmt.Errorf("list %s: %w", l.Date, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	out := List{Date: l.Date}
	if l.Tasks != nil {
		out.Tasks = make([]Task, len(l.Tasks))
		copy(out.Tasks, l.Tasks)
	}
	return out
}

// FindTask returns the index of the task with id, or -1.
func (l List) FindTask(id string) int {
	for i, t := range l.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Validate checks task ids are unique and non-empty and text is non-blank.
func (l List) Validate() error {
	ids := make(map[string]bool, len(l.Tasks))
	for _, t := range l.Tasks {
		if t.ID == "" {
			return fmt.Errorf("task id cannot be empty")
		}
		if ids[t.ID] {
			return fmt.Errorf("duplicate task id: %s", t.ID)
		}
		ids[t.ID] = true
		if strings.TrimSpace(t.Text) == "" {
			return fmt.Errorf("task %s: text cannot be empty", t.ID)
		}
	}
	return nil
}
