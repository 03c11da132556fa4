// Package board holds the card commands and the load/mutate/save cycle around them.
//
// Every command takes the current Database and returns a new one; the argument
// is never modified. A rejected command returns one of the Err* sentinels and
// the original database unchanged.
package board

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daycards/internal/models"
	"github.com/julianstephens/daycards/internal/utils"
)

// CreateList inserts an empty list for date at the front of the order.
func CreateList(db models.Database, date string) (models.Database, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return db, ErrNoDate
	}
	if _, err := utils.ParseDate(date); err != nil {
		return db, fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}
	if db.HasDate(date) {
		return db, fmt.Errorf("%w: %s", ErrDuplicateDate, date)
	}

	next := db.Clone()
	next.Lists = append([]models.List{{Date: date, Tasks: []models.Task{}}}, next.Lists...)
	return next, nil
}

// DeleteList removes the list for date. Deleting a date that is not present is a no-op.
func DeleteList(db models.Database, date string) (models.Database, error) {
	next := models.Database{Lists: make([]models.List, 0, len(db.Lists))}
	for _, l := range db.Lists {
		if l.Date != date {
			next.Lists = append(next.Lists, l.Clone())
		}
	}
	return next, nil
}

// RenameList changes a list's date in place, keeping its position.
func RenameList(db models.Database, from, to string) (models.Database, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return db, ErrNoDate
	}
	if to == from {
		return db, ErrUnchanged
	}
	if _, err := utils.ParseDate(to); err != nil {
		return db, fmt.Errorf("%w: %s", ErrInvalidDate, to)
	}
	if db.HasDate(to) {
		return db, fmt.Errorf("%w: %s", ErrDuplicateDate, to)
	}
	idx := db.Find(from)
	if idx < 0 {
		return db, fmt.Errorf("%w: %s", ErrListNotFound, from)
	}

	next := db.Clone()
	next.Lists[idx].Date = to
	return next, nil
}

// AddTask appends a new, not-done task with the given id to the list for date.
// Text is trimmed; blank text is rejected.
func AddTask(db models.Database, date, id, text string) (models.Database, models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return db, models.Task{}, ErrEmptyText
	}
	idx := db.Find(date)
	if idx < 0 {
		return db, models.Task{}, fmt.Errorf("%w: %s", ErrListNotFound, date)
	}
	if id == "" || db.Lists[idx].FindTask(id) >= 0 {
		return db, models.Task{}, fmt.Errorf("%w: %q", ErrDuplicateTaskID, id)
	}

	task := models.Task{ID: id, Text: text, Done: false}
	next := db.Clone()
	next.Lists[idx].Tasks = append(next.Lists[idx].Tasks, task)
	return next, task, nil
}

// ToggleTask flips the done flag of the task with id in the list for date.
func ToggleTask(db models.Database, date, id string) (models.Database, error) {
	li, ti, err := locate(db, date, id)
	if err != nil {
		return db, err
	}
	next := db.Clone()
	next.Lists[li].Tasks[ti].Done = !next.Lists[li].Tasks[ti].Done
	return next, nil
}

// EditTask replaces a task's text. Blank text is rejected and the original kept.
func EditTask(db models.Database, date, id, text string) (models.Database, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return db, ErrEmptyText
	}
	li, ti, err := locate(db, date, id)
	if err != nil {
		return db, err
	}
	next := db.Clone()
	next.Lists[li].Tasks[ti].Text = text
	return next, nil
}

// DeleteTask removes the task with id from the list for date.
func DeleteTask(db models.Database, date, id string) (models.Database, error) {
	li, ti, err := locate(db, date, id)
	if err != nil {
		return db, err
	}
	next := db.Clone()
	tasks := next.Lists[li].Tasks
	next.Lists[li].Tasks = append(tasks[:ti:ti], tasks[ti+1:]...)
	return next, nil
}

// Reorder re-keys the lists to follow order. Dates in order that have no list are
// dropped. Lists whose date is missing from order keep their relative order and
// go after the ordered ones, so a stale or partial order never loses a card.
func Reorder(db models.Database, order []string) models.Database {
	byDate := make(map[string]models.List, len(db.Lists))
	for _, l := range db.Lists {
		byDate[l.Date] = l
	}

	next := models.Database{Lists: make([]models.List, 0, len(db.Lists))}
	placed := make(map[string]bool, len(order))
	for _, date := range order {
		l, ok := byDate[date]
		if !ok || placed[date] {
			continue
		}
		placed[date] = true
		next.Lists = append(next.Lists, l.Clone())
	}
	for _, l := range db.Lists {
		if !placed[l.Date] {
			next.Lists = append(next.Lists, l.Clone())
		}
	}
	return next
}

func locate(db models.Database, date, id string) (int, int, error) {
	li := db.Find(date)
	if li < 0 {
		return -1, -1, fmt.Errorf("%w: %s", ErrListNotFound, date)
	}
	ti := db.Lists[li].FindTask(id)
	if ti < 0 {
		return -1, -1, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return li, ti, nil
}
