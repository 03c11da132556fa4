package board

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/julianstephens/daycards/internal/models"
)

func listOf(dates ...string) models.Database {
	db := models.NewDatabase()
	for _, d := range dates {
		db.Lists = append(db.Lists, models.List{Date: d, Tasks: []models.Task{}})
	}
	return db
}

func TestCreateList(t *testing.T) {
	tests := []struct {
		name      string
		db        models.Database
		date      string
		wantErr   error
		wantDates []string
	}{
		{name: "first card", db: listOf(), date: "2024-01-01", wantDates: []string{"2024-01-01"}},
		{name: "inserted at front", db: listOf("2024-01-01"), date: "2024-01-05", wantDates: []string{"2024-01-05", "2024-01-01"}},
		{name: "no date", db: listOf("2024-01-01"), date: "  ", wantErr: ErrNoDate, wantDates: []string{"2024-01-01"}},
		{name: "duplicate", db: listOf("2024-01-01"), date: "2024-01-01", wantErr: ErrDuplicateDate, wantDates: []string{"2024-01-01"}},
		{name: "bad format", db: listOf(), date: "Jan 1", wantErr: ErrInvalidDate, wantDates: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CreateList(tt.db, tt.date)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateList() error = %v, want %v", err, tt.wantErr)
			}
			if dates := got.Dates(); !reflect.DeepEqual(dates, tt.wantDates) {
				t.Errorf("CreateList() dates = %v, want %v", dates, tt.wantDates)
			}
		})
	}
}

func TestCreateListDoesNotMutateInput(t *testing.T) {
	db := listOf("2024-01-01")
	if _, err := CreateList(db, "2024-01-02"); err != nil {
		t.Fatalf("CreateList() failed: %v", err)
	}
	if len(db.Lists) != 1 {
		t.Errorf("input database changed: %v", db.Dates())
	}
}

func TestDeleteList(t *testing.T) {
	db := listOf("2024-01-03", "2024-01-02", "2024-01-01")
	got, err := DeleteList(db, "2024-01-02")
	if err != nil {
		t.Fatalf("DeleteList() failed: %v", err)
	}
	if want := []string{"2024-01-03", "2024-01-01"}; !reflect.DeepEqual(got.Dates(), want) {
		t.Errorf("DeleteList() dates = %v, want %v", got.Dates(), want)
	}

	got, err = DeleteList(got, "1999-01-01")
	if err != nil || len(got.Lists) != 2 {
		t.Errorf("DeleteList() of absent date = %v, %v; want no-op", got.Dates(), err)
	}
}

func TestRenameList(t *testing.T) {
	tests := []struct {
		name      string
		from, to  string
		wantErr   error
		wantDates []string
	}{
		{name: "rename keeps position", from: "2024-01-02", to: "2024-02-01", wantDates: []string{"2024-01-01", "2024-02-01", "2024-01-03"}},
		{name: "collision rejected", from: "2024-01-01", to: "2024-01-02", wantErr: ErrDuplicateDate, wantDates: []string{"2024-01-01", "2024-01-02", "2024-01-03"}},
		{name: "unchanged", from: "2024-01-01", to: "2024-01-01", wantErr: ErrUnchanged, wantDates: []string{"2024-01-01", "2024-01-02", "2024-01-03"}},
		{name: "empty", from: "2024-01-01", to: "", wantErr: ErrNoDate, wantDates: []string{"2024-01-01", "2024-01-02", "2024-01-03"}},
		{name: "missing source", from: "2023-12-31", to: "2024-05-05", wantErr: ErrListNotFound, wantDates: []string{"2024-01-01", "2024-01-02", "2024-01-03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := listOf("2024-01-01", "2024-01-02", "2024-01-03")
			got, err := RenameList(db, tt.from, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RenameList() error = %v, want %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got.Dates(), tt.wantDates) {
				t.Errorf("RenameList() dates = %v, want %v", got.Dates(), tt.wantDates)
			}
		})
	}
}

func TestRenameListKeepsTasks(t *testing.T) {
	db := listOf("2024-01-01")
	db, _, err := AddTask(db, "2024-01-01", "t1", "Buy milk")
	if err != nil {
		t.Fatalf("AddTask() failed: %v", err)
	}
	got, err := RenameList(db, "2024-01-01", "2024-01-09")
	if err != nil {
		t.Fatalf("RenameList() failed: %v", err)
	}
	if len(got.Lists[0].Tasks) != 1 || got.Lists[0].Tasks[0].Text != "Buy milk" {
		t.Errorf("RenameList() lost tasks: %+v", got.Lists[0])
	}
}

func TestAddTask(t *testing.T) {
	db := listOf("2024-01-01")

	got, task, err := AddTask(db, "2024-01-01", "1", "  Buy milk  ")
	if err != nil {
		t.Fatalf("AddTask() failed: %v", err)
	}
	if task.Text != "Buy milk" || task.Done || task.ID != "1" {
		t.Errorf("AddTask() task = %+v", task)
	}
	got, _, err = AddTask(got, "2024-01-01", "2", "Call mom")
	if err != nil {
		t.Fatalf("AddTask() failed: %v", err)
	}
	if n := len(got.Lists[0].Tasks); n != 2 || got.Lists[0].Tasks[1].Text != "Call mom" {
		t.Errorf("AddTask() should append, got %+v", got.Lists[0].Tasks)
	}

	for _, text := range []string{"", "   ", "\t\n"} {
		same, _, err := AddTask(got, "2024-01-01", "3", text)
		if !errors.Is(err, ErrEmptyText) {
			t.Errorf("AddTask(%q) error = %v, want ErrEmptyText", text, err)
		}
		if len(same.Lists[0].Tasks) != 2 {
			t.Errorf("AddTask(%q) changed task list", text)
		}
	}

	if _, _, err := AddTask(got, "2024-01-01", "1", "dup"); !errors.Is(err, ErrDuplicateTaskID) {
		t.Errorf("AddTask() with used id error = %v, want ErrDuplicateTaskID", err)
	}
	if _, _, err := AddTask(got, "2030-01-01", "9", "x"); !errors.Is(err, ErrListNotFound) {
		t.Errorf("AddTask() unknown date error = %v, want ErrListNotFound", err)
	}
}

func TestToggleTaskTwiceRestores(t *testing.T) {
	db := listOf("2024-01-01", "2024-01-02")
	db, _, _ = AddTask(db, "2024-01-01", "1", "a")
	db, _, _ = AddTask(db, "2024-01-02", "1", "same id, other card")

	once, err := ToggleTask(db, "2024-01-01", "1")
	if err != nil {
		t.Fatalf("ToggleTask() failed: %v", err)
	}
	if !once.Lists[0].Tasks[0].Done {
		t.Error("ToggleTask() did not set done")
	}
	if once.Lists[1].Tasks[0].Done {
		t.Error("ToggleTask() touched a task on another card")
	}
	twice, err := ToggleTask(once, "2024-01-01", "1")
	if err != nil {
		t.Fatalf("ToggleTask() failed: %v", err)
	}
	if !reflect.DeepEqual(twice, db) {
		t.Errorf("toggle twice = %+v, want %+v", twice, db)
	}

	if _, err := ToggleTask(db, "2024-01-01", "nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("ToggleTask() missing id error = %v", err)
	}
}

func TestEditTask(t *testing.T) {
	db := listOf("2024-01-01")
	db, _, _ = AddTask(db, "2024-01-01", "1", "old")

	got, err := EditTask(db, "2024-01-01", "1", " new text ")
	if err != nil {
		t.Fatalf("EditTask() failed: %v", err)
	}
	if got.Lists[0].Tasks[0].Text != "new text" {
		t.Errorf("EditTask() text = %q", got.Lists[0].Tasks[0].Text)
	}

	kept, err := EditTask(db, "2024-01-01", "1", "   ")
	if !errors.Is(err, ErrEmptyText) {
		t.Errorf("EditTask() blank error = %v", err)
	}
	if kept.Lists[0].Tasks[0].Text != "old" {
		t.Errorf("EditTask() blank replaced text with %q", kept.Lists[0].Tasks[0].Text)
	}
}

func TestDeleteTask(t *testing.T) {
	db := listOf("2024-01-01")
	db, _, _ = AddTask(db, "2024-01-01", "1", "a")
	db, _, _ = AddTask(db, "2024-01-01", "2", "b")
	db, _, _ = AddTask(db, "2024-01-01", "3", "c")

	got, err := DeleteTask(db, "2024-01-01", "2")
	if err != nil {
		t.Fatalf("DeleteTask() failed: %v", err)
	}
	var ids []string
	for _, task := range got.Lists[0].Tasks {
		ids = append(ids, task.ID)
	}
	if !reflect.DeepEqual(ids, []string{"1", "3"}) {
		t.Errorf("DeleteTask() ids = %v", ids)
	}
	if len(db.Lists[0].Tasks) != 3 || db.Lists[0].Tasks[1].ID != "2" {
		t.Error("DeleteTask() mutated its input")
	}
}

func TestReorder(t *testing.T) {
	db := listOf("A", "B", "C")

	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{name: "full order", order: []string{"C", "A", "B"}, want: []string{"C", "A", "B"}},
		{name: "unknown dates dropped", order: []string{"B", "ghost", "A", "C"}, want: []string{"B", "A", "C"}},
		{name: "missing dates kept at end", order: []string{"C"}, want: []string{"C", "A", "B"}},
		{name: "duplicates ignored", order: []string{"B", "B", "A", "C"}, want: []string{"B", "A", "C"}},
		{name: "empty order", order: nil, want: []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reorder(db, tt.order)
			if !reflect.DeepEqual(got.Dates(), tt.want) {
				t.Errorf("Reorder() = %v, want %v", got.Dates(), tt.want)
			}
		})
	}
}

// Random sequences of list and task commands must keep dates unique across the
// database and ids unique within each list.
func TestCommandSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}
	ids := []string{"a", "b", "c", "d"}

	db := models.NewDatabase()
	for step := 0; step < 2000; step++ {
		date := dates[rng.Intn(len(dates))]
		other := dates[rng.Intn(len(dates))]
		id := ids[rng.Intn(len(ids))]

		var next models.Database
		var err error
		switch rng.Intn(8) {
		case 0:
			next, err = CreateList(db, date)
		case 1:
			next, err = DeleteList(db, date)
		case 2:
			next, err = RenameList(db, date, other)
		case 3:
			next, _, err = AddTask(db, date, id, fmt.Sprintf("task %d", step))
		case 4:
			next, err = ToggleTask(db, date, id)
		case 5:
			next, err = EditTask(db, date, id, "edited")
		case 6:
			next, err = DeleteTask(db, date, id)
		case 7:
			next = Reorder(db, []string{other, date})
		}
		if err != nil {
			if !IsValidation(err) {
				t.Fatalf("step %d: unexpected error type: %v", step, err)
			}
			continue
		}
		if err := next.Validate(); err != nil {
			t.Fatalf("step %d: invariant broken: %v", step, err)
		}
		db = next
	}
}
