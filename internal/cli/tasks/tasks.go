// Package tasks implements the task commands. Tasks are addressed by card date
// and either their id or their 1-based position on the card.
package tasks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/daycards/internal/board"
	"github.com/julianstephens/daycards/internal/cli"
	"github.com/julianstephens/daycards/internal/models"
)

// resolve finds the task ref points at. An exact id match wins over a position.
func resolve(ctx *cli.Context, date, ref string) (models.Task, error) {
	list, err := ctx.FindList(date)
	if err != nil {
		return models.Task{}, err
	}
	if i := list.FindTask(ref); i >= 0 {
		return list.Tasks[i], nil
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil && n >= 1 && n <= len(list.Tasks) {
		return list.Tasks[n-1], nil
	}
	return models.Task{}, fmt.Errorf("%w: %s on %s", board.ErrTaskNotFound, ref, date)
}

type TaskAddCmd struct {
	Date string   `arg:"" help:"Date of the card."`
	Text []string `arg:"" help:"Task text."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Service.AddTask(c.Date, strings.Join(c.Text, " "))
	if err != nil {
		return err
	}
	ctx.Printf("✓ Task added to %s: %s (ID: %s)\n", c.Date, task.Text, task.ID)
	return nil
}

type TaskDoneCmd struct {
	Date string `arg:"" help:"Date of the card."`
	Task string `arg:"" help:"Task ID or position on the card."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	task, err := resolve(ctx, c.Date, c.Task)
	if err != nil {
		return err
	}
	if err := ctx.Service.ToggleTask(c.Date, task.ID); err != nil {
		return err
	}
	state := "done"
	if task.Done {
		state = "not done"
	}
	ctx.Printf("✓ %s marked %s\n", task.Text, state)
	return nil
}

type TaskEditCmd struct {
	Date string   `arg:"" help:"Date of the card."`
	Task string   `arg:"" help:"Task ID or position on the card."`
	Text []string `arg:"" help:"New task text."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := resolve(ctx, c.Date, c.Task)
	if err != nil {
		return err
	}
	text := strings.Join(c.Text, " ")
	if err := ctx.Service.EditTask(c.Date, task.ID, text); err != nil {
		return err
	}
	ctx.Printf("✓ Task updated: %s\n", strings.TrimSpace(text))
	return nil
}

type TaskDeleteCmd struct {
	Date string `arg:"" help:"Date of the card."`
	Task string `arg:"" help:"Task ID or position on the card."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	task, err := resolve(ctx, c.Date, c.Task)
	if err != nil {
		return err
	}
	if err := ctx.Service.DeleteTask(c.Date, task.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Task deleted: %s\n", task.Text)
	return nil
}
