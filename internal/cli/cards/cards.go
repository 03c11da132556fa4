// Package cards implements the card commands.
package cards

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/daycards/internal/board"
	"github.com/julianstephens/daycards/internal/cli"
	"github.com/julianstephens/daycards/internal/models"
)

type CardAddCmd struct {
	Date string `arg:"" optional:"" help:"Date of the card (YYYY-MM-DD). Defaults to today."`
}

func (c *CardAddCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "" {
		today, err := ctx.Today()
		if err != nil {
			return err
		}
		date = today
	}
	if err := ctx.Service.CreateList(date); err != nil {
		return err
	}
	ctx.Printf("✓ Card created: %s\n", strings.TrimSpace(date))
	return nil
}

type CardDeleteCmd struct {
	Date string `arg:"" help:"Date of the card to delete."`
	Yes  bool   `short:"y" help:"Delete without asking for confirmation."`
}

func (c *CardDeleteCmd) Run(ctx *cli.Context) error {
	list, err := ctx.FindList(c.Date)
	if err != nil {
		ctx.Printf("No card for %s\n", c.Date)
		return nil
	}

	question := fmt.Sprintf("Delete the card for %s and its %d task(s)?", list.Date, len(list.Tasks))
	ok, err := ctx.Confirm(question, c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Printf("Delete cancelled.\n")
		return nil
	}

	if err := ctx.Service.DeleteList(list.Date); err != nil {
		return err
	}
	ctx.Printf("✓ Card deleted: %s\n", list.Date)
	return nil
}

type CardRenameCmd struct {
	From string `arg:"" help:"Current date of the card."`
	To   string `arg:"" help:"New date (YYYY-MM-DD)."`
}

func (c *CardRenameCmd) Run(ctx *cli.Context) error {
	if err := ctx.Service.RenameList(c.From, c.To); err != nil {
		return err
	}
	ctx.Printf("✓ Card %s is now %s\n", c.From, strings.TrimSpace(c.To))
	return nil
}

type CardListCmd struct {
	ShowIDs bool `help:"Show task IDs." name:"show-ids"`
	JSON    bool `help:"Print the cards as JSON."`
}

func (c *CardListCmd) Run(ctx *cli.Context) error {
	db := ctx.Service.Database()

	if c.JSON {
		out := db.Clone()
		out.Normalize()
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal cards: %w", err)
		}
		ctx.Printf("%s\n", data)
		return nil
	}

	if len(db.Lists) == 0 {
		ctx.Printf("No cards yet. Create one with 'daycards card add'.\n")
		return nil
	}
	for i, l := range db.Lists {
		if i > 0 {
			ctx.Printf("\n")
		}
		printList(ctx, l, c.ShowIDs)
	}
	return nil
}

func printList(ctx *cli.Context, l models.List, showIDs bool) {
	done := 0
	for _, t := range l.Tasks {
		if t.Done {
			done++
		}
	}
	ctx.Printf("%s (%d/%d)\n", l.Date, done, len(l.Tasks))
	for i, t := range l.Tasks {
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		idStr := ""
		if showIDs {
			idStr = fmt.Sprintf(" (ID: %s)", t.ID)
		}
		ctx.Printf("  %d. %s %s%s\n", i+1, box, t.Text, idStr)
	}
}

// ReorderCmd sets the card order. Cards left out keep their relative order after
// the ones named; unknown dates are skipped.
type ReorderCmd struct {
	Dates []string `arg:"" help:"Card dates in the new order."`
}

func (c *ReorderCmd) Run(ctx *cli.Context) error {
	db := ctx.Service.Database()
	var unknown []string
	for _, date := range c.Dates {
		if !db.HasDate(date) {
			unknown = append(unknown, date)
		}
	}
	if len(unknown) == len(c.Dates) {
		return fmt.Errorf("%w: %s", board.ErrListNotFound, strings.Join(unknown, ", "))
	}
	if len(unknown) > 0 {
		ctx.Printf("Skipping unknown date(s): %s\n", strings.Join(unknown, ", "))
	}
	if err := ctx.Service.Reorder(c.Dates); err != nil {
		return err
	}
	ctx.Printf("✓ Card order: %s\n", strings.Join(ctx.Service.Database().Dates(), ", "))
	return nil
}
