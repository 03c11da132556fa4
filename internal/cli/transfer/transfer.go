// Package transfer moves the card database in and out as a JSON document.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/daycards/internal/cli"
	"github.com/julianstephens/daycards/internal/logger"
	"github.com/julianstephens/daycards/internal/models"
	"github.com/julianstephens/daycards/internal/schema"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	raw, ok, err := ctx.Store.Raw()
	if err != nil {
		return fmt.Errorf("failed to read storage: %w", err)
	}
	if !ok {
		data, err := models.Encode(models.NewDatabase())
		if err != nil {
			return err
		}
		raw = string(data)
	}

	if c.Output == "" {
		ctx.Printf("%s\n", raw)
		return nil
	}
	if err := os.WriteFile(c.Output, []byte(raw+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ctx.Printf("✓ Exported to %s\n", c.Output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"JSON document to import, or - for stdin."`
	Yes  bool   `short:"y" help:"Replace existing cards without asking."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := c.read(ctx)
	if err != nil {
		return err
	}

	db, err := schema.Validate(data)
	if err != nil {
		return err
	}

	current := ctx.Service.Database()
	if len(current.Lists) > 0 {
		if c.File == "-" && !c.Yes {
			return errors.New("importing from stdin would replace existing cards; pass --yes to confirm")
		}
		question := fmt.Sprintf("Replace %d existing card(s) with %d imported card(s)?", len(current.Lists), len(db.Lists))
		ok, err := ctx.Confirm(question, c.Yes)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Printf("Import cancelled.\n")
			return nil
		}
		ctx.PerformAutomaticBackup()
	}

	if err := ctx.Service.Replace(db); err != nil {
		return err
	}
	total, done := db.TaskCount()
	logger.Info("Imported card database", "lists", len(db.Lists), "tasks", total)
	ctx.Printf("✓ Imported %d card(s), %d task(s) (%d done)\n", len(db.Lists), total, done)
	return nil
}

func (c *ImportCmd) read(ctx *cli.Context) ([]byte, error) {
	if c.File != "-" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read import file: %w", err)
		}
		return data, nil
	}
	var in io.Reader = os.Stdin
	if ctx.In != nil {
		in = ctx.In
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
