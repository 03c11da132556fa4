package settings

import (
	"strings"

	"github.com/julianstephens/daycards/internal/cli"
)

// NameCmd shows or sets the display name shown in the TUI header.
type NameCmd struct {
	Name  []string `arg:"" optional:"" help:"New display name. Omit to show the current one."`
	Clear bool     `help:"Remove the stored name."`
}

func (c *NameCmd) Run(ctx *cli.Context) error {
	if c.Clear {
		if err := ctx.Store.SetUserName(""); err != nil {
			return err
		}
		ctx.Printf("✓ Name cleared\n")
		return nil
	}

	if len(c.Name) == 0 {
		name := ctx.Store.UserName()
		if name == "" {
			ctx.Printf("No name set. Use 'daycards name <name>' to set one.\n")
			return nil
		}
		ctx.Printf("%s\n", name)
		return nil
	}

	// Stored as typed, like the TUI field.
	name := strings.Join(c.Name, " ")
	if err := ctx.Store.SetUserName(name); err != nil {
		return err
	}
	ctx.Printf("✓ Name set: %s\n", name)
	return nil
}
