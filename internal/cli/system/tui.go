package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daycards/internal/cli"
	"github.com/julianstephens/daycards/internal/tui"
	"github.com/julianstephens/daycards/internal/utils"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	loc, err := utils.LoadLocation(ctx.Config.Timezone)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(
		tui.NewModel(ctx.Service, ctx.Store, loc),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
