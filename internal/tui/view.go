package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daycards/internal/constants"
	"github.com/julianstephens/daycards/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateCreateCard, constants.StateRenameCard, constants.StateAddTask, constants.StateEditTask:
		content = formStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = m.viewport.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewFooter(),
	)
}

func (m Model) viewHeader() string {
	date, clock := utils.FormatClock(m.now)
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(constants.AppName),
		clockStyle.Render(date+"  "+clock),
	)
	name := lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("Name:"),
		m.nameInput.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, name)
}

// boardTop is the screen row of the first viewport line.
func (m Model) boardTop() int {
	return lipgloss.Height(m.viewHeader())
}

func (m Model) viewFooter() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		statusStyle.Render(m.status),
		m.help.View(m.keys),
	)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.viewport.Height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete the card for %s?", m.toDelete)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
