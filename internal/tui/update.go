package tui

import (
	"errors"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycards/internal/board"
	"github.com/julianstephens/daycards/internal/constants"
	"github.com/julianstephens/daycards/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg).In(m.loc)
		return m, tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.form != nil {
			m.form = m.form.WithWidth(m.cardWidth())
		}
		return m, nil
	}

	switch m.state {
	case constants.StateCreateCard, constants.StateRenameCard, constants.StateAddTask, constants.StateEditTask:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case constants.StateEditName:
		return m.updateName(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		return m.updateCards(msg)
	}
	return m, nil
}

func (m Model) updateCards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.NextCard):
		m.selectCard(m.selected + 1)
	case key.Matches(msg, m.keys.PrevCard):
		m.selectCard(m.selected - 1)
	case key.Matches(msg, m.keys.MoveUp):
		m.moveCard(-1)
	case key.Matches(msg, m.keys.MoveDown):
		m.moveCard(1)
	case key.Matches(msg, m.keys.NewCard):
		today := m.now.Format(constants.DateFormat)
		return m.openForm(constants.StateCreateCard, "New date card", constants.DateFormat, &formValues{Text: today})
	case key.Matches(msg, m.keys.Name):
		m.state = constants.StateEditName
		return m, m.nameInput.Focus()
	}

	l, ok := m.selectedList()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Rename):
		return m.openForm(constants.StateRenameCard, "Change date", constants.DateFormat, &formValues{Text: l.Date, date: l.Date})
	case key.Matches(msg, m.keys.Add):
		return m.openForm(constants.StateAddTask, "Add task to "+l.Date, "What needs doing?", &formValues{date: l.Date})
	case key.Matches(msg, m.keys.Toggle):
		if _, t, ok := m.selectedTask(); ok {
			m.report(m.service.ToggleTask(l.Date, t.ID))
			m.reload()
		} else if m.cursor == -1 && msg.Type == tea.KeyEnter {
			return m.openForm(constants.StateRenameCard, "Change date", constants.DateFormat, &formValues{Text: l.Date, date: l.Date})
		}
	case key.Matches(msg, m.keys.Edit):
		if _, t, ok := m.selectedTask(); ok {
			return m.openForm(constants.StateEditTask, "Edit task", "", &formValues{Text: t.Text, date: l.Date, id: t.ID})
		}
	case key.Matches(msg, m.keys.Delete):
		if _, t, ok := m.selectedTask(); ok {
			m.report(m.service.DeleteTask(l.Date, t.ID))
			m.reload()
			return m, nil
		}
		m.toDelete = l.Date
		m.state = constants.StateConfirmDelete
	}
	return m, nil
}

// moveCursor steps through card headers and tasks as one list of rows.
func (m *Model) moveCursor(delta int) {
	if len(m.db.Lists) == 0 {
		return
	}
	switch {
	case delta > 0 && m.cursor < len(m.db.Lists[m.selected].Tasks)-1:
		m.cursor++
	case delta > 0 && m.selected < len(m.db.Lists)-1:
		m.selected++
		m.cursor = -1
	case delta < 0 && m.cursor > -1:
		m.cursor--
	case delta < 0 && m.selected > 0:
		m.selected--
		m.cursor = len(m.db.Lists[m.selected].Tasks) - 1
	}
	m.syncBoard()
}

func (m *Model) selectCard(i int) {
	if i < 0 || i >= len(m.db.Lists) {
		return
	}
	m.selected = i
	m.cursor = -1
	m.syncBoard()
}

func (m *Model) moveCard(delta int) {
	l, ok := m.selectedList()
	if !ok {
		return
	}
	if err := m.service.Move(l.Date, delta); err != nil {
		m.report(err)
	}
	m.reload()
	m.selectCard(m.db.Find(l.Date))
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	y := msg.Y - m.boardTop() + m.viewport.YOffset

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.status = ""
		if i := m.layout.HeaderAt(y); i >= 0 {
			m.selected, m.cursor = i, -1
			m.drag = board.StartDrag(m.db.Dates(), m.db.Lists[i].Date)
			logger.Debug("Drag started", "date", m.db.Lists[i].Date)
			m.syncBoard()
			return m, nil
		}
		i := m.layout.CardAt(y)
		if i < 0 {
			return m, nil
		}
		m.selected, m.cursor = i, -1
		if t := m.layout.TaskAt(i, y); t >= 0 && t < len(m.db.Lists[i].Tasks) {
			m.cursor = t
			m.report(m.service.ToggleTask(m.db.Lists[i].Date, m.db.Lists[i].Tasks[t].ID))
		}
		m.reload()
	case tea.MouseActionMotion:
		if m.drag == nil {
			return m, nil
		}
		m.drag.Over(m.layout.Boxes, y)
		m.syncBoard()
	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		dragged := m.drag.Dragged()
		order := m.drag.End()
		m.drag = nil
		if !slices.Equal(order, m.db.Dates()) {
			logger.Debug("Drag dropped", "date", dragged, "order", order)
			m.report(m.service.Reorder(order))
		}
		m.reload()
		m.selectCard(m.db.Find(dragged))
	}
	return m, nil
}

func (m Model) openForm(state constants.SessionState, title, placeholder string, values *formValues) (tea.Model, tea.Cmd) {
	m.status = ""
	m.values = values
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&values.Text),
		),
	).WithShowHelp(false).WithWidth(m.cardWidth())
	m.state = state
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm(), nil
	case huh.StateAborted:
		return m.closeForm(), nil
	}
	return m, cmd
}

// submitForm applies the completed form's values through the service.
func (m Model) submitForm() Model {
	v := m.values
	state := m.state
	m = m.closeForm()

	switch state {
	case constants.StateCreateCard:
		if err := m.service.CreateList(v.Text); err != nil {
			m.report(err)
			break
		}
		m.selected, m.cursor = 0, -1
	case constants.StateRenameCard:
		m.report(m.service.RenameList(v.date, v.Text))
	case constants.StateAddTask:
		t, err := m.service.AddTask(v.date, v.Text)
		m.report(err)
		m.reload()
		if err == nil {
			m.selected = m.db.Find(v.date)
			m.cursor = m.db.Lists[m.selected].FindTask(t.ID)
		}
	case constants.StateEditTask:
		m.report(m.service.EditTask(v.date, v.id, v.Text))
	}
	m.reload()
	return m
}

func (m Model) closeForm() Model {
	m.form = nil
	m.values = nil
	m.state = constants.StateCards
	return m
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.report(m.service.DeleteList(m.toDelete))
		m.toDelete = ""
		m.state = constants.StateCards
		m.reload()
	case "n", "N", "esc", "q":
		m.toDelete = ""
		m.state = constants.StateCards
	}
	return m, nil
}

// updateName feeds the name input and persists every change as it is typed.
func (m Model) updateName(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc, tea.KeyEnter, tea.KeyTab:
			m.nameInput.Blur()
			m.state = constants.StateCards
			return m, nil
		}
	}

	before := m.nameInput.Value()
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	if after := m.nameInput.Value(); after != before {
		m.report(m.names.SetUserName(after))
	}
	return m, cmd
}

// report shows err in the status line. Unchanged dates and blank text are
// dropped silently, leaving the card as it was.
func (m *Model) report(err error) {
	switch {
	case err == nil, errors.Is(err, board.ErrUnchanged), errors.Is(err, board.ErrEmptyText):
		m.status = ""
	default:
		m.status = err.Error()
	}
}
