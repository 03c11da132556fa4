// Package tui is the interactive card board.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daycards/internal/board"
	"github.com/julianstephens/daycards/internal/constants"
	"github.com/julianstephens/daycards/internal/models"
	"github.com/julianstephens/daycards/internal/render"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxCardWidth  = 72
	minCardWidth  = 20
)

// NameStore persists the display name shown in the header.
type NameStore interface {
	UserName() string
	SetUserName(name string) error
}

// formValues backs the open huh form. It is heap allocated so the form's value
// bindings survive Model copies.
type formValues struct {
	Text string
	date string
	id   string
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(constants.ClockInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type Model struct {
	service   *board.Service
	names     NameStore
	loc       *time.Location
	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	viewport  viewport.Model
	nameInput textinput.Model
	form      *huh.Form
	values    *formValues
	db        models.Database
	layout    render.Board
	drag      *board.Drag
	selected  int
	cursor    int // -1 is the card header
	now       time.Time
	status    string
	toDelete  string
	width     int
	height    int
	quitting  bool
}

func NewModel(service *board.Service, names NameStore, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}

	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.Prompt = ""
	ti.SetValue(names.UserName())

	m := Model{
		service:   service,
		names:     names,
		loc:       loc,
		state:     constants.StateCards,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		viewport:  viewport.New(defaultWidth, defaultHeight),
		nameInput: ti,
		cursor:    -1,
		now:       time.Now().In(loc),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.reload()
	m.resize()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// reload re-reads the database and clamps the selection to it.
func (m *Model) reload() {
	m.db = m.service.Database()
	m.clampSelection()
	m.syncBoard()
}

func (m *Model) clampSelection() {
	n := len(m.db.Lists)
	if n == 0 {
		m.selected, m.cursor = 0, -1
		return
	}
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if tasks := len(m.db.Lists[m.selected].Tasks); m.cursor >= tasks {
		m.cursor = tasks - 1
	}
	if m.cursor < -1 {
		m.cursor = -1
	}
}

// visible is the database in the order currently on screen.
func (m Model) visible() models.Database {
	if m.drag != nil {
		return board.Reorder(m.db, m.drag.Order())
	}
	return m.db
}

func (m *Model) syncBoard() {
	opts := render.Options{Width: m.cardWidth(), Selected: m.selected, Cursor: m.cursor}
	if len(m.db.Lists) == 0 {
		opts.Selected = -1
	}
	if m.drag != nil {
		opts.Dragged = m.drag.Dragged()
		opts.Selected = m.visible().Find(opts.Dragged)
		opts.Cursor = -1
	}
	m.layout = render.Cards(m.visible(), opts)
	m.viewport.SetContent(m.layout.View)
	m.scrollTo(opts.Selected)
}

// scrollTo brings card i of the visible order fully into view where it fits.
func (m *Model) scrollTo(i int) {
	if i < 0 || i >= len(m.layout.Boxes) {
		return
	}
	box := m.layout.Boxes[i]
	switch {
	case box.Top < m.viewport.YOffset:
		m.viewport.SetYOffset(box.Top)
	case box.Top+box.Height > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(box.Top + box.Height - m.viewport.Height)
	}
}

func (m Model) cardWidth() int {
	w := m.width - 4
	if w > maxCardWidth {
		w = maxCardWidth
	}
	if w < minCardWidth {
		w = minCardWidth
	}
	return w
}

// resize fits the viewport between the header and the footer.
func (m *Model) resize() {
	chrome := lipgloss.Height(m.viewHeader()) + lipgloss.Height(m.viewFooter())
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	m.help.Width = m.width
	m.syncBoard()
}

func (m Model) selectedList() (models.List, bool) {
	if m.selected < 0 || m.selected >= len(m.db.Lists) {
		return models.List{}, false
	}
	return m.db.Lists[m.selected], true
}

func (m Model) selectedTask() (models.List, models.Task, bool) {
	l, ok := m.selectedList()
	if !ok || m.cursor < 0 || m.cursor >= len(l.Tasks) {
		return l, models.Task{}, false
	}
	return l, l.Tasks[m.cursor], true
}
