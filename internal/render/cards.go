// Package render turns a card database into terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daycards/internal/board"
	"github.com/julianstephens/daycards/internal/constants"
	"github.com/julianstephens/daycards/internal/models"
)

// EmptyState is shown in place of the cards when there are none.
const EmptyState = "No date cards yet. Press n to create one."

const (
	defaultWidth = 48
	cardGap      = 1
)

var (
	inkColor   = lipgloss.Color("#1f2937")
	mutedColor = lipgloss.Color("#6b7280")
	focusColor = lipgloss.Color("205")

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Padding(1, 2)

	dateStyle  = lipgloss.NewStyle().Bold(true)
	countStyle = lipgloss.NewStyle().Foreground(mutedColor)
	doneStyle  = lipgloss.NewStyle().Foreground(mutedColor).Strikethrough(true)
)

// Options controls focus and drag highlighting.
type Options struct {
	Width int
	// Selected is the index of the focused card, or -1.
	Selected int
	// Cursor is the focused task within the selected card; -1 focuses the header.
	Cursor int
	// Dragged is the date of the card being dragged, rendered dimmed.
	Dragged string
}

// Board is a rendered set of cards. Boxes gives each card's extent in rows,
// relative to the first row of View, in card order. Rows breaks each card
// down into its header and task lines.
type Board struct {
	View  string
	Boxes []board.Box
	Rows  []Rows
}

// Rows locates the parts of one card. Offsets are relative to the card's top
// border row. Header counts the border row plus the header line as wrapped.
type Rows struct {
	Header int
	Tasks  []board.Box
}

// Colour returns the background colour of the card at index.
func Colour(index int) lipgloss.Color {
	n := len(constants.CardPalette)
	return lipgloss.Color(constants.CardPalette[((index%n)+n)%n])
}

// Cards renders every list as a card, stacked vertically in order.
func Cards(db models.Database, opts Options) Board {
	if len(db.Lists) == 0 {
		return Board{View: emptyStyle.Render(EmptyState), Boxes: []board.Box{}, Rows: []Rows{}}
	}

	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	rendered := make([]string, 0, len(db.Lists))
	boxes := make([]board.Box, 0, len(db.Lists))
	rows := make([]Rows, 0, len(db.Lists))
	top := 0
	for i, l := range db.Lists {
		cursor := -2
		if i == opts.Selected {
			cursor = opts.Cursor
		}
		header, tasks := cardLines(l, cursor)
		card := frame(i, width, cursor, l.Date == opts.Dragged).Render(strings.Join(append([]string{header}, tasks...), "\n"))
		h := lipgloss.Height(card)
		boxes = append(boxes, board.Box{Top: top, Height: h})
		if len(l.Tasks) == 0 {
			tasks = nil
		}
		rows = append(rows, measure(header, tasks, width))
		rendered = append(rendered, card)
		top += h + cardGap
	}

	return Board{
		View:  strings.Join(rendered, strings.Repeat("\n", cardGap+1)),
		Boxes: boxes,
		Rows:  rows,
	}
}

// Card renders one list. cursor is -1 when the header is focused, a task index
// when a task is, and anything lower when the card is not focused.
func Card(l models.List, index, width, cursor int, dimmed bool) string {
	header, tasks := cardLines(l, cursor)
	return frame(index, width, cursor, dimmed).Render(strings.Join(append([]string{header}, tasks...), "\n"))
}

func frame(index, width, cursor int, dimmed bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Background(Colour(index)).
		Foreground(inkColor).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mutedColor).
		Padding(0, 1).
		Width(width)
	if cursor >= -1 {
		style = style.BorderForeground(focusColor)
	}
	if dimmed {
		style = style.Faint(true).BorderStyle(lipgloss.NormalBorder())
	}
	return style
}

// cardLines returns the header and body lines of a card, before wrapping. An
// empty card's body is the single "no tasks" line.
func cardLines(l models.List, cursor int) (string, []string) {
	done := 0
	for _, t := range l.Tasks {
		if t.Done {
			done++
		}
	}
	header := marker(cursor == -1) + dateStyle.Render(l.Date) + " " +
		countStyle.Render(fmt.Sprintf("(%d/%d)", done, len(l.Tasks)))

	if len(l.Tasks) == 0 {
		return header, []string{countStyle.Render("  no tasks")}
	}
	body := make([]string, 0, len(l.Tasks))
	for i, t := range l.Tasks {
		body = append(body, TaskLine(t, cursor == i))
	}
	return header, body
}

// measure wraps each line the way the card frame does, at the width left
// inside the horizontal padding, and records where it lands.
func measure(header string, tasks []string, width int) Rows {
	wrap := lipgloss.NewStyle()
	if inner := width - 2; inner > 0 {
		wrap = wrap.Width(inner)
	}
	r := Rows{Header: 1 + lipgloss.Height(wrap.Render(header)), Tasks: make([]board.Box, 0, len(tasks))}
	top := r.Header
	for _, line := range tasks {
		h := lipgloss.Height(wrap.Render(line))
		r.Tasks = append(r.Tasks, board.Box{Top: top, Height: h})
		top += h
	}
	return r
}

// TaskLine renders a task with its checkbox.
func TaskLine(t models.Task, focused bool) string {
	box := "[ ] "
	text := t.Text
	if t.Done {
		box = "[x] "
		text = doneStyle.Render(text)
	}
	return marker(focused) + box + text
}

func marker(focused bool) string {
	if focused {
		return "> "
	}
	return "  "
}

// CardAt returns the index of the card covering row y, or -1.
func (b Board) CardAt(y int) int {
	for i, box := range b.Boxes {
		if y >= box.Top && y < box.Top+box.Height {
			return i
		}
	}
	return -1
}

// HeaderAt returns the index of the card whose header covers row y, or -1.
func (b Board) HeaderAt(y int) int {
	i := b.CardAt(y)
	if i < 0 || i >= len(b.Rows) || y >= b.Boxes[i].Top+b.Rows[i].Header {
		return -1
	}
	return i
}

// TaskAt returns the index of the task in card i whose lines cover row y, or -1.
func (b Board) TaskAt(i, y int) int {
	if i < 0 || i >= len(b.Boxes) || i >= len(b.Rows) {
		return -1
	}
	row := y - b.Boxes[i].Top
	for t, span := range b.Rows[i].Tasks {
		if row >= span.Top && row < span.Top+span.Height {
			return t
		}
	}
	return -1
}
