package board

import "math"

// Box is the vertical extent of a rendered card, in rows.
type Box struct {
	Top    int
	Height int
}

// AfterCard returns the index of the card the dragged card should be inserted
// before when the pointer is at row y: the card whose midpoint is the nearest one
// below the pointer. It returns -1 when no midpoint is below y, meaning append.
func AfterCard(boxes []Box, y int) int {
	closest := -1
	best := math.Inf(-1)
	for i, b := range boxes {
		offset := float64(y) - float64(b.Top) - float64(b.Height)/2
		if offset < 0 && offset > best {
			best = offset
			closest = i
		}
	}
	return closest
}

// Drag tracks one card being dragged. The visual order changes live on every
// Over call; nothing is persisted until the caller hands End's result to Reorder.
type Drag struct {
	order   []string
	dragged string
}

// StartDrag begins dragging the card for date within order.
func StartDrag(order []string, date string) *Drag {
	return &Drag{
		order:   append([]string(nil), order...),
		dragged: date,
	}
}

// Dragged returns the date of the card being dragged.
func (d *Drag) Dragged() string {
	return d.dragged
}

// Order returns the current visual order.
func (d *Drag) Order() []string {
	return append([]string(nil), d.order...)
}

// Over moves the dragged card for a pointer at row y. boxes must describe the
// cards in the current visual order, dragged card included.
func (d *Drag) Over(boxes []Box, y int) {
	if d.dragged == "" || len(boxes) != len(d.order) {
		return
	}
	idx := AfterCard(boxes, y)
	if idx >= 0 && d.order[idx] == d.dragged {
		return
	}

	target := ""
	if idx >= 0 {
		target = d.order[idx]
	}
	rest := make([]string, 0, len(d.order))
	for _, date := range d.order {
		if date != d.dragged {
			rest = append(rest, date)
		}
	}
	if target == "" {
		d.order = append(rest, d.dragged)
		return
	}

	next := make([]string, 0, len(d.order))
	for _, date := range rest {
		if date == target {
			next = append(next, d.dragged)
		}
		next = append(next, date)
	}
	d.order = next
}

// End finishes the drag and returns the final visual order.
func (d *Drag) End() []string {
	order := d.Order()
	d.dragged = ""
	return order
}

// MoveBy shifts the card for date by delta positions, clamped to the ends.
// It is the keyboard counterpart of a drag.
func MoveBy(order []string, date string, delta int) []string {
	out := append([]string(nil), order...)
	from := -1
	for i, d := range out {
		if d == date {
			from = i
			break
		}
	}
	if from < 0 {
		return out
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(out)-1 {
		to = len(out) - 1
	}
	for from < to {
		out[from], out[from+1] = out[from+1], out[from]
		from++
	}
	for from > to {
		out[from], out[from-1] = out[from-1], out[from]
		from--
	}
	return out
}
