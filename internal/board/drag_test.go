package board

import (
	"reflect"
	"testing"
)

// three cards of height 4 stacked from row 0
func stacked(n, height int) []Box {
	boxes := make([]Box, n)
	for i := range boxes {
		boxes[i] = Box{Top: i * height, Height: height}
	}
	return boxes
}

func TestAfterCard(t *testing.T) {
	boxes := stacked(3, 4) // midpoints at 2, 6, 10

	tests := []struct {
		y    int
		want int
	}{
		{y: 0, want: 0},
		{y: 1, want: 0},
		{y: 2, want: 1},
		{y: 5, want: 1},
		{y: 7, want: 2},
		{y: 10, want: -1},
		{y: 30, want: -1},
	}

	for _, tt := range tests {
		if got := AfterCard(boxes, tt.y); got != tt.want {
			t.Errorf("AfterCard(y=%d) = %d, want %d", tt.y, got, tt.want)
		}
	}

	if got := AfterCard(nil, 3); got != -1 {
		t.Errorf("AfterCard(nil) = %d, want -1", got)
	}
}

func TestDragCBeforeA(t *testing.T) {
	d := StartDrag([]string{"A", "B", "C"}, "C")
	d.Over(stacked(3, 4), 0)
	got := d.End()
	if want := []string{"C", "A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("drag C before A = %v, want %v", got, want)
	}

	db := Reorder(listOf("A", "B", "C"), got)
	if want := []string{"C", "A", "B"}; !reflect.DeepEqual(db.Dates(), want) {
		t.Errorf("persisted order = %v, want %v", db.Dates(), want)
	}
}

func TestDragToEnd(t *testing.T) {
	d := StartDrag([]string{"A", "B", "C"}, "A")
	d.Over(stacked(3, 4), 11)
	if got, want := d.Order(), []string{"B", "C", "A"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

func TestDragOverOwnCardIsNoop(t *testing.T) {
	d := StartDrag([]string{"A", "B", "C"}, "B")
	// y=5 is just above B's midpoint, so the after-card is B itself
	d.Over(stacked(3, 4), 5)
	if got, want := d.Order(), []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

func TestDragLiveMoves(t *testing.T) {
	d := StartDrag([]string{"A", "B", "C", "D"}, "D")
	d.Over(stacked(4, 2), 2) // before B
	if got, want := d.Order(), []string{"A", "D", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("first Over = %v, want %v", got, want)
	}
	d.Over(stacked(4, 2), 0) // before A
	if got, want := d.Order(), []string{"D", "A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("second Over = %v, want %v", got, want)
	}
	if d.Dragged() != "D" {
		t.Errorf("Dragged() = %q", d.Dragged())
	}
	d.End()
	if d.Dragged() != "" {
		t.Error("End() should clear the dragged card")
	}
}

func TestDragIgnoresMismatchedBoxes(t *testing.T) {
	d := StartDrag([]string{"A", "B"}, "B")
	d.Over(stacked(5, 2), 0)
	if got, want := d.Order(), []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

func TestMoveBy(t *testing.T) {
	order := []string{"A", "B", "C", "D"}
	tests := []struct {
		date  string
		delta int
		want  []string
	}{
		{date: "C", delta: -1, want: []string{"A", "C", "B", "D"}},
		{date: "A", delta: 2, want: []string{"B", "C", "A", "D"}},
		{date: "A", delta: -3, want: []string{"A", "B", "C", "D"}},
		{date: "B", delta: 10, want: []string{"A", "C", "D", "B"}},
		{date: "Z", delta: 1, want: []string{"A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		if got := MoveBy(order, tt.date, tt.delta); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("MoveBy(%s, %d) = %v, want %v", tt.date, tt.delta, got, tt.want)
		}
	}
	if !reflect.DeepEqual(order, []string{"A", "B", "C", "D"}) {
		t.Error("MoveBy() mutated its input")
	}
}
