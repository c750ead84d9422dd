package ability

import "testing"

func TestGridRoute(t *testing.T) {
	g, _ := buildFullGrid(t, 3, 3)

	route := g.Route(g.Cell(0, 0), g.Cell(2, 2), 0)
	if len(route) != 5 {
		t.Fatalf("route length %d, want 5", len(route))
	}
	for i := 1; i < len(route); i++ {
		ax, ay := route[i-1].Position()
		bx, by := route[i].Position()
		if abs(ax-bx)+abs(ay-by) != 1 {
			t.Fatalf("route step %d is not adjacent", i)
		}
	}

	if r := g.Route(g.Cell(1, 1), g.Cell(1, 1), 0); len(r) != 1 {
		t.Fatalf("route to self should be the cell itself, got %d", len(r))
	}
}

func TestGridRouteFollowsTransitions(t *testing.T) {
	g := NewGrid(3, 2)
	right := &Transition{Name: "right"}
	up := &Transition{Name: "up"}
	down := &Transition{Name: "down"}
	err := g.Build(func(x, y int) *Cell {
		switch {
		case y == 0 && x < 2:
			return NewCell(nil, [4]*Transition{Up: up})
		case y == 1 && x < 2:
			return NewCell(nil, [4]*Transition{Right: right})
		case x == 2 && y == 1:
			return NewCell(nil, [4]*Transition{Down: down})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	route := g.Route(g.Cell(0, 0), g.Cell(2, 0), 0)
	want := [][2]int{{0, 0}, {0, 1}, {1, 1}, {2, 1}, {2, 0}}
	if len(route) != len(want) {
		t.Fatalf("route length %d, want %d", len(route), len(want))
	}
	for i, c := range route {
		x, y := c.Position()
		if x != want[i][0] || y != want[i][1] {
			t.Fatalf("step %d at (%d,%d), want %v", i, x, y, want[i])
		}
	}

	if r := g.Route(g.Cell(2, 0), g.Cell(0, 0), 0); r != nil {
		t.Fatalf("dead-end cell should have no route, got %d steps", len(r))
	}

	// rotating the start cell breaks the chain
	g.RotateCell(g.Cell(0, 0), true)
	g.RotateCell(g.Cell(1, 0), true)
	if r := g.Route(g.Cell(0, 0), g.Cell(2, 0), 0); r != nil {
		t.Fatalf("route should be gone after rotation")
	}
}

func TestGridStepToward(t *testing.T) {
	g, _ := buildFullGrid(t, 3, 3)
	if g.StepToward(g.Cell(2, 2)) {
		t.Fatalf("stepping without a current cell should fail")
	}
	g.MoveCell(g.Cell(0, 0))
	for i := 0; i < 4; i++ {
		if !g.StepToward(g.Cell(2, 2)) {
			t.Fatalf("step %d failed", i)
		}
	}
	if g.Current() != g.Cell(2, 2) {
		t.Fatalf("expected to arrive at the target")
	}
	if g.StepToward(g.Cell(2, 2)) {
		t.Fatalf("no step needed at the target")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
