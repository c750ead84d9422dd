package ability

import (
	"errors"
	"math/rand"

	"go.uber.org/zap"
)

var (
	ErrInvalidSize = errors.New("ability: grid size must be positive")
	ErrNotBuilt    = errors.New("ability: grid not built")
)

// MoveListener observes completed moves. from is nil on the first move.
type MoveListener func(from, to *Cell)

// Grid is a fixed width×height array of cells with one current cell. Moves
// pass through the gate and are never nested: a move requested while another
// is in flight is rejected.
type Grid struct {
	width, height int
	cells         [][]*Cell
	current       *Cell
	gate          Gate
	moving        bool
	log           *zap.Logger
	listeners     []MoveListener
}

type GridOption func(g *Grid)

// WithGate sets the movement gate.
func WithGate(gate Gate) GridOption {
	return func(g *Grid) {
		g.gate = gate
	}
}

// WithGridLogger sets the diagnostics logger.
func WithGridLogger(log *zap.Logger) GridOption {
	return func(g *Grid) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGrid creates an unbuilt grid.
func NewGrid(width, height int, opts ...GridOption) *Grid {
	g := &Grid{width: width, height: height, log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build allocates the cells, wires neighbours and resolves every cell's
// transitions. factory supplies the cell for (x, y); a nil factory or a nil
// result gives an empty cell. Building again replaces the previous cells.
func (g *Grid) Build(factory func(x, y int) *Cell) error {
	if g == nil || g.width <= 0 || g.height <= 0 {
		return ErrInvalidSize
	}

	g.current = nil
	g.cells = make([][]*Cell, g.width)
	for x := 0; x < g.width; x++ {
		g.cells[x] = make([]*Cell, g.height)
		for y := 0; y < g.height; y++ {
			var c *Cell
			if factory != nil {
				c = factory(x, y)
			}
			if c == nil {
				c = NewCell(nil, [4]*Transition{})
			}
			c.grid = g
			c.x, c.y = x, y
			c.state = CellDimmed
			g.cells[x][y] = c
		}
	}

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			var neighbors [4]*Cell
			if y < g.height-1 {
				neighbors[Up] = g.cells[x][y+1]
			}
			if x > 0 {
				neighbors[Left] = g.cells[x-1][y]
			}
			if y > 0 {
				neighbors[Down] = g.cells[x][y-1]
			}
			if x < g.width-1 {
				neighbors[Right] = g.cells[x+1][y]
			}
			c := g.cells[x][y]
			c.InitializeTransitions(neighbors)
			c.view.refresh()
		}
	}

	g.log.Debug("grid built", zap.Int("width", g.width), zap.Int("height", g.height))
	return nil
}

func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	return g.width
}

func (g *Grid) Height() int {
	if g == nil {
		return 0
	}
	return g.height
}

// Cell returns the cell at (x, y), or nil when out of range.
func (g *Grid) Cell(x, y int) *Cell {
	if g == nil || x < 0 || y < 0 || x >= len(g.cells) || y >= g.height {
		return nil
	}
	return g.cells[x][y]
}

// Cells calls fn for every cell, row by row from y=0.
func (g *Grid) Cells(fn func(c *Cell)) {
	if g == nil || fn == nil || len(g.cells) == 0 {
		return
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(g.cells[x][y])
		}
	}
}

func (g *Grid) Current() *Cell {
	if g == nil {
		return nil
	}
	return g.current
}

// SetGate replaces the movement gate.
func (g *Grid) SetGate(gate Gate) {
	if g == nil {
		return
	}
	g.gate = gate
}

// Moving reports whether a move is in flight.
func (g *Grid) Moving() bool {
	return g != nil && g.moving
}

// OnMove registers a move listener.
func (g *Grid) OnMove(fn MoveListener) {
	if g == nil || fn == nil {
		return
	}
	g.listeners = append(g.listeners, fn)
}

// MoveCell exits the current cell and enters target. It does nothing and
// returns false when the gate refuses, a move is already in flight, or target
// is not one of this grid's cells.
func (g *Grid) MoveCell(target *Cell) bool {
	if g == nil || target == nil || target.grid != g {
		return false
	}
	if g.moving {
		g.log.Debug("move rejected: move in flight", zap.Int("x", target.x), zap.Int("y", target.y))
		return false
	}
	from := g.current
	if g.gate != nil && !g.gate.Allow(from, target) {
		return false
	}

	g.moving = true
	defer func() { g.moving = false }()

	if from != nil {
		from.Exit()
	}
	g.current = target
	target.Enter()

	for _, fn := range g.listeners {
		fn(from, target)
	}
	return true
}

// Move follows the current cell's enabled binding in dir.
func (g *Grid) Move(dir Direction) bool {
	if g == nil || g.current == nil {
		return false
	}
	b := g.current.Binding(dir)
	if !b.Enabled {
		return false
	}
	return g.MoveCell(b.Target)
}

// Fire follows the current cell's enabled binding whose transition is
// triggered by action.
func (g *Grid) Fire(action string) bool {
	if g == nil {
		return false
	}
	target := g.current.trigger(action)
	if target == nil {
		return false
	}
	return g.MoveCell(target)
}

// RotateCell turns cell's transitions a quarter turn.
func (g *Grid) RotateCell(cell *Cell, clockwise bool) bool {
	if g == nil || cell == nil || cell.grid != g {
		return false
	}
	cell.Rotate(clockwise)
	return true
}

// RotateCurrent turns the current cell.
func (g *Grid) RotateCurrent(clockwise bool) bool {
	if g == nil {
		return false
	}
	return g.RotateCell(g.current, clockwise)
}

// ScrambleRotations gives every cell zero to three clockwise turns.
func (g *Grid) ScrambleRotations(rng *rand.Rand) error {
	if g == nil || len(g.cells) == 0 {
		return ErrNotBuilt
	}
	if rng == nil {
		return errors.New("ability: nil random source")
	}
	g.Cells(func(c *Cell) {
		for i := rng.Intn(4); i > 0; i-- {
			g.RotateCell(c, true)
		}
	})
	return nil
}

// Idle marks the current cell idle once its ability has finished.
func (g *Grid) Idle() {
	if g == nil {
		return
	}
	g.current.Idle()
}

// Update advances cell cooldowns by dt seconds.
func (g *Grid) Update(dt float64) {
	if g == nil || dt <= 0 {
		return
	}
	g.Cells(func(c *Cell) {
		c.tickCooldown(dt)
	})
}
