package ability

import (
	"github.com/milk9111/skillgrid/common"
)

// CellState is a cell's highlight state.
type CellState int

const (
	CellDimmed CellState = iota
	CellEntered
	CellIdle
)

func (s CellState) String() string {
	switch s {
	case CellDimmed:
		return "dimmed"
	case CellEntered:
		return "entered"
	case CellIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Binding joins the transition in one slot to the neighbour in the same slot.
// Only the current cell's bindings are enabled.
type Binding struct {
	Dir        Direction
	Transition *Transition
	Target     *Cell
	Enabled    bool
}

// Bound reports whether the slot has both a transition and a neighbour.
func (b Binding) Bound() bool {
	return b.Transition != nil && b.Target != nil
}

// Cell is one slot of the ability grid. Transition and neighbour slots share
// the Up, Left, Down, Right indexing; rotation moves transitions between
// slots and never touches neighbours.
type Cell struct {
	Ability  Ability
	Cooldown float64

	grid        *Grid
	x, y        int
	transitions [4]*Transition
	neighbors   [4]*Cell
	bindings    [4]Binding
	state       CellState
	quarter     int
	cooldown    float64
	view        *CellView
}

// NewCell creates an unplaced cell. transitions is indexed by Direction.
func NewCell(ability Ability, transitions [4]*Transition) *Cell {
	c := &Cell{Ability: ability, transitions: transitions}
	c.view = newCellView(c)
	return c
}

// Position returns the cell's grid coordinates.
func (c *Cell) Position() (x, y int) {
	if c == nil {
		return -1, -1
	}
	return c.x, c.y
}

func (c *Cell) State() CellState {
	if c == nil {
		return CellDimmed
	}
	return c.state
}

// Quarter returns the net clockwise quarter turns applied, in [0, 4).
func (c *Cell) Quarter() int {
	if c == nil {
		return 0
	}
	return c.quarter
}

func (c *Cell) View() *CellView {
	if c == nil {
		return nil
	}
	return c.view
}

func (c *Cell) Transition(dir Direction) *Transition {
	if c == nil || !dir.Valid() {
		return nil
	}
	return c.transitions[dir]
}

// Transitions returns a copy of the transition slots.
func (c *Cell) Transitions() [4]*Transition {
	if c == nil {
		return [4]*Transition{}
	}
	return c.transitions
}

// SetTransition replaces one slot and rebinds.
func (c *Cell) SetTransition(dir Direction, t *Transition) {
	if c == nil || !dir.Valid() {
		return
	}
	c.transitions[dir] = t
	c.rebind()
}

func (c *Cell) Neighbor(dir Direction) *Cell {
	if c == nil || !dir.Valid() {
		return nil
	}
	return c.neighbors[dir]
}

// NeighborCount returns the number of populated neighbour slots.
func (c *Cell) NeighborCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, nb := range c.neighbors {
		if nb != nil {
			n++
		}
	}
	return n
}

func (c *Cell) Binding(dir Direction) Binding {
	if c == nil || !dir.Valid() {
		return Binding{Dir: dir}
	}
	return c.bindings[dir]
}

// HasTransition reports whether a move in dir is possible from this cell.
func (c *Cell) HasTransition(dir Direction) bool {
	return c.Binding(dir).Bound()
}

// InitializeTransitions sets the neighbour slots and resolves bindings.
func (c *Cell) InitializeTransitions(neighbors [4]*Cell) {
	if c == nil {
		return
	}
	c.neighbors = neighbors
	c.rebind()
}

// Enter highlights the cell, enables its bindings, starts its cooldown and
// activates its ability.
func (c *Cell) Enter() {
	if c == nil {
		return
	}
	c.state = CellEntered
	c.cooldown = c.Cooldown
	if cd, ok := c.Ability.(Cooldowner); ok && cd.AbilityCooldown() > c.cooldown {
		c.cooldown = cd.AbilityCooldown()
	}
	c.rebind()
	c.view.refresh()
	if c.Ability != nil {
		c.Ability.Activate()
	}
}

// Exit disables the cell's bindings and dims it.
func (c *Cell) Exit() {
	if c == nil {
		return
	}
	c.state = CellDimmed
	c.rebind()
	c.view.refresh()
}

// Idle marks an entered cell whose ability has finished.
func (c *Cell) Idle() {
	if c == nil || c.state != CellEntered {
		return
	}
	c.state = CellIdle
	c.view.refresh()
}

// Rotate turns the transition slots a quarter turn. Clockwise moves the
// transition on the right to the top, top to left, left to bottom and bottom
// to right.
func (c *Cell) Rotate(clockwise bool) {
	if c == nil {
		return
	}
	common.Rotate(c.transitions[:], 1, clockwise)
	if clockwise {
		c.quarter = (c.quarter + 1) % 4
	} else {
		c.quarter = (c.quarter + 3) % 4
	}
	c.rebind()
	c.view.rotate(clockwise)
}

// Refresh rebinds the cell and redraws its view after its ability or
// transitions were edited in place.
func (c *Cell) Refresh() {
	if c == nil {
		return
	}
	c.rebind()
	c.view.refresh()
}

// CooldownRemaining returns the seconds left before the cell may be left.
func (c *Cell) CooldownRemaining() float64 {
	if c == nil {
		return 0
	}
	return c.cooldown
}

func (c *Cell) tickCooldown(dt float64) {
	if c.cooldown <= 0 {
		return
	}
	c.cooldown -= dt
	if c.cooldown < 0 {
		c.cooldown = 0
	}
}

// trigger returns the target of the enabled binding fired by action.
func (c *Cell) trigger(action string) *Cell {
	if c == nil || action == "" {
		return nil
	}
	for _, b := range c.bindings {
		if b.Enabled && b.Transition.Action == action {
			return b.Target
		}
	}
	return nil
}

func (c *Cell) rebind() {
	entered := c.state != CellDimmed
	for _, d := range Directions {
		b := Binding{Dir: d, Transition: c.transitions[d], Target: c.neighbors[d]}
		b.Enabled = entered && b.Bound()
		c.bindings[d] = b
	}
}
