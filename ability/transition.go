package ability

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// DefaultTransitionColor is used for transitions authored without a colour.
var DefaultTransitionColor color.Color = colornames.Lightsteelblue

// Transition is a directional link out of a cell. Action names the input
// trigger that fires it; which neighbour it reaches depends on the slot it
// currently occupies.
type Transition struct {
	Name   string
	Icon   string
	Color  color.Color
	Action string
}

// DisplayColor returns the transition colour or the default.
func (t *Transition) DisplayColor() color.Color {
	if t == nil || t.Color == nil {
		return DefaultTransitionColor
	}
	return t.Color
}
