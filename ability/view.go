package ability

import (
	"image/color"

	"github.com/milk9111/skillgrid/common"
	"golang.org/x/image/colornames"
)

var (
	DimmedColor  color.Color = color.NRGBA{R: 128, G: 128, B: 128, A: 64}
	EnteredColor color.Color = colornames.Yellow
	IdleColor    color.Color = colornames.Green
)

// Indicator is the drawn marker for one transition slot.
type Indicator struct {
	Color   color.Color
	Visible bool
}

// CellView is the presentation state of a cell. It follows the cell through
// rotation, turning its indicators with the same rotation as the transitions.
type CellView struct {
	Icon       string
	Highlight  color.Color
	Angle      float64
	Indicators [4]Indicator

	cell *Cell
}

func newCellView(c *Cell) *CellView {
	v := &CellView{cell: c, Highlight: DimmedColor}
	v.refresh()
	return v
}

// Indicator returns the indicator drawn on side dir.
func (v *CellView) Indicator(dir Direction) Indicator {
	if v == nil || !dir.Valid() {
		return Indicator{}
	}
	return v.Indicators[dir]
}

func (v *CellView) refresh() {
	if v == nil || v.cell == nil {
		return
	}
	c := v.cell
	v.Icon = ""
	if c.Ability != nil {
		v.Icon = c.Ability.Icon()
	}
	switch c.state {
	case CellEntered:
		v.Highlight = EnteredColor
	case CellIdle:
		v.Highlight = IdleColor
	default:
		v.Highlight = DimmedColor
	}
	for _, d := range Directions {
		v.Indicators[d] = Indicator{
			Color:   c.transitions[d].DisplayColor(),
			Visible: c.HasTransition(d),
		}
	}
}

// rotate turns the indicators with the cell. Colours travel with their
// transition; visibility is taken from the new bindings.
func (v *CellView) rotate(clockwise bool) {
	if v == nil {
		return
	}
	common.Rotate(v.Indicators[:], 1, clockwise)
	if clockwise {
		v.Angle -= 90
	} else {
		v.Angle += 90
	}
	for _, d := range Directions {
		v.Indicators[d].Visible = v.cell.HasTransition(d)
	}
}
