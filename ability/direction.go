package ability

import "strings"

// Direction indexes a cell's transition and neighbour slots. The order is the
// rotation order: a clockwise turn moves each slot's transition one index on.
type Direction int

const (
	Up Direction = iota
	Left
	Down
	Right
)

// Directions lists every direction in slot order.
var Directions = [4]Direction{Up, Left, Down, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four slots.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Opposite returns the direction facing back toward d's origin.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Offset returns the grid step for d. Up is +y.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Left:
		return -1, 0
	case Down:
		return 0, -1
	case Right:
		return 1, 0
	}
	return 0, 0
}

// ParseDirection reads a direction name, case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, true
	case "left":
		return Left, true
	case "down":
		return Down, true
	case "right":
		return Right, true
	}
	return 0, false
}
