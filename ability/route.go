package ability

import "math"

// Route finds the shortest chain of moves from one cell to another, following
// only slots that hold both a transition and a neighbour. maxNodes bounds the
// search; zero means the whole grid. The result starts with from and ends with
// to, or is nil when no route exists.
func (g *Grid) Route(from, to *Cell, maxNodes int) []*Cell {
	if g == nil || from == nil || to == nil || from.grid != g || to.grid != g {
		return nil
	}
	if from == to {
		return []*Cell{from}
	}
	if maxNodes <= 0 {
		maxNodes = g.width * g.height
	}

	open := make([]*Cell, 0, 16)
	open = append(open, from)
	openSet := map[*Cell]bool{from: true}

	cameFrom := make(map[*Cell]*Cell, 32)
	gScore := map[*Cell]float64{from: 0}
	fScore := map[*Cell]float64{from: routeHeuristic(from, to)}

	iterations := 0
	for len(open) > 0 && iterations < maxNodes {
		iterations++
		// lowest fScore first
		bestIdx := 0
		bestScore := math.MaxFloat64
		for i, c := range open {
			if f := fScore[c]; f < bestScore {
				bestScore = f
				bestIdx = i
			}
		}
		current := open[bestIdx]
		open = append(open[:bestIdx], open[bestIdx+1:]...)
		delete(openSet, current)

		if current == to {
			return reconstructRoute(cameFrom, current, from)
		}

		for _, d := range Directions {
			b := current.Binding(d)
			if !b.Bound() {
				continue
			}
			next := b.Target
			tentative := gScore[current] + 1
			prev, seen := gScore[next]
			if !seen || tentative < prev {
				cameFrom[next] = current
				gScore[next] = tentative
				fScore[next] = tentative + routeHeuristic(next, to)
				if !openSet[next] {
					open = append(open, next)
					openSet[next] = true
				}
			}
		}
	}

	return nil
}

// StepToward moves one cell along the route to target.
func (g *Grid) StepToward(target *Cell) bool {
	if g == nil || g.current == nil {
		return false
	}
	route := g.Route(g.current, target, 0)
	if len(route) < 2 {
		return false
	}
	return g.MoveCell(route[1])
}

func reconstructRoute(cameFrom map[*Cell]*Cell, current, start *Cell) []*Cell {
	route := make([]*Cell, 0, 8)
	for {
		route = append(route, current)
		if current == start {
			break
		}
		prev, ok := cameFrom[current]
		if !ok {
			return nil
		}
		current = prev
	}
	// reverse
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

func routeHeuristic(a, b *Cell) float64 {
	return math.Abs(float64(a.x-b.x)) + math.Abs(float64(a.y-b.y))
}
