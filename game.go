package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/skillgrid/ability"
	"github.com/milk9111/skillgrid/common"
	"github.com/milk9111/skillgrid/obj"
	"github.com/milk9111/skillgrid/prefabs"
	"github.com/milk9111/skillgrid/system"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	cellSize    = 96
	cellGap     = 8
	gridOriginX = 64
	gridOriginY = 96
	indicator   = 10
)

type Game struct {
	frames int
	dt     float64

	world   *system.World
	input   *obj.Input
	watcher *prefabs.Watcher
	log     *zap.Logger

	// stamina bar eases toward the real value
	staminaShown float32
}

func NewGame(world *system.World, watcher *prefabs.Watcher, log *zap.Logger, dt float64) *Game {
	return &Game{
		dt:           dt,
		world:        world,
		input:        obj.NewInput(),
		watcher:      watcher,
		log:          log,
		staminaShown: 1,
	}
}

func (g *Game) Update() error {
	g.frames++

	g.applyReloads()

	g.input.Update()
	if g.input.Quit {
		return ebiten.Termination
	}
	g.input.Apply(g.world)
	g.world.Update(g.dt)

	g.staminaShown = common.Lerp(g.staminaShown, float32(g.world.Status().StaminaRatio), 0.2)
	return nil
}

func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for _, change := range g.watcher.Drain() {
		if err := g.world.ApplyReload(change); err != nil {
			g.log.Warn("reload failed", zap.String("file", change.Path), zap.Error(err))
		}
	}
	select {
	case err := <-g.watcher.Errors:
		g.log.Warn("watch error", zap.Error(err))
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	grid := g.world.Grid
	grid.Cells(func(c *ability.Cell) {
		g.drawCell(screen, c, grid.Height())
	})

	st := g.world.Status()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))

	hudX := gridOriginX + grid.Width()*(cellSize+cellGap) + 48
	lines := []string{
		fmt.Sprintf("cell: (%d,%d)", st.CellX, st.CellY),
		fmt.Sprintf("phase: %s", st.Phase),
		fmt.Sprintf("skill: %s", st.Skill),
		fmt.Sprintf("frame: %d", st.Frame),
		fmt.Sprintf("stamina: %.0f", st.Stamina),
		fmt.Sprintf("can move: %v", st.CanMove),
		fmt.Sprintf("hits: %d", st.Hits),
	}
	for _, t := range g.world.Targets {
		lines = append(lines, fmt.Sprintf("%s: %d/%d", t.Name, t.Health.Current, t.Health.Max))
	}
	lines = append(lines, "", "arrows/WASD move  space/shift/C/F fire  Q/E rotate  R reset  F12 quit")
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, hudX, gridOriginY+i*16)
	}

	barY := float32(gridOriginY + len(lines)*16 + 16)
	vector.FillRect(screen, float32(hudX), barY, 200, 12, colornames.Dimgray, false)
	vector.FillRect(screen, float32(hudX), barY, 200*g.staminaShown, 12, colornames.Limegreen, false)
}

func (g *Game) drawCell(screen *ebiten.Image, c *ability.Cell, height int) {
	x, y := c.Position()
	// +y is up on the grid, down on screen
	px := float32(gridOriginX + x*(cellSize+cellGap))
	py := float32(gridOriginY + (height-1-y)*(cellSize+cellGap))
	view := c.View()

	vector.FillRect(screen, px, py, cellSize, cellSize, view.Highlight, false)
	vector.StrokeRect(screen, px, py, cellSize, cellSize, 1, colornames.Gray, false)

	for _, d := range ability.Directions {
		ind := view.Indicator(d)
		if !ind.Visible {
			continue
		}
		ix, iy := indicatorPos(d, px, py)
		vector.FillRect(screen, ix, iy, indicator, indicator, ind.Color, false)
	}

	label := view.Icon
	if cd := c.CooldownRemaining(); cd > 0 {
		label = fmt.Sprintf("%s %.1f", label, cd)
	}
	ebitenutil.DebugPrintAt(screen, label, int(px)+8, int(py)+cellSize/2-8)
	if c == g.world.Grid.Current() {
		vector.StrokeRect(screen, px-2, py-2, cellSize+4, cellSize+4, 2, color.White, false)
	}
}

func indicatorPos(d ability.Direction, px, py float32) (float32, float32) {
	mid := float32(cellSize-indicator) / 2
	switch d {
	case ability.Up:
		return px + mid, py + 2
	case ability.Left:
		return px + 2, py + mid
	case ability.Down:
		return px + mid, py + cellSize - indicator - 2
	default:
		return px + cellSize - indicator - 2, py + mid
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
