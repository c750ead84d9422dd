package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/skillgrid/ability"
	"github.com/milk9111/skillgrid/system"
)

var moveKeys = map[ability.Direction][]ebiten.Key{
	ability.Up:    {ebiten.KeyW, ebiten.KeyUp},
	ability.Left:  {ebiten.KeyA, ebiten.KeyLeft},
	ability.Down:  {ebiten.KeyS, ebiten.KeyDown},
	ability.Right: {ebiten.KeyD, ebiten.KeyRight},
}

var moveButtons = map[ability.Direction]ebiten.StandardGamepadButton{
	ability.Up:    ebiten.StandardGamepadButtonLeftTop,
	ability.Left:  ebiten.StandardGamepadButtonLeftLeft,
	ability.Down:  ebiten.StandardGamepadButtonLeftBottom,
	ability.Right: ebiten.StandardGamepadButtonLeftRight,
}

// actionKeys trigger transitions by their action name, the way the
// transitions in prefabs/transitions.yaml are bound.
var actionKeys = map[ebiten.Key]string{
	ebiten.KeySpace:     "jump",
	ebiten.KeyShiftLeft: "dash",
	ebiten.KeyC:         "crouch",
	ebiten.KeyF:         "strike",
}

var actionButtons = map[ebiten.StandardGamepadButton]string{
	ebiten.StandardGamepadButtonRightBottom: "jump",
	ebiten.StandardGamepadButtonRightLeft:   "dash",
	ebiten.StandardGamepadButtonRightRight:  "crouch",
	ebiten.StandardGamepadButtonRightTop:    "strike",
}

// Input holds the grid commands pressed this frame.
type Input struct {
	// Move is the direction pressed this frame when MovePressed is set.
	Move        ability.Direction
	MovePressed bool
	// Action is a transition trigger, empty when none was pressed.
	Action      string
	RotateCW    bool
	RotateCCW   bool
	// Reset revives the training targets.
	Reset bool
	Quit  bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and the first gamepad.
func (i *Input) Update() {
	*i = Input{}

	i.Quit = inpututil.IsKeyJustPressed(ebiten.KeyF12)
	i.RotateCW = inpututil.IsKeyJustPressed(ebiten.KeyE)
	i.RotateCCW = inpututil.IsKeyJustPressed(ebiten.KeyQ)
	i.Reset = inpututil.IsKeyJustPressed(ebiten.KeyR)

	for _, d := range ability.Directions {
		for _, k := range moveKeys[d] {
			if inpututil.IsKeyJustPressed(k) {
				i.Move, i.MovePressed = d, true
			}
		}
	}

	for k, action := range actionKeys {
		if inpututil.IsKeyJustPressed(k) {
			i.Action = action
		}
	}

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return
	}
	gid := ids[0]
	if !ebiten.IsStandardGamepadLayoutAvailable(gid) {
		return
	}
	for _, d := range ability.Directions {
		if inpututil.IsStandardGamepadButtonJustPressed(gid, moveButtons[d]) {
			i.Move, i.MovePressed = d, true
		}
	}
	for b, action := range actionButtons {
		if inpututil.IsStandardGamepadButtonJustPressed(gid, b) {
			i.Action = action
		}
	}
	i.RotateCW = i.RotateCW || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontTopRight)
	i.RotateCCW = i.RotateCCW || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontTopLeft)
	i.Reset = i.Reset || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterLeft)
}

// Apply issues this frame's commands to the world. Rotation is applied
// before movement so a turn and a move pressed together use the new layout.
func (i *Input) Apply(w *system.World) {
	if i == nil || w == nil {
		return
	}
	if i.RotateCW {
		w.Rotate(true)
	}
	if i.RotateCCW {
		w.Rotate(false)
	}
	if i.MovePressed {
		w.Move(i.Move)
	} else if i.Action != "" {
		w.Fire(i.Action)
	}
	if i.Reset {
		w.ResetTargets()
	}
}
