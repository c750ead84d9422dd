package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	GameFile        = "game.yaml"
	SkillsFile      = "skills.yaml"
	TransitionsFile = "transitions.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the top-level configuration read at start-up.
type GameSpec struct {
	Name            string            `yaml:"name"`
	Grid            string            `yaml:"grid"`
	Skills          string            `yaml:"skills"`
	Transitions     string            `yaml:"transitions"`
	TickRate        int               `yaml:"tick_rate"`
	LogLevel        string            `yaml:"log_level"`
	StallLimitTicks int               `yaml:"stall_limit_ticks"`
	Watch           bool              `yaml:"watch"`
	Seed            int64             `yaml:"seed"`
	Idle            ClipSpec          `yaml:"idle"`
	Stamina         AttributeSpec     `yaml:"stamina"`
	Hitbox          BoxSpec           `yaml:"hitbox"`
	Targets         []TargetSpec      `yaml:"targets"`
	Behaviors       map[string]string `yaml:"behaviors"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec](GameFile)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	return &spec, nil
}

func (s *GameSpec) applyDefaults() {
	if s.Grid == "" {
		s.Grid = "grid.yaml"
	}
	if s.Skills == "" {
		s.Skills = SkillsFile
	}
	if s.Transitions == "" {
		s.Transitions = TransitionsFile
	}
	if s.TickRate <= 0 {
		s.TickRate = 60
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.Idle.Name == "" {
		s.Idle = ClipSpec{Name: "idle", Length: 1, FrameRate: 12, Loop: true}
	}
}

type ClipSpec struct {
	Name      string  `yaml:"name"`
	Length    float64 `yaml:"length"`
	FrameRate float64 `yaml:"frame_rate"`
	Loop      bool    `yaml:"loop"`
}

type AttributeSpec struct {
	Max        float64 `yaml:"max"`
	RegenDelay float64 `yaml:"regen_delay"`
	RegenRate  float64 `yaml:"regen_rate"`
}

// BoxSpec is an axis-aligned box relative to its owner.
type BoxSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// TargetSpec is a damageable dummy placed in front of the player.
type TargetSpec struct {
	Name   string  `yaml:"name"`
	Layer  string  `yaml:"layer"`
	Health int     `yaml:"health"`
	Box    BoxSpec `yaml:"box"`
}

type EventSpec struct {
	Frame int    `yaml:"frame"`
	Name  string `yaml:"name"`
}

type SkillSpec struct {
	Name             string      `yaml:"name"`
	Icon             string      `yaml:"icon"`
	Cooldown         float64     `yaml:"cooldown"`
	StaminaCost      float64     `yaml:"stamina_cost"`
	Damage           int         `yaml:"damage"`
	Targets          []string    `yaml:"targets"`
	Animation        ClipSpec    `yaml:"animation"`
	StartActiveFrame int         `yaml:"start_active_frame"`
	EndActiveFrame   int         `yaml:"end_active_frame"`
	Events           []EventSpec `yaml:"events"`
}

type SkillSetSpec struct {
	Skills []SkillSpec `yaml:"skills"`
}

func LoadSkillSetSpec(filename string) (SkillSetSpec, error) {
	return LoadSpec[SkillSetSpec](filename)
}

type TransitionSpec struct {
	Name   string     `yaml:"name"`
	Icon   string     `yaml:"icon"`
	Color  *YAMLColor `yaml:"color"`
	Action string     `yaml:"action"`
}

type TransitionSetSpec struct {
	Transitions []TransitionSpec `yaml:"transitions"`
}

func LoadTransitionSetSpec(filename string) (TransitionSetSpec, error) {
	return LoadSpec[TransitionSetSpec](filename)
}

// SlotSpec names the transition authored in each direction.
type SlotSpec struct {
	Up    string `yaml:"up"`
	Left  string `yaml:"left"`
	Down  string `yaml:"down"`
	Right string `yaml:"right"`
}

// Names returns the slots in Up, Left, Down, Right order.
func (s SlotSpec) Names() [4]string {
	return [4]string{s.Up, s.Left, s.Down, s.Right}
}

type CellSpec struct {
	X           int         `yaml:"x"`
	Y           int         `yaml:"y"`
	Cooldown    *float64    `yaml:"cooldown"`
	Ability     AbilitySpec `yaml:"ability"`
	Transitions SlotSpec    `yaml:"transitions"`
}

type GridSpec struct {
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
	StartX   int        `yaml:"start_x"`
	StartY   int        `yaml:"start_y"`
	Scramble bool       `yaml:"scramble"`
	Cooldown float64    `yaml:"cooldown"`
	Default  *CellSpec  `yaml:"default"`
	Cells    []CellSpec `yaml:"cells"`
}

func LoadGridSpec(filename string) (GridSpec, error) {
	spec, err := LoadSpec[GridSpec](filename)
	if err != nil {
		return spec, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return spec, fmt.Errorf("prefabs: %s: grid size %dx%d", filename, spec.Width, spec.Height)
	}
	return spec, nil
}

// CellAt returns the authored cell at (x, y), falling back to the default.
func (g GridSpec) CellAt(x, y int) (CellSpec, bool) {
	for _, c := range g.Cells {
		if c.X == x && c.Y == y {
			return c, true
		}
	}
	if g.Default != nil {
		c := *g.Default
		c.X, c.Y = x, y
		return c, true
	}
	return CellSpec{}, false
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
