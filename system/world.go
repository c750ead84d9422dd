package system

import (
	"math/rand"

	"github.com/milk9111/skillgrid/ability"
	"github.com/milk9111/skillgrid/combat"
	"github.com/milk9111/skillgrid/component"
	"github.com/milk9111/skillgrid/prefabs"
	"go.uber.org/zap"
)

const playerID = 1

// Player is the character skills run on.
type Player struct {
	Stamina *component.Attribute
	Health  *component.Health
	CanMove bool
}

func (p *Player) ConsumeStamina(amount float64) bool {
	if p == nil {
		return false
	}
	return p.Stamina.TrySpend(amount)
}

func (p *Player) ToggleMovement(allowed bool) {
	if p == nil {
		return
	}
	p.CanMove = allowed
}

// Target is a damageable dummy.
type Target struct {
	Name    string
	Health  *component.Health
	Hurtbox *component.Hurtbox
}

// World owns one player's sequencer, ability grid, animator and hitbox and
// advances them together each tick.
type World struct {
	Spec        *prefabs.GameSpec
	Player      *Player
	Animator    *component.ClipPlayer
	Hitbox      *component.DamageHitbox
	Sequencer   *combat.Sequencer
	Registry    *combat.Registry
	Grid        *ability.Grid
	Skills      map[string]*combat.Skill
	Transitions map[string]*ability.Transition
	Targets     []*Target
	Resolver    *component.CombatResolver
	Emitter     *component.CombatEventEmitter

	log   *zap.Logger
	rng   *rand.Rand
	ticks int
	hits  int
}

type Option func(w *World)

// WithLogger sets the logger shared by the world and everything it builds.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithRand sets the random source used to scramble the grid.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) {
		if rng != nil {
			w.rng = rng
		}
	}
}

// Status is a read-only snapshot for the debug view.
type Status struct {
	Phase        combat.Phase
	Skill        string
	Frame        int
	Stamina      float64
	StaminaRatio float64
	CanMove      bool
	CellX, CellY int
	Hits         int
	Ticks        int
}

// Update advances one tick of dt seconds: stamina regen, animation, skill
// sequencing, cell cooldowns, then hit resolution.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.ticks++
	w.Player.Stamina.Tick(dt)
	w.Animator.Advance(dt)
	w.Sequencer.Update()
	w.Grid.Update(dt)
	w.hits += w.resolveCombat()
}

// Move follows the current cell's transition in dir.
func (w *World) Move(dir ability.Direction) bool {
	if w == nil {
		return false
	}
	return w.Grid.Move(dir)
}

// Fire follows the current cell's transition bound to action.
func (w *World) Fire(action string) bool {
	if w == nil {
		return false
	}
	return w.Grid.Fire(action)
}

// Rotate turns the current cell's transitions.
func (w *World) Rotate(clockwise bool) bool {
	if w == nil {
		return false
	}
	return w.Grid.RotateCurrent(clockwise)
}

func (w *World) Status() Status {
	if w == nil {
		return Status{}
	}
	s := Status{
		Phase:        w.Sequencer.Phase(),
		Frame:        w.Sequencer.LastFrame(),
		Stamina:      w.Player.Stamina.Current(),
		StaminaRatio: w.Player.Stamina.Ratio(),
		CanMove:      w.Player.CanMove,
		CellX:        -1,
		CellY:        -1,
		Hits:         w.hits,
		Ticks:        w.ticks,
	}
	if sk := w.Sequencer.CurrentSkill(); sk != nil {
		s.Skill = sk.Name
	}
	if c := w.Grid.Current(); c != nil {
		s.CellX, s.CellY = c.Position()
	}
	return s
}

func (w *World) Logger() *zap.Logger {
	if w == nil || w.log == nil {
		return zap.NewNop()
	}
	return w.log
}
