package combat

import (
	"errors"
	"fmt"

	"github.com/milk9111/skillgrid/component"
)

var (
	ErrMissingAnimation    = errors.New("combat: skill has no playable animation")
	ErrInvalidActiveWindow = errors.New("combat: invalid active frame window")
	ErrNegativeCost        = errors.New("combat: negative cooldown or stamina cost")
)

// Actor is the character a skill runs on. Skill methods reach stamina and
// movement through it.
type Actor interface {
	ConsumeStamina(amount float64) bool
	ToggleMovement(allowed bool)
}

// SkillHooks lets a skill add behavior around the base lifecycle. Each hook
// runs after the base contract has been applied.
type SkillHooks struct {
	OnStart     func(s *Skill)
	OnInterrupt func(s *Skill)
	OnEnd       func(s *Skill)
}

// Skill is an activatable combat action. Everything but the bound hitbox is
// authored configuration and is treated as read-only while sequencing.
// Cooldown is enforced by the grid: the skill's cell holds the player for the
// longer of the cell's cooldown and the skill's.
type Skill struct {
	Name        string
	Icon        string
	Cooldown    float64
	StaminaCost float64
	Damage      int
	TargetMask  component.LayerMask

	Animation        component.AnimationClip
	StartActiveFrame int
	EndActiveFrame   int
	Events           []component.AnimationEvent

	// Methods are skill-local handlers for "Skill/" events. They shadow the
	// registry's shared skill methods.
	Methods map[string]EventFunc
	Hooks   SkillHooks

	hitbox  component.Hitbox
	started bool
}

// Validate checks the authored data. Several problems are joined together.
func (s *Skill) Validate() error {
	if s == nil {
		return ErrMissingAnimation
	}
	var errs []error
	if !s.Animation.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrMissingAnimation, s.Animation.Name))
	}
	total := s.Animation.TotalFrames()
	if s.StartActiveFrame < 0 || s.StartActiveFrame >= s.EndActiveFrame || s.EndActiveFrame > total {
		errs = append(errs, fmt.Errorf("%w: [%d, %d] with %d frames",
			ErrInvalidActiveWindow, s.StartActiveFrame, s.EndActiveFrame, total))
	}
	if s.Cooldown < 0 || s.StaminaCost < 0 {
		errs = append(errs, ErrNegativeCost)
	}
	return errors.Join(errs...)
}

// Hitbox returns the hitbox bound for the current activation.
func (s *Skill) Hitbox() component.Hitbox {
	if s == nil {
		return nil
	}
	return s.hitbox
}

// StartSkill binds hitbox for this activation. A second call without an
// intervening EndSkill or InterruptSkill changes nothing.
func (s *Skill) StartSkill(hitbox component.Hitbox) {
	if s == nil || s.started {
		return
	}
	s.started = true
	s.hitbox = hitbox
	if s.hitbox != nil {
		s.hitbox.Initialize(s.Damage, s.TargetMask)
	}
	if s.Hooks.OnStart != nil {
		s.Hooks.OnStart(s)
	}
}

// StartActivePhase enables the bound hitbox.
func (s *Skill) StartActivePhase() {
	if s == nil || s.hitbox == nil {
		return
	}
	s.hitbox.SetActive(true)
}

// EndActivePhase disables the bound hitbox.
func (s *Skill) EndActivePhase() {
	if s == nil || s.hitbox == nil {
		return
	}
	s.hitbox.SetActive(false)
}

// InterruptSkill forces the hitbox off and drops per-activation state.
func (s *Skill) InterruptSkill() {
	if s == nil {
		return
	}
	if s.hitbox != nil {
		s.hitbox.SetActive(false)
	}
	s.clear()
	if s.Hooks.OnInterrupt != nil {
		s.Hooks.OnInterrupt(s)
	}
}

// EndSkill drops per-activation state after a natural finish.
func (s *Skill) EndSkill() {
	if s == nil {
		return
	}
	s.clear()
	if s.Hooks.OnEnd != nil {
		s.Hooks.OnEnd(s)
	}
}

func (s *Skill) clear() {
	s.hitbox = nil
	s.started = false
}
