package ability

import (
	"github.com/milk9111/skillgrid/combat"
	"github.com/milk9111/skillgrid/component"
	"go.uber.org/zap"
)

// Ability is what a cell does when it is entered.
type Ability interface {
	Activate()
	Icon() string
}

// Coster is implemented by abilities that spend stamina when activated.
type Coster interface {
	StaminaCost() float64
}

// Cooldowner is implemented by abilities that carry their own cooldown. A
// cell holds the player for the longer of its own cooldown and this one.
type Cooldowner interface {
	AbilityCooldown() float64
}

// Starter is the sequencer side of a skill ability.
type Starter interface {
	TryStartSkill(skill *combat.Skill, hitbox component.Hitbox) bool
}

// SkillAbility starts its skill on the bound sequencer.
type SkillAbility struct {
	Skill   *combat.Skill
	Starter Starter
	Hitbox  component.Hitbox

	// Started is called with the result of each activation attempt.
	Started func(skill *combat.Skill, ok bool)
}

func NewSkillAbility(skill *combat.Skill, starter Starter, hitbox component.Hitbox) *SkillAbility {
	return &SkillAbility{Skill: skill, Starter: starter, Hitbox: hitbox}
}

func (a *SkillAbility) Activate() {
	if a == nil || a.Skill == nil || a.Starter == nil {
		return
	}
	ok := a.Starter.TryStartSkill(a.Skill, a.Hitbox)
	if a.Started != nil {
		a.Started(a.Skill, ok)
	}
}

func (a *SkillAbility) Icon() string {
	if a == nil || a.Skill == nil {
		return ""
	}
	return a.Skill.Icon
}

func (a *SkillAbility) StaminaCost() float64 {
	if a == nil || a.Skill == nil {
		return 0
	}
	return a.Skill.StaminaCost
}

func (a *SkillAbility) AbilityCooldown() float64 {
	if a == nil || a.Skill == nil {
		return 0
	}
	return a.Skill.Cooldown
}

// DebugAbility only logs that it ran.
type DebugAbility struct {
	Name     string
	IconName string
	Log      *zap.Logger

	activations int
}

func (a *DebugAbility) Activate() {
	if a == nil {
		return
	}
	a.activations++
	if a.Log != nil {
		a.Log.Info("debug ability activated", zap.String("ability", a.Name), zap.Int("count", a.activations))
	}
}

func (a *DebugAbility) Icon() string {
	if a == nil {
		return ""
	}
	return a.IconName
}

// Activations returns how many times the ability ran.
func (a *DebugAbility) Activations() int {
	if a == nil {
		return 0
	}
	return a.activations
}
