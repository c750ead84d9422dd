package system

import (
	"github.com/milk9111/skillgrid/component"
	"go.uber.org/zap"
)

// resolveCombat applies the player's hitbox to every live target.
func (w *World) resolveCombat() int {
	if w == nil || w.Resolver == nil || len(w.Targets) == 0 {
		return 0
	}
	hurtboxes := make([]*component.Hurtbox, 0, len(w.Targets))
	for _, t := range w.Targets {
		if t != nil && t.Health.IsAlive() {
			hurtboxes = append(hurtboxes, t.Hurtbox)
		}
	}
	return w.Resolver.Resolve([]*component.DamageHitbox{w.Hitbox}, hurtboxes)
}

// ResetTargets revives every target at full health.
func (w *World) ResetTargets() {
	if w == nil {
		return
	}
	for _, t := range w.Targets {
		t.Health.Reset()
		t.Hurtbox.Enabled = true
	}
}

func (w *World) logCombatEvent(evt component.CombatEvent) {
	switch evt.Type {
	case component.EventDamageApplied:
		w.log.Debug("damage applied",
			zap.Int("attacker", evt.AttackerID),
			zap.Int("target", evt.TargetID),
			zap.Int("damage", evt.Damage))
	case component.EventHitboxToggled:
		w.log.Debug("hitbox toggled", zap.String("hitbox", evt.HitboxID), zap.Bool("active", evt.Active))
	}
}
