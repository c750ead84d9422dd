package component

type hitKey struct {
	HitboxID   string
	Activation int
	TargetID   int
}

// CombatResolver applies damage from active hitboxes to overlapping hurtboxes.
// A target is hit at most once per hitbox activation.
type CombatResolver struct {
	Emitter *CombatEventEmitter

	hits map[hitKey]struct{}
}

// NewCombatResolver creates a resolver instance.
func NewCombatResolver() *CombatResolver {
	return &CombatResolver{hits: make(map[hitKey]struct{})}
}

// Resolve runs one pass and returns how many hits applied damage.
func (r *CombatResolver) Resolve(hitboxes []*DamageHitbox, hurtboxes []*Hurtbox) int {
	if r == nil || len(hitboxes) == 0 || len(hurtboxes) == 0 {
		return 0
	}
	if r.hits == nil {
		r.hits = make(map[hitKey]struct{})
	}

	applied := 0
	for _, hb := range hitboxes {
		if hb == nil {
			continue
		}
		if !hb.Active() {
			r.forget(hb)
			continue
		}
		for _, hu := range hurtboxes {
			if hu == nil || !hu.Enabled || hu.Target == nil {
				continue
			}
			if hb.OwnerID == hu.OwnerID {
				continue
			}
			if !hb.Targets().Contains(hu.Layer) {
				continue
			}
			if !hb.Box.Intersects(hu.Box) {
				continue
			}

			key := hitKey{HitboxID: hb.ID, Activation: hb.Activation(), TargetID: hu.OwnerID}
			if _, done := r.hits[key]; done {
				continue
			}
			r.hits[key] = struct{}{}

			evt := CombatEvent{
				Type:       EventHit,
				AttackerID: hb.OwnerID,
				TargetID:   hu.OwnerID,
				Damage:     hb.Damage(),
				HitboxID:   hb.ID,
			}
			r.Emitter.Emit(evt)

			if hu.Target.TakeDamage(hb.Damage()) {
				applied++
				evt.Type = EventDamageApplied
				r.Emitter.Emit(evt)
			}
		}
	}
	return applied
}

func (r *CombatResolver) forget(hb *DamageHitbox) {
	for k := range r.hits {
		if k.HitboxID == hb.ID {
			delete(r.hits, k)
		}
	}
}
