package component

import (
	"strings"

	"github.com/jakecoffman/cp"
)

// Layer identifies the collision layer a hurtbox lives on.
type Layer uint8

const (
	LayerDefault Layer = iota
	LayerPlayer
	LayerEnemy
	LayerEnvironment
)

var layerNames = map[string]Layer{
	"default":     LayerDefault,
	"player":      LayerPlayer,
	"enemy":       LayerEnemy,
	"environment": LayerEnvironment,
}

// LayerByName looks a layer up case-insensitively.
func LayerByName(name string) (Layer, bool) {
	l, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
	return l, ok
}

// LayerMask is a bit set of layers.
type LayerMask uint32

// MaskOf builds a mask from layers.
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << l
	}
	return m
}

// Contains reports whether l is in the mask.
func (m LayerMask) Contains(l Layer) bool {
	return m&(1<<l) != 0
}

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventHit           CombatEventType = "hit"
	EventDamageApplied CombatEventType = "damage_applied"
	EventHitboxToggled CombatEventType = "hitbox_toggled"
)

// CombatEvent is emitted during combat resolution.
type CombatEvent struct {
	Type       CombatEventType
	AttackerID int
	TargetID   int
	Damage     int
	HitboxID   string
	Active     bool
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter allows components to emit combat events.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}

// DamageHitbox is an offensive box that stays disabled until a skill's active
// window opens. Each enable counts as a new activation for hit bookkeeping.
type DamageHitbox struct {
	ID      string
	OwnerID int
	Box     cp.BB
	Emitter *CombatEventEmitter

	damage     int
	targets    LayerMask
	active     bool
	activation int
}

// NewDamageHitbox creates a disabled hitbox covering box.
func NewDamageHitbox(id string, ownerID int, box cp.BB) *DamageHitbox {
	return &DamageHitbox{ID: id, OwnerID: ownerID, Box: box}
}

// Initialize sets the damage dealt and the layers it can hit.
func (h *DamageHitbox) Initialize(damage int, targets LayerMask) {
	if h == nil {
		return
	}
	h.damage = damage
	h.targets = targets
}

// SetActive enables or disables the hitbox.
func (h *DamageHitbox) SetActive(active bool) {
	if h == nil || h.active == active {
		return
	}
	h.active = active
	if active {
		h.activation++
	}
	h.Emitter.Emit(CombatEvent{
		Type:       EventHitboxToggled,
		AttackerID: h.OwnerID,
		HitboxID:   h.ID,
		Active:     active,
	})
}

// Active reports whether the hitbox is enabled.
func (h *DamageHitbox) Active() bool {
	return h != nil && h.active
}

// Damage returns the configured damage.
func (h *DamageHitbox) Damage() int {
	if h == nil {
		return 0
	}
	return h.damage
}

// Targets returns the configured target mask.
func (h *DamageHitbox) Targets() LayerMask {
	if h == nil {
		return 0
	}
	return h.targets
}

// Activation returns how many times the hitbox has been enabled.
func (h *DamageHitbox) Activation() int {
	if h == nil {
		return 0
	}
	return h.activation
}

// Hurtbox represents a defensive collision area.
type Hurtbox struct {
	OwnerID int
	Layer   Layer
	Box     cp.BB
	Enabled bool
	Target  Damageable
}
