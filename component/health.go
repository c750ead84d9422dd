package component

// Health is a reusable health pool for anything that can take damage.
type Health struct {
	Max        int
	Current    int
	Invincible bool
	Dead       bool

	OnDamage func(h *Health, amount int)
	OnDeath  func(h *Health)
}

// NewHealth creates a Health with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the owner is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// TakeDamage applies damage unless invincible or dead.
func (h *Health) TakeDamage(amount int) bool {
	if h == nil || h.Dead || h.Invincible || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.OnDamage != nil {
		h.OnDamage(h, amount)
	}
	if h.Current <= 0 {
		h.Dead = true
		if h.OnDeath != nil {
			h.OnDeath(h)
		}
	}
	return true
}

// Heal restores health up to Max.
func (h *Health) Heal(amount int) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Reset revives the owner at full health.
func (h *Health) Reset() {
	if h == nil {
		return
	}
	h.Dead = false
	h.Current = h.Max
}
