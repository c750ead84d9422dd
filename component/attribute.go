package component

// Attribute is a clamped resource such as stamina. Spending with regen
// triggered waits RegenDelay seconds and then refills at RegenRate per second
// until full.
type Attribute struct {
	Name       string
	Max        float64
	RegenDelay float64
	RegenRate  float64

	current      float64
	regenWait    float64
	regenerating bool
	listeners    []func(a *Attribute)
}

// NewAttribute creates an attribute filled to max.
func NewAttribute(name string, max, regenDelay, regenRate float64) *Attribute {
	a := &Attribute{Name: name, Max: max, RegenDelay: regenDelay, RegenRate: regenRate}
	a.Initialize()
	return a
}

// Initialize refills the attribute and stops any pending regen.
func (a *Attribute) Initialize() {
	if a == nil {
		return
	}
	a.current = a.Max
	a.regenerating = false
	a.regenWait = 0
	a.notify()
}

// Current returns the current value.
func (a *Attribute) Current() float64 {
	if a == nil {
		return 0
	}
	return a.current
}

// Ratio returns current/max, or 0 for an empty attribute.
func (a *Attribute) Ratio() float64 {
	if a == nil || a.Max <= 0 {
		return 0
	}
	return a.current / a.Max
}

// Regenerating reports whether a regen cycle is pending or running.
func (a *Attribute) Regenerating() bool {
	return a != nil && a.regenerating
}

// OnChange registers a listener called after every change. It is called once
// immediately so the listener starts in sync.
func (a *Attribute) OnChange(fn func(a *Attribute)) {
	if a == nil || fn == nil {
		return
	}
	a.listeners = append(a.listeners, fn)
	fn(a)
}

// Modify adds amount (negative to spend), clamped to [0, Max]. With
// triggerRegen set a fresh regen cycle starts when below max.
func (a *Attribute) Modify(amount float64, triggerRegen bool) {
	if a == nil {
		return
	}
	a.current += amount
	if a.current < 0 {
		a.current = 0
	}
	if a.current > a.Max {
		a.current = a.Max
	}
	if triggerRegen {
		a.StartRegen()
	}
	a.notify()
}

// TrySpend spends cost if available.
func (a *Attribute) TrySpend(cost float64) bool {
	if a == nil || cost < 0 || a.current < cost {
		return false
	}
	if cost == 0 {
		return true
	}
	a.Modify(-cost, true)
	return true
}

// StartRegen restarts the regen delay when the attribute is below max.
func (a *Attribute) StartRegen() {
	if a == nil || a.RegenRate <= 0 || a.current >= a.Max {
		return
	}
	a.regenerating = true
	a.regenWait = a.RegenDelay
}

// Tick advances regen by dt seconds.
func (a *Attribute) Tick(dt float64) {
	if a == nil || !a.regenerating || dt <= 0 {
		return
	}
	if a.regenWait > 0 {
		a.regenWait -= dt
		if a.regenWait > 0 {
			return
		}
		dt = -a.regenWait
		a.regenWait = 0
	}
	a.current += a.RegenRate * dt
	if a.current >= a.Max {
		a.current = a.Max
		a.regenerating = false
	}
	a.notify()
}

func (a *Attribute) notify() {
	for _, fn := range a.listeners {
		fn(a)
	}
}
