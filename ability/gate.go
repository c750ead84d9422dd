package ability

// Gate decides whether the grid may move from one cell to another. from is
// nil on the first move.
type Gate interface {
	Allow(from, to *Cell) bool
}

// GateFunc adapts a function to Gate.
type GateFunc func(from, to *Cell) bool

func (f GateFunc) Allow(from, to *Cell) bool {
	if f == nil {
		return true
	}
	return f(from, to)
}

// AllGates passes only when every non-nil gate passes.
func AllGates(gates ...Gate) Gate {
	return GateFunc(func(from, to *Cell) bool {
		for _, g := range gates {
			if g != nil && !g.Allow(from, to) {
				return false
			}
		}
		return true
	})
}

// SkillState is the part of a sequencer the grid consults.
type SkillState interface {
	CanStartSkill() bool
}

// SequencerGate refuses moves while a skill is winding up or active.
type SequencerGate struct {
	Sequencer SkillState
}

func (g SequencerGate) Allow(from, to *Cell) bool {
	return g.Sequencer == nil || g.Sequencer.CanStartSkill()
}

// StaminaPool is the resource skills are paid from.
type StaminaPool interface {
	Current() float64
}

// StaminaGate refuses moves into a cell whose ability costs more than the
// stamina on hand.
type StaminaGate struct {
	Stamina StaminaPool
}

func (g StaminaGate) Allow(from, to *Cell) bool {
	if g.Stamina == nil || to == nil {
		return true
	}
	coster, ok := to.Ability.(Coster)
	if !ok {
		return true
	}
	return g.Stamina.Current() >= coster.StaminaCost()
}

// CooldownGate keeps the player on a cell until its cooldown has run out.
type CooldownGate struct{}

func (CooldownGate) Allow(from, to *Cell) bool {
	return from == nil || from.CooldownRemaining() <= 0
}
