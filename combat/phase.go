package combat

// Phase is the sequencer's position within one skill activation.
type Phase int

const (
	PhaseInactive Phase = iota
	PhaseAnticipation
	PhaseActive
	PhaseRecovery
)

func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseAnticipation:
		return "anticipation"
	case PhaseActive:
		return "active"
	case PhaseRecovery:
		return "recovery"
	default:
		return "unknown"
	}
}

// Cancelable reports whether a new skill may cut into this phase.
func (p Phase) Cancelable() bool {
	return p == PhaseInactive || p == PhaseRecovery
}

// PhaseListener observes phase changes. skill is the skill owning the new
// phase, or the one that just finished when to is PhaseInactive.
type PhaseListener func(from, to Phase, skill *Skill)
