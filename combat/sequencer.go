package combat

import (
	"errors"
	"slices"

	"github.com/milk9111/skillgrid/component"
	"go.uber.org/zap"
)

type boundEvent struct {
	frame int
	name  string
	fn    func()
}

// Sequencer runs one skill at a time against an external animation clock.
// Phases advance when the sampled frame index reaches the skill's active
// window; a skill may only be replaced while idle or recovering.
type Sequencer struct {
	animator   component.Animator
	registry   *Registry
	actor      Actor
	log        *zap.Logger
	stallLimit int

	phase     Phase
	current   *Skill
	hitbox    component.Hitbox
	lastFrame int
	stalled   int
	run       uint64
	events    []boundEvent
	listeners []PhaseListener
}

type SequencerOption func(s *Sequencer)

// WithRegistry sets the registry animation events resolve against.
func WithRegistry(r *Registry) SequencerOption {
	return func(s *Sequencer) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithActor sets the character skills run on.
func WithActor(a Actor) SequencerOption {
	return func(s *Sequencer) {
		s.actor = a
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *zap.Logger) SequencerOption {
	return func(s *Sequencer) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStallLimit interrupts the current skill after n consecutive ticks in
// which the animation produced no new frame. Zero disables the limit and the
// sequencer waits on the clock indefinitely.
func WithStallLimit(n int) SequencerOption {
	return func(s *Sequencer) {
		if n > 0 {
			s.stallLimit = n
		}
	}
}

// NewSequencer creates an idle sequencer reading from animator.
func NewSequencer(animator component.Animator, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		animator:  animator,
		log:       zap.NewNop(),
		lastFrame: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = DefaultRegistry(WithRegistryLogger(s.log))
	}
	return s
}

// Phase returns the current phase.
func (s *Sequencer) Phase() Phase {
	if s == nil {
		return PhaseInactive
	}
	return s.phase
}

// CurrentSkill returns the skill owning the phase, or nil when idle.
func (s *Sequencer) CurrentSkill() *Skill {
	if s == nil {
		return nil
	}
	return s.current
}

// Hitbox returns the hitbox bound to the current activation.
func (s *Sequencer) Hitbox() component.Hitbox {
	if s == nil {
		return nil
	}
	return s.hitbox
}

// LastFrame returns the last processed frame, -1 before the first sample.
func (s *Sequencer) LastFrame() int {
	if s == nil {
		return -1
	}
	return s.lastFrame
}

// CanStartSkill reports whether TryStartSkill would accept a valid skill.
func (s *Sequencer) CanStartSkill() bool {
	return s != nil && s.phase.Cancelable()
}

// Registry returns the event registry.
func (s *Sequencer) Registry() *Registry {
	if s == nil {
		return nil
	}
	return s.registry
}

// OnPhaseChange registers a phase listener.
func (s *Sequencer) OnPhaseChange(fn PhaseListener) {
	if s == nil || fn == nil {
		return
	}
	s.listeners = append(s.listeners, fn)
}

// TryStartSkill starts skill when idle, or cuts the current skill short when
// it is recovering. Requests during anticipation or the active window are
// refused, as are skills without a playable animation.
func (s *Sequencer) TryStartSkill(skill *Skill, hitbox component.Hitbox) bool {
	if s == nil || skill == nil {
		return false
	}
	if !s.phase.Cancelable() {
		return false
	}
	if !s.admit(skill) {
		return false
	}

	if s.phase == PhaseRecovery && s.current != nil {
		s.log.Debug("combo", zap.String("from", s.current.Name), zap.String("to", skill.Name))
		s.current.InterruptSkill()
	}
	s.start(skill, hitbox)
	return true
}

func (s *Sequencer) admit(skill *Skill) bool {
	if s.animator == nil {
		s.log.Warn("skill rejected: no animator bound", zap.String("skill", skill.Name))
		return false
	}
	err := skill.Validate()
	if err == nil {
		if skill.EndActiveFrame == skill.Animation.TotalFrames() {
			s.log.Warn("active window ends past the last sampled frame; the hitbox stays on until the skill is interrupted",
				zap.String("skill", skill.Name),
				zap.Int("end", skill.EndActiveFrame))
		}
		return true
	}
	if errors.Is(err, ErrMissingAnimation) {
		s.log.Warn("skill rejected", zap.String("skill", skill.Name), zap.Error(err))
		return false
	}
	// a bad active window or cost still plays; the window simply never opens
	s.log.Warn("skill misconfigured", zap.String("skill", skill.Name), zap.Error(err))
	return true
}

func (s *Sequencer) start(skill *Skill, hitbox component.Hitbox) {
	// a skill restarting itself is still a new run
	s.run++
	s.current = skill
	s.hitbox = hitbox
	s.events = s.bindEvents(skill)

	skill.StartSkill(hitbox)
	s.animator.Play(skill.Animation.Name, 0)
	s.lastFrame = -1
	s.stalled = 0
	s.setPhase(PhaseAnticipation)
}

// bindEvents sorts a copy of the skill's events and resolves each name once
// for this activation. Names that do not resolve are dropped.
func (s *Sequencer) bindEvents(skill *Skill) []boundEvent {
	if len(skill.Events) == 0 {
		return nil
	}
	events := slices.Clone(skill.Events)
	component.SortAnimationEvents(events)

	out := make([]boundEvent, 0, len(events))
	for _, evt := range events {
		fn, err := s.registry.ResolveAt(evt.Name, evt.Frame, skill, s.actor)
		if err != nil {
			s.log.Warn("animation event dropped",
				zap.String("skill", skill.Name),
				zap.String("event", evt.Name),
				zap.Int("frame", evt.Frame),
				zap.Error(err))
			continue
		}
		out = append(out, boundEvent{frame: evt.Frame, name: evt.Name, fn: fn})
	}
	return out
}

// Update samples the bound animator and advances the current skill.
func (s *Sequencer) Update() {
	if s == nil || s.animator == nil {
		return
	}
	s.Tick(s.animator.State())
}

// Tick advances the current skill from one animation sample.
func (s *Sequencer) Tick(sample component.AnimatorState) {
	if s == nil || s.phase == PhaseInactive || s.current == nil || s.animator == nil {
		return
	}

	skill := s.current
	clip := skill.Animation
	if !sample.IsName(clip.Name) {
		if s.phase == PhaseRecovery {
			s.finish()
			return
		}
		// still waiting on the clip to start
		s.noteStall()
		return
	}

	frame := clip.FrameAt(sample.NormalizedTime)
	if frame == s.lastFrame {
		s.noteStall()
		return
	}
	s.lastFrame = frame
	s.stalled = 0

	if s.phase == PhaseAnticipation && frame == skill.StartActiveFrame {
		skill.StartActivePhase()
		s.setPhase(PhaseActive)
	}
	if s.phase == PhaseActive && frame == skill.EndActiveFrame {
		skill.EndActivePhase()
		s.setPhase(PhaseRecovery)
	}

	run := s.run
	for _, evt := range s.events {
		if evt.frame > frame {
			break
		}
		if evt.frame != frame {
			continue
		}
		evt.fn()
		// an event may have started a combo, even of this same skill
		if s.run != run || s.current != skill {
			return
		}
	}
}

// Cancel interrupts the current skill regardless of phase.
func (s *Sequencer) Cancel() {
	if s == nil || s.current == nil {
		return
	}
	skill := s.current
	skill.InterruptSkill()
	s.clear()
	s.setPhaseFor(PhaseInactive, skill)
}

func (s *Sequencer) noteStall() {
	if s.stallLimit <= 0 {
		return
	}
	s.stalled++
	if s.stalled < s.stallLimit {
		return
	}
	s.log.Warn("animation stalled, interrupting skill",
		zap.String("skill", s.current.Name),
		zap.String("phase", s.phase.String()),
		zap.Int("ticks", s.stalled))
	s.Cancel()
}

func (s *Sequencer) finish() {
	skill := s.current
	skill.EndSkill()
	s.clear()
	s.setPhaseFor(PhaseInactive, skill)
}

func (s *Sequencer) clear() {
	s.current = nil
	s.hitbox = nil
	s.events = nil
	s.lastFrame = -1
	s.stalled = 0
}

func (s *Sequencer) setPhase(to Phase) {
	s.setPhaseFor(to, s.current)
}

func (s *Sequencer) setPhaseFor(to Phase, skill *Skill) {
	from := s.phase
	s.phase = to
	for _, fn := range s.listeners {
		fn(from, to, skill)
	}
}
