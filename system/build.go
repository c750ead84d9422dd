package system

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/skillgrid/ability"
	"github.com/milk9111/skillgrid/combat"
	"github.com/milk9111/skillgrid/component"
	"github.com/milk9111/skillgrid/prefabs"
	"go.uber.org/zap"
)

const playerHealth = 100

// Build assembles a world from spec and the prefab files it names, then
// enters the grid's start cell.
func Build(spec *prefabs.GameSpec, opts ...Option) (*World, error) {
	if spec == nil {
		return nil, fmt.Errorf("system: nil game spec")
	}
	w := &World{
		Spec:        spec,
		Skills:      make(map[string]*combat.Skill),
		Transitions: make(map[string]*ability.Transition),
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(spec.Seed))
	}

	w.Registry = combat.DefaultRegistry(combat.WithRegistryLogger(w.log))
	for name, file := range spec.Behaviors {
		if err := w.loadBehavior(name, file); err != nil {
			w.log.Warn("behavior skipped", zap.String("behavior", name), zap.Error(err))
		}
	}

	skillSet, err := prefabs.LoadSkillSetSpec(spec.Skills)
	if err != nil {
		return nil, err
	}
	w.Animator = component.NewClipPlayer(clipFromSpec(spec.Idle))
	w.setSkills(skillSet)

	transitionSet, err := prefabs.LoadTransitionSetSpec(spec.Transitions)
	if err != nil {
		return nil, err
	}
	w.setTransitions(transitionSet)

	w.Player = &Player{
		Stamina: component.NewAttribute("stamina", spec.Stamina.Max, spec.Stamina.RegenDelay, spec.Stamina.RegenRate),
		Health:  component.NewHealth(playerHealth),
		CanMove: true,
	}

	w.Emitter = &component.CombatEventEmitter{}
	w.Emitter.Handlers = append(w.Emitter.Handlers, w.logCombatEvent)
	w.Hitbox = component.NewDamageHitbox("player.hitbox", playerID, boxFromSpec(spec.Hitbox))
	w.Hitbox.Emitter = w.Emitter
	w.Resolver = component.NewCombatResolver()
	w.Resolver.Emitter = w.Emitter
	w.Targets = buildTargets(spec.Targets, w.log)

	w.Sequencer = combat.NewSequencer(w.Animator,
		combat.WithRegistry(w.Registry),
		combat.WithActor(w.Player),
		combat.WithLogger(w.log),
		combat.WithStallLimit(spec.StallLimitTicks),
	)

	gridSpec, err := prefabs.LoadGridSpec(spec.Grid)
	if err != nil {
		return nil, err
	}
	w.Grid = ability.NewGrid(gridSpec.Width, gridSpec.Height,
		ability.WithGridLogger(w.log),
		ability.WithGate(ability.AllGates(
			ability.SequencerGate{Sequencer: w.Sequencer},
			ability.StaminaGate{Stamina: w.Player.Stamina},
			ability.CooldownGate{},
		)),
	)
	if err := w.Grid.Build(func(x, y int) *ability.Cell {
		cs, ok := gridSpec.CellAt(x, y)
		if !ok {
			return nil
		}
		return w.buildCell(cs, gridSpec.Cooldown)
	}); err != nil {
		return nil, err
	}
	if gridSpec.Scramble {
		if err := w.Grid.ScrambleRotations(w.rng); err != nil {
			return nil, err
		}
	}

	w.Sequencer.OnPhaseChange(func(from, to combat.Phase, skill *combat.Skill) {
		w.log.Debug("phase", zap.String("from", from.String()), zap.String("to", to.String()), zap.String("skill", skillName(skill)))
		if to == combat.PhaseInactive {
			w.Grid.Idle()
		}
	})

	start := w.Grid.Cell(gridSpec.StartX, gridSpec.StartY)
	if start == nil {
		return nil, fmt.Errorf("system: start cell (%d,%d) outside %dx%d grid",
			gridSpec.StartX, gridSpec.StartY, gridSpec.Width, gridSpec.Height)
	}
	w.Grid.MoveCell(start)
	return w, nil
}

func (w *World) loadBehavior(name, file string) error {
	src, err := prefabs.LoadScript(file)
	if err != nil {
		return fmt.Errorf("system: load behavior %s: %w", file, err)
	}
	return w.Registry.RegisterScript(name, src)
}

// setSkills replaces the skill table. Descriptors are never edited in place
// so a running activation keeps the one it started with.
func (w *World) setSkills(set prefabs.SkillSetSpec) {
	skills := make(map[string]*combat.Skill, len(set.Skills))
	for _, ss := range set.Skills {
		sk := skillFromSpec(ss, w.log)
		if err := sk.Validate(); err != nil {
			w.log.Warn("skill misconfigured", zap.String("skill", sk.Name), zap.Error(err))
		}
		skills[sk.Name] = sk
		w.Animator.AddClip(sk.Animation)
	}
	w.Skills = skills
}

// setTransitions updates transitions in place so cells keep their pointers.
func (w *World) setTransitions(set prefabs.TransitionSetSpec) {
	for _, ts := range set.Transitions {
		t, ok := w.Transitions[ts.Name]
		if !ok {
			t = &ability.Transition{}
			w.Transitions[ts.Name] = t
		}
		t.Name = ts.Name
		t.Icon = ts.Icon
		t.Action = ts.Action
		t.Color = nil
		if ts.Color != nil {
			t.Color = ts.Color.Color
		}
	}
}

func (w *World) buildCell(cs prefabs.CellSpec, defaultCooldown float64) *ability.Cell {
	var transitions [4]*ability.Transition
	for i, name := range cs.Transitions.Names() {
		if name == "" {
			continue
		}
		t, ok := w.Transitions[name]
		if !ok {
			w.log.Warn("unknown transition", zap.String("transition", name), zap.Int("x", cs.X), zap.Int("y", cs.Y))
			continue
		}
		transitions[i] = t
	}

	c := ability.NewCell(w.buildAbility(cs), transitions)
	c.Cooldown = defaultCooldown
	if cs.Cooldown != nil {
		c.Cooldown = *cs.Cooldown
	}
	return c
}

func (w *World) buildAbility(cs prefabs.CellSpec) ability.Ability {
	switch cs.Ability.Kind() {
	case prefabs.AbilitySkill:
		p, err := cs.Ability.SkillParams()
		if err != nil {
			w.log.Warn("cell ability skipped", zap.Int("x", cs.X), zap.Int("y", cs.Y), zap.Error(err))
			return nil
		}
		sk, ok := w.Skills[p.Skill]
		if !ok {
			w.log.Warn("unknown skill", zap.String("skill", p.Skill), zap.Int("x", cs.X), zap.Int("y", cs.Y))
			return nil
		}
		return ability.NewSkillAbility(sk, w.Sequencer, w.Hitbox)
	case prefabs.AbilityDebug:
		p, err := cs.Ability.DebugParams()
		if err != nil {
			w.log.Warn("cell ability skipped", zap.Int("x", cs.X), zap.Int("y", cs.Y), zap.Error(err))
			return nil
		}
		return &ability.DebugAbility{Name: p.Name, IconName: p.Icon, Log: w.log}
	case prefabs.AbilityEmpty:
		return nil
	default:
		w.log.Warn("unknown ability type", zap.String("type", cs.Ability.Type), zap.Int("x", cs.X), zap.Int("y", cs.Y))
		return nil
	}
}

func skillFromSpec(ss prefabs.SkillSpec, log *zap.Logger) *combat.Skill {
	var layers []component.Layer
	for _, name := range ss.Targets {
		l, ok := component.LayerByName(name)
		if !ok {
			log.Warn("unknown target layer", zap.String("skill", ss.Name), zap.String("layer", name))
			continue
		}
		layers = append(layers, l)
	}

	events := make([]component.AnimationEvent, 0, len(ss.Events))
	for _, e := range ss.Events {
		events = append(events, component.AnimationEvent{Frame: e.Frame, Name: strings.TrimSpace(e.Name)})
	}

	return &combat.Skill{
		Name:             ss.Name,
		Icon:             ss.Icon,
		Cooldown:         ss.Cooldown,
		StaminaCost:      ss.StaminaCost,
		Damage:           ss.Damage,
		TargetMask:       component.MaskOf(layers...),
		Animation:        clipFromSpec(ss.Animation),
		StartActiveFrame: ss.StartActiveFrame,
		EndActiveFrame:   ss.EndActiveFrame,
		Events:           events,
	}
}

func clipFromSpec(cs prefabs.ClipSpec) component.AnimationClip {
	return component.AnimationClip{Name: cs.Name, Length: cs.Length, FrameRate: cs.FrameRate, Loop: cs.Loop}
}

func boxFromSpec(bs prefabs.BoxSpec) cp.BB {
	hw, hh := bs.Width/2, bs.Height/2
	return cp.BB{L: bs.OffsetX - hw, B: bs.OffsetY - hh, R: bs.OffsetX + hw, T: bs.OffsetY + hh}
}

func buildTargets(specs []prefabs.TargetSpec, log *zap.Logger) []*Target {
	targets := make([]*Target, 0, len(specs))
	for i, ts := range specs {
		layer, ok := component.LayerByName(ts.Layer)
		if !ok {
			log.Warn("unknown target layer", zap.String("target", ts.Name), zap.String("layer", ts.Layer))
			layer = component.LayerDefault
		}
		t := &Target{Name: ts.Name, Health: component.NewHealth(ts.Health)}
		t.Hurtbox = &component.Hurtbox{
			OwnerID: playerID + 1 + i,
			Layer:   layer,
			Box:     boxFromSpec(ts.Box),
			Enabled: true,
			Target:  t.Health,
		}
		hurtbox := t.Hurtbox
		name := ts.Name
		t.Health.OnDeath = func(h *component.Health) {
			hurtbox.Enabled = false
			log.Info("target down", zap.String("target", name))
		}
		targets = append(targets, t)
	}
	return targets
}

func skillName(s *combat.Skill) string {
	if s == nil {
		return ""
	}
	return s.Name
}
