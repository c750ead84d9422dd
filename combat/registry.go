package combat

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	SkillNamespace    = "Skill/"
	BehaviorNamespace = "Behaviors/"
)

var (
	ErrEmptyEventName   = errors.New("combat: empty event name")
	ErrUnknownNamespace = errors.New("combat: unknown event namespace")
	ErrUnknownEvent     = errors.New("combat: unknown event")
	ErrNilEventFunc     = errors.New("combat: nil event func")
)

// EventContext is what an animation event runs against.
type EventContext struct {
	Skill *Skill
	Actor Actor
	Log   *zap.Logger
	// Frame is the animation frame the event fires on, -1 when unknown.
	Frame int
}

// EventFunc is the body of a named animation event.
type EventFunc func(ctx EventContext)

// Registry maps animation event names to callables. "Skill/" names resolve to
// skill methods (skill-local first, then shared), "Behaviors/" names resolve to
// global behaviors. A name without a namespace is treated as a skill method.
type Registry struct {
	skillMethods map[string]EventFunc
	behaviors    map[string]EventFunc
	log          *zap.Logger
}

type RegistryOption func(r *Registry)

// WithRegistryLogger sets the logger handed to events and script errors.
func WithRegistryLogger(log *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		skillMethods: make(map[string]EventFunc),
		behaviors:    make(map[string]EventFunc),
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultRegistry creates a registry holding the stock skill methods.
func DefaultRegistry(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	for name, fn := range stockSkillMethods {
		_ = r.RegisterSkillMethod(name, fn)
	}
	return r
}

var stockSkillMethods = map[string]EventFunc{
	"ConsumeStamina": func(ctx EventContext) {
		if ctx.Actor == nil || ctx.Skill == nil {
			return
		}
		if !ctx.Actor.ConsumeStamina(ctx.Skill.StaminaCost) {
			ctx.Log.Debug("stamina short", zap.String("skill", ctx.Skill.Name), zap.Float64("cost", ctx.Skill.StaminaCost))
		}
	},
	"StopAllowMovement": func(ctx EventContext) {
		if ctx.Actor != nil {
			ctx.Actor.ToggleMovement(false)
		}
	},
	"StartAllowMovement": func(ctx EventContext) {
		if ctx.Actor != nil {
			ctx.Actor.ToggleMovement(true)
		}
	},
	"TestPrint": func(ctx EventContext) {
		name := ""
		if ctx.Skill != nil {
			name = ctx.Skill.Name
		}
		ctx.Log.Info("TestPrint from Skill", zap.String("skill", name))
	},
}

// RegisterSkillMethod adds or replaces a shared skill method.
func (r *Registry) RegisterSkillMethod(name string, fn EventFunc) error {
	return r.register(r.skillMethods, strings.TrimPrefix(name, SkillNamespace), fn)
}

// RegisterBehavior adds or replaces a global behavior.
func (r *Registry) RegisterBehavior(name string, fn EventFunc) error {
	return r.register(r.behaviors, strings.TrimPrefix(name, BehaviorNamespace), fn)
}

// RegisterScript compiles src and registers it as a behavior. Runtime script
// errors are logged when the behavior fires.
func (r *Registry) RegisterScript(name string, src []byte) error {
	sb, err := NewScriptBehavior(name, src)
	if err != nil {
		return err
	}
	return r.RegisterBehavior(name, func(ctx EventContext) {
		if err := sb.Call(ctx); err != nil {
			ctx.Log.Warn("behavior script failed", zap.String("behavior", name), zap.Error(err))
		}
	})
}

// Behaviors lists registered behavior names.
func (r *Registry) Behaviors() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.behaviors))
	for name := range r.behaviors {
		out = append(out, BehaviorNamespace+name)
	}
	return out
}

func (r *Registry) register(table map[string]EventFunc, name string, fn EventFunc) error {
	if r == nil {
		return ErrUnknownNamespace
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyEventName
	}
	if fn == nil {
		return fmt.Errorf("%w: %q", ErrNilEventFunc, name)
	}
	table[name] = fn
	return nil
}

// Resolve turns an event name into a callable bound to skill and actor.
func (r *Registry) Resolve(name string, skill *Skill, actor Actor) (func(), error) {
	return r.ResolveAt(name, -1, skill, actor)
}

// ResolveAt is Resolve for an event authored on frame.
func (r *Registry) ResolveAt(name string, frame int, skill *Skill, actor Actor) (func(), error) {
	ns, key, err := splitEventName(name)
	if err != nil {
		return nil, err
	}

	var fn EventFunc
	switch ns {
	case SkillNamespace:
		if skill != nil {
			fn = skill.Methods[key]
		}
		if fn == nil && r != nil {
			fn = r.skillMethods[key]
		}
	case BehaviorNamespace:
		if r != nil {
			fn = r.behaviors[key]
		}
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}

	ctx := EventContext{Skill: skill, Actor: actor, Log: zap.NewNop(), Frame: frame}
	if r != nil {
		ctx.Log = r.log
	}
	return func() { fn(ctx) }, nil
}

func splitEventName(name string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", ErrEmptyEventName
	}
	idx := strings.Index(name, "/")
	if idx < 0 {
		return SkillNamespace, name, nil
	}
	ns, key := name[:idx+1], strings.TrimSpace(name[idx+1:])
	if key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrEmptyEventName, name)
	}
	switch ns {
	case SkillNamespace, BehaviorNamespace:
		return ns, key, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownNamespace, name)
	}
}
