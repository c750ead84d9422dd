package combat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"
)

var ErrScriptMissingRun = errors.New("combat: behavior script does not define run")

const behaviorDispatchScript = `
if __phase == "run" {
	run(__engine)
}
`

// ScriptBehavior is a global behavior written in tengo. The script defines
// run := func(engine) { ... } and talks to the game through engine.
type ScriptBehavior struct {
	name     string
	compiled *tengo.Compiled
}

// NewScriptBehavior compiles src once. The script body runs a single time at
// load so a missing run function is reported before the behavior is used.
func NewScriptBehavior(name string, src []byte) (*ScriptBehavior, error) {
	modules := stdlib.GetModuleMap(stdlib.AllModuleNames()...)

	probe := tengo.NewScript(src)
	probe.SetImports(modules)
	defs, err := probe.Compile()
	if err != nil {
		return nil, fmt.Errorf("combat: compile behavior %q: %w", name, err)
	}
	if err := defs.Run(); err != nil {
		return nil, fmt.Errorf("combat: init behavior %q: %w", name, err)
	}
	if !defs.IsDefined("run") {
		return nil, fmt.Errorf("%w: %q", ErrScriptMissingRun, name)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + behaviorDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(modules)

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("combat: compile behavior %q: %w", name, err)
	}

	return &ScriptBehavior{name: name, compiled: compiled}, nil
}

// Name returns the behavior name.
func (b *ScriptBehavior) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// Call runs the script against ctx.
func (b *ScriptBehavior) Call(ctx EventContext) error {
	if b == nil || b.compiled == nil {
		return fmt.Errorf("nil script behavior")
	}
	if err := b.compiled.Set("__phase", "run"); err != nil {
		return err
	}
	if err := b.compiled.Set("__engine", buildBehaviorEngine(ctx)); err != nil {
		return err
	}
	defer func() {
		_ = b.compiled.Set("__phase", "")
	}()
	return b.compiled.Run()
}

func buildBehaviorEngine(ctx EventContext) *tengo.ImmutableMap {
	log := ctx.Log
	if log == nil {
		log = zap.NewNop()
	}
	values := map[string]tengo.Object{}

	values["skill_name"] = &tengo.UserFunction{Name: "skill_name", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Skill == nil {
			return &tengo.String{Value: ""}, nil
		}
		return &tengo.String{Value: ctx.Skill.Name}, nil
	}}

	values["stamina_cost"] = &tengo.UserFunction{Name: "stamina_cost", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Skill == nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: ctx.Skill.StaminaCost}, nil
	}}

	values["frame"] = &tengo.UserFunction{Name: "frame", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ctx.Frame)}, nil
	}}

	values["consume_stamina"] = &tengo.UserFunction{Name: "consume_stamina", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Actor == nil {
			return tengo.FalseValue, nil
		}
		amount := 0.0
		if ctx.Skill != nil {
			amount = ctx.Skill.StaminaCost
		}
		if len(args) > 0 {
			if v, ok := tengo.ToFloat64(args[0]); ok {
				amount = v
			}
		}
		if ctx.Actor.ConsumeStamina(amount) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["allow_movement"] = &tengo.UserFunction{Name: "allow_movement", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Actor == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		ctx.Actor.ToggleMovement(!args[0].IsFalsy())
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		skill := ""
		if ctx.Skill != nil {
			skill = ctx.Skill.Name
		}
		log.Info(strings.Join(parts, " "), zap.String("skill", skill))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	if s, ok := obj.(*tengo.String); ok {
		return s.Value
	}
	return strings.Trim(obj.String(), "\"")
}
