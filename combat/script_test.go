package combat

import (
	"errors"
	"testing"
)

const dashScript = `
run := func(engine) {
	if engine.consume_stamina() {
		engine.allow_movement(false)
	}
	engine.log("dash", engine.skill_name(), engine.stamina_cost())
}
`

func TestScriptBehaviorCall(t *testing.T) {
	sb, err := NewScriptBehavior("Dash", []byte(dashScript))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if sb.Name() != "Dash" {
		t.Fatalf("unexpected name %q", sb.Name())
	}

	actor := &fakeActor{stamina: 5, canMove: true}
	ctx := EventContext{Skill: &Skill{Name: "dash", StaminaCost: 3}, Actor: actor}
	if err := sb.Call(ctx); err != nil {
		t.Fatalf("call: %v", err)
	}
	if actor.stamina != 2 || actor.canMove {
		t.Fatalf("script did not drive the actor: %+v", actor)
	}

	// second call cannot afford the cost and leaves movement alone
	actor.canMove = true
	if err := sb.Call(ctx); err != nil {
		t.Fatalf("call: %v", err)
	}
	if actor.stamina != 2 || !actor.canMove {
		t.Fatalf("unexpected actor state: %+v", actor)
	}
}

func TestScriptBehaviorExplicitAmount(t *testing.T) {
	sb, err := NewScriptBehavior("Sip", []byte(`run := func(engine) { engine.consume_stamina(1.5) }`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	actor := &fakeActor{stamina: 2}
	if err := sb.Call(EventContext{Skill: &Skill{StaminaCost: 10}, Actor: actor}); err != nil {
		t.Fatalf("call: %v", err)
	}
	if actor.stamina != 0.5 {
		t.Fatalf("stamina %v, want 0.5", actor.stamina)
	}
}

func TestScriptBehaviorErrors(t *testing.T) {
	if _, err := NewScriptBehavior("Empty", []byte(`x := 1`)); !errors.Is(err, ErrScriptMissingRun) {
		t.Fatalf("expected missing run error, got %v", err)
	}
	if _, err := NewScriptBehavior("Broken", []byte(`run := func(engine) {`)); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestRegisterScriptFiresFromSequencer(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterScript("Dash", []byte(dashScript)); err != nil {
		t.Fatalf("register: %v", err)
	}

	actor := &fakeActor{stamina: 5, canMove: true}
	fn, err := reg.Resolve("Behaviors/Dash", &Skill{Name: "dash", StaminaCost: 1}, actor)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	fn()
	if actor.stamina != 4 || actor.canMove {
		t.Fatalf("script behavior did not run: %+v", actor)
	}
}

func TestScriptBehaviorSeesFrame(t *testing.T) {
	reg := NewRegistry()
	src := `
run := func(engine) {
	if engine.frame() >= 0 {
		engine.consume_stamina(engine.frame())
	}
}
`
	if err := reg.RegisterScript("Tick", []byte(src)); err != nil {
		t.Fatalf("register: %v", err)
	}

	actor := &fakeActor{stamina: 5}
	fn, err := reg.ResolveAt("Behaviors/Tick", 3, &Skill{Name: "tick"}, actor)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	fn()
	if actor.stamina != 2 {
		t.Fatalf("stamina %v, want 2", actor.stamina)
	}

	// without a frame the script sees -1 and skips the spend
	fn, err = reg.Resolve("Behaviors/Tick", &Skill{Name: "tick"}, actor)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	fn()
	if actor.stamina != 2 {
		t.Fatalf("stamina %v, want 2", actor.stamina)
	}
}
