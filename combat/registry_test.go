package combat

import (
	"errors"
	"sort"
	"testing"
)

func TestSplitEventName(t *testing.T) {
	cases := []struct {
		in      string
		ns, key string
		err     error
	}{
		{"Skill/ConsumeStamina", SkillNamespace, "ConsumeStamina", nil},
		{"Behaviors/Dash", BehaviorNamespace, "Dash", nil},
		{"  StartAllowMovement ", SkillNamespace, "StartAllowMovement", nil},
		{"", "", "", ErrEmptyEventName},
		{"Skill/", "", "", ErrEmptyEventName},
		{"Other/Thing", "", "", ErrUnknownNamespace},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			ns, key, err := splitEventName(c.in)
			if c.err != nil {
				if !errors.Is(err, c.err) {
					t.Fatalf("expected %v, got %v", c.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ns != c.ns || key != c.key {
				t.Fatalf("got (%q, %q), want (%q, %q)", ns, key, c.ns, c.key)
			}
		})
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := DefaultRegistry()
	actor := &fakeActor{stamina: 10, canMove: true}
	skill := &Skill{Name: "slash", StaminaCost: 4}

	fn, err := reg.Resolve("Skill/ConsumeStamina", skill, actor)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	fn()
	fn()
	if actor.stamina != 2 {
		t.Fatalf("stamina %v, want 2", actor.stamina)
	}
	fn()
	if actor.stamina != 2 {
		t.Fatalf("short stamina should not be spent, got %v", actor.stamina)
	}

	fn, err = reg.Resolve("Skill/StopAllowMovement", skill, actor)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	fn()
	if actor.canMove {
		t.Fatalf("movement should be locked")
	}

	if _, err := reg.Resolve("Behaviors/Nope", skill, actor); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected unknown event, got %v", err)
	}
	if _, err := reg.Resolve("Skill/TestPrint", nil, nil); err != nil {
		t.Fatalf("stock methods should resolve without a skill: %v", err)
	}
}

func TestRegistrySkillMethodsShadowShared(t *testing.T) {
	reg := DefaultRegistry()
	called := ""
	skill := &Skill{
		Name: "slash",
		Methods: map[string]EventFunc{
			"ConsumeStamina": func(EventContext) { called = "local" },
		},
	}
	actor := &fakeActor{stamina: 10}

	fn, err := reg.Resolve("Skill/ConsumeStamina", skill, actor)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	fn()
	if called != "local" || actor.stamina != 10 {
		t.Fatalf("skill-local method should win, called=%q stamina=%v", called, actor.stamina)
	}

	// behaviors live in their own table
	if _, err := reg.Resolve("Behaviors/ConsumeStamina", skill, actor); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected behaviors to miss, got %v", err)
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterBehavior("", func(EventContext) {}); !errors.Is(err, ErrEmptyEventName) {
		t.Fatalf("expected empty name error, got %v", err)
	}
	if err := reg.RegisterBehavior("Dash", nil); !errors.Is(err, ErrNilEventFunc) {
		t.Fatalf("expected nil func error, got %v", err)
	}
	if err := reg.RegisterBehavior("Behaviors/Dash", func(EventContext) {}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterSkillMethod("Skill/Mark", func(EventContext) {}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := reg.Resolve("Behaviors/Dash", nil, nil); err != nil {
		t.Fatalf("prefixed registration should resolve: %v", err)
	}
	if _, err := reg.Resolve("Mark", nil, nil); err != nil {
		t.Fatalf("bare name should resolve to skill method: %v", err)
	}

	_ = reg.RegisterBehavior("Burst", func(EventContext) {})
	names := reg.Behaviors()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "Behaviors/Burst" || names[1] != "Behaviors/Dash" {
		t.Fatalf("unexpected behaviors %v", names)
	}
}
