package prefabs

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	AbilitySkill = "skill"
	AbilityDebug = "debug"
	AbilityEmpty = "empty"
)

// AbilitySpec selects an ability kind; Params are decoded per kind.
type AbilitySpec struct {
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params"`
}

// Kind returns the normalised ability type. An empty spec is "empty".
func (a AbilitySpec) Kind() string {
	k := strings.ToLower(strings.TrimSpace(a.Type))
	if k == "" {
		return AbilityEmpty
	}
	return k
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type SkillAbilitySpec struct {
	Skill string `yaml:"skill"`
}

type DebugAbilitySpec struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

func (a AbilitySpec) SkillParams() (SkillAbilitySpec, error) {
	p, err := DecodeComponentSpec[SkillAbilitySpec](a.Params)
	if err != nil {
		return p, fmt.Errorf("prefabs: skill ability: %w", err)
	}
	if strings.TrimSpace(p.Skill) == "" {
		return p, fmt.Errorf("prefabs: skill ability without a skill")
	}
	return p, nil
}

func (a AbilitySpec) DebugParams() (DebugAbilitySpec, error) {
	p, err := DecodeComponentSpec[DebugAbilitySpec](a.Params)
	if err != nil {
		return p, fmt.Errorf("prefabs: debug ability: %w", err)
	}
	return p, nil
}
