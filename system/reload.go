package system

import (
	"fmt"
	"path/filepath"

	"github.com/milk9111/skillgrid/ability"
	"github.com/milk9111/skillgrid/prefabs"
	"go.uber.org/zap"
)

// ApplyReload re-reads the file behind change. Skills are swapped for new
// descriptors on every cell; a skill already running finishes with the
// descriptor it started with. Behavior scripts replace their registry entry.
func (w *World) ApplyReload(change prefabs.Change) error {
	if w == nil {
		return fmt.Errorf("system: nil world")
	}
	name := change.Name()

	switch change.Kind {
	case prefabs.ChangeScript:
		for behavior, file := range w.Spec.Behaviors {
			if filepath.Base(file) != name {
				continue
			}
			if err := w.loadBehavior(behavior, file); err != nil {
				return err
			}
			w.log.Info("behavior reloaded", zap.String("behavior", behavior))
			return nil
		}
	case prefabs.ChangeSpec:
		switch name {
		case filepath.Base(w.Spec.Skills):
			set, err := prefabs.LoadSkillSetSpec(w.Spec.Skills)
			if err != nil {
				return err
			}
			w.setSkills(set)
			w.rebindSkills()
			w.log.Info("skills reloaded", zap.Int("count", len(w.Skills)))
			return nil
		case filepath.Base(w.Spec.Transitions):
			set, err := prefabs.LoadTransitionSetSpec(w.Spec.Transitions)
			if err != nil {
				return err
			}
			w.setTransitions(set)
			w.Grid.Cells(func(c *ability.Cell) { c.Refresh() })
			w.log.Info("transitions reloaded", zap.Int("count", len(w.Transitions)))
			return nil
		}
	}

	w.log.Debug("reload ignored", zap.String("file", change.Path))
	return nil
}

func (w *World) rebindSkills() {
	w.Grid.Cells(func(c *ability.Cell) {
		sa, ok := c.Ability.(*ability.SkillAbility)
		if !ok || sa.Skill == nil {
			return
		}
		next, ok := w.Skills[sa.Skill.Name]
		if !ok {
			w.log.Warn("skill removed, cell keeps its old descriptor", zap.String("skill", sa.Skill.Name))
			return
		}
		sa.Skill = next
	})
}
