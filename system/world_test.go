package system

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/skillgrid/ability"
	"github.com/milk9111/skillgrid/combat"
	"github.com/milk9111/skillgrid/prefabs"
	"go.uber.org/zap/zaptest"
)

const tick = 1.0 / 60

func buildTestWorld(t *testing.T) *World {
	t.Helper()
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		t.Fatalf("game spec: %v", err)
	}
	w, err := Build(spec, WithLogger(zaptest.NewLogger(t)), WithRand(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return w
}

func step(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Update(tick)
	}
}

func TestWorldBuild(t *testing.T) {
	w := buildTestWorld(t)

	if w.Grid.Width() != 3 || w.Grid.Height() != 3 {
		t.Fatalf("unexpected grid %dx%d", w.Grid.Width(), w.Grid.Height())
	}
	if len(w.Skills) != 4 || len(w.Transitions) != 4 || len(w.Targets) != 1 {
		t.Fatalf("unexpected content: %d skills, %d transitions, %d targets", len(w.Skills), len(w.Transitions), len(w.Targets))
	}
	st := w.Status()
	if st.CellX != 0 || st.CellY != 0 {
		t.Fatalf("expected to start at (0,0), got (%d,%d)", st.CellX, st.CellY)
	}
	if st.Phase != combat.PhaseAnticipation || st.Skill != "slash" {
		t.Fatalf("entering the start cell should start slash, got %v %q", st.Phase, st.Skill)
	}
	if _, ok := w.Grid.Cell(2, 2).Ability.(*ability.DebugAbility); !ok {
		t.Fatalf("unlisted cells should use the default ability")
	}
	if w.Grid.Cell(2, 0).Cooldown != 0.5 || w.Grid.Cell(0, 0).Cooldown != 0.25 {
		t.Fatalf("cell cooldowns not applied")
	}
}

func TestWorldSkillLifecycle(t *testing.T) {
	w := buildTestWorld(t)
	dummy := w.Targets[0]

	step(w, 1)
	if w.Player.CanMove {
		t.Fatalf("frame 0 event should lock movement")
	}

	step(w, 39)
	st := w.Status()
	if st.Phase != combat.PhaseInactive || st.Skill != "" {
		t.Fatalf("slash should have finished, got %v %q", st.Phase, st.Skill)
	}
	if st.Stamina != 90 {
		t.Fatalf("stamina %v, want 90", st.Stamina)
	}
	if !st.CanMove {
		t.Fatalf("recovery event should release movement")
	}
	if dummy.Health.Current != 35 || st.Hits != 1 {
		t.Fatalf("dummy health %d hits %d, want 35 and 1", dummy.Health.Current, st.Hits)
	}
	if w.Hitbox.Active() {
		t.Fatalf("hitbox left active")
	}
	if w.Grid.Current().State() != ability.CellIdle {
		t.Fatalf("finished cell should be idle")
	}

	// lunge pays through its scripted behavior
	if !w.Grid.MoveCell(w.Grid.Cell(1, 0)) {
		t.Fatalf("move to lunge should pass")
	}
	step(w, 6)
	if w.Status().Skill != "lunge" || w.Player.Stamina.Current() != 75 || w.Player.CanMove {
		t.Fatalf("dash behavior did not run: %+v", w.Status())
	}
	if w.Grid.MoveCell(w.Grid.Cell(1, 1)) {
		t.Fatalf("moves must be refused while lunge winds up")
	}

	step(w, 60)
	if w.Status().Phase != combat.PhaseInactive || dummy.Health.Current != 27 {
		t.Fatalf("lunge should have finished and hit: %+v health=%d", w.Status(), dummy.Health.Current)
	}
}

func TestWorldMoveAndRotate(t *testing.T) {
	w := buildTestWorld(t)
	step(w, 40)

	cell := w.Grid.Current()
	before := cell.Transitions()
	if !w.Rotate(true) {
		t.Fatalf("rotate should succeed")
	}
	if after := cell.Transitions(); after[ability.Up] != before[ability.Right] {
		t.Fatalf("rotation did not shift slots")
	}

	// the corner only has two neighbours, so turn until a transition faces one
	moved := false
	for turns := 0; turns < 4 && !moved; turns++ {
		for _, d := range ability.Directions {
			if cell.HasTransition(d) {
				moved = w.Move(d)
				break
			}
		}
		if !moved {
			w.Rotate(true)
		}
	}
	if !moved || w.Grid.Current() == cell {
		t.Fatalf("expected to leave the start cell")
	}
}

func TestWorldStaminaGate(t *testing.T) {
	w := buildTestWorld(t)
	step(w, 40)

	w.Player.Stamina.Modify(-w.Player.Stamina.Current()+5, false)
	if w.Grid.MoveCell(w.Grid.Cell(1, 0)) {
		t.Fatalf("lunge costs 15 and should be refused at 5 stamina")
	}
	if !w.Grid.MoveCell(w.Grid.Cell(0, 1)) {
		t.Fatalf("debug cell costs nothing and should pass")
	}
}

func TestWorldApplyReload(t *testing.T) {
	w := buildTestWorld(t)
	step(w, 2)
	running := w.Sequencer.CurrentSkill()

	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "prefabs", "skills.yaml"), `
skills:
  - name: slash
    stamina_cost: 10
    damage: 9
    targets: [enemy]
    animation: { name: slash, length: 0.5, frame_rate: 20 }
    start_active_frame: 3
    end_active_frame: 6
`)
	if err := w.ApplyReload(prefabs.Change{Path: filepath.Join("prefabs", "skills.yaml"), Kind: prefabs.ChangeSpec}); err != nil {
		t.Fatalf("reload skills: %v", err)
	}
	slash := w.Skills["slash"]
	if slash == nil || slash.Damage != 9 || slash == running {
		t.Fatalf("slash not replaced: %+v", slash)
	}
	if sa := w.Grid.Cell(0, 0).Ability.(*ability.SkillAbility); sa.Skill != slash {
		t.Fatalf("cell not rebound to the new descriptor")
	}
	if w.Sequencer.CurrentSkill() != running || running.Damage != 5 {
		t.Fatalf("running activation should keep its descriptor")
	}

	writeFile(t, filepath.Join(dir, "prefabs", "scripts", "dash.tengo"), `run := func(engine) { engine.allow_movement(true) }`)
	if err := w.ApplyReload(prefabs.Change{Path: filepath.Join("prefabs", "scripts", "dash.tengo"), Kind: prefabs.ChangeScript}); err != nil {
		t.Fatalf("reload script: %v", err)
	}
	w.Player.CanMove = false
	fn, err := w.Registry.Resolve("Behaviors/Dash", slash, w.Player)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	stamina := w.Player.Stamina.Current()
	fn()
	if !w.Player.CanMove || w.Player.Stamina.Current() != stamina {
		t.Fatalf("reloaded script not in use")
	}

	writeFile(t, filepath.Join(dir, "prefabs", "scripts", "dash.tengo"), `x := 1`)
	if err := w.ApplyReload(prefabs.Change{Path: "prefabs/scripts/dash.tengo", Kind: prefabs.ChangeScript}); err == nil {
		t.Fatalf("script without run should fail to reload")
	}

	if err := w.ApplyReload(prefabs.Change{Path: "prefabs/unrelated.yaml", Kind: prefabs.ChangeSpec}); err != nil {
		t.Fatalf("unrelated files should be ignored: %v", err)
	}
}

func TestBuildRejectsBadStartCell(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "prefabs", "bad_grid.yaml"), "width: 2\nheight: 2\nstart_x: 4\n")

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		t.Fatalf("game spec: %v", err)
	}
	spec.Grid = "bad_grid.yaml"
	if _, err := Build(spec); err == nil {
		t.Fatalf("expected error for a start cell outside the grid")
	}
	if _, err := Build(nil); err == nil {
		t.Fatalf("expected error for nil spec")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
