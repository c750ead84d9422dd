package component

import "testing"

func TestAnimationClipFrameAt(t *testing.T) {
	clip := AnimationClip{Name: "slash", Length: 1.0, FrameRate: 10}

	cases := []struct {
		name       string
		normalized float64
		want       int
	}{
		{"start", 0, 0},
		{"first_frame", 0.15, 1},
		{"window_start", 0.35, 3},
		{"window_end", 0.75, 7},
		{"last", 0.99, 9},
		{"looped", 1.35, 3},
		{"negative_clamps", -0.4, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := clip.FrameAt(c.normalized); got != c.want {
				t.Fatalf("FrameAt(%v) = %d, want %d", c.normalized, got, c.want)
			}
		})
	}
}

func TestAnimationClipTotalFrames(t *testing.T) {
	cases := []struct {
		name string
		clip AnimationClip
		want int
	}{
		{"ten", AnimationClip{Name: "a", Length: 1, FrameRate: 10}, 10},
		{"rounds", AnimationClip{Name: "a", Length: 0.52, FrameRate: 12}, 6},
		{"zero_length", AnimationClip{Name: "a", FrameRate: 12}, 0},
		{"zero_rate", AnimationClip{Name: "a", Length: 1}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.clip.TotalFrames(); got != c.want {
				t.Fatalf("TotalFrames() = %d, want %d", got, c.want)
			}
			if got := c.clip.Valid(); got != (c.want > 0) {
				t.Fatalf("Valid() = %v", got)
			}
		})
	}
}

func TestClipPlayerFallsBackToDefault(t *testing.T) {
	idle := AnimationClip{Name: "idle", Length: 1, FrameRate: 10, Loop: true}
	slash := AnimationClip{Name: "slash", Length: 0.5, FrameRate: 10}
	p := NewClipPlayer(idle, slash)

	if got := p.State().Clip; got != "idle" {
		t.Fatalf("expected idle at start, got %q", got)
	}

	p.Play("slash", 0)
	p.Advance(0.25)
	st := p.State()
	if !st.IsName("slash") || st.NormalizedTime != 0.5 {
		t.Fatalf("unexpected state mid-clip: %+v", st)
	}

	p.Advance(0.25)
	if got := p.State().Clip; got != "idle" {
		t.Fatalf("expected fallback to idle after clip end, got %q", got)
	}
}

func TestClipPlayerLoopsPastOne(t *testing.T) {
	idle := AnimationClip{Name: "idle", Length: 1, FrameRate: 10, Loop: true}
	p := NewClipPlayer(idle)
	p.Advance(1.5)
	st := p.State()
	if st.Clip != "idle" || st.NormalizedTime != 1.5 {
		t.Fatalf("expected looping clip to report 1.5, got %+v", st)
	}
	if got := idle.FrameAt(st.NormalizedTime); got != 5 {
		t.Fatalf("expected frame 5, got %d", got)
	}
}

func TestClipPlayerIgnoresUnknownClip(t *testing.T) {
	idle := AnimationClip{Name: "idle", Length: 1, FrameRate: 10, Loop: true}
	p := NewClipPlayer(idle)
	p.Play("missing", 0)
	if got := p.Current(); got != "idle" {
		t.Fatalf("expected idle to keep playing, got %q", got)
	}
}

func TestSortAnimationEventsStable(t *testing.T) {
	events := []AnimationEvent{
		{Frame: 5, Name: "b"},
		{Frame: 1, Name: "a"},
		{Frame: 5, Name: "c"},
		{Frame: 0, Name: "z"},
	}
	SortAnimationEvents(events)
	want := []string{"z", "a", "b", "c"}
	for i, e := range events {
		if e.Name != want[i] {
			t.Fatalf("index %d: got %q want %q (%v)", i, e.Name, want[i], events)
		}
	}
}
