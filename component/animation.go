package component

import (
	"math"

	"github.com/milk9111/skillgrid/common"
)

// TicksPerSecond is the fixed update rate the host loop runs at.
const TicksPerSecond = 60

// AnimationClip describes a clip by name, length in seconds and sample rate.
// The clip data itself belongs to whatever plays it.
type AnimationClip struct {
	Name      string
	Length    float64
	FrameRate float64
	Loop      bool
}

// TotalFrames returns the number of discrete frames in the clip.
func (c AnimationClip) TotalFrames() int {
	if c.Length <= 0 || c.FrameRate <= 0 {
		return 0
	}
	return common.RoundToInt(c.Length * c.FrameRate)
}

// Valid reports whether the clip can be sampled.
func (c AnimationClip) Valid() bool {
	return c.Name != "" && c.TotalFrames() > 0
}

// FrameAt maps a normalized playback time to a frame index. Loop counts are
// discarded, so 1.3 and 0.3 land on the same frame.
func (c AnimationClip) FrameAt(normalizedTime float64) int {
	total := c.TotalFrames()
	if total <= 0 || math.IsNaN(normalizedTime) || math.IsInf(normalizedTime, 0) {
		return 0
	}
	frame := common.FloorToInt(common.Clamp01(math.Mod(normalizedTime, 1)) * float64(total))
	if frame >= total {
		frame = total - 1
	}
	return frame
}

// AnimatorState is one sample of an animation clock.
type AnimatorState struct {
	Clip           string
	NormalizedTime float64
}

// IsName reports whether the sample belongs to the named clip.
func (s AnimatorState) IsName(clip string) bool {
	return clip != "" && s.Clip == clip
}

// Animator is the animation clock a skill sequencer reads from.
type Animator interface {
	Play(clip string, normalizedTime float64)
	State() AnimatorState
}

// ClipPlayer is a tick-driven Animator over a fixed clip set. Clips that do
// not loop hand playback back to the default clip when they finish.
type ClipPlayer struct {
	Default string

	clips   map[string]AnimationClip
	current string
	elapsed float64
}

// NewClipPlayer creates a player that idles on defaultClip.
func NewClipPlayer(defaultClip AnimationClip, clips ...AnimationClip) *ClipPlayer {
	p := &ClipPlayer{
		Default: defaultClip.Name,
		clips:   make(map[string]AnimationClip, len(clips)+1),
	}
	p.AddClip(defaultClip)
	for _, c := range clips {
		p.AddClip(c)
	}
	p.current = defaultClip.Name
	return p
}

// AddClip registers or replaces a clip.
func (p *ClipPlayer) AddClip(c AnimationClip) {
	if p == nil || c.Name == "" {
		return
	}
	if p.clips == nil {
		p.clips = make(map[string]AnimationClip)
	}
	p.clips[c.Name] = c
}

// Clip returns the registered clip by name.
func (p *ClipPlayer) Clip(name string) (AnimationClip, bool) {
	if p == nil {
		return AnimationClip{}, false
	}
	c, ok := p.clips[name]
	return c, ok
}

// Play jumps to clip at the given normalized time. Unknown clips are ignored.
func (p *ClipPlayer) Play(clip string, normalizedTime float64) {
	if p == nil {
		return
	}
	c, ok := p.clips[clip]
	if !ok {
		return
	}
	p.current = clip
	p.elapsed = common.Clamp01(normalizedTime) * c.Length
}

// Current returns the playing clip name.
func (p *ClipPlayer) Current() string {
	if p == nil {
		return ""
	}
	return p.current
}

// State samples the clock. Looping clips report normalized time past 1.
func (p *ClipPlayer) State() AnimatorState {
	if p == nil {
		return AnimatorState{}
	}
	c, ok := p.clips[p.current]
	if !ok || c.Length <= 0 {
		return AnimatorState{Clip: p.current}
	}
	return AnimatorState{Clip: p.current, NormalizedTime: p.elapsed / c.Length}
}

// Advance moves playback forward by dt seconds.
func (p *ClipPlayer) Advance(dt float64) {
	if p == nil || dt <= 0 {
		return
	}
	c, ok := p.clips[p.current]
	if !ok || c.Length <= 0 {
		return
	}
	p.elapsed += dt
	if c.Loop || p.elapsed < c.Length {
		return
	}
	if p.current == p.Default {
		p.elapsed = c.Length
		return
	}
	p.current = p.Default
	p.elapsed = 0
}

// Update advances playback by one host tick.
func (p *ClipPlayer) Update() {
	p.Advance(1.0 / TicksPerSecond)
}
