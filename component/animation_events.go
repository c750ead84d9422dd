package component

import "sort"

// AnimationEvent names something to run when playback reaches Frame.
type AnimationEvent struct {
	Frame int
	Name  string
}

// SortAnimationEvents orders events by frame. Events sharing a frame keep
// their authored order.
func SortAnimationEvents(events []AnimationEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Frame < events[j].Frame
	})
}
