package common

// Rotate cyclically shifts s by k positions in place and returns it.
//
// Clockwise moves every element k slots toward the end of the slice, wrapping
// the tail around to the front (new[i] = old[i-k]). Counter-clockwise is the
// inverse. k is normalised mod len(s); an empty slice or a full turn returns s
// untouched.
func Rotate[T any](s []T, k int, clockwise bool) []T {
	n := len(s)
	if n == 0 {
		return s
	}
	k %= n
	if k < 0 {
		k += n
	}
	if k == 0 {
		return s
	}
	if !clockwise {
		k = n - k
	}

	// copy the tail that wraps, slide the rest up, then drop the tail in front
	tail := make([]T, k)
	copy(tail, s[n-k:])
	copy(s[k:], s[:n-k])
	copy(s, tail)
	return s
}
