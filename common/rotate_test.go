package common

import (
	"reflect"
	"slices"
	"testing"
)

func TestRotate(t *testing.T) {
	cases := []struct {
		name      string
		in        []int
		k         int
		clockwise bool
		want      []int
	}{
		{"cw_one", []int{0, 1, 2, 3}, 1, true, []int{3, 0, 1, 2}},
		{"ccw_one", []int{0, 1, 2, 3}, 1, false, []int{1, 2, 3, 0}},
		{"cw_two", []int{0, 1, 2, 3}, 2, true, []int{2, 3, 0, 1}},
		{"cw_wraps_k", []int{0, 1, 2, 3}, 5, true, []int{3, 0, 1, 2}},
		{"negative_k", []int{0, 1, 2, 3}, -1, true, []int{1, 2, 3, 0}},
		{"full_turn", []int{0, 1, 2, 3}, 4, true, []int{0, 1, 2, 3}},
		{"zero", []int{0, 1, 2}, 0, false, []int{0, 1, 2}},
		{"single", []int{7}, 3, true, []int{7}},
		{"empty", []int{}, 2, true, []int{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := make([]int, len(c.in))
			copy(in, c.in)
			got := Rotate(in, c.k, c.clockwise)
			if got == nil || !slices.Equal(got, c.want) {
				t.Fatalf("Rotate(%v, %d, %v) = %v, want %v", c.in, c.k, c.clockwise, got, c.want)
			}
		})
	}
}

func TestRotateNilSlice(t *testing.T) {
	var s []string
	if got := Rotate(s, 3, true); got != nil {
		t.Fatalf("expected nil slice back, got %v", got)
	}
}

func TestRotateInverseLaws(t *testing.T) {
	base := []string{"up", "left", "down", "right", "extra"}
	n := len(base)

	for k := 0; k <= 2*n; k++ {
		for _, cw := range []bool{true, false} {
			s := append([]string(nil), base...)
			Rotate(s, k, cw)
			Rotate(s, n-k%n, cw)
			if !reflect.DeepEqual(s, base) {
				t.Fatalf("k=%d cw=%v: rotate by k then n-k gave %v", k, cw, s)
			}

			s = append([]string(nil), base...)
			Rotate(s, k, cw)
			Rotate(s, k, !cw)
			if !reflect.DeepEqual(s, base) {
				t.Fatalf("k=%d cw=%v: rotate then reverse gave %v", k, cw, s)
			}
		}
	}
}

func TestRotateInPlace(t *testing.T) {
	s := []int{1, 2, 3, 4}
	out := Rotate(s, 1, true)
	if &out[0] != &s[0] {
		t.Fatalf("expected rotation to reuse the input backing array")
	}
}

func TestFrameMathHelpers(t *testing.T) {
	if got := Clamp01(1.5); got != 1 {
		t.Fatalf("Clamp01(1.5) = %v", got)
	}
	if got := RoundToInt(2.5); got != 3 {
		t.Fatalf("RoundToInt(2.5) = %v", got)
	}
	if got := FloorToInt(2.99); got != 2 {
		t.Fatalf("FloorToInt(2.99) = %v", got)
	}
}
