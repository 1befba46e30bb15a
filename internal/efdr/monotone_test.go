package efdr

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMonotonize(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{
			name: "local bump is capped",
			in:   []float64{0.1, 0.3, 0.2, 0.4, 0.5},
			want: []float64{0.1, 0.2, 0.2, 0.4, 0.5},
		},
		{
			name: "already monotonic unchanged",
			in:   []float64{0.1, 0.2, 0.3},
			want: []float64{0.1, 0.2, 0.3},
		},
		{
			name: "values above one are capped",
			in:   []float64{1.4, 0.5},
			want: []float64{0.5, 0.5},
		},
		{
			name: "single value capped at one",
			in:   []float64{1.7},
			want: []float64{1.0},
		},
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Monotonize(tc.in)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Monotonize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMonotonizeIdempotent(t *testing.T) {
	in := []float64{0.3, 0.1, 0.9, 0.2, 0.8, 0.8}
	once := Monotonize(in)
	twice := Monotonize(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("monotonize not idempotent (-once +twice):\n%s", diff)
	}
}

func TestMonotonizeNonDecreasing(t *testing.T) {
	in := []float64{0.9, 0.1, 0.5, 0.05, 0.7, 0.3}
	got := Monotonize(in)
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("result decreases at %d: %v", i, got)
		}
	}
}

func TestMonotonizeSkipsNaN(t *testing.T) {
	in := []float64{0.5, math.NaN(), 0.2}
	got := Monotonize(in)
	want := []float64{0.2, math.NaN(), 0.2}
	if diff := cmp.Diff(want, got, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("NaN handling mismatch (-want +got):\n%s", diff)
	}
}

func TestMonotonizeSkipsSentinel(t *testing.T) {
	in := []float64{0.5, UnpairedScore, 0.2}
	got := Monotonize(in)
	want := []float64{0.2, UnpairedScore, 0.2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sentinel handling mismatch (-want +got):\n%s", diff)
	}
}

func TestMonotonizeLeavesInputUntouched(t *testing.T) {
	in := []float64{0.3, 0.1}
	Monotonize(in)
	if diff := cmp.Diff([]float64{0.3, 0.1}, in); diff != "" {
		t.Errorf("input was mutated (-want +got):\n%s", diff)
	}
}
