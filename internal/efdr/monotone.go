package efdr

import "math"

// MonotonizeInPlace enforces that an FDR-like sequence, ordered from best to
// worst confidence, never decreases as confidence worsens. It traverses from
// the worst-ranked end towards the best, capping each value by a running
// minimum that starts at 1.0. NaN and sentinel entries are skipped and do
// not update the running minimum.
func MonotonizeInPlace(values []float64) {
	runMin := 1.0
	for i := len(values) - 1; i >= 0; i-- {
		if math.IsNaN(values[i]) || values[i] == UnpairedScore {
			continue
		}
		if values[i] > runMin {
			values[i] = runMin
		}
		runMin = values[i]
	}
}

// Monotonize returns a monotonized copy, leaving the input untouched.
func Monotonize(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	MonotonizeInPlace(out)
	return out
}

// monotonizeOrdered monotonizes values visited through the given index
// order, writing the capped values back to their original positions.
func monotonizeOrdered(values []float64, order []int) {
	tmp := make([]float64, len(order))
	for pos, idx := range order {
		tmp[pos] = values[idx]
	}
	MonotonizeInPlace(tmp)
	for pos, idx := range order {
		values[idx] = tmp[pos]
	}
}
