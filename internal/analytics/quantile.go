package analytics

import (
	"math"
	"sort"
)

// Quantile returns the q-th quantile (0 <= q <= 1) of values using linear
// interpolation between the closest ranks. NaN values are ignored. ok is
// false when no values remain.
func Quantile(values []float64, q float64) (value float64, ok bool) {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return 0, false
	}
	sort.Float64s(sorted)

	switch {
	case q <= 0:
		return sorted[0], true
	case q >= 1:
		return sorted[len(sorted)-1], true
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], true
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac, true
}
