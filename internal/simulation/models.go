package simulation

import (
	"math"
	"math/rand"
	"time"
)

// Models bundles the signal models with their tuning constants and the tick
// step. Every method is a pure function of its arguments and the supplied
// random source, which makes a run fully reproducible from its seed.
type Models struct {
	P    Params
	Step time.Duration
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func isWeekend(ts time.Time) bool {
	wd := ts.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
