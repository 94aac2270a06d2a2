package simulation

import (
	"math/rand"
	"time"
)

// Price returns the energy price per MWh for a tick. Three hourly tiers
// (off-peak night, standard day, evening peak) plus a bounded positive
// jitter, so the result is strictly positive by construction.
func (m Models) Price(rng *rand.Rand, ts time.Time) float64 {
	hour := ts.Hour()
	switch {
	case hour < 7:
		return round2(m.P.NightPrice + uniform(rng, 0, m.P.NightJitter))
	case hour >= 18 && hour < 23:
		return round2(m.P.PeakPrice + uniform(rng, 0, m.P.PeakJitter))
	default:
		return round2(m.P.DayPrice + uniform(rng, 0, m.P.DayJitter))
	}
}
