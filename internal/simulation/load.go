package simulation

import (
	"math/rand"
	"time"

	"github.com/voltgrid/gridsim/internal/topology"
)

// Load returns a substation's load in MW for a tick, and whether the anomaly
// policy fired. Composition: baseline floor, class demand profile scaled by
// a weekday/weekend multiplier, HVAC response to temperature outside the
// comfort band, and bounded symmetric noise. The combined utilization is
// clamped to the configured band, so load can exceed capacity only through
// the anomaly override.
//
// The anomaly fires with a small base probability each tick, or with a
// secondary probability when the computed load already sits near capacity.
// It then forces load into the overload band above rated capacity.
func (m Models) Load(rng *rand.Rand, sub topology.Substation, class topology.ConsumerClass, ts time.Time, tempC float64) (float64, bool) {
	capacity := sub.CapacityMW

	wkndMult := 1.0
	if isWeekend(ts) {
		switch class {
		case topology.ClassIndustrial:
			wkndMult = m.P.WeekendIndustrial
		case topology.ClassCommercial:
			wkndMult = m.P.WeekendCommercial
		default:
			wkndMult = m.P.WeekendResidential
		}
	}

	base := capacity * m.P.BaseLoadFraction
	profileTerm := Profile(class, ts.Hour()) * m.P.ProfileLoadFraction * capacity * wkndMult

	var hvac float64
	if tempC < m.P.ComfortLowC {
		hvac = (m.P.ComfortLowC - tempC) * m.P.HeatingCoeff * capacity
	} else if tempC > m.P.ComfortHighC {
		hvac = (tempC - m.P.ComfortHighC) * m.P.CoolingCoeff * capacity
	}

	noise := capacity * m.P.LoadNoiseFraction * uniform(rng, -1, 1)

	util := (base + profileTerm + hvac + noise) / capacity
	util = clamp(util, m.P.MinUtilization, m.P.MaxUtilization)

	anomaly := rng.Float64() < m.P.AnomalyBaseProb
	if !anomaly && util > m.P.NearCapThreshold {
		anomaly = rng.Float64() < m.P.AnomalyNearCapProb
	}
	if anomaly {
		return round2(capacity * uniform(rng, m.P.OverloadMin, m.P.OverloadMax)), true
	}

	return round2(capacity * util), false
}
