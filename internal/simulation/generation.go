package simulation

import (
	"math"
	"math/rand"
	"time"

	"github.com/voltgrid/gridsim/internal/topology"
)

// Generation returns a generator's output in MW for a tick, always within
// [0, rated max] and rounded to two decimals.
//
// Solar follows a triangular efficiency curve peaking at local solar noon,
// gated by the daylight window and derated under cloud cover. Wind is wildly
// intermittent, thermal runs in a narrow high-utilization band, nuclear sits
// near-constant at the top. Unknown fuel tags get a defined half-capacity
// fallback rather than an error.
func (m Models) Generation(rng *rand.Rand, gen topology.Generator, cond Condition, ts time.Time) float64 {
	max := gen.MaxOutputMW
	hour := ts.Hour()

	var output float64
	switch gen.Type {
	case topology.GenSolar:
		if hour > solarWindowFrom && hour < solarWindowTo {
			curve := 1 - math.Abs(float64(hour-solarNoonHour))/6
			output = max * curve * uniform(rng, m.P.SolarEffMin, m.P.SolarEffMax)
			if cond == CondCloudy {
				output *= m.P.CloudyDerate
			}
		}
	case topology.GenWind:
		output = max * uniform(rng, m.P.WindMin, m.P.WindMax)
	case topology.GenThermal:
		output = max * uniform(rng, m.P.ThermalMin, m.P.ThermalMax)
	case topology.GenNuclear:
		output = max * (m.P.NuclearLevel + uniform(rng, -m.P.NuclearJitter, m.P.NuclearJitter))
	default:
		output = max * m.P.FallbackFactor
	}

	return round2(clamp(output, 0, max))
}
