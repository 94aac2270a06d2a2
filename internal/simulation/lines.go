package simulation

import (
	"math/rand"

	"github.com/voltgrid/gridsim/internal/topology"
)

// LineLoad returns a power line's load in MW for a tick: a baseline fraction
// of rated max plus a bounded positive variation. The bound on the variation
// keeps the result inside [0, rated max] without an explicit clamp.
func (m Models) LineLoad(rng *rand.Rand, line topology.PowerLine) float64 {
	max := line.MaxLoadMW
	return round2(max*m.P.LineBaseFraction + uniform(rng, 0, max*m.P.LineVariationFraction))
}
