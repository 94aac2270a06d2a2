package simulation

import "github.com/voltgrid/gridsim/internal/topology"

// Demand profiles: utilization factor per hour of day, hand-tuned per
// consumer class. Residential shows the classic morning/evening double hump,
// industrial plateaus through the working day, commercial follows opening
// hours. All factors sit in (0,1].
var (
	residentialProfile = [24]float64{
		0.35, 0.30, 0.28, 0.27, 0.28, 0.35,
		0.50, 0.70, 0.75, 0.60, 0.55, 0.55,
		0.58, 0.55, 0.52, 0.55, 0.65, 0.80,
		0.95, 1.00, 0.95, 0.85, 0.65, 0.45,
	}
	industrialProfile = [24]float64{
		0.40, 0.38, 0.38, 0.38, 0.40, 0.45,
		0.60, 0.80, 0.95, 1.00, 1.00, 0.98,
		0.95, 0.98, 1.00, 0.98, 0.90, 0.75,
		0.60, 0.50, 0.45, 0.42, 0.40, 0.40,
	}
	commercialProfile = [24]float64{
		0.20, 0.18, 0.18, 0.18, 0.20, 0.25,
		0.40, 0.60, 0.80, 0.90, 0.95, 1.00,
		1.00, 0.98, 0.95, 0.92, 0.90, 0.85,
		0.70, 0.55, 0.45, 0.35, 0.28, 0.22,
	}
)

// Profile returns the demand factor for a consumer class at an hour of day.
// Total over hour in [0,23]; unknown classes fall back to the residential
// shape.
func Profile(class topology.ConsumerClass, hour int) float64 {
	switch class {
	case topology.ClassIndustrial:
		return industrialProfile[hour]
	case topology.ClassCommercial:
		return commercialProfile[hour]
	default:
		return residentialProfile[hour]
	}
}
