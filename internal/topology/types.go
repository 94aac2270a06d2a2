package topology

// GeneratorType is the closed set of fuel types the generation model knows.
// Values not in the set map to GenOther, which keeps runs against newer
// topology seeds working instead of failing on an unknown tag.
type GeneratorType string

const (
	GenSolar   GeneratorType = "solar"
	GenWind    GeneratorType = "wind"
	GenThermal GeneratorType = "thermal"
	GenNuclear GeneratorType = "nuclear"
	GenOther   GeneratorType = "other"
)

// ParseGeneratorType maps a raw fuel tag from the store onto the closed set.
func ParseGeneratorType(raw string) GeneratorType {
	switch GeneratorType(raw) {
	case GenSolar, GenWind, GenThermal, GenNuclear:
		return GeneratorType(raw)
	default:
		return GenOther
	}
}

// ConsumerClass drives the diurnal demand profile of a substation.
type ConsumerClass string

const (
	ClassResidential ConsumerClass = "residential"
	ClassIndustrial  ConsumerClass = "industrial"
	ClassCommercial  ConsumerClass = "commercial"
)

// Classes lists every consumer class, in the order used for per-run
// assignment.
var Classes = []ConsumerClass{ClassResidential, ClassIndustrial, ClassCommercial}

// Region is identity only; all per-region attributes are generated.
type Region struct {
	ID int64
}

// Substation is a load point with a rated capacity.
type Substation struct {
	ID         int64
	CapacityMW float64
	RegionID   int64
}

// Generator produces power, with its output model keyed by Type.
type Generator struct {
	ID          int64
	Type        GeneratorType
	MaxOutputMW float64
}

// PowerLine connects a substation outward with a rated maximum load.
type PowerLine struct {
	ID               int64
	MaxLoadMW        float64
	FromSubstationID int64
}

// Snapshot is the reference data for one run, fetched once and never mutated.
type Snapshot struct {
	Regions     []Region
	Substations []Substation
	Generators  []Generator
	Lines       []PowerLine
}
