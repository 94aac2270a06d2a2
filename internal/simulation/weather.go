package simulation

import (
	"math"
	"math/rand"
	"time"
)

// Condition is the closed set of sky states the generation model consumes.
type Condition string

const (
	CondSunny  Condition = "Sunny"
	CondCloudy Condition = "Cloudy"
	CondNight  Condition = "Night"
)

// Daylight window shared by the weather and solar models.
const (
	nightBeforeHour = 6
	nightAfterHour  = 20
	solarWindowFrom = 7 // exclusive
	solarWindowTo   = 19
	solarNoonHour   = 13
)

// WeatherState carries the slow per-region temperature component between
// ticks. It holds the seasonal random walk only; the diurnal swing and the
// per-tick noise are recomputed fresh so they never accumulate into the walk.
type WeatherState struct {
	BaseC float64
}

// WeatherSample is one reported weather observation.
type WeatherSample struct {
	TemperatureC float64
	Condition    Condition
}

// seasonalBase is the climatological mean for a day of year: a sinusoid
// bottoming in late January and peaking in late July.
func (m Models) seasonalBase(ts time.Time) float64 {
	doy := float64(ts.YearDay())
	return m.P.SeasonalMeanC + m.P.SeasonalSwingC*math.Sin(2*math.Pi*(doy-80)/365.25)
}

// NewWeatherState seeds a region's rolling temperature at the run start: the
// seasonal mean for that date plus a small per-region offset, so regions do
// not march in lockstep.
func (m Models) NewWeatherState(rng *rand.Rand, start time.Time) WeatherState {
	return WeatherState{BaseC: m.seasonalBase(start) + uniform(rng, -2, 2)}
}

// Weather advances a region's rolling state by one tick and reports the
// observed temperature and sky condition. The reported single-tick change is
// bounded by the walk clamp, the seasonal drift over one step, the diurnal
// step, and twice the noise amplitude.
func (m Models) Weather(rng *rand.Rand, ts time.Time, st WeatherState) (WeatherSample, WeatherState) {
	drift := m.seasonalBase(ts) - m.seasonalBase(ts.Add(-m.Step))
	walk := clamp(rng.NormFloat64()*m.P.WalkStepC, -m.P.WalkClampC, m.P.WalkClampC)
	// Relaxation toward the seasonal mean keeps the walk from wandering off
	// over long runs.
	reversion := m.P.MeanReversion * (m.seasonalBase(ts) - st.BaseC)
	st.BaseC += drift + reversion + walk

	hourFrac := float64(ts.Hour()) + float64(ts.Minute())/60
	diurnal := -m.P.DiurnalAmplitudeC * math.Sin(2*math.Pi*hourFrac/24)
	temp := round2(st.BaseC + diurnal + uniform(rng, -m.P.WeatherNoiseC, m.P.WeatherNoiseC))

	cond := CondSunny
	hour := ts.Hour()
	switch {
	case hour < nightBeforeHour || hour > nightAfterHour:
		cond = CondNight
	case temp < m.P.CloudyBelowC || rng.Float64() < m.P.CloudyProb:
		cond = CondCloudy
	}

	return WeatherSample{TemperatureC: temp, Condition: cond}, st
}
