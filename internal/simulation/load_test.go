package simulation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltgrid/gridsim/internal/topology"
)

var testSub = topology.Substation{ID: 1, CapacityMW: 100, RegionID: 1}

func TestLoadBounds(t *testing.T) {
	m := testModels(time.Hour)
	rng := rand.New(rand.NewSource(31))

	ts := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 24*60; i++ {
		for _, class := range topology.Classes {
			load, anomaly := m.Load(rng, testSub, class, ts, 12)
			require.GreaterOrEqual(t, load, 0.0)
			if load > testSub.CapacityMW {
				require.True(t, anomaly, "load %.2f exceeds capacity without anomaly at %s", load, ts)
			}
			if anomaly {
				require.Greater(t, load, testSub.CapacityMW)
				require.LessOrEqual(t, load, 1.2*testSub.CapacityMW)
			}
		}
		ts = ts.Add(time.Hour)
	}
}

func TestLoadAnomalyForced(t *testing.T) {
	p := DefaultParams()
	p.AnomalyBaseProb = 1
	m := Models{P: p, Step: time.Hour}
	rng := rand.New(rand.NewSource(32))
	ts := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	load, anomaly := m.Load(rng, testSub, topology.ClassResidential, ts, 18)
	assert.True(t, anomaly)
	assert.Greater(t, load, testSub.CapacityMW)
	assert.LessOrEqual(t, load, 1.2*testSub.CapacityMW)
}

func TestLoadAnomalyRate(t *testing.T) {
	// Over a long run the anomaly rate must stay a minority signal within
	// the configured rare-event band.
	m := testModels(time.Hour)
	rng := rand.New(rand.NewSource(33))

	const draws = 200000
	fired := 0
	ts := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < draws; i++ {
		_, anomaly := m.Load(rng, testSub, topology.Classes[i%3], ts, 12)
		if anomaly {
			fired++
		}
		ts = ts.Add(time.Hour)
	}

	rate := float64(fired) / draws
	assert.Greater(t, rate, 0.0005)
	assert.Less(t, rate, 0.02)
}

func TestLoadTemperatureSensitivity(t *testing.T) {
	// Averaged over noise, cold weather pulls load up against a mild day.
	m := testModels(time.Hour)
	ts := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC) // Monday

	avg := func(temp float64, seed int64) float64 {
		rng := rand.New(rand.NewSource(seed))
		var sum float64
		n := 0
		for i := 0; i < 2000; i++ {
			load, anomaly := m.Load(rng, testSub, topology.ClassResidential, ts, temp)
			if anomaly {
				continue
			}
			sum += load
			n++
		}
		return sum / float64(n)
	}

	cold := avg(-5, 40)
	mild := avg(18, 41)
	hot := avg(30, 42)

	assert.Greater(t, cold, mild)
	assert.Greater(t, hot, mild)
	// Heating response is stronger than cooling for the same deviation.
	assert.Greater(t, cold-mild, hot-mild)
}

func TestLoadWeekendEffect(t *testing.T) {
	m := testModels(time.Hour)
	monday := time.Date(2025, 10, 6, 14, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 10, 4, 14, 0, 0, 0, time.UTC)

	avg := func(ts time.Time, class topology.ConsumerClass, seed int64) float64 {
		rng := rand.New(rand.NewSource(seed))
		var sum float64
		n := 0
		for i := 0; i < 2000; i++ {
			load, anomaly := m.Load(rng, testSub, class, ts, 18)
			if anomaly {
				continue
			}
			sum += load
			n++
		}
		return sum / float64(n)
	}

	assert.Less(t, avg(saturday, topology.ClassIndustrial, 50), avg(monday, topology.ClassIndustrial, 51))
	assert.Less(t, avg(saturday, topology.ClassCommercial, 52), avg(monday, topology.ClassCommercial, 53))
}

func TestLoadDeterminism(t *testing.T) {
	m := testModels(time.Hour)
	ts := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	loadA, anomA := m.Load(rand.New(rand.NewSource(9)), testSub, topology.ClassCommercial, ts, 20)
	loadB, anomB := m.Load(rand.New(rand.NewSource(9)), testSub, topology.ClassCommercial, ts, 20)
	assert.Equal(t, loadA, loadB)
	assert.Equal(t, anomA, anomB)
}
