package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voltgrid/gridsim/internal/topology"
)

func TestProfileTotality(t *testing.T) {
	classes := []topology.ConsumerClass{
		topology.ClassResidential,
		topology.ClassIndustrial,
		topology.ClassCommercial,
	}
	for _, class := range classes {
		for hour := 0; hour < 24; hour++ {
			f := Profile(class, hour)
			assert.Greater(t, f, 0.0, "class %s hour %d", class, hour)
			assert.LessOrEqual(t, f, 1.0, "class %s hour %d", class, hour)
		}
	}
}

func TestProfileShapes(t *testing.T) {
	t.Run("industrial peaks mid-day", func(t *testing.T) {
		assert.Greater(t, Profile(topology.ClassIndustrial, 11), Profile(topology.ClassIndustrial, 3))
		assert.Greater(t, Profile(topology.ClassIndustrial, 14), Profile(topology.ClassIndustrial, 21))
	})

	t.Run("residential peaks in the evening", func(t *testing.T) {
		assert.Greater(t, Profile(topology.ClassResidential, 19), Profile(topology.ClassResidential, 12))
		assert.Greater(t, Profile(topology.ClassResidential, 19), Profile(topology.ClassResidential, 3))
	})

	t.Run("commercial follows opening hours", func(t *testing.T) {
		assert.Greater(t, Profile(topology.ClassCommercial, 12), Profile(topology.ClassCommercial, 2))
	})

	t.Run("unknown class falls back to residential", func(t *testing.T) {
		assert.Equal(t, Profile(topology.ClassResidential, 8), Profile(topology.ConsumerClass("datacenter"), 8))
	})
}
