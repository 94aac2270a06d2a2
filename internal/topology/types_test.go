package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGeneratorType(t *testing.T) {
	assert.Equal(t, GenSolar, ParseGeneratorType("solar"))
	assert.Equal(t, GenWind, ParseGeneratorType("wind"))
	assert.Equal(t, GenThermal, ParseGeneratorType("thermal"))
	assert.Equal(t, GenNuclear, ParseGeneratorType("nuclear"))

	// Unknown fuel tags are a defined fallback, not an error.
	assert.Equal(t, GenOther, ParseGeneratorType("other"))
	assert.Equal(t, GenOther, ParseGeneratorType("geothermal"))
	assert.Equal(t, GenOther, ParseGeneratorType(""))
}
