package simulation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParamsValid(t *testing.T) {
	assert.NoError(t, DefaultParams().validate())
}

func TestLoadParamsEmptyPath(t *testing.T) {
	p, err := LoadParams("")
	require.NoError(t, err)
	assert.Equal(t, DefaultParams(), p)
}

func TestLoadParamsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("anomalyBaseProb: 0.01\npeakPrice: 6000\n"), 0o644))

	p, err := LoadParams(path)
	require.NoError(t, err)

	assert.Equal(t, 0.01, p.AnomalyBaseProb)
	assert.Equal(t, 6000.0, p.PeakPrice)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultParams().NightPrice, p.NightPrice)
	assert.Equal(t, DefaultParams().WalkStepC, p.WalkStepC)
}

func TestLoadParamsRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("anomalyBaseProb: 2.5\n"), 0o644))

	_, err := LoadParams(path)
	assert.Error(t, err)
}

func TestLoadParamsMissingFile(t *testing.T) {
	_, err := LoadParams(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
