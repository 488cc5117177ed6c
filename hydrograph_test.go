package gwat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHydrograph(t *testing.T) {
	g, err := NewHydrograph([]float64{0, 1, 3}, []float64{1.5, 1.6, 1.4})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 2}, g.Dt())

	_, err = NewHydrograph([]float64{0, 1}, []float64{1})
	assert.Error(t, err)
	_, err = NewHydrograph([]float64{0}, []float64{1})
	assert.Error(t, err)
	_, err = NewHydrograph([]float64{0, 0}, []float64{1, 2})
	assert.Error(t, err)
}

func TestLoadHydrograph(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "wl.csv")
	require.NoError(t, os.WriteFile(fp, []byte("100,1.5\n101,1.6\n103,1.4\n"), 0644))
	g, err := LoadHydrograph(fp)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 101, 103}, g.T)
	assert.Equal(t, []float64{1.5, 1.6, 1.4}, g.H)
}
