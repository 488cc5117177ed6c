// Package gwat analyzes observation well hydrographs: recession extraction, master
// recession curve calibration, water-table-fluctuation recharge, and a lumped
// surface water budget calibrated to the well record by GLUE.
package gwat

import (
	"fmt"
	"math"

	"github.com/maseology/mmio"
)

// Hydrograph is an observed well record: water levels H [m below ground
// surface] at day numbers T, strictly increasing, not necessarily uniform.
type Hydrograph struct {
	T, H []float64
}

// NewHydrograph validates a well record.
func NewHydrograph(t, h []float64) (*Hydrograph, error) {
	if len(t) != len(h) {
		return nil, fmt.Errorf("gwat: series length mismatch (%d,%d)", len(t), len(h))
	}
	if len(t) < 2 {
		return nil, fmt.Errorf("gwat: degenerate well record (%d readings)", len(t))
	}
	for i := range t {
		if math.IsNaN(t[i]) || math.IsNaN(h[i]) {
			return nil, fmt.Errorf("gwat: NaN at reading %d", i)
		}
		if i > 0 && t[i] <= t[i-1] {
			return nil, fmt.Errorf("gwat: time not strictly increasing at reading %d", i)
		}
	}
	return &Hydrograph{T: t, H: h}, nil
}

// LoadHydrograph reads a headerless two-column csv of day number and water
// level [m below ground surface].
func LoadHydrograph(fp string) (*Hydrograph, error) {
	dat, err := mmio.ReadCSV(fp, 0) // no header line
	if err != nil {
		return nil, fmt.Errorf("gwat.LoadHydrograph: %v", err)
	}
	t, h := make([]float64, len(dat)), make([]float64, len(dat))
	for i, ln := range dat {
		if len(ln) < 2 {
			return nil, fmt.Errorf("gwat.LoadHydrograph: %d fields on line %d", len(ln), i+1)
		}
		t[i], h[i] = ln[0], ln[1]
	}
	return NewHydrograph(t, h)
}

// Dt returns the timestep preceding every reading, Dt()[0] repeating the
// first interval.
func (g *Hydrograph) Dt() []float64 {
	dt := make([]float64, len(g.T))
	for i := 1; i < len(g.T); i++ {
		dt[i] = g.T[i] - g.T[i-1]
	}
	dt[0] = dt[1]
	return dt
}
