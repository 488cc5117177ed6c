package gwat

import (
	"testing"

	"github.com/maseology/gwat/mrc"
	"github.com/maseology/gwat/rechg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRechargeMRC(t *testing.T) {
	// a sawtooth well record: recessions of 0.1 m/d punctuated by two
	// recharge events lifting the table 0.4 m overnight
	var ts, h []float64
	level, day := 1.0, 0.
	for cycle := 0; cycle < 3; cycle++ {
		for i := 0; i < 8; i++ {
			ts = append(ts, day)
			h = append(h, level)
			day++
			level += 0.1
		}
		level -= 0.8 + 0.4
	}

	sp, err := rechg.NewSoilProfile([]float64{0, 5}, []float64{0.2})
	require.NoError(t, err)

	g, err := NewHydrograph(ts, h)
	require.NoError(t, err)

	fit, r, err := RechargeMRC(g, 3, mrc.Linear, sp)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, fit.B, 1e-6)
	require.Len(t, r, len(ts)-1)

	// each overnight rise sweeps 1.2 m beyond the 0.1 m/d recession
	// projection, refilling 1.2·0.2 m of drained porosity
	var events int
	for _, v := range r {
		if v > 0.05 {
			events++
			assert.InDelta(t, 0.24, v, 1e-6)
		}
	}
	assert.Equal(t, 2, events)
}
