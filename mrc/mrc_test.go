package mrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairs(t *testing.T) {
	h := []float64{1.0, 1.2, 1.4, 1.2, 1.0}

	prs, err := Pairs([]int{0, -2}, h)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 2}}, prs)

	// a record opening mid-recession sheds its leading trough
	prs, err = Pairs([]int{2, -3, 4}, []float64{0, 0, 1.4, 0.6, 1.2})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{3, 4}}, prs)

	// and one ending mid-rise sheds its trailing peak
	prs, err = Pairs([]int{0, -2, 3}, []float64{1.0, 1.2, 1.4, 0.9})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 2}}, prs)

	// a peak sitting below its trough poisons the selection
	_, err = Pairs([]int{0, -1, 2, -3}, []float64{1.0, 1.4, 1.2, 1.1})
	assert.ErrorIs(t, err, ErrPairing)

	_, err = Pairs([]int{2}, h)
	assert.ErrorIs(t, err, ErrNoExtrema)

	_, err = Pairs(nil, h)
	assert.ErrorIs(t, err, ErrNoExtrema)

	_, err = Pairs([]int{0, -9}, h)
	assert.ErrorIs(t, err, ErrPairing)
}

func TestIntegrateSeeds(t *testing.T) {
	h := []float64{2.0, 0, 0, 0, 0}
	dt := []float64{1, 1, 1, 1}
	hp, def := Integrate(0., 0.1, h, dt, [][2]int{{0, 3}})
	assert.Equal(t, []bool{true, true, true, true, false}, def)
	assert.InDelta(t, 2.0, hp[0], 1e-12)
	assert.InDelta(t, 2.3, hp[3], 1e-12)
}

func TestCalibrateLinear(t *testing.T) {
	ts := []float64{0, 1, 2, 3, 4}
	h := []float64{1.0, 1.2, 1.4, 1.2, 1.0}
	fit, err := Calibrate(ts, h, []int{0, -2}, Linear)
	require.NoError(t, err)
	assert.Zero(t, fit.A)
	assert.InDelta(t, 0.2, fit.B, 1e-9)
	assert.InDelta(t, 0., fit.RMSE, 1e-9)
	assert.Equal(t, 1, fit.Iterations)
	assert.Equal(t, []bool{true, true, true, false, false}, fit.Def)
}

func TestCalibrateExponential(t *testing.T) {
	// a noise-free record generated by the recession equation itself must
	// give its parameters back
	const a0, b0 = 0.05, 0.25
	n := 41
	ts, h := make([]float64, n), make([]float64, n)
	dt := make([]float64, n-1)
	for i := range ts {
		ts[i] = float64(i)
	}
	for i := range dt {
		dt[i] = 1.
	}
	h[0] = 2.0
	h, _ = Integrate(a0, b0, h, dt, [][2]int{{0, n - 1}})

	fit, err := Calibrate(ts, h, []int{0, -(n - 1)}, Exponential)
	require.NoError(t, err)
	assert.InDelta(t, a0, fit.A, 1e-3)
	assert.InDelta(t, b0, fit.B, 1e-3)
	assert.Less(t, fit.RMSE, 1e-4)
	assert.Greater(t, fit.NSE, 0.999)
}

func TestCalibrateTwoSegments(t *testing.T) {
	const a0, b0 = 0.05, 0.25
	n := 30
	ts := make([]float64, n)
	dt := make([]float64, n-1)
	for i := range ts {
		ts[i] = float64(i)
	}
	for i := range dt {
		dt[i] = 1.
	}
	h := make([]float64, n)
	h[0], h[15] = 1.0, 0.8 // a recharge event interrupts the recession
	pairs := [][2]int{{0, 14}, {15, 29}}
	h, _ = Integrate(a0, b0, h, dt, pairs)
	h[0], h[15] = 1.0, 0.8

	fit, err := Calibrate(ts, h, []int{0, -14, 15, -29}, Exponential)
	require.NoError(t, err)
	assert.InDelta(t, a0, fit.A, 1e-3)
	assert.InDelta(t, b0, fit.B, 1e-3)
	assert.Less(t, fit.RMSE, 1e-4)
}

func TestCalibrateDegenerate(t *testing.T) {
	_, err := Calibrate([]float64{0, 1}, []float64{1}, []int{0, -1}, Linear)
	assert.Error(t, err)
	_, err = Calibrate([]float64{0, 1}, []float64{1, 2}, nil, Linear)
	assert.ErrorIs(t, err, ErrNoExtrema)
}
