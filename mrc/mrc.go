// Package mrc calibrates the master recession curve (MRC) of an unconfined
// aquifer to a well hydrograph: the idealized rate dh/dt = -A·h + B at which
// the water table falls between recharge events. Water levels are in metres
// below ground surface (mbgs), so everything is upside down: a peak is the
// shallow (small) value and the level grows as the table recedes.
package mrc

import (
	"errors"
	"fmt"
	"sort"
)

// Kind selects the recession equation.
type Kind int

const (
	Linear      Kind = iota // dh/dt = b
	Exponential             // dh/dt = -a·h + b
)

func (k Kind) String() string {
	if k == Linear {
		return "Linear"
	}
	return "Exponential"
}

var (
	// ErrNoExtrema reports an empty (or unpairable) extremum selection.
	ErrNoExtrema = errors.New("mrc: no extrema selected")
	// ErrPairing reports a peak/trough pair whose levels are out of order.
	ErrPairing = errors.New("mrc: problem with the pair-distribution of min-max")
	// ErrNonConvergent reports a calibration that exhausted its iteration
	// budget without meeting tolerance.
	ErrNonConvergent = errors.New("mrc: calibration failed to converge")
)

// Fit is an immutable calibrated master recession curve.
type Fit struct {
	Kind       Kind
	A          float64   // decay coefficient [1/d]; 0 in Linear mode
	B          float64   // level-rise rate [m/d]
	RMSE       float64   // root-mean-square residual over recessing segments [m]
	NSE        float64   // Nash-Sutcliffe efficiency over the same span
	Pred       []float64 // recession-only water level [mbgs], defined where Def
	Def        []bool
	Iterations int
}

// Pairs sorts a signed extremum index sequence (positive maxima, negative
// minima) chronologically and carves it into (peak, trough) index pairs by
// even/odd position. The sequence must begin at a water-table peak (shallow)
// and end at a trough (deep): a leading trough and a trailing peak are
// trimmed off first. Within every pair the peak must sit above (shallower
// than) the trough it recedes to; any violation poisons the whole selection.
func Pairs(ipos []int, h []float64) ([][2]int, error) {
	s := make([]int, len(ipos))
	for i, p := range ipos {
		s[i] = iabs(p)
		if s[i] >= len(h) {
			return nil, fmt.Errorf("%w: index %d out of range", ErrPairing, s[i])
		}
	}
	sort.Ints(s)

	if len(s) >= 2 && h[s[0]] > h[s[1]] {
		s = s[1:] // leading trough: the record opens mid-recession
	}
	if len(s)%2 == 1 {
		s = s[:len(s)-1] // trailing peak: the record ends mid-rise
	}
	if len(s) < 2 {
		return nil, ErrNoExtrema
	}

	prs := make([][2]int, len(s)/2)
	for i := range prs {
		mx, mn := s[2*i], s[2*i+1]
		if h[mx] > h[mn] {
			return nil, fmt.Errorf("%w: pair (%d,%d)", ErrPairing, mx, mn)
		}
		prs[i] = [2]int{mx, mn}
	}
	return prs, nil
}

// Integrate forward-steps the recession equation across every (peak, trough)
// segment, seeding each segment at the observed peak level. The half-implicit
// Crank-Nicholson average resists the overshoot a fully explicit Euler step
// suffers at long time steps. Positions outside any segment are left
// undefined; the returned mask marks where the prediction holds.
func Integrate(a, b float64, h, dt []float64, pairs [][2]int) ([]float64, []bool) {
	hp, def := make([]float64, len(h)), make([]bool, len(h))
	for _, pr := range pairs {
		imax, imin := pr[0], pr[1]
		hp[imax], def[imax] = h[imax], true
		for j := imax; j < imin; j++ {
			hp[j+1] = ((1.-a*dt[j]/2.)*hp[j] + b*dt[j]) / (1. + a*dt[j]/2.)
			def[j+1] = true
		}
	}
	return hp, def
}

func iabs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
