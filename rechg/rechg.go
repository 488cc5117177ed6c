// Package rechg estimates groundwater recharge from a calibrated master
// recession curve and a layered specific-yield profile, by the water-table
// fluctuation principle: any rise of the water table beyond what recession
// alone predicts is drained porosity refilled by recharge.
package rechg

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrAboveGround reports a water level above ground surface; levels are
	// mbgs, so a negative value is a data-integrity problem.
	ErrAboveGround = errors.New("rechg: water level rises above ground surface")
	// ErrBelowProfile reports a water level beneath the base of the profile.
	ErrBelowProfile = errors.New("rechg: water level falls below the soil profile")
)

// SoilProfile is a layered specific-yield column. Z holds the layer boundary
// depths [mbgs] beginning at ground surface (Z[0]=0, strictly increasing);
// Sy holds one specific yield per layer, so len(Z) == len(Sy)+1. Desc, when
// present, carries one texture description per layer.
type SoilProfile struct {
	Z, Sy []float64
	Desc  []string
}

func NewSoilProfile(z, sy []float64) (*SoilProfile, error) {
	if len(z) != len(sy)+1 || len(sy) == 0 {
		return nil, fmt.Errorf("rechg: profile needs one more boundary than layers (%d,%d)", len(z), len(sy))
	}
	if z[0] != 0. {
		return nil, fmt.Errorf("rechg: first layer boundary must sit at ground surface, got %f", z[0])
	}
	for i := 0; i < len(z)-1; i++ {
		if z[i+1] <= z[i] {
			return nil, fmt.Errorf("rechg: layer boundaries must increase, %f !< %f", z[i], z[i+1])
		}
	}
	for i, s := range sy {
		if s <= 0. || s >= 1. {
			return nil, fmt.Errorf("rechg: specific yield of layer %d out of (0,1): %f", i, s)
		}
	}
	return &SoilProfile{Z: z, Sy: sy}, nil
}

// layer returns the index of the layer containing depth v: the last boundary
// at or above v.
func (sp *SoilProfile) layer(v float64) (int, bool) {
	if v < 0. || v > sp.Z[len(sp.Z)-1] {
		return 0, false
	}
	j := len(sp.Z) - 2
	for j > 0 && sp.Z[j] > v {
		j--
	}
	return j, true
}

// Compute estimates recharge [m] over every time-step gap of the observed
// record. For each step the recession-only level is projected with the
// calibrated (a, b) and the specific-yield-weighted depth swept between the
// projection and the observation is integrated across the layers it spans,
// signed positive when the observed table ends up above (shallower than) the
// projection, a genuine recharge event. Recession error and noise can and do
// produce small negative values.
func Compute(t, h []float64, a, b float64, sp *SoilProfile) ([]float64, error) {
	if len(t) != len(h) || len(t) < 2 {
		return nil, fmt.Errorf("rechg: degenerate record (%d,%d)", len(t), len(h))
	}
	for _, v := range h {
		if v < 0. {
			return nil, ErrAboveGround
		}
	}

	rech := make([]float64, len(t)-1)
	for i := range rech {
		dt := t[i+1] - t[i]
		hp := ((1.-a*dt/2.)*h[i] + b*dt) / (1. + a*dt/2.)

		hup := math.Min(hp, h[i+1]) // shallow bound of the sweep
		hlo := math.Max(hp, h[i+1])

		iup, ok := sp.layer(hup)
		if !ok {
			return nil, fmt.Errorf("%w: %.3f mbgs at step %d", ErrBelowProfile, hup, i)
		}
		ilo, ok := sp.layer(hlo)
		if !ok {
			return nil, fmt.Errorf("%w: %.3f mbgs at step %d", ErrBelowProfile, hlo, i)
		}

		var r float64
		for j := iup; j <= ilo; j++ {
			r += (sp.Z[j+1] - sp.Z[j]) * sp.Sy[j]
		}
		r -= (sp.Z[ilo+1] - hlo) * sp.Sy[ilo]
		r -= (hup - sp.Z[iup]) * sp.Sy[iup]

		if hp < h[i+1] {
			r = -r // the table fell beyond the recession-only projection
		}
		rech[i] = r
	}
	return rech, nil
}

// Annualize reduces a per-step recharge series [m] to a mean annual rate
// [mm/yr] over the elapsed record.
func Annualize(t, rech []float64) float64 {
	if len(t) < 2 || len(rech) != len(t)-1 {
		return 0.
	}
	var s float64
	for _, r := range rech {
		s += r
	}
	return s / (t[len(t)-1] - t[0]) * 365.25 * 1000.
}
