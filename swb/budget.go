// Package swb runs a daily lumped surface water budget over weather forcing
// (precipitation, air temperature, potential evapotranspiration) to produce a
// groundwater recharge series, and converts recharge into a synthetic well
// hydrograph for calibration against observed water levels. All fluxes are in
// mm/d and synthetic water levels in mm below ground surface.
package swb

import (
	"errors"
	"fmt"
)

// Params parameterize the surface water budget.
type Params struct {
	Cro    float64 // runoff coefficient [-]
	RASmax float64 // readily-available storage capacity [mm]
	CM     float64 // degree-day melt coefficient [mm/°C/d]
	Tmelt  float64 // rain/snow and melt temperature threshold [°C]
}

// DefaultParams applies the default melt parameterization (CM=4, Tmelt=1.5).
func DefaultParams(cro, rasmax float64) Params {
	return Params{Cro: cro, RASmax: rasmax, CM: 4., Tmelt: 1.5}
}

// Budget holds the daily series produced by the water budget: recharge,
// runoff and actual evapotranspiration fluxes [mm/d] and the storage states
// [mm] they are drawn from.
type Budget struct {
	Rechg, Runoff, ETa []float64
	RAS, Snowpack      []float64
}

// Run single-passes the water budget forward in time. Days are classified
// rain or snow against Tmelt; snowmelt potential is CM·(TAVG−Tmelt) floored
// at zero, and available water is melt plus rain on bare ground, melt-limited
// rain on snow, or nothing on a snow day. Infiltration beyond storage
// capacity becomes recharge; actual ET is drawn from storage after recharge,
// recharge being assumed the faster process in permeable soil.
func (p Params) Run(etp, ptot, tavg []float64) (*Budget, error) {
	n := len(ptot)
	if len(etp) != n || len(tavg) != n {
		return nil, fmt.Errorf("swb: forcing series length mismatch (%d,%d,%d)", len(etp), n, len(tavg))
	}
	if n < 2 {
		return nil, errors.New("swb: degenerate forcing record")
	}

	pavl := make([]float64, n) // water made available at the surface
	pacc := make([]float64, n) // accumulated snowpack
	ru := make([]float64, n)
	etr := make([]float64, n)
	ras := make([]float64, n)
	rechg := make([]float64, n)

	ras[0] = p.RASmax
	for i := 0; i < n-1; i++ {
		mp := p.CM * (tavg[i] - p.Tmelt) // snowmelt potential
		if mp < 0. {
			mp = 0.
		}

		if tavg[i] > p.Tmelt { // rain
			if mp >= pacc[i] { // on bare ground, all snow melted
				pavl[i] = pacc[i] + ptot[i]
				pacc[i+1] = 0.
			} else { // on snow, melt-limited
				pavl[i] = mp
				pacc[i+1] = pacc[i] - mp + ptot[i]
			}
		} else { // snow
			pavl[i] = 0.
			pacc[i+1] = pacc[i] + ptot[i]
		}

		ru[i] = p.Cro * pavl[i]
		inf := pavl[i] - ru[i]

		dras := inf
		if room := p.RASmax - ras[i]; dras > room {
			dras = room
		}
		ras[i+1] = ras[i] + dras
		rechg[i] = inf - dras

		etr[i] = etp[i]
		if etr[i] > ras[i] {
			etr[i] = ras[i]
		}
		ras[i+1] -= etr[i]
	}

	return &Budget{Rechg: rechg, Runoff: ru, ETa: etr, RAS: ras, Snowpack: pacc}, nil
}
