package forcing

import (
	"math"

	"github.com/maseology/goHydro/pet"
	"github.com/maseology/goHydro/snowpack"
	"github.com/maseology/goHydro/solirrad"
)

// Prescott-type coefficients (Novák, 2012, pg.232)
const (
	a = .27
	b = .52
)

func etRadToGlobal(Ke, nN float64) float64 {
	return Ke * (a + b*nN)
}

// YieldEP runs a cold-content snowpack and Makkink evapotranspiration over
// the weather record for a flat site at the given latitude, returning daily
// atmospheric yield (rain plus melt) and potential evapotranspiration, both
// in mm/d. Precipitation is split rain/snow at 0°C and cloud cover is
// inferred from wet days.
func (d *Daily) YieldEP(latitudeDeg float64) (y, ep []float64) {
	si := solirrad.New(latitudeDeg, 0., 0.)
	sp := snowpack.NewDefaultCCF()

	n := len(d.T)
	y, ep = make([]float64, n), make([]float64, n)
	for i, t := range d.T {
		rain, snow := d.PTOT[i]/1000., 0. // [m]
		if d.TAVG[i] <= 0. {
			rain, snow = 0., rain
		}
		y[i] = sp.Update(rain, snow, d.TAVG[i]) * 1000.

		nN := 1. // sunshine hour ratio n/N
		if d.PTOT[i] > .001 {
			nN = 0.
		}
		Kg := etRadToGlobal(si.PSIdaily(t.YearDay()), nN)
		ep[i] = pet.Makkink(Kg, d.TAVG[i], 101300.) * 1000.
		if math.IsNaN(y[i]) || math.IsNaN(ep[i]) {
			panic("forcing.YieldEP: NaN computed")
		}
	}
	return
}

// FillETP estimates the record's potential evapotranspiration column when the
// source file carried none.
func (d *Daily) FillETP(latitudeDeg float64) {
	if d.ETP != nil {
		return
	}
	_, d.ETP = d.YieldEP(latitudeDeg)
}
