package gwat

import (
	"github.com/maseology/gwat/extrema"
	"github.com/maseology/gwat/mrc"
	"github.com/maseology/gwat/rechg"
)

// RechargeMRC chains the full well-record analysis: extrema detection over a
// search window of n readings, master recession curve calibration over the
// recession segments, and water-table-fluctuation recharge through the soil
// profile. The recharge series spans the reading intervals (one value fewer
// than the record).
func RechargeMRC(g *Hydrograph, window int, kind mrc.Kind, sp *rechg.SoilProfile) (*mrc.Fit, []float64, error) {
	ipos, _ := extrema.Detect(g.H, window)
	fit, err := mrc.Calibrate(g.T, g.H, ipos, kind)
	if err != nil {
		return nil, nil, err
	}
	r, err := rechg.Compute(g.T, g.H, fit.A, fit.B, sp)
	if err != nil {
		return fit, nil, err
	}
	return fit, r, nil
}
