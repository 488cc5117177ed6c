package swb

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/mmaths"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
)

// CalibrateSCE searches the (Cro, RASmax, Sy) space with shuffled complex
// evolution for the single parameter set minimizing the RMSE of the synthetic
// hydrograph against the observed record. len(wlobs) must equal len(ptot).
func CalibrateSCE(etp, ptot, tavg, wlobs []float64, a, b float64, rng Ranges) (Realization, error) {
	if len(wlobs) != len(ptot) {
		return Realization{}, errors.New("swb: observed record must align with the forcing record")
	}

	par := func(u []float64) (cro, rasmax, sy float64) {
		cro = mmaths.LinearTransform(rng.Cro[0], rng.Cro[1], u[0])
		rasmax = mmaths.LinearTransform(rng.RASmax[0], rng.RASmax[1], u[1])
		sy = mmaths.LinearTransform(rng.Sy[0], rng.Sy[1], u[2])
		return
	}

	gen := func(u []float64) float64 {
		cro, rasmax, sy := par(u)
		bdg, err := DefaultParams(cro, rasmax).Run(etp, ptot, tavg)
		if err != nil {
			return math.MaxFloat64
		}
		pred := Hydrograph(bdg.Rechg[:len(bdg.Rechg)-1], sy, a, b, wlobs[0], Forward)
		return objfunc.RMSE(wlobs, pred)
	}

	r := rand.New(mrg63k3a.New())
	r.Seed(time.Now().UnixNano())
	uFinal, _ := glbopt.SCE(32, 3, r, gen, true)

	cro, rasmax, sy := par(uFinal)
	bdg, err := DefaultParams(cro, rasmax).Run(etp, ptot, tavg)
	if err != nil {
		return Realization{}, err
	}
	rechg := bdg.Rechg[:len(bdg.Rechg)-1]
	pred := Hydrograph(rechg, sy, a, b, wlobs[0], Forward)
	return Realization{
		Cro: cro, RASmax: rasmax, Sy: sy,
		RMSE: objfunc.RMSE(wlobs, pred), NSE: objfunc.NSE(wlobs, pred),
		Rechg: rechg, Pred: pred,
	}, nil
}
