package swb

import (
	"errors"
	"math"

	"github.com/maseology/objfunc"
)

const (
	syTol       = 0.001
	syStep      = 0.01 // forward-difference perturbation
	syMaxIter   = 100
	syOvershoot = 0.1
	syFloor     = 0.005
)

// ErrNonConvergent is returned when an iterative fit exhausts its iteration
// budget without satisfying its tolerance.
var ErrNonConvergent = errors.New("swb: iterative solution did not converge")

// CalibrateSy fits the specific yield that best maps a recharge series onto
// the observed water levels, with master recession curve (a,b) held fixed. A
// one-parameter Gauss-Newton iteration with forward-difference sensitivity is
// used; steps that worsen the fit are halved down to a floor before the fit
// is declared non-convergent. The synthetic hydrograph is seeded on the first
// observation, so len(wlobs) must be len(rechg)+1.
func CalibrateSy(rechg, wlobs []float64, a, b, sy0 float64) (sy, rmse float64, pred []float64, err error) {
	if len(wlobs) != len(rechg)+1 {
		return 0, 0, nil, errors.New("swb: observed record must span the recharge series")
	}
	sy = sy0
	if sy < syFloor {
		sy = syFloor
	}
	pred = Hydrograph(rechg, sy, a, b, wlobs[0], Forward)
	rmse = objfunc.RMSE(wlobs, pred)

	for k := 0; k < syMaxIter; k++ {
		predp := Hydrograph(rechg, sy+syStep, a, b, wlobs[0], Forward)

		var jtj, jtr float64
		for i := range wlobs {
			j := (predp[i] - pred[i]) / syStep
			jtj += j * j
			jtr += j * (wlobs[i] - pred[i])
		}
		if jtj == 0. {
			return sy, rmse, pred, ErrNonConvergent
		}
		dsy := jtr / jtj

		// halve overshooting steps until the fit improves
		syn, predn, rmsen := sy, pred, rmse
		for h := 0; ; h++ {
			syn = sy + dsy
			if syn < syFloor {
				syn = syFloor
			}
			predn = Hydrograph(rechg, syn, a, b, wlobs[0], Forward)
			rmsen = objfunc.RMSE(wlobs, predn)
			if rmsen <= rmse || math.Abs(dsy) < syTol*syOvershoot {
				break
			}
			if h >= syMaxIter {
				return sy, rmse, pred, ErrNonConvergent
			}
			dsy /= 2.
		}

		conv := math.Abs(syn-sy) < syTol
		sy, pred, rmse = syn, predn, rmsen
		if conv {
			return sy, rmse, pred, nil
		}
	}
	return sy, rmse, pred, ErrNonConvergent
}
