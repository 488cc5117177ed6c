package mrc

import (
	"fmt"
	"math"

	"github.com/maseology/objfunc"
	"gonum.org/v1/gonum/mat"
)

const (
	tolmax       = 0.001 // parameter convergence and forward-difference step
	overshoot    = 0.001 // tolerated RMSE degradation [m] before step-halving
	cosmin       = 0.08  // minimum |cos| between step and gradient direction
	maxIter      = 500
	maxMarquardt = 1000
	maxHalving   = 50
)

// Calibrate fits the master recession curve to the observed record (t [d],
// h [mbgs]) over the recessing segments delimited by the signed extremum
// sequence ipos, using a damped Gauss-Newton scheme with Marquardt-style
// diagonal scaling. In Linear mode A is pinned at zero and only B is free.
// The inputs are never modified; the returned Fit is complete or nil.
func Calibrate(t, h []float64, ipos []int, kind Kind) (*Fit, error) {
	if len(t) != len(h) || len(t) < 2 {
		return nil, fmt.Errorf("mrc: degenerate record (%d,%d)", len(t), len(h))
	}
	pairs, err := Pairs(ipos, h)
	if err != nil {
		return nil, err
	}

	dt := make([]float64, len(t)-1)
	for i := range dt {
		dt[i] = t[i+1] - t[i]
	}

	// initial guess: no decay, rise rate averaged over the segment pairs
	a, b := 0., 0.
	for _, pr := range pairs {
		b += (h[pr[0]] - h[pr[1]]) / (t[pr[0]] - t[pr[1]])
	}
	b /= float64(len(pairs))

	hp, def := Integrate(a, b, h, dt, pairs)
	obs, sim := compact(h, hp, def)
	rmse := objfunc.RMSE(obs, sim)

	np := 1
	if kind == Exponential {
		np = 2
	}

	for it := 1; it <= maxIter; it++ {
		// forward-difference Jacobian of the prediction wrt the free parameters
		jac := make([][]float64, np)
		hdb, _ := Integrate(a, b+tolmax, h, dt, pairs)
		jac[np-1] = diffCol(hdb, hp, def)
		if kind == Exponential {
			hda, _ := Integrate(a+tolmax, b, h, dt, pairs)
			jac[0] = diffCol(hda, hp, def)
		}

		resid := make([]float64, len(obs))
		for k := range resid {
			resid[k] = obs[k] - sim[k]
		}

		xtx := mat.NewDense(np, np, nil)
		xtdh := mat.NewVecDense(np, nil)
		for i := 0; i < np; i++ {
			for j := 0; j < np; j++ {
				var s float64
				for k := range resid {
					s += jac[i][k] * jac[j][k]
				}
				xtx.Set(i, j, s)
			}
			var s float64
			for k, r := range resid {
				s += jac[i][k] * r
			}
			xtdh.SetVec(i, s)
		}

		// diagonal (Marquardt) scaling normalizes parameter sensitivities
		c := mat.NewDense(np, np, nil)
		cinv := mat.NewDense(np, np, nil)
		for j := 0; j < np; j++ {
			d := xtx.At(j, j)
			if d <= 0. {
				return nil, fmt.Errorf("%w: zero parameter sensitivity", ErrNonConvergent)
			}
			c.Set(j, j, math.Pow(d, -.5))
			cinv.Set(j, j, math.Sqrt(d))
		}
		ctxtdh := mat.NewVecDense(np, nil)
		ctxtdh.MulVec(c, xtdh)
		var ctxtxc mat.Dense
		ctxtxc.Product(c, xtx, c)

		// grow the Marquardt parameter until the solved step stays within
		// cosmin of the gradient direction, guarding against ill-conditioned
		// oscillating steps
		dr := make([]float64, np)
		m := 0.
		for k := 0; ; k++ {
			lhs := mat.NewDense(np, np, nil)
			for i := 0; i < np; i++ {
				for j := 0; j < np; j++ {
					v := ctxtxc.At(i, j)
					if i == j {
						v += m
					}
					lhs.Set(i, j, v)
				}
			}
			var am mat.Dense
			am.Mul(lhs, cinv)
			var vdr mat.VecDense
			if err := vdr.SolveVec(&am, ctxtdh); err != nil {
				return nil, fmt.Errorf("%w: normal equations are singular", ErrNonConvergent)
			}
			var num, den1, den2 float64
			for i := 0; i < np; i++ {
				dr[i] = vdr.AtVec(i)
				num += dr[i] * ctxtdh.AtVec(i)
				den1 += dr[i] * dr[i]
				den2 += ctxtdh.AtVec(i) * ctxtdh.AtVec(i)
			}
			if cos := num / math.Sqrt(den1*den2); math.Abs(cos) < cosmin {
				if k >= maxMarquardt {
					return nil, fmt.Errorf("%w: Marquardt search exhausted", ErrNonConvergent)
				}
				m = 1.5*m + 0.001
				continue
			}
			break
		}

		// apply the step, halving on overshoot
		aold, bold, rmseold := a, b, rmse
		for k := 0; ; k++ {
			if kind == Exponential {
				a = aold + dr[0]
				b = bold + dr[1]
			} else {
				b = bold + dr[0]
			}
			if a < 0. {
				a = 0. // decay cannot be negative
			}
			hp, def = Integrate(a, b, h, dt, pairs)
			_, sim = compact(h, hp, def)
			rmse = objfunc.RMSE(obs, sim)
			if rmse-rmseold <= overshoot {
				break
			}
			if k >= maxHalving {
				return nil, fmt.Errorf("%w: step damping exhausted", ErrNonConvergent)
			}
			for j := range dr {
				dr[j] *= .5
			}
		}

		if math.Max(math.Abs(a-aold), math.Abs(b-bold)) < tolmax {
			return &Fit{
				Kind:       kind,
				A:          a,
				B:          b,
				RMSE:       rmse,
				NSE:        objfunc.NSE(obs, sim),
				Pred:       hp,
				Def:        def,
				Iterations: it,
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: %d iterations", ErrNonConvergent, maxIter)
}

func compact(h, hp []float64, def []bool) (obs, sim []float64) {
	for i, d := range def {
		if d {
			obs = append(obs, h[i])
			sim = append(sim, hp[i])
		}
	}
	return
}

func diffCol(hd, hp []float64, def []bool) []float64 {
	var col []float64
	for i, d := range def {
		if d {
			col = append(col, (hd[i]-hp[i])/tolmax)
		}
	}
	return col
}
