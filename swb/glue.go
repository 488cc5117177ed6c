package swb

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/maseology/goHydro/glue"
	"github.com/maseology/mmaths"
	"github.com/maseology/montecarlo/smpln"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
)

// Realization is one behavioural parameter set retained by GLUE, with its
// recharge series and synthetic hydrograph.
type Realization struct {
	Cro, RASmax, Sy float64
	RMSE, NSE       float64
	Rechg, Pred     []float64
}

// Ranges bound the uncertain parameters sampled (Cro, RASmax) and the
// behavioural window accepted for the fitted specific yield.
type Ranges struct {
	Cro, RASmax, Sy [2]float64
}

// DefaultRanges reflect typical till/sand settings.
func DefaultRanges() Ranges {
	return Ranges{Cro: [2]float64{.1, .6}, RASmax: [2]float64{25., 120.}, Sy: [2]float64{.05, .35}}
}

// Ensemble is the behavioural set retained by a GLUE run, together with the
// recession curve and forcing metadata needed to reproduce its members.
type Ensemble struct {
	Realizations []Realization
	A, B         float64 // master recession curve
	Tmelt, CM    float64
	Days         []float64 // day numbers of the water level record
	WLobs        []float64 // observed levels [mm below ground]
}

// GLUE samples the (Cro, RASmax) plane with a Latin hypercube, runs the water
// budget for every sample, fits a specific yield to each recharge series
// against the observed hydrograph, and retains the realizations whose fitted
// Sy falls within the behavioural range. The observed record must be daily
// and aligned with the forcing, one level per forcing day plus the seed:
// len(wlobs)==len(ptot). prog, when non-nil, is called after every sample.
func GLUE(etp, ptot, tavg, wlobs []float64, a, b float64, rng Ranges, nsmpl int, prog func()) (*Ensemble, error) {
	if len(wlobs) != len(ptot) {
		return nil, errors.New("swb: observed record must align with the forcing record")
	}
	if nsmpl < 1 {
		return nil, errors.New("swb: no samples requested")
	}

	r := rand.New(mrg63k3a.New())
	r.Seed(time.Now().UnixNano())
	sp := smpln.NewLHC(r, nsmpl, 2, false)

	ens := &Ensemble{A: a, B: b, Tmelt: 1.5, CM: 4., WLobs: wlobs}
	sy0 := (rng.Sy[0] + rng.Sy[1]) / 2.
	for k := 0; k < nsmpl; k++ {
		cro := mmaths.LinearTransform(rng.Cro[0], rng.Cro[1], sp.U[0][k])
		rasmax := mmaths.LinearTransform(rng.RASmax[0], rng.RASmax[1], sp.U[1][k])

		bdg, err := Params{Cro: cro, RASmax: rasmax, CM: ens.CM, Tmelt: ens.Tmelt}.Run(etp, ptot, tavg)
		if err != nil {
			return nil, err
		}

		rechg := bdg.Rechg[:len(bdg.Rechg)-1]
		sy, rmse, pred, err := CalibrateSy(rechg, wlobs, a, b, sy0)
		if err != nil || sy < rng.Sy[0] || sy > rng.Sy[1] {
			if prog != nil {
				prog()
			}
			continue
		}

		ens.Realizations = append(ens.Realizations, Realization{
			Cro: cro, RASmax: rasmax, Sy: sy,
			RMSE: rmse, NSE: objfunc.NSE(wlobs, pred),
			Rechg: rechg, Pred: pred,
		})
		sy0 = sy // warm-start the next fit
		if prog != nil {
			prog()
		}
	}
	if len(ens.Realizations) == 0 {
		return nil, errors.New("swb: no behavioural realization found")
	}
	return ens, nil
}

// Bands returns the likelihood-weighted 5th, 50th and 95th percentile
// synthetic water levels at every timestep, weighting each realization by the
// inverse of its RMSE.
func (e *Ensemble) Bands() (p5, p50, p95 []float64) {
	n := len(e.Realizations[0].Pred)
	p5, p50, p95 = make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		g := make(glue.GLUE, len(e.Realizations))
		for j, r := range e.Realizations {
			g[j] = glue.GLUEi{Likelihood: 1. / r.RMSE, Value: r.Pred[i]}
		}
		sort.Sort(g)
		p5[i], p95[i] = g.P5o95()
		p50[i] = weightedMedian(g)
	}
	return
}

// RechargeSummary returns the lower bound, likelihood-weighted best estimate
// and upper bound of mean annual recharge [mm/yr] across the behavioural set.
func (e *Ensemble) RechargeSummary() (min, prob, max float64) {
	g := make(glue.GLUE, len(e.Realizations))
	for j, r := range e.Realizations {
		var s float64
		for _, v := range r.Rechg {
			s += v
		}
		g[j] = glue.GLUEi{Likelihood: 1. / r.RMSE, Value: s / float64(len(r.Rechg)) * 365.25}
	}
	sort.Sort(g)
	min, max = g[0].Value, g[len(g)-1].Value
	prob = weightedMedian(g)
	return
}

// ContainmentRatio reports the fraction of observations falling within the
// ensemble's 5-95% uncertainty band.
func (e *Ensemble) ContainmentRatio() float64 {
	p5, _, p95 := e.Bands()
	var in int
	for i, o := range e.WLobs {
		if o >= p5[i] && o <= p95[i] {
			in++
		}
	}
	return float64(in) / float64(len(e.WLobs))
}

// weightedMedian interpolates the value at cumulative likelihood 0.5 of a
// sorted GLUE array.
func weightedMedian(g glue.GLUE) float64 {
	var sum float64
	for _, gi := range g {
		sum += gi.Likelihood
	}
	var cum float64
	for _, gi := range g {
		cum += gi.Likelihood
		if cum >= sum/2. {
			return gi.Value
		}
	}
	return g[len(g)-1].Value
}
