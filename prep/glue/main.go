package main

import (
	"fmt"
	"log"
	"math"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/gwat"
	"github.com/maseology/gwat/extrema"
	"github.com/maseology/gwat/forcing"
	"github.com/maseology/gwat/mrc"
	"github.com/maseology/gwat/swb"
	"github.com/maseology/mmio"
)

const (
	wlFP   = "M:/ORMGP/wells/W0000347-1.csv" // day,mbgs
	metFP  = "M:/ORMGP/met/6158355.csv"      // year,month,day,tavg,ptot[,etp]
	gobFP  = "M:/ORMGP/wells/W0000347-1-glue.gob"
	outFP  = "M:/ORMGP/wells/W0000347-1-glue.csv"
	latDeg = 43.68
	window = 15
	nsmpl  = 1000
	tlag   = 0 // weather lag [d]
	expMRC = true
)

func main() {
	tt := mmio.NewTimer()
	defer tt.Print("glue recharge complete")

	g, err := gwat.LoadHydrograph(wlFP)
	if err != nil {
		log.Fatalf(" LoadHydrograph failed: %v", err)
	}
	met, err := forcing.LoadCSV(metFP)
	if err != nil {
		log.Fatalf(" forcing.LoadCSV failed: %v", err)
	}
	if tlag != 0 {
		met.Lag(tlag)
	}
	met.FillETP(latDeg)

	// the water budget needs a daily complete well record over a window
	// common with the weather record
	i0, i1 := met.Index(g.T[0]), met.Index(g.T[len(g.T)-1])
	if i0 < 0 || i1 < 0 {
		log.Fatalf(" well record [%f,%f] extends beyond weather record [%f,%f]", g.T[0], g.T[len(g.T)-1], met.Days[0], met.Days[len(met.Days)-1])
	}
	met, err = met.Window(i0, i1)
	if err != nil {
		log.Fatalf(" forcing.Window failed: %v", err)
	}
	wlobs := make([]float64, len(met.Days))
	for i, dn := range met.Days {
		j := -1
		for k, t := range g.T {
			if math.Abs(t-dn) < .5 {
				j = k
				break
			}
		}
		if j < 0 {
			log.Fatalf(" well record not daily complete: no reading on day %.0f", dn)
		}
		wlobs[i] = g.H[j] * 1000. // [mm]
	}

	ipos, _ := extrema.Detect(g.H, window)
	kind := mrc.Linear
	if expMRC {
		kind = mrc.Exponential
	}
	fit, err := mrc.Calibrate(g.T, g.H, ipos, kind)
	if err != nil {
		log.Fatalf(" mrc.Calibrate failed: %v", err)
	}
	fmt.Printf(" %s MRC: A=%.6f B=%.6f (RMSE %.4f m)\n", fit.Kind, fit.A, fit.B, fit.RMSE)

	uiprogress.Start()
	bar := uiprogress.AddBar(nsmpl).AppendCompleted().PrependElapsed()
	ens, err := swb.GLUE(met.ETP, met.PTOT, met.TAVG, wlobs, fit.A, fit.B, swb.DefaultRanges(), nsmpl, func() { bar.Incr() })
	uiprogress.Stop()
	if err != nil {
		log.Fatalf(" swb.GLUE failed: %v", err)
	}
	ens.Days = met.Days
	fmt.Printf(" %d of %d realizations behavioural\n", len(ens.Realizations), nsmpl)

	if err := ens.SaveGob(gobFP); err != nil {
		log.Fatalf(" SaveGob failed: %v", err)
	}

	csv := mmio.NewCSVwriter(outFP)
	defer csv.Close()
	csv.WriteHead("cro,rasmax,sy,rmse,nse")
	for _, r := range ens.Realizations {
		csv.WriteLine(r.Cro, r.RASmax, r.Sy, r.RMSE, r.NSE)
	}
}
