package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/maseology/gwat"
	"github.com/maseology/gwat/extrema"
	"github.com/maseology/gwat/mrc"
	"github.com/maseology/gwat/rechg"
	"github.com/maseology/mmio"
)

const (
	wlFP   = "M:/ORMGP/wells/W0000347-1.csv" // day,mbgs
	soilFP = "M:/ORMGP/wells/W0000347-1.soil"
	outFP  = "M:/ORMGP/wells/W0000347-1-mrc.csv"
	window = 15 // extrema search window [readings]
	expMRC = true
)

func main() {
	tt := mmio.NewTimer()
	defer tt.Print("mrc recharge complete")

	g, err := gwat.LoadHydrograph(wlFP)
	if err != nil {
		log.Fatalf(" LoadHydrograph failed: %v", err)
	}
	sp := loadSoil(soilFP)

	kind := mrc.Linear
	if expMRC {
		kind = mrc.Exponential
	}

	ipos, added := extrema.Detect(g.H, window)
	fmt.Printf(" %d extrema found (%d synthesized) from %d readings\n", len(ipos), len(added), len(g.H))

	fit, err := mrc.Calibrate(g.T, g.H, ipos, kind)
	if err != nil {
		log.Fatalf(" mrc.Calibrate failed: %v", err)
	}
	fmt.Printf(" %s MRC: A=%.6f B=%.6f (RMSE %.4f m, NSE %.3f, %d iterations)\n", fit.Kind, fit.A, fit.B, fit.RMSE, fit.NSE, fit.Iterations)

	r, err := rechg.Compute(g.T, g.H, fit.A, fit.B, sp)
	if err != nil {
		log.Fatalf(" rechg.Compute failed: %v", err)
	}
	fmt.Printf(" mean annual recharge: %.1f mm/yr\n", rechg.Annualize(g.T, r))

	csv := mmio.NewCSVwriter(outFP)
	defer csv.Close()
	csv.WriteHead("day,wl,mrc,rechg")
	for i, t := range g.T {
		rr := 0.
		if i > 0 {
			rr = r[i-1]
		}
		if fit.Def[i] {
			csv.WriteLine(t, g.H[i], fit.Pred[i], rr)
		} else {
			csv.WriteLine(t, g.H[i], "", rr)
		}
	}
}

// loadSoil reads a tab-delimited soil profile: depth-to-base [m], specific
// yield [-], description.
func loadSoil(fp string) *rechg.SoilProfile {
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		log.Fatalf(" loadSoil failed: %v", err)
	}
	z, sy, desc := []float64{0.}, []float64{}, []string{}
	for i, ln := range lns {
		ln = strings.TrimSpace(ln)
		if len(ln) == 0 || strings.HasPrefix(ln, "#") {
			continue
		}
		f := strings.Split(ln, "\t")
		if len(f) < 2 {
			log.Fatalf(" loadSoil: %d fields on line %d", len(f), i+1)
		}
		zb, err := strconv.ParseFloat(f[0], 64)
		if err != nil {
			log.Fatalf(" loadSoil line %d: %v", i+1, err)
		}
		s, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			log.Fatalf(" loadSoil line %d: %v", i+1, err)
		}
		z, sy = append(z, zb), append(sy, s)
		if len(f) > 2 {
			desc = append(desc, f[2])
		} else {
			desc = append(desc, "")
		}
	}
	sp, err := rechg.NewSoilProfile(z, sy)
	if err != nil {
		log.Fatalf(" loadSoil: %v", err)
	}
	sp.Desc = desc
	return sp
}
