package main

import (
	"fmt"
	"log"

	"github.com/maseology/gwat/swb"
	"github.com/maseology/mmio"
	"gonum.org/v1/gonum/stat"
)

const (
	gobFP  = "M:/ORMGP/wells/W0000347-1-glue.gob"
	bandFP = "M:/ORMGP/wells/W0000347-1-bands.csv"
)

func main() {
	tt := mmio.NewTimer()
	defer tt.Print("glue postpro complete")

	ens, err := swb.LoadGobEnsemble(gobFP)
	if err != nil {
		log.Fatalf(" LoadGobEnsemble failed: %v", err)
	}
	n := len(ens.Realizations)
	fmt.Printf(" %d behavioural realizations\n", n)

	cro, rasmax, sy := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, r := range ens.Realizations {
		cro[i], rasmax[i], sy[i] = r.Cro, r.RASmax, r.Sy
	}
	fmt.Printf("    Cro: %.3f ±%.3f\n", stat.Mean(cro, nil), stat.StdDev(cro, nil))
	fmt.Printf(" RASmax: %.1f ±%.1f mm\n", stat.Mean(rasmax, nil), stat.StdDev(rasmax, nil))
	fmt.Printf("     Sy: %.3f ±%.3f\n", stat.Mean(sy, nil), stat.StdDev(sy, nil))

	rlo, rp, rhi := ens.RechargeSummary()
	fmt.Printf(" recharge: %.0f (%.0f-%.0f) mm/yr\n", rp, rlo, rhi)
	fmt.Printf(" 5-95%% band contains %.0f%% of observations\n", ens.ContainmentRatio()*100.)

	p5, p50, p95 := ens.Bands()
	csv := mmio.NewCSVwriter(bandFP)
	defer csv.Close()
	csv.WriteHead("day,obs,p5,p50,p95")
	for i, dn := range ens.Days {
		csv.WriteLine(dn, ens.WLobs[i], p5[i], p50[i], p95[i])
	}
}
