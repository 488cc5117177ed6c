// Package forcing loads and prepares the daily weather record driving the
// surface water budget.
package forcing

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"
)

// Daily is a contiguous daily weather record. PTOT and ETP are in mm/d, TAVG
// in °C. Days holds the day number of every record (unix epoch days), the
// common axis shared with water level records.
type Daily struct {
	T               []time.Time
	Days            []float64
	PTOT, TAVG, ETP []float64
}

// DayNumber converts a date to its day number on the shared time axis.
func DayNumber(t time.Time) float64 { return float64(t.Unix()) / 86400. }

// LoadCSV reads a daily weather file with header year,month,day,tavg,ptot and
// an optional trailing etp column. The record must be contiguous daily.
func LoadCSV(fp string) (*Daily, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("forcing.LoadCSV: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil { // header
		return nil, fmt.Errorf("forcing.LoadCSV: %v", err)
	}

	d := &Daily{}
	hasETP := false
	for ln := 2; ; ln++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("forcing.LoadCSV line %d: %v", ln, err)
		}
		if len(rec) < 5 {
			return nil, fmt.Errorf("forcing.LoadCSV line %d: %d fields", ln, len(rec))
		}

		var perr error
		atoi := func(s string) int {
			v, e := strconv.Atoi(s)
			if e != nil && perr == nil {
				perr = e
			}
			return v
		}
		atof := func(s string) float64 {
			v, e := strconv.ParseFloat(s, 64)
			if e != nil && perr == nil {
				perr = e
			}
			return v
		}
		yr, mo, dy := atoi(rec[0]), atoi(rec[1]), atoi(rec[2])
		tavg, ptot := atof(rec[3]), atof(rec[4])

		t := time.Date(yr, time.Month(mo), dy, 0, 0, 0, 0, time.UTC)
		d.T = append(d.T, t)
		d.Days = append(d.Days, DayNumber(t))
		d.TAVG = append(d.TAVG, tavg)
		d.PTOT = append(d.PTOT, ptot)
		if len(rec) > 5 {
			hasETP = true
			d.ETP = append(d.ETP, atof(rec[5]))
		}
		if perr != nil {
			return nil, fmt.Errorf("forcing.LoadCSV line %d: %v", ln, perr)
		}
	}
	if len(d.T) < 2 {
		return nil, fmt.Errorf("forcing.LoadCSV: %d records", len(d.T))
	}
	for i := 1; i < len(d.T); i++ {
		if d.T[i].Sub(d.T[i-1]) != 24*time.Hour {
			return nil, fmt.Errorf("forcing.LoadCSV: record not contiguous daily at %v", d.T[i].Format("2006-01-02"))
		}
	}
	if hasETP && len(d.ETP) != len(d.T) {
		return nil, fmt.Errorf("forcing.LoadCSV: partial etp column")
	}
	return d, nil
}

// Index returns the position of day number dn, or -1 when it falls outside
// the record.
func (d *Daily) Index(dn float64) int {
	i := int(math.Round(dn - d.Days[0]))
	if i < 0 || i >= len(d.Days) {
		return -1
	}
	return i
}

// Window clips the record to [i0,i1] inclusive.
func (d *Daily) Window(i0, i1 int) (*Daily, error) {
	if i0 < 0 || i1 >= len(d.T) || i0 >= i1 {
		return nil, fmt.Errorf("forcing.Window: bad bounds [%d,%d]", i0, i1)
	}
	w := &Daily{
		T:    d.T[i0 : i1+1],
		Days: d.Days[i0 : i1+1],
		PTOT: d.PTOT[i0 : i1+1],
		TAVG: d.TAVG[i0 : i1+1],
	}
	if d.ETP != nil {
		w.ETP = d.ETP[i0 : i1+1]
	}
	return w, nil
}

// Lag shifts the weather record n days later relative to the well, for wells
// whose water table responds with a delay. The weather values are untouched.
func (d *Daily) Lag(n int) {
	for i := range d.Days {
		d.Days[i] += float64(n)
	}
	for i := range d.T {
		d.T[i] = d.T[i].AddDate(0, 0, n)
	}
}
