// Package extrema partitions a time series into alternating local maxima and
// minima at a chosen timescale, following the iterative procedure of Vamoş
// and Crăciun (2012) Automatic Trend Estimation, Springer, appendix E.
package extrema

// Partition maps every index of a series onto the inclusive [N1,N2] range of
// the constant-value run (plateau) containing it; an index off any plateau
// maps to itself.
//
// Example with a plateau between indices 5 and 8:
//   x  = [1, 2, 3, 4, 5, 6, 6, 6, 6, 7, 8,  9, 10, 11, 12]
//   N1 = [0, 1, 2, 3, 4, 5, 5, 5, 5, 9, 10, 11, 12, 13, 14]
//   N2 = [0, 1, 2, 3, 4, 8, 8, 8, 8, 9, 10, 11, 12, 13, 14]
type Partition struct{ N1, N2 []int }

func NewPartition(x []float64) Partition {
	n := len(x)
	n1, n2 := make([]int, n), make([]int, n)
	for i := range n1 {
		n1[i], n2[i] = i, i
	}
	for i := 0; i < n-1; i++ {
		if x[i+1] == x[i] {
			n1[i+1] = n1[i]
			for j := n1[i+1]; j <= i; j++ {
				n2[j] = i + 1
			}
		}
	}
	return Partition{n1, n2}
}

// Mid returns the nominal (midpoint) position of the plateau containing i.
func (p Partition) Mid(i int) int { return (p.N1[i] + p.N2[i]) / 2 }

type extremum struct {
	i   int
	min bool
}

// Detect scans x and returns the positions of its local extrema at timescale
// window, signed positive for maxima and negative for minima, in
// chronological order and alternating in type. added holds the ordinal
// positions (within pos) of extrema synthesized to restore alternation where
// the raw scan yielded two of a kind in a row. Series boundaries are not
// admitted as extrema; see DetectBounds.
func Detect(x []float64, window int) (pos, added []int) {
	return detect(x, window, false)
}

// DetectBounds behaves as Detect but also admits the first and last samples
// of the series as extrema when they lie outside the plateaus of the first
// and last detected extremum.
func DetectBounds(x []float64, window int) (pos, added []int) {
	return detect(x, window, true)
}

func detect(x []float64, dn int, bounds bool) ([]int, []int) {
	n := len(x)
	if n < 2 || dn < 1 {
		return nil, nil
	}
	p := NewPartition(x)
	ni, nf := 0, n-1

	var ex []extremum
	var added []int
	flagante := 0 // type of the anterior extremum: +1 max, -1 min, 0 none
	nc := 0       // cursor: the step up to which the series has been analyzed
	for nc < nf {
		nlim := imin(nc+dn, nf)

		// candidate extrema within the forward window, each revalidated
		// over the widened neighbourhood of its plateau
		nmin := argmin(x, nc, nlim)
		flagmin := argmin(x, imax(p.N1[nmin]-dn, ni), imin(p.N2[nmin]+dn, nf)) == nmin
		nmax := argmax(x, nc, nlim)
		flagmax := argmax(x, imax(p.N1[nmax]-dn, ni), imin(p.N2[nmax]+dn, nf)) == nmax

		// keep whichever candidate lies closer to the cursor
		if flagmin && flagmax {
			if nmin < nmax {
				flagmax = false
			} else {
				flagmin = false
			}
		}

		switch flagante {
		case 0:
			switch {
			case flagmax:
				nc = p.N1[nmax] + 1
				flagante = 1
				ex = append(ex, extremum{p.Mid(nmax), false})
			case flagmin:
				nc = p.N1[nmin] + 1
				flagante = -1
				ex = append(ex, extremum{p.Mid(nmin), true})
			default:
				nc += dn
			}
		case -1: // anterior extremum is a minimum
			tante := ex[len(ex)-1].i
			switch {
			case flagmax:
				if x[tante] < x[nmax] {
					nc = p.N1[nmax] + 1
					ex = append(ex, extremum{p.Mid(nmax), false})
				} else {
					// the current maximum does not rise above the anterior
					// minimum; insert the best maximum of the gap instead
					nmaxx := argmax(x, tante, nmax)
					nc = p.N1[nmaxx] + 1
					ex = append(ex, extremum{p.Mid(nmaxx), false})
					added = append(added, len(ex)-1)
				}
				flagante = 1
			case flagmin: // two minima in a row
				nc = p.N1[nmin]
				nmaxx := argmax(x, tante, nc)
				ex = append(ex, extremum{p.Mid(nmaxx), false})
				added = append(added, len(ex)-1)
				flagante = 1
			default:
				nc += dn
			}
		default: // anterior extremum is a maximum
			tante := ex[len(ex)-1].i
			switch {
			case flagmin:
				if x[tante] > x[nmin] {
					nc = p.N1[nmin] + 1
					ex = append(ex, extremum{p.Mid(nmin), true})
				} else {
					nminn := argmin(x, tante, nmin)
					nc = p.N1[nminn] + 1
					ex = append(ex, extremum{p.Mid(nminn), true})
					added = append(added, len(ex)-1)
				}
				flagante = -1
			case flagmax: // two maxima in a row
				nc = p.N1[nmax]
				nminn := argmin(x, tante, nc)
				ex = append(ex, extremum{p.Mid(nminn), true})
				added = append(added, len(ex)-1)
				flagante = -1
			default:
				nc += dn
			}
		}
	}

	if bounds && len(ex) > 0 {
		ex, added = admitBounds(x, p, ex, added, ni, nf)
	}

	// a leading trough at the origin cannot be represented as a signed index
	// (and cannot head a peak/trough pairing); drop it
	if len(ex) > 0 && ex[0].min && ex[0].i == 0 {
		ex = ex[1:]
		for k := range added {
			added[k]--
		}
		if len(added) > 0 && added[0] < 0 {
			added = added[1:]
		}
	}

	pos := make([]int, len(ex))
	for k, e := range ex {
		if e.min {
			pos[k] = -e.i
		} else {
			pos[k] = e.i
		}
	}
	return pos, added
}

func admitBounds(x []float64, p Partition, ex []extremum, added []int, ni, nf int) ([]extremum, []int) {
	if first := ex[0]; first.i > ni {
		if p.N1[first.i] > ni {
			// the boundary is off the leading extremum's plateau: admit it
			// as an extremum of the opposite type
			ex = append([]extremum{{ni, !first.min}}, ex...)
			for k := range added {
				added[k]++
			}
			added = append([]int{0}, added...)
		} else {
			// the boundary shares the plateau: shift the extremum onto it
			ex[0].i = ni
		}
	}
	if last := ex[len(ex)-1]; last.i < nf {
		if p.N2[last.i] < nf {
			ex = append(ex, extremum{nf, !last.min})
			added = append(added, len(ex)-1)
		} else {
			ex[len(ex)-1].i = nf
		}
	}
	return ex, added
}

// argmin returns the index of the first occurrence of the least value of
// x[lo..hi] inclusive.
func argmin(x []float64, lo, hi int) int {
	k := lo
	for j := lo; j <= hi; j++ {
		if x[j] < x[k] {
			k = j
		}
	}
	return k
}

func argmax(x []float64, lo, hi int) int {
	k := lo
	for j := lo; j <= hi; j++ {
		if x[j] > x[k] {
			k = j
		}
	}
	return k
}

func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
