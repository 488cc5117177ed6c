package swb

// Scheme selects the direction the synthetic hydrograph is integrated in.
type Scheme int

const (
	Forward  Scheme = iota // seed the first water level, march forward
	Backward               // seed the last water level, march backward
)

// recess evaluates the master recession curve at water level h [mm below
// ground], returning the recession rate [mm/d] floored at zero.
func recess(a, b, h float64) float64 {
	r := (b - a*h/1000.) * 1000.
	if r < 0. {
		r = 0.
	}
	return r
}

// Hydrograph integrates the recharge series into a synthetic water level
// record [mm below ground surface] using an explicit scheme: recession lowers
// the water table, recharge divided by specific yield raises it. The seed sets
// the boundary water level (first for Forward, last for Backward); the
// backward pass is the exact inverse of the forward step so the two schemes
// reproduce one another on the same series.
func Hydrograph(rechg []float64, sy, a, b, seed float64, scheme Scheme) []float64 {
	n := len(rechg) + 1
	wl := make([]float64, n)
	if scheme == Forward {
		wl[0] = seed
		for i := 0; i < n-1; i++ {
			wl[i+1] = wl[i] + recess(a, b, wl[i]) - rechg[i]/sy
		}
		return wl
	}

	wl[n-1] = seed
	for i := n - 2; i >= 0; i-- {
		// invert wl[i+1] = wl[i] + recess(wl[i]) - rechg[i]/sy,
		// first assuming the recession floor is not active
		h := (wl[i+1] + rechg[i]/sy - 1000.*b) / (1. - a)
		if recess(a, b, h) <= 0. {
			h = wl[i+1] + rechg[i]/sy
		}
		wl[i] = h
	}
	return wl
}
