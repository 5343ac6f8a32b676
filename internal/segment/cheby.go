package segment

const maxChebyCoeffs = 32

// chebyWorkspace caches Chebyshev polynomial (and derivative) values
// across calls at the same normalized time tc.
type chebyWorkspace struct {
	posnCoeff  [maxChebyCoeffs]float64
	velCoeff   [maxChebyCoeffs]float64
	nPosnAvail int
	nVelAvail  int
	tc         float64
	twot       float64
	primed     bool
}

// evaluate fills posnCoeff[0:ncf] (and, if wantVel, velCoeff[0:ncf]) with
// T_i(tc) and T'_i(tc) via the standard two-term Chebyshev recurrence,
// reusing previously computed terms when tc is unchanged from the last
// call.
func (w *chebyWorkspace) evaluate(tc float64, ncf int, wantVel bool) {
	if !w.primed || tc != w.tc {
		w.posnCoeff[0] = 1.0
		w.posnCoeff[1] = tc
		w.velCoeff[0] = 0.0
		w.velCoeff[1] = 1.0
		w.nPosnAvail = 2
		w.nVelAvail = 2
		w.tc = tc
		w.twot = 2 * tc
		w.primed = true
	}
	if w.nPosnAvail < ncf {
		for i := w.nPosnAvail; i < ncf; i++ {
			w.posnCoeff[i] = w.twot*w.posnCoeff[i-1] - w.posnCoeff[i-2]
		}
		w.nPosnAvail = ncf
	}
	if wantVel && w.nVelAvail < ncf {
		for i := w.nVelAvail; i < ncf; i++ {
			w.velCoeff[i] = w.twot*w.velCoeff[i-1] + 2*w.posnCoeff[i-1] - w.velCoeff[i-2]
		}
		w.nVelAvail = ncf
	}
}

// sumComponent evaluates one Chebyshev component as a direct sum over the
// T_j values from evaluate's forward recurrence (not Clenshaw's backward
// recurrence): sum_j T_j(tc) * c_j, and if wantVel, the scaled derivative
// sum_j T'_j(tc) * c_j * vfac.
func (w *chebyWorkspace) sumComponent(coeffs []float64, ncf int, vfac float64, wantVel bool) (pos, vel float64) {
	for j := 0; j < ncf; j++ {
		pos += w.posnCoeff[j] * coeffs[j]
	}
	if !wantVel {
		return pos, 0
	}
	for j := 1; j < ncf; j++ {
		vel += w.velCoeff[j] * coeffs[j]
	}
	return pos, vel * vfac
}
