package segment

import (
	"github.com/pkg/errors"

	"github.com/haldring/daffodil/internal/kernelerr"
	"github.com/haldring/daffodil/rotation"
)

// EvaluateChebyEuler evaluates an orientation type-2 segment: element
// layout mirrors ephemeris type 2 (same chebyDirectory tail, same
// per-record {mid_epoch, half_interval, c0[...], c1[...], c2[...]} shape)
// but with three angle components (RA, Dec, PM) instead of x/y/z. It
// returns both the raw EulerState and the assembled DCM (plus derivative)
// against the segment's inertial parent, via a 3-1-3 rotation sequence.
func EvaluateChebyEuler(elements []float64, coverage Coverage, t float64, from, to int) (EulerState, rotation.DCM, error) {
	if err := coverage.checkedContains(t); err != nil {
		return EulerState{}, rotation.DCM{}, err
	}
	dir, err := readChebyDirectory(elements)
	if err != nil {
		return EulerState{}, rotation.DCM{}, err
	}
	recIdx := dir.recordIndex(t)
	recLen := 2 + 3*dir.NCoeffs
	if (recIdx+1)*recLen > len(elements)-4 {
		return EulerState{}, rotation.DCM{}, errors.Wrap(kernelerr.ErrMalformedSegment, "Chebyshev directory inconsistent with element array length")
	}
	rec := elements[recIdx*recLen : recIdx*recLen+recLen]
	mid, half := rec[0], rec[1]
	if half <= 0 {
		return EulerState{}, rotation.DCM{}, errors.Wrap(kernelerr.ErrMalformedSegment, "non-positive Chebyshev half interval")
	}
	tc := (t - mid) / half
	if tc < -1 {
		tc = -1
	}
	if tc > 1 {
		tc = 1
	}

	var ws chebyWorkspace
	ws.evaluate(tc, dir.NCoeffs, true)
	vfac := 1.0 / half

	var es EulerState
	for c := 0; c < 3; c++ {
		coeffs := rec[2+c*dir.NCoeffs : 2+(c+1)*dir.NCoeffs]
		angle, rate := ws.sumComponent(coeffs, dir.NCoeffs, vfac, true)
		es.Angles[c] = angle
		es.Rates[c] = rate
	}

	m, dot := rotation.FromEuler313(es.Angles[0], es.Angles[1], es.Angles[2], es.Rates[0], es.Rates[1], es.Rates[2])
	return es, rotation.DCM{M: m, Dot: dot, From: from, To: to}, nil
}
