package segment

import (
	"github.com/pkg/errors"

	"github.com/haldring/daffodil/internal/kernelerr"
)

// chebyDirectory is the common directory tail shared by Chebyshev position
// (type 2) and Chebyshev Euler-angle (orientation type 2) segments:
// {init_epoch, record_length_seconds, n_coeffs_per_component, n_records}.
type chebyDirectory struct {
	InitEpoch     float64
	RecordLenSecs float64
	NCoeffs       int
	NRecords      int
}

func readChebyDirectory(elements []float64) (chebyDirectory, error) {
	if len(elements) < 4 {
		return chebyDirectory{}, errors.Wrap(kernelerr.ErrMalformedSegment, "element array too short for a Chebyshev directory")
	}
	tail := elements[len(elements)-4:]
	d := chebyDirectory{
		InitEpoch:     tail[0],
		RecordLenSecs: tail[1],
		NCoeffs:       int(tail[2]),
		NRecords:      int(tail[3]),
	}
	if d.RecordLenSecs <= 0 || d.NCoeffs <= 0 || d.NRecords <= 0 {
		return chebyDirectory{}, errors.Wrap(kernelerr.ErrMalformedSegment, "non-positive Chebyshev directory field")
	}
	return d, nil
}

// recordIndex selects floor((t - init_epoch) / record_length), clamped to
// the valid [0, n_records-1] range (a query exactly at t_end can land one
// past the last record index due to floating point rounding).
func (d chebyDirectory) recordIndex(t float64) int {
	idx := int((t - d.InitEpoch) / d.RecordLenSecs)
	if idx < 0 {
		idx = 0
	}
	if idx >= d.NRecords {
		idx = d.NRecords - 1
	}
	return idx
}

// EvaluateChebyPosition evaluates a type-2 (Chebyshev position only)
// segment. Velocity is the analytic derivative of the position
// polynomial, scaled by 1/half_interval.
func EvaluateChebyPosition(elements []float64, coverage Coverage, t float64) (State, error) {
	if err := coverage.checkedContains(t); err != nil {
		return State{}, err
	}
	dir, err := readChebyDirectory(elements)
	if err != nil {
		return State{}, err
	}
	recIdx := dir.recordIndex(t)
	recLen := 2 + 3*dir.NCoeffs
	if (recIdx+1)*recLen > len(elements)-4 {
		return State{}, errors.Wrap(kernelerr.ErrMalformedSegment, "Chebyshev directory inconsistent with element array length")
	}
	rec := elements[recIdx*recLen : recIdx*recLen+recLen]
	mid, half := rec[0], rec[1]
	if half <= 0 {
		return State{}, errors.Wrap(kernelerr.ErrMalformedSegment, "non-positive Chebyshev half interval")
	}
	tc := (t - mid) / half
	if tc < -1.000001 || tc > 1.000001 {
		return State{}, errors.Wrap(kernelerr.ErrMalformedSegment, "epoch does not fall within selected Chebyshev record")
	}
	if tc < -1 {
		tc = -1
	}
	if tc > 1 {
		tc = 1
	}

	var ws chebyWorkspace
	ws.evaluate(tc, dir.NCoeffs, true)
	vfac := 1.0 / half

	var st State
	for c := 0; c < 3; c++ {
		coeffs := rec[2+c*dir.NCoeffs : 2+(c+1)*dir.NCoeffs]
		pos, vel := ws.sumComponent(coeffs, dir.NCoeffs, vfac, true)
		st.Position[c] = pos
		st.Velocity[c] = vel
	}
	return st, nil
}

// EvaluateChebyStateVector evaluates a type-3 (Chebyshev position +
// velocity) segment: six independently-fit coefficient blocks per record,
// position and velocity each evaluated as a direct polynomial sum (not a
// derivative of one another).
func EvaluateChebyStateVector(elements []float64, coverage Coverage, t float64) (State, error) {
	if err := coverage.checkedContains(t); err != nil {
		return State{}, err
	}
	dir, err := readChebyDirectory(elements)
	if err != nil {
		return State{}, err
	}
	recIdx := dir.recordIndex(t)
	recLen := 2 + 6*dir.NCoeffs
	if (recIdx+1)*recLen > len(elements)-4 {
		return State{}, errors.Wrap(kernelerr.ErrMalformedSegment, "Chebyshev directory inconsistent with element array length")
	}
	rec := elements[recIdx*recLen : recIdx*recLen+recLen]
	mid, half := rec[0], rec[1]
	if half <= 0 {
		return State{}, errors.Wrap(kernelerr.ErrMalformedSegment, "non-positive Chebyshev half interval")
	}
	tc := (t - mid) / half
	if tc < -1 {
		tc = -1
	}
	if tc > 1 {
		tc = 1
	}

	var ws chebyWorkspace
	ws.evaluate(tc, dir.NCoeffs, false)

	var st State
	for c := 0; c < 3; c++ {
		posCoeffs := rec[2+c*dir.NCoeffs : 2+(c+1)*dir.NCoeffs]
		pos, _ := ws.sumComponent(posCoeffs, dir.NCoeffs, 0, false)
		st.Position[c] = pos
	}
	for c := 0; c < 3; c++ {
		velCoeffs := rec[2+(3+c)*dir.NCoeffs : 2+(4+c)*dir.NCoeffs]
		vel, _ := ws.sumComponent(velCoeffs, dir.NCoeffs, 0, false)
		st.Velocity[c] = vel
	}
	return st, nil
}
