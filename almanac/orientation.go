package almanac

import (
	"github.com/pkg/errors"

	"github.com/haldring/daffodil/internal/daf"
	"github.com/haldring/daffodil/internal/frametree"
	"github.com/haldring/daffodil/internal/kernelerr"
	"github.com/haldring/daffodil/internal/segment"
	"github.com/haldring/daffodil/pck"
	"github.com/haldring/daffodil/rotation"
)

// secondsPerJulianCentury converts ET seconds past J2000 into Julian
// centuries past J2000, the currency pck.Evaluate's polynomials expect.
const secondsPerJulianCentury = 86400.0 * 36525.0

// selectOrientation mirrors selectEphemeris for BPC files: reverse load
// order, first summary whose frame id and coverage match.
func (a *Almanac) selectOrientation(frame int, t float64) (orientationSummary, *daf.File, error) {
	for i := len(a.bpc) - 1; i >= 0; i-- {
		lf := a.bpc[i]
		for _, s := range lf.summaries {
			os, err := decodeOrientationSummary(s)
			if err != nil {
				continue
			}
			if os.FrameID == frame && t >= os.Start && t <= os.End {
				return os, lf.file, nil
			}
		}
	}
	return orientationSummary{}, nil, kernelerr.ErrOutOfCoverage
}

func evaluateOrientationSegment(os orientationSummary, f *daf.File, t float64) (rotation.DCM, error) {
	elements, err := elementSlice(f, os.EltStart, os.EltEnd)
	if err != nil {
		return rotation.DCM{}, err
	}
	cov := segment.Coverage{Start: os.Start, End: os.End}
	switch os.Type {
	case 2:
		_, dcm, err := segment.EvaluateChebyEuler(elements, cov, t, os.FrameID, os.InertialFrameID)
		return dcm, err
	default:
		return rotation.DCM{}, errors.Wrapf(kernelerr.ErrMalformedSegment, "unsupported orientation data type %d", os.Type)
	}
}

// evaluateDatasetOrientation builds the fallback DCM from a
// planetary-constants entry's analytic pole model. pck.Evaluate's rates are
// per century; they are converted to per second so the derivative matches
// the BPC-derived hops it is composed with.
func evaluateDatasetOrientation(e pck.Entry, phases pck.PhaseAngleTable, node int, t float64) rotation.DCM {
	tc := t / secondsPerJulianCentury
	ra, dec, pm, raDot, decDot, pmDot := pck.Evaluate(e, phases, tc)
	m, dot := rotation.FromEuler313(ra, dec, pm,
		raDot/secondsPerJulianCentury, decDot/secondsPerJulianCentury, pmDot/secondsPerJulianCentury)
	return rotation.DCM{M: m, Dot: dot, From: node, To: e.ParentID}
}

// orientationHopDCM returns the DCM rotating node's body-fixed frame into
// its immediate parent at t, and that parent's id, trying in order: the
// hardcoded ECLIPJ2000->J2000 hop, a covering BPC segment, and finally the
// planetary-constants dataset fallback — but only when the BPC lookup
// failed with OutOfCoverage ("no covering segment"); any other BPC error
// surfaces unchanged.
func (a *Almanac) orientationHopDCM(node int, t float64) (rotation.DCM, int, error) {
	if node == EclipticJ2000 {
		return rotation.EclipticJ2000ToJ2000(), J2000, nil
	}

	os, f, err := a.selectOrientation(node, t)
	if err == nil {
		dcm, derr := evaluateOrientationSegment(os, f, t)
		if derr != nil {
			return rotation.DCM{}, 0, derr
		}
		return dcm, os.InertialFrameID, nil
	}
	if !errors.Is(err, kernelerr.ErrOutOfCoverage) {
		return rotation.DCM{}, 0, err
	}

	if a.dataset != nil {
		if e, ok := a.dataset.Lookup(node); ok {
			return evaluateDatasetOrientation(e, a.dataset.Phases, node, t), e.ParentID, nil
		}
	}
	return rotation.DCM{}, 0, kernelerr.ErrOutOfCoverage
}

// orientationRoot picks the root of the orientation tree: the smallest
// absolute identifier among every inertial reference frame observed in
// loaded BPC files and every dataset entry's parent id. Falls back to
// J2000 (id 1) if nothing has been loaded, and folds Ecliptic J2000 (17)
// into J2000, since that hop is built in rather than tree-discovered.
func (a *Almanac) orientationRoot() int {
	best := J2000
	found := false
	consider := func(id int) {
		if !found || absInt(id) < absInt(best) {
			best, found = id, true
		}
	}
	for _, lf := range a.bpc {
		for _, s := range lf.summaries {
			os, err := decodeOrientationSummary(s)
			if err != nil {
				continue
			}
			consider(os.InertialFrameID)
		}
	}
	if a.dataset != nil {
		for _, e := range a.dataset.Entries() {
			consider(e.ParentID)
		}
	}
	if !found {
		return J2000
	}
	if best == EclipticJ2000 {
		return J2000
	}
	return best
}

func (a *Almanac) orientationNextHop() frametree.NextHop {
	return func(node int, t float64) (int, bool, error) {
		_, next, err := a.orientationHopDCM(node, t)
		if err != nil {
			if errors.Is(err, kernelerr.ErrOutOfCoverage) {
				return 0, false, nil
			}
			return 0, false, err
		}
		return next, true, nil
	}
}

// composeOrientationLeg multiplies DCMs walking prefix (node toward the
// common ancestor), accumulating the time-derivative via the product rule.
func (a *Almanac) composeOrientationLeg(prefix []int, t float64) (rotation.DCM, error) {
	if len(prefix) == 1 {
		return rotation.Identity(prefix[0]), nil
	}
	acc, _, err := a.orientationHopDCM(prefix[0], t)
	if err != nil {
		return rotation.DCM{}, err
	}
	for i := 1; i < len(prefix)-1; i++ {
		hop, _, err := a.orientationHopDCM(prefix[i], t)
		if err != nil {
			return rotation.DCM{}, err
		}
		acc = rotation.Compose(hop, acc)
	}
	return acc, nil
}
