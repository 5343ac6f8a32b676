package almanac

import (
	"github.com/pkg/errors"

	"github.com/haldring/daffodil/internal/daf"
	"github.com/haldring/daffodil/internal/frametree"
	"github.com/haldring/daffodil/internal/kernelerr"
	"github.com/haldring/daffodil/internal/segment"
)

// selectEphemeris iterates loaded SPK files in reverse load order (most
// recent first), and within each file returns the first summary whose
// target id and coverage match (target, t).
func (a *Almanac) selectEphemeris(target int, t float64) (ephemerisSummary, *daf.File, error) {
	for i := len(a.spk) - 1; i >= 0; i-- {
		lf := a.spk[i]
		for _, s := range lf.summaries {
			es, err := decodeEphemerisSummary(s)
			if err != nil {
				continue
			}
			if es.Target == target && t >= es.Start && t <= es.End {
				return es, lf.file, nil
			}
		}
	}
	return ephemerisSummary{}, nil, kernelerr.ErrOutOfCoverage
}

// evaluateEphemerisSegment dispatches to the matching segment evaluator by
// the summary's data-type code.
func evaluateEphemerisSegment(es ephemerisSummary, f *daf.File, t float64) (segment.State, error) {
	elements, err := elementSlice(f, es.EltStart, es.EltEnd)
	if err != nil {
		return segment.State{}, err
	}
	cov := segment.Coverage{Start: es.Start, End: es.End}
	switch es.Type {
	case 2:
		return segment.EvaluateChebyPosition(elements, cov, t)
	case 3:
		return segment.EvaluateChebyStateVector(elements, cov, t)
	case 13:
		return segment.EvaluateHermite13(elements, cov, t)
	default:
		return segment.State{}, errors.Wrapf(kernelerr.ErrMalformedSegment, "unsupported ephemeris data type %d", es.Type)
	}
}

// ephemerisHopState evaluates the one segment giving node's state relative
// to its center at t, returning that center's id as the next hop.
func (a *Almanac) ephemerisHopState(node int, t float64) (segment.State, int, error) {
	es, f, err := a.selectEphemeris(node, t)
	if err != nil {
		return segment.State{}, 0, err
	}
	st, err := evaluateEphemerisSegment(es, f, t)
	if err != nil {
		return segment.State{}, 0, err
	}
	return st, es.Center, nil
}

// ephemerisRoot picks the root of the ephemeris tree: the frame with the
// smallest absolute identifier among all centers observed across loaded
// SPK files. Defaults to the solar-system barycenter (id 0) when nothing
// has been loaded yet.
func (a *Almanac) ephemerisRoot() int {
	best := SolarSystemBarycenter
	found := false
	for _, lf := range a.spk {
		for _, s := range lf.summaries {
			es, err := decodeEphemerisSummary(s)
			if err != nil {
				continue
			}
			if !found || absInt(es.Center) < absInt(best) {
				best = es.Center
				found = true
			}
		}
	}
	return best
}

func (a *Almanac) ephemerisNextHop() frametree.NextHop {
	return func(node int, t float64) (int, bool, error) {
		_, center, err := a.ephemerisHopState(node, t)
		if err != nil {
			if errors.Is(err, kernelerr.ErrOutOfCoverage) {
				return 0, false, nil
			}
			return 0, false, err
		}
		return center, true, nil
	}
}

// sumEphemerisLeg walks prefix (a PathToRoot result, node-first) summing
// each hop's state: the hop's segment gives target relative to center,
// taken as-is.
func (a *Almanac) sumEphemerisLeg(prefix []int, t float64) (segment.State, error) {
	var sum segment.State
	for i := 0; i < len(prefix)-1; i++ {
		st, center, err := a.ephemerisHopState(prefix[i], t)
		if err != nil {
			return segment.State{}, err
		}
		if center != prefix[i+1] {
			return segment.State{}, errors.Wrap(kernelerr.ErrMalformedFile, "ephemeris hop center mismatch during composition")
		}
		for c := 0; c < 3; c++ {
			sum.Position[c] += st.Position[c]
			sum.Velocity[c] += st.Velocity[c]
		}
	}
	return sum, nil
}
