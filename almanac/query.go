// Public query surface: Translate, Rotate, RotationToParent, StateOf.
// Each resolves both frames' paths to a common ancestor in the relevant
// tree (ephemeris or orientation) and composes the hops along the way,
// rather than assuming a fixed body graph.
package almanac

import (
	"github.com/pkg/errors"

	"github.com/haldring/daffodil/internal/frametree"
	"github.com/haldring/daffodil/internal/kernelerr"
	"github.com/haldring/daffodil/internal/segment"
	"github.com/haldring/daffodil/rotation"
)

// Translate returns the state of from_frame relative to to_frame at t,
// optionally stellar-aberration-corrected.
func (a *Almanac) Translate(from, to Frame, t float64, aberration *AberrationOptions) (segment.State, error) {
	if len(a.spk) == 0 {
		return segment.State{}, kernelerr.ErrNoLoadedData
	}

	root := a.ephemerisRoot()
	nextHop := a.ephemerisNextHop()
	pf, err := frametree.PathToRoot(from.EphemerisID, root, t, nextHop, a.limits.MaxTreeDepth)
	if err != nil {
		return segment.State{}, err
	}
	pt, err := frametree.PathToRoot(to.EphemerisID, root, t, nextHop, a.limits.MaxTreeDepth)
	if err != nil {
		return segment.State{}, err
	}
	_, aPrefix, bPrefix, err := frametree.CommonAncestor(pf, pt)
	if err != nil {
		return segment.State{}, err
	}

	fromLeg, err := a.sumEphemerisLeg(aPrefix, t)
	if err != nil {
		return segment.State{}, err
	}
	toLeg, err := a.sumEphemerisLeg(bPrefix, t)
	if err != nil {
		return segment.State{}, err
	}

	var result segment.State
	for c := 0; c < 3; c++ {
		result.Position[c] = fromLeg.Position[c] - toLeg.Position[c]
		result.Velocity[c] = fromLeg.Velocity[c] - toLeg.Velocity[c]
	}

	if aberration != nil {
		corrected, err := ApplyStellarAberration(result, *aberration)
		if err != nil {
			return segment.State{}, err
		}
		result = corrected
	}
	return result, nil
}

// Rotate returns the DCM mapping from_frame into to_frame at t (and its
// time derivative), composing along both frames' paths to their common
// orientation-tree ancestor.
func (a *Almanac) Rotate(from, to Frame, t float64) (rotation.DCM, error) {
	if len(a.bpc) == 0 && a.dataset == nil {
		return rotation.DCM{}, kernelerr.ErrNoLoadedData
	}

	root := a.orientationRoot()
	nextHop := a.orientationNextHop()
	pf, err := frametree.PathToRoot(from.OrientationID, root, t, nextHop, a.limits.MaxTreeDepth)
	if err != nil {
		return rotation.DCM{}, err
	}
	pt, err := frametree.PathToRoot(to.OrientationID, root, t, nextHop, a.limits.MaxTreeDepth)
	if err != nil {
		return rotation.DCM{}, err
	}
	_, aPrefix, bPrefix, err := frametree.CommonAncestor(pf, pt)
	if err != nil {
		return rotation.DCM{}, err
	}

	fromC, err := a.composeOrientationLeg(aPrefix, t)
	if err != nil {
		return rotation.DCM{}, err
	}
	toC, err := a.composeOrientationLeg(bPrefix, t)
	if err != nil {
		return rotation.DCM{}, err
	}
	return rotation.Compose(rotation.Transpose(toC), fromC), nil
}

// RotationToParent returns the single-hop DCM from frame to its immediate
// parent at t, without resolving a full common-ancestor path.
func (a *Almanac) RotationToParent(frame Frame, t float64) (rotation.DCM, error) {
	if len(a.bpc) == 0 && a.dataset == nil {
		return rotation.DCM{}, kernelerr.ErrNoLoadedData
	}
	dcm, _, err := a.orientationHopDCM(frame.OrientationID, t)
	return dcm, err
}

// StateOf returns the state of body relative to observer, expressed in
// frame's orientation. Ephemeris composition happens natively in J2000
// (the reference frame SPK segments conventionally express their vectors
// in; composition itself never rotates between per-segment reference
// frames); a non-J2000 output frame is applied as one final rotation.
func (a *Almanac) StateOf(body, observer int, frame Frame, t float64) (segment.State, error) {
	st, err := a.Translate(Frame{EphemerisID: body, OrientationID: J2000}, Frame{EphemerisID: observer, OrientationID: J2000}, t, nil)
	if err != nil {
		return segment.State{}, err
	}
	if frame.OrientationID == J2000 {
		return st, nil
	}
	d, err := a.Rotate(Frame{OrientationID: J2000}, Frame{OrientationID: frame.OrientationID}, t)
	if err != nil {
		return segment.State{}, errors.Wrap(err, "rotating state into requested frame")
	}
	pos, vel := d.ApplyState(st.Position, st.Velocity)
	return segment.State{Position: pos, Velocity: vel}, nil
}
