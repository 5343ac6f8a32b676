// Package segment evaluates the element array of a single DAF segment at a
// requested epoch. It supports Chebyshev position (type 2), Chebyshev
// position+velocity (type 3), Hermite unequal-step position+velocity
// (type 13), and Chebyshev Euler angles (orientation type 2).
//
// The Chebyshev recurrence (chebyWorkspace.evaluate in cheby.go) caches its polynomial
// and derivative arrays across an arbitrary component count (3 for
// position, 3 for Euler angles) so the orientation-flavored evaluator
// (cheby_euler.go) can reuse the same code path as the position evaluator.
package segment

import "github.com/haldring/daffodil/internal/kernelerr"

// State is a Cartesian position/velocity pair in kilometers and km/s.
type State struct {
	Position [3]float64
	Velocity [3]float64
}

// EulerState is a 3-1-3 Euler-angle triple (right ascension, declination,
// prime-meridian rotation) in radians, plus their time derivatives in
// radians/second.
type EulerState struct {
	Angles [3]float64
	Rates  [3]float64
}

// Coverage is a segment's valid epoch interval, ET seconds past J2000.
type Coverage struct {
	Start, End float64
}

// Contains reports whether t lies within [Start, End] inclusive.
func (c Coverage) Contains(t float64) bool {
	return t >= c.Start && t <= c.End
}

func (c Coverage) checkedContains(t float64) error {
	if !c.Contains(t) {
		return kernelerr.ErrOutOfCoverage
	}
	return nil
}
