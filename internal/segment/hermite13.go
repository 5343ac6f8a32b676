package segment

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/haldring/daffodil/internal/kernelerr"
)

// hermiteDirectory is the type-13 directory tail: {window_size, n_states}.
type hermiteDirectory struct {
	WindowSize int
	NStates    int
}

// EvaluateHermite13 evaluates a Hermite unequal-step discrete-state
// segment (type 13). Element layout: n_states records of
// {x,y,z,vx,vy,vz}, then n_states epoch tags, then the directory.
//
// Selection binary-searches the epoch tags for the bracket containing t,
// takes the window_size states centered on that bracket (clamped to array
// bounds), and interpolates each position component with the matching
// velocity as a Hermite polynomial via divided differences over doubled
// nodes (Burden & Faires' standard construction); velocity is the
// analytic derivative of that same polynomial.
func EvaluateHermite13(elements []float64, coverage Coverage, t float64) (State, error) {
	if err := coverage.checkedContains(t); err != nil {
		return State{}, err
	}
	if len(elements) < 2 {
		return State{}, errors.Wrap(kernelerr.ErrMalformedSegment, "element array too short for a Hermite-13 directory")
	}
	tail := elements[len(elements)-2:]
	dir := hermiteDirectory{WindowSize: int(tail[0]), NStates: int(tail[1])}
	if dir.WindowSize <= 0 || dir.WindowSize%2 != 0 {
		return State{}, errors.Wrapf(kernelerr.ErrMalformedSegment, "Hermite window_size %d must be even and positive", dir.WindowSize)
	}
	if dir.NStates <= 0 || dir.WindowSize > dir.NStates {
		return State{}, errors.Wrap(kernelerr.ErrMalformedSegment, "Hermite window_size exceeds state count")
	}

	stateWords := 6 * dir.NStates
	tagsStart := stateWords
	tagsEnd := tagsStart + dir.NStates
	if tagsEnd+2 != len(elements) {
		return State{}, errors.Wrap(kernelerr.ErrMalformedSegment, "Hermite directory inconsistent with element array length")
	}
	tags := elements[tagsStart:tagsEnd]
	for i := 1; i < len(tags); i++ {
		if tags[i] < tags[i-1] {
			return State{}, errors.Wrap(kernelerr.ErrMalformedSegment, "Hermite directory epochs not monotonic")
		}
	}

	// Binary search for the bracket index: the largest idx with
	// tags[idx] <= t. Ties (t exactly on a tag) prefer the bracket
	// starting at that index, which this search already produces since
	// sort.Search returns the first index where tags[idx] > t.
	idx := sort.Search(len(tags), func(i int) bool { return tags[i] > t }) - 1
	if idx < 0 {
		idx = 0
	}

	half := dir.WindowSize / 2
	start := idx - half + 1
	if start < 0 {
		start = 0
	}
	if start+dir.WindowSize > dir.NStates {
		start = dir.NStates - dir.WindowSize
	}

	nodes := tags[start : start+dir.WindowSize]

	var st State
	for c := 0; c < 3; c++ {
		values := make([]float64, dir.WindowSize)
		derivs := make([]float64, dir.WindowSize)
		for i := 0; i < dir.WindowSize; i++ {
			base := (start + i) * 6
			values[i] = elements[base+c]
			derivs[i] = elements[base+3+c]
		}
		pos, vel := hermiteInterpolate(nodes, values, derivs, t)
		st.Position[c] = pos
		st.Velocity[c] = vel
	}
	return st, nil
}

// hermiteInterpolate evaluates the unique degree-(2n-1) polynomial through
// n (value, derivative) pairs at nodes[i], plus its derivative, using
// Newton divided differences over doubled nodes:
//
//	z[2i] = z[2i+1] = nodes[i]
//	Q[2i][0]   = values[i]
//	Q[2i+1][0] = values[i]
//	Q[2i+1][1] = derivs[i]           (the doubled-node convention)
//	Q[i][j]    = (Q[i][j-1] - Q[i-1][j-1]) / (z[i] - z[i-j])  otherwise
//
// and accumulating both the Newton-form value and, via the product rule on
// the running node-product term, its derivative at t in a single pass.
func hermiteInterpolate(nodes, values, derivs []float64, t float64) (value, deriv float64) {
	n := len(nodes)
	m := 2 * n
	z := make([]float64, m)
	q := make([]float64, m)

	for i := 0; i < n; i++ {
		z[2*i] = nodes[i]
		z[2*i+1] = nodes[i]
		q[2*i] = values[i]
		q[2*i+1] = values[i]
	}

	diag := make([]float64, m) // diagonal terms Q[i][i], accumulated column by column
	diag[0] = q[0]

	col := make([]float64, m)
	copy(col, q)

	for j := 1; j < m; j++ {
		next := make([]float64, m)
		for i := j; i < m; i++ {
			if j == 1 && i%2 == 1 {
				next[i] = derivs[i/2]
			} else {
				next[i] = (col[i] - col[i-1]) / (z[i] - z[i-j])
			}
		}
		diag[j] = next[j]
		col = next
	}

	// Newton form evaluation with product-rule derivative accumulation.
	value = diag[0]
	prod := 1.0
	prodDeriv := 0.0
	for i := 1; i < m; i++ {
		prodDeriv = prodDeriv*(t-z[i-1]) + prod
		prod = prod * (t - z[i-1])
		value += diag[i] * prod
		deriv += diag[i] * prodDeriv
	}
	return value, deriv
}
