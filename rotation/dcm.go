// Package rotation implements the direction-cosine-matrix (DCM) algebra
// used throughout the engine: composition with derivative propagation,
// transpose/inverse, quaternion conversion, and the small set of fixed
// rotation matrices the frame tree hardcodes (ECLIPJ2000 <-> J2000).
//
// The DCM type is a plain [3][3]float64 pair (value, derivative) rather
// than a heap-backed matrix type, so composing rotations on the query path
// never allocates.
package rotation

import "math"

// DCM is a 3x3 direction-cosine matrix with its time derivative and the
// frame ids it maps between. Composition is matrix product with the chain
// rule for derivatives; transpose inverts (both the matrix and, via the
// product rule, its derivative).
type DCM struct {
	M    [3][3]float64
	Dot  [3][3]float64
	From int
	To   int
}

// Identity returns a DCM with zero derivative mapping a frame to itself.
func Identity(frame int) DCM {
	d := DCM{From: frame, To: frame}
	d.M[0][0], d.M[1][1], d.M[2][2] = 1, 1, 1
	return d
}

func matMul(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}

func matAdd(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[i][j] + b[i][j]
		}
	}
	return out
}

func matTranspose(a [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[j][i]
		}
	}
	return out
}

// Compose returns the DCM that rotates "inner.From" into "outer.To",
// i.e. outer * inner, propagating the derivative via the product rule
// d(AB)/dt = A'B + AB'. Requires inner.To == outer.From.
func Compose(outer, inner DCM) DCM {
	return DCM{
		M:    matMul(outer.M, inner.M),
		Dot:  matAdd(matMul(outer.Dot, inner.M), matMul(outer.M, inner.Dot)),
		From: inner.From,
		To:   outer.To,
	}
}

// Transpose returns the inverse rotation: a DCM's inverse equals its
// transpose, and its derivative's inverse transposes accordingly
// (d(A^T)/dt = (dA/dt)^T, since A^T A = I differentiates to
// A'^T A + A^T A' = 0, consistent with transposing the derivative term).
func Transpose(d DCM) DCM {
	return DCM{
		M:    matTranspose(d.M),
		Dot:  matTranspose(d.Dot),
		From: d.To,
		To:   d.From,
	}
}

// ApplyPosition rotates a position vector by the DCM's matrix only.
func (d DCM) ApplyPosition(v [3]float64) [3]float64 {
	return matVec(d.M, v)
}

// ApplyState rotates a position/velocity pair, propagating velocity through
// both the matrix and its derivative: v' = M*v + Mdot*p.
func (d DCM) ApplyState(pos, vel [3]float64) (outPos, outVel [3]float64) {
	outPos = matVec(d.M, pos)
	outVel = vecAdd(matVec(d.M, vel), matVec(d.Dot, pos))
	return
}

func matVec(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

func vecAdd(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// FrobeniusDelta returns the Frobenius norm of (a - b), used by tests
// to assert approximate matrix equality.
func FrobeniusDelta(a, b [3][3]float64) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			diff := a[i][j] - b[i][j]
			sum += diff * diff
		}
	}
	return math.Sqrt(sum)
}
