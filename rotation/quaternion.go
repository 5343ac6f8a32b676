package rotation

import "math"

// Quaternion is a scalar-first unit quaternion (w, x, y, z).
type Quaternion struct {
	W, X, Y, Z float64
}

// DCM converts a unit quaternion to its equivalent rotation matrix via the
// standard fragment expansion (e11 = 2*(w*w + x*x - 0.5), etc.).
func (q Quaternion) DCM() [3][3]float64 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return [3][3]float64{
		{2 * (w*w + x*x - 0.5), 2 * (x*y + w*z), 2 * (x*z - w*y)},
		{2 * (x*y - w*z), 2 * (w*w + y*y - 0.5), 2 * (y*z + w*x)},
		{2 * (x*z + w*y), 2 * (y*z - w*x), 2 * (w*w + z*z - 0.5)},
	}
}

// Normalize returns q scaled to unit norm.
func (q Quaternion) Normalize() Quaternion {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n == 0 {
		return q
	}
	return Quaternion{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

// FromDCM recovers a unit quaternion from a rotation matrix via the
// standard Shepperd-style largest-diagonal-term method.
func FromDCM(m [3][3]float64) Quaternion {
	tr := m[0][0] + m[1][1] + m[2][2]
	var q Quaternion
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q = Quaternion{
			W: s / 4,
			X: (m[1][2] - m[2][1]) / s,
			Y: (m[2][0] - m[0][2]) / s,
			Z: (m[0][1] - m[1][0]) / s,
		}
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		q = Quaternion{
			W: (m[1][2] - m[2][1]) / s,
			X: s / 4,
			Y: (m[0][1] + m[1][0]) / s,
			Z: (m[0][2] + m[2][0]) / s,
		}
	case m[1][1] > m[2][2]:
		s := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		q = Quaternion{
			W: (m[2][0] - m[0][2]) / s,
			X: (m[0][1] + m[1][0]) / s,
			Y: s / 4,
			Z: (m[1][2] + m[2][1]) / s,
		}
	default:
		s := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
		q = Quaternion{
			W: (m[0][1] - m[1][0]) / s,
			X: (m[0][2] + m[2][0]) / s,
			Y: (m[1][2] + m[2][1]) / s,
			Z: s / 4,
		}
	}
	return q.Normalize()
}
