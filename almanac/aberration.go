package almanac

import (
	"math"

	"github.com/haldring/daffodil/internal/kernelerr"
	"github.com/haldring/daffodil/internal/segment"
)

// speedOfLightKmS is the exact defined speed of light, km/s.
const speedOfLightKmS = 299792.458

// AberrationOptions parameterizes the stellar aberration correction.
// Enabled must be set explicitly; a caller that forgets to flip it gets
// AberrationParameter rather than a silent no-op.
type AberrationOptions struct {
	Enabled             bool
	Transmit            bool // negate observer velocity in transmit mode
	ObserverVelocityKmS [3]float64
}

// ApplyStellarAberration rotates state's position about u × (v/c) by
// arcsin(|u × v/c|), where u is the unit line of sight to the target and v
// is the observer's velocity relative to the solar-system barycenter
// (negated in transmit mode). Velocity is left uncorrected.
func ApplyStellarAberration(state segment.State, opts AberrationOptions) (segment.State, error) {
	if !opts.Enabled {
		return segment.State{}, kernelerr.ErrAberrationParameter
	}

	v := opts.ObserverVelocityKmS
	if opts.Transmit {
		v = [3]float64{-v[0], -v[1], -v[2]}
	}
	speed := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if speed >= speedOfLightKmS {
		return segment.State{}, kernelerr.ErrAberrationParameter
	}

	pos := state.Position
	norm := math.Sqrt(pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2])
	if norm == 0 {
		return state, nil
	}
	u := [3]float64{pos[0] / norm, pos[1] / norm, pos[2] / norm}
	vOverC := [3]float64{v[0] / speedOfLightKmS, v[1] / speedOfLightKmS, v[2] / speedOfLightKmS}

	axis := cross3(u, vOverC)
	axisNorm := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	if axisNorm == 0 {
		return state, nil
	}
	angle := math.Asin(clamp(axisNorm, -1, 1))
	axisUnit := [3]float64{axis[0] / axisNorm, axis[1] / axisNorm, axis[2] / axisNorm}

	return segment.State{Position: rotateAboutAxis(pos, axisUnit, angle), Velocity: state.Velocity}, nil
}

func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rotateAboutAxis applies Rodrigues' rotation formula: v rotated by angle
// about the unit vector axis.
func rotateAboutAxis(v, axis [3]float64, angle float64) [3]float64 {
	c, s := math.Cos(angle), math.Sin(angle)
	cr := cross3(axis, v)
	dot := axis[0]*v[0] + axis[1]*v[1] + axis[2]*v[2]
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = v[i]*c + cr[i]*s + axis[i]*dot*(1-c)
	}
	return out
}
