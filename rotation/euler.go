package rotation

import "math"

// FromEuler313 assembles a DCM (and its time derivative) from a 3-1-3
// Euler-angle sequence (right ascension, declination, prime-meridian
// rotation) and their rates, per the SPICE convention used by orientation
// type-2 segments: R = R3(-pm) * R1(-(pi/2 - dec)) * R3(-(pi/2 + ra)).
//
// The derivative is built from the angle rates via the chain rule.
func FromEuler313(ra, dec, pm, raDot, decDot, pmDot float64) ([3][3]float64, [3][3]float64) {
	a := -(math.Pi/2 + ra)
	b := -(math.Pi/2 - dec)
	c := -pm

	r3a, r3aDot := rotZ(a, -raDot)
	r1b, r1bDot := rotX(b, decDot)
	r3c, r3cDot := rotZ(c, -pmDot)

	// R = r3c * r1b * r3a
	inner := matMul(r1b, r3a)
	innerDot := matAdd(matMul(r1bDot, r3a), matMul(r1b, r3aDot))

	m := matMul(r3c, inner)
	dot := matAdd(matMul(r3cDot, inner), matMul(r3c, innerDot))
	return m, dot
}

func rotZ(theta, thetaDot float64) ([3][3]float64, [3][3]float64) {
	c, s := math.Cos(theta), math.Sin(theta)
	m := [3][3]float64{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
	dot := [3][3]float64{
		{-s * thetaDot, c * thetaDot, 0},
		{-c * thetaDot, -s * thetaDot, 0},
		{0, 0, 0},
	}
	return m, dot
}

func rotX(theta, thetaDot float64) ([3][3]float64, [3][3]float64) {
	c, s := math.Cos(theta), math.Sin(theta)
	m := [3][3]float64{
		{1, 0, 0},
		{0, c, s},
		{0, -s, c},
	}
	dot := [3][3]float64{
		{0, 0, 0},
		{0, -s * thetaDot, c * thetaDot},
		{0, -c * thetaDot, -s * thetaDot},
	}
	return m, dot
}

// EclipticObliquityJ2000Arcsec is the fixed obliquity (84381.448 arcsec)
// used to build the hardcoded ECLIPJ2000 <-> J2000 hop.
const EclipticObliquityJ2000Arcsec = 84381.448

// EclipticJ2000ToJ2000 returns the fixed-rotation DCM (zero derivative)
// between Ecliptic J2000 (orientation id 17) and J2000 (orientation id 1):
// a rotation about the X axis by the J2000 mean obliquity.
func EclipticJ2000ToJ2000() DCM {
	theta := EclipticObliquityJ2000Arcsec * math.Pi / (180 * 3600)
	m, _ := rotX(-theta, 0)
	return DCM{M: m, From: 17, To: 1}
}
