package pck

import "math"

// PhaseAngleTable holds the shared linear phase angles (degrees and
// degrees/century) that TrigTerm entries index into.
type PhaseAngleTable struct {
	ConstantDeg    []float64
	RatePerCentury []float64
}

// AngleAt evaluates phase angle i at time t (Julian centuries past J2000
// TDB), in radians.
func (p PhaseAngleTable) AngleAt(i int, tCenturies float64) float64 {
	if i < 0 || i >= len(p.ConstantDeg) {
		return 0
	}
	deg := p.ConstantDeg[i] + p.RatePerCentury[i]*tCenturies
	return deg * degToRad
}

const degToRad = 3.14159265358979323846 / 180

// polyEval evaluates a polynomial (coefficients lowest-degree first) and
// its derivative with respect to t at t, via Horner's method.
func polyEval(coeffs []float64, t float64) (value, deriv float64) {
	for i := len(coeffs) - 1; i >= 0; i-- {
		value = value*t + coeffs[i]
	}
	for i := len(coeffs) - 1; i >= 1; i-- {
		deriv = deriv*t + coeffs[i]*float64(i)
	}
	return value, deriv
}

// Evaluate computes the pole right ascension, declination, and
// prime-meridian angle (radians) and their rates (radians per century) for
// entry at tCenturies (Julian centuries past J2000 TDB), including any
// trigonometric nutation/precession terms referencing phases. Polynomial
// coefficients are read in degrees and converted; nutation amplitudes are
// added to the converted angles as they are.
func Evaluate(entry Entry, phases PhaseAngleTable, tCenturies float64) (ra, dec, pm, raDot, decDot, pmDot float64) {
	ra, raDot = polyEval(entry.Pole.RAPoly, tCenturies)
	dec, decDot = polyEval(entry.Pole.DecPoly, tCenturies)
	pm, pmDot = polyEval(entry.Pole.PMPoly, tCenturies)
	ra, raDot = ra*degToRad, raDot*degToRad
	dec, decDot = dec*degToRad, decDot*degToRad
	pm, pmDot = pm*degToRad, pmDot*degToRad

	for _, term := range entry.Pole.NutationTerms {
		angle := phases.AngleAt(term.PhaseAngleIndex, tCenturies)
		rate := 0.0
		if term.PhaseAngleIndex >= 0 && term.PhaseAngleIndex < len(phases.RatePerCentury) {
			rate = phases.RatePerCentury[term.PhaseAngleIndex] * degToRad
		}
		switch term.Component {
		case ComponentRA:
			ra += term.Amplitude * math.Sin(angle)
			raDot += term.Amplitude * math.Cos(angle) * rate
		case ComponentDec:
			dec += term.Amplitude * math.Cos(angle)
			decDot += -term.Amplitude * math.Sin(angle) * rate
		case ComponentPM:
			pm += term.Amplitude * math.Sin(angle)
			pmDot += term.Amplitude * math.Cos(angle) * rate
		}
	}
	return
}
