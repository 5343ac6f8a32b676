// Package pck implements the planetary-constants dataset: a read-only,
// serialized lookup of body-fixed orientations (pole RA/Dec/prime-meridian
// polynomials plus optional nutation/precession trigonometric series)
// keyed by body id, complementing BPC-supplied orientations as an
// analytic fallback source.
package pck

// PoleModel is a body's orientation model: polynomial coefficients (in
// time, Julian centuries past J2000 TDB) for pole right ascension,
// declination, and prime-meridian rotation, plus an optional set of
// trigonometric nutation/precession terms each referencing a phase angle
// by index into a dataset-wide shared phase-angle table.
type PoleModel struct {
	RAPoly, DecPoly, PMPoly []float64
	NutationTerms           []TrigTerm
}

// TrigTerm is one sinusoidal nutation/precession contribution:
// amplitude * sin(phaseAngle) added to RA or PM, or amplitude *
// cos(phaseAngle) added to Dec, selected by Component.
type TrigTerm struct {
	PhaseAngleIndex int
	Component       Component
	Amplitude       float64
}

// Component selects which pole angle a TrigTerm perturbs.
type Component int

const (
	ComponentRA Component = iota
	ComponentDec
	ComponentPM
)

// Ellipsoid is an optional triaxial-ellipsoid shape (kilometers).
type Ellipsoid struct {
	RadiiKm [3]float64
}

// Gravity is an optional gravitational parameter (km^3/s^2).
type Gravity struct {
	GM float64
}

// RigidBodyInertia is an optional symmetric 3x3 inertia tensor. It is pure
// data: no equations of motion are integrated against it here.
type RigidBodyInertia struct {
	Ixx, Iyy, Izz float64
	Ixy, Ixz, Iyz float64
}

// Entry is one body's complete planetary-constants record.
type Entry struct {
	BodyID    int
	ParentID  int // orientation-tree parent, used by the frame-tree fallback
	Pole      PoleModel
	Ellipsoid *Ellipsoid
	Gravity   *Gravity
	Inertia   *RigidBodyInertia
}
