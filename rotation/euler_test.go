package rotation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEuler313ZeroAnglesIsIdentity(t *testing.T) {
	// ra=-pi/2, dec=pi/2, pm=0 drives all three internal rotation angles
	// (a, b, c in FromEuler313) to zero, so the assembled matrix must be
	// the 3x3 identity.
	m, dot := FromEuler313(-math.Pi/2, math.Pi/2, 0, 0, 0, 0)
	assert.InDelta(t, 0, FrobeniusDelta(m, Identity(0).M), 1e-12)
	assert.InDelta(t, 0, FrobeniusDelta(dot, [3][3]float64{}), 1e-12)
}

func TestFromEuler313MatrixIsOrthonormal(t *testing.T) {
	m, _ := FromEuler313(0.3, 0.5, 1.1, 0, 0, 0)
	assert.InDelta(t, 0, OrthonormalityResidual(m), 1e-9)
}

func TestFromEuler313DerivativeNonzeroWithRates(t *testing.T) {
	_, dotZero := FromEuler313(0.3, 0.5, 1.1, 0, 0, 0)
	_, dotRated := FromEuler313(0.3, 0.5, 1.1, 0.01, 0, 0)
	if FrobeniusDelta(dotZero, dotRated) == 0 {
		t.Error("nonzero RA rate produced no change in the derivative matrix")
	}
}
