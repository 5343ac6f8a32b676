package segment

import "testing"

// twoStateElements builds a minimal Hermite type-13 segment: two states
// (window_size = n_states = 2), a straight-line trajectory so the Hermite
// interpolant is exact everywhere, not only at the endpoints.
func twoStateElements(t0, t1 float64, x0, v0, x1, v1 float64) []float64 {
	return []float64{
		x0, 0, 0, v0, 0, 0, // state at t0: position, velocity
		x1, 0, 0, v1, 0, 0, // state at t1
		t0, t1, // epoch tags
		2, 2, // directory: window_size, n_states
	}
}

func TestEvaluateHermite13EndpointsExact(t *testing.T) {
	elements := twoStateElements(0, 10, 1, 2, 21, 2) // x(t) = 1 + 2t is consistent with v=2 throughout
	cov := Coverage{Start: 0, End: 10}

	st0, err := EvaluateHermite13(elements, cov, 0)
	if err != nil {
		t.Fatalf("EvaluateHermite13 at t0: %v", err)
	}
	if diff := st0.Position[0] - 1; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("position at t0 = %v, want 1", st0.Position[0])
	}

	st1, err := EvaluateHermite13(elements, cov, 10)
	if err != nil {
		t.Fatalf("EvaluateHermite13 at t1: %v", err)
	}
	if diff := st1.Position[0] - 21; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("position at t1 = %v, want 21", st1.Position[0])
	}
}

func TestEvaluateHermite13LinearIsExactMidpoint(t *testing.T) {
	elements := twoStateElements(0, 10, 1, 2, 21, 2)
	cov := Coverage{Start: 0, End: 10}
	st, err := EvaluateHermite13(elements, cov, 5)
	if err != nil {
		t.Fatalf("EvaluateHermite13: %v", err)
	}
	want := 1 + 2*5.0
	if diff := st.Position[0] - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("position at t=5 = %v, want %v", st.Position[0], want)
	}
	if diff := st.Velocity[0] - 2; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("velocity at t=5 = %v, want 2", st.Velocity[0])
	}
}

func TestEvaluateHermite13OddWindowSizeIsMalformed(t *testing.T) {
	elements := []float64{
		0, 0, 0, 0, 0, 0,
		1, 1, 3, // epoch tag 1, then window_size=1 (odd), n_states=3 -- too short anyway but window check fires first
	}
	cov := Coverage{Start: 0, End: 1}
	if _, err := EvaluateHermite13(elements, cov, 0); err == nil {
		t.Fatal("expected malformed segment error for odd window_size")
	}
}

func TestEvaluateHermite13OutOfCoverage(t *testing.T) {
	elements := twoStateElements(0, 10, 1, 2, 21, 2)
	cov := Coverage{Start: 0, End: 10}
	if _, err := EvaluateHermite13(elements, cov, 10.5); err == nil {
		t.Fatal("expected out-of-coverage error")
	}
}
