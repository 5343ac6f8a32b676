package almanac

import (
	"errors"
	"math"
	"testing"

	"github.com/haldring/daffodil/internal/kernelerr"
	"github.com/haldring/daffodil/internal/segment"
)

func TestApplyStellarAberrationDisabledIsError(t *testing.T) {
	st := segment.State{Position: [3]float64{1, 0, 0}}
	if _, err := ApplyStellarAberration(st, AberrationOptions{Enabled: false}); !errors.Is(err, kernelerr.ErrAberrationParameter) {
		t.Errorf("err = %v, want ErrAberrationParameter", err)
	}
}

func TestApplyStellarAberrationRejectsSuperluminalVelocity(t *testing.T) {
	st := segment.State{Position: [3]float64{1, 0, 0}}
	opts := AberrationOptions{Enabled: true, ObserverVelocityKmS: [3]float64{speedOfLightKmS, 0, 0}}
	if _, err := ApplyStellarAberration(st, opts); !errors.Is(err, kernelerr.ErrAberrationParameter) {
		t.Errorf("err = %v, want ErrAberrationParameter", err)
	}
}

// TestApplyStellarAberrationMatchesScenario5 checks the worked example: a
// target at (1e8, 0, 0) km observed by an observer moving at 30 km/s along
// +Y. The line of sight rotates into the XY plane by exactly
// arcsin(30/c), with the corrected vector remaining in that plane.
func TestApplyStellarAberrationMatchesScenario5(t *testing.T) {
	st := segment.State{Position: [3]float64{1e8, 0, 0}, Velocity: [3]float64{0, 0, 0}}
	opts := AberrationOptions{Enabled: true, ObserverVelocityKmS: [3]float64{0, 30, 0}}

	corrected, err := ApplyStellarAberration(st, opts)
	if err != nil {
		t.Fatalf("ApplyStellarAberration: %v", err)
	}

	if diff := corrected.Position[2]; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("corrected.Position.z = %v, want 0 (stays in the XY plane)", corrected.Position[2])
	}

	norm := math.Sqrt(corrected.Position[0]*corrected.Position[0] + corrected.Position[1]*corrected.Position[1] + corrected.Position[2]*corrected.Position[2])
	wantAngle := math.Asin(30.0 / speedOfLightKmS)
	gotAngle := math.Atan2(corrected.Position[1], corrected.Position[0])
	if diff := gotAngle - wantAngle; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("angle from +X = %v rad, want %v rad", gotAngle, wantAngle)
	}
	if diff := norm - 1e8; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("rotation should preserve vector magnitude: norm = %v, want ~1e8", norm)
	}
}

func TestApplyStellarAberrationTransmitModeNegatesVelocity(t *testing.T) {
	st := segment.State{Position: [3]float64{1e8, 0, 0}}
	receive := AberrationOptions{Enabled: true, ObserverVelocityKmS: [3]float64{0, 30, 0}}
	transmit := AberrationOptions{Enabled: true, Transmit: true, ObserverVelocityKmS: [3]float64{0, -30, 0}}

	recv, err := ApplyStellarAberration(st, receive)
	if err != nil {
		t.Fatalf("ApplyStellarAberration (receive): %v", err)
	}
	xmit, err := ApplyStellarAberration(st, transmit)
	if err != nil {
		t.Fatalf("ApplyStellarAberration (transmit): %v", err)
	}
	if diff := recv.Position[1] - xmit.Position[1]; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("receive and transmit modes should agree once velocity sign is equalized: %v vs %v", recv.Position, xmit.Position)
	}
}
