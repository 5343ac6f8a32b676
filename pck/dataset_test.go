package pck

import (
	"testing"

	"github.com/haldring/daffodil/lut"
)

func TestDatasetMarshalUnmarshalRoundTrip(t *testing.T) {
	d := NewDataset(lut.MaxEntries)
	d.Phases = PhaseAngleTable{ConstantDeg: []float64{125.045}, RatePerCentury: []float64{-0.052992}}
	err := d.Append("EARTH", Entry{
		BodyID:   399,
		ParentID: 3,
		Pole: PoleModel{
			RAPoly:  []float64{0, -0.641},
			DecPoly: []float64{90.0, -0.557},
			PMPoly:  []float64{190.147, 360.9856235},
			NutationTerms: []TrigTerm{
				{PhaseAngleIndex: 0, Component: ComponentPM, Amplitude: 0.001},
			},
		},
		Ellipsoid: &Ellipsoid{RadiiKm: [3]float64{6378.1, 6378.1, 6356.8}},
		Gravity:   &Gravity{GM: 398600.435},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	buf, err := d.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded, err := Unmarshal(buf, lut.MaxEntries)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	entry, ok := decoded.Lookup(399)
	if !ok {
		t.Fatal("Lookup(399) missing after round trip")
	}
	if entry.ParentID != 3 {
		t.Errorf("ParentID = %d, want 3", entry.ParentID)
	}
	if diff := entry.Pole.RAPoly[1] - (-0.641); diff > 1e-9 || diff < -1e-9 {
		t.Errorf("RAPoly[1] = %v, want -0.641", entry.Pole.RAPoly[1])
	}
	if entry.Ellipsoid == nil {
		t.Fatal("Ellipsoid dropped across round trip")
	}
	if diff := entry.Ellipsoid.RadiiKm[0] - 6378.1; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("RadiiKm[0] = %v, want 6378.1", entry.Ellipsoid.RadiiKm[0])
	}
	if entry.Gravity == nil || entry.Gravity.GM != 398600.435 {
		t.Errorf("Gravity dropped or altered across round trip: %+v", entry.Gravity)
	}

	byName, ok := decoded.LookupByName("EARTH")
	if !ok || byName.BodyID != 399 {
		t.Errorf("LookupByName(EARTH) = %+v, %v", byName, ok)
	}

	if diff := decoded.Phases.ConstantDeg[0] - 125.045; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("Phases.ConstantDeg[0] = %v, want 125.045", decoded.Phases.ConstantDeg[0])
	}
}

func TestDatasetUnmarshalRejectsTrailingBytes(t *testing.T) {
	d := NewDataset(lut.MaxEntries)
	buf, err := d.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	buf = append(buf, 0xFF)
	if _, err := Unmarshal(buf, lut.MaxEntries); err == nil {
		t.Fatal("expected an error for trailing bytes after the DER structure")
	}
}

func TestDatasetEntriesReflectsInsertionOrder(t *testing.T) {
	d := NewDataset(lut.MaxEntries)
	d.Append("A", Entry{BodyID: 1, ParentID: 0})
	d.Append("B", Entry{BodyID: 2, ParentID: 1})
	entries := d.Entries()
	if len(entries) != 2 || entries[0].BodyID != 1 || entries[1].BodyID != 2 {
		t.Errorf("Entries() = %+v, want ordered [1, 2]", entries)
	}
}
