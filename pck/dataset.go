package pck

import (
	"encoding/asn1"

	"github.com/pkg/errors"

	"github.com/haldring/daffodil/internal/kernelerr"
	"github.com/haldring/daffodil/lut"
)

// Dataset is the in-memory, read-only planetary-constants dataset: a
// bounded lookup table of Entry by body id/name, plus the shared phase
// angle table referenced by trigonometric nutation terms.
type Dataset struct {
	table  *lut.Table[Entry]
	Phases PhaseAngleTable
}

// NewDataset returns an empty, appendable dataset bounded to capacity
// entries. A non-positive capacity falls back to lut.MaxEntries.
func NewDataset(capacity int) *Dataset {
	return &Dataset{table: lut.New[Entry](capacity)}
}

// Append inserts a body's entry, keyed by its numeric id and a textual
// name (typically the body's SPICE name, e.g. "EARTH").
func (d *Dataset) Append(name string, e Entry) error {
	return d.table.Append(e.BodyID, name, e)
}

// Lookup returns the entry for a body id, if present.
func (d *Dataset) Lookup(bodyID int) (Entry, bool) {
	return d.table.ByID(bodyID)
}

// LookupByName returns the entry for a body name, if present.
func (d *Dataset) LookupByName(name string) (Entry, bool) {
	return d.table.ByName(name)
}

// Entries returns every loaded entry, in insertion order. Used by the
// almanac's orientation-tree root discovery, which needs to walk every
// entry's ParentID alongside BPC-observed inertial frame ids.
func (d *Dataset) Entries() []Entry {
	return d.table.Encode().Entries
}

// --- DER wire format -------------------------------------------------
//
// SEQUENCE {
//   metadata      SEQUENCE { version INTEGER },
//   lookupTable   SEQUENCE {
//       ids       SEQUENCE OF INTEGER,
//       names     SEQUENCE OF OCTET STRING,
//       ranges    SEQUENCE OF SEQUENCE { start INTEGER, end INTEGER },
//   },
//   phases        SEQUENCE { constantDeg SEQUENCE OF REAL-as-INTEGER-scaled,
//                             ratePerCentury SEQUENCE OF REAL-as-INTEGER-scaled },
//   dataOctets    OCTET STRING,
// }
//
// Each entry is itself DER-encoded (via derEntry) and placed at its
// [start,end) byte range within dataOctets. encoding/asn1 does not support
// IEEE-754 floats directly, so polynomial and phase coefficients are
// carried as fixed-point integers scaled by 1e12 — see DESIGN.md for why
// encoding/asn1 backs this format rather than a third-party DER or
// protobuf/CBOR/msgpack library.

const fixedPointScale = 1e12

type derMetadata struct {
	Version int
}

type derRange struct {
	Start int
	End   int
}

type derLookupTable struct {
	IDs    []int
	Names  [][]byte
	Ranges []derRange
}

type derPhaseTable struct {
	ConstantDegFixed    []int64
	RatePerCenturyFixed []int64
}

type derDataset struct {
	Metadata derMetadata
	Lookup   derLookupTable
	Phases   derPhaseTable
	Data     []byte
}

type derTrigTerm struct {
	PhaseAngleIndex int
	Component       int
	AmplitudeFixed  int64
}

type derPoleModel struct {
	RAPolyFixed  []int64
	DecPolyFixed []int64
	PMPolyFixed  []int64
	Terms        []derTrigTerm
}

type derEllipsoid struct {
	RadiiKmFixed []int64
}

type derGravity struct {
	GMFixed int64
}

type derInertia struct {
	IxxFixed, IyyFixed, IzzFixed int64
	IxyFixed, IxzFixed, IyzFixed int64
}

type derEntry struct {
	BodyID    int
	ParentID  int
	Pole      derPoleModel
	HasEllip  bool
	Ellipsoid derEllipsoid
	HasGrav   bool
	Gravity   derGravity
	HasInert  bool
	Inertia   derInertia
}

func toFixed(v float64) int64   { return int64(v * fixedPointScale) }
func fromFixed(v int64) float64 { return float64(v) / fixedPointScale }

func toFixedSlice(v []float64) []int64 {
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = toFixed(x)
	}
	return out
}

func fromFixedSlice(v []int64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = fromFixed(x)
	}
	return out
}

func encodeEntry(e Entry) derEntry {
	terms := make([]derTrigTerm, len(e.Pole.NutationTerms))
	for i, t := range e.Pole.NutationTerms {
		terms[i] = derTrigTerm{PhaseAngleIndex: t.PhaseAngleIndex, Component: int(t.Component), AmplitudeFixed: toFixed(t.Amplitude)}
	}
	de := derEntry{
		BodyID:   e.BodyID,
		ParentID: e.ParentID,
		Pole: derPoleModel{
			RAPolyFixed:  toFixedSlice(e.Pole.RAPoly),
			DecPolyFixed: toFixedSlice(e.Pole.DecPoly),
			PMPolyFixed:  toFixedSlice(e.Pole.PMPoly),
			Terms:        terms,
		},
	}
	if e.Ellipsoid != nil {
		de.HasEllip = true
		de.Ellipsoid.RadiiKmFixed = toFixedSlice(e.Ellipsoid.RadiiKm[:])
	}
	if e.Gravity != nil {
		de.HasGrav = true
		de.Gravity.GMFixed = toFixed(e.Gravity.GM)
	}
	if e.Inertia != nil {
		de.HasInert = true
		de.Inertia = derInertia{
			IxxFixed: toFixed(e.Inertia.Ixx), IyyFixed: toFixed(e.Inertia.Iyy), IzzFixed: toFixed(e.Inertia.Izz),
			IxyFixed: toFixed(e.Inertia.Ixy), IxzFixed: toFixed(e.Inertia.Ixz), IyzFixed: toFixed(e.Inertia.Iyz),
		}
	}
	return de
}

func decodeEntry(de derEntry) Entry {
	terms := make([]TrigTerm, len(de.Pole.Terms))
	for i, t := range de.Pole.Terms {
		terms[i] = TrigTerm{PhaseAngleIndex: t.PhaseAngleIndex, Component: Component(t.Component), Amplitude: fromFixed(t.AmplitudeFixed)}
	}
	e := Entry{
		BodyID:   de.BodyID,
		ParentID: de.ParentID,
		Pole: PoleModel{
			RAPoly:        fromFixedSlice(de.Pole.RAPolyFixed),
			DecPoly:       fromFixedSlice(de.Pole.DecPolyFixed),
			PMPoly:        fromFixedSlice(de.Pole.PMPolyFixed),
			NutationTerms: terms,
		},
	}
	if de.HasEllip && len(de.Ellipsoid.RadiiKmFixed) == 3 {
		e.Ellipsoid = &Ellipsoid{RadiiKm: [3]float64{
			fromFixed(de.Ellipsoid.RadiiKmFixed[0]),
			fromFixed(de.Ellipsoid.RadiiKmFixed[1]),
			fromFixed(de.Ellipsoid.RadiiKmFixed[2]),
		}}
	}
	if de.HasGrav {
		e.Gravity = &Gravity{GM: fromFixed(de.Gravity.GMFixed)}
	}
	if de.HasInert {
		e.Inertia = &RigidBodyInertia{
			Ixx: fromFixed(de.Inertia.IxxFixed), Iyy: fromFixed(de.Inertia.IyyFixed), Izz: fromFixed(de.Inertia.IzzFixed),
			Ixy: fromFixed(de.Inertia.IxyFixed), Ixz: fromFixed(de.Inertia.IxzFixed), Iyz: fromFixed(de.Inertia.IyzFixed),
		}
	}
	return e
}

// Marshal serializes the dataset to its DER wire format.
func (d *Dataset) Marshal() ([]byte, error) {
	enc := d.table.Encode()

	var data []byte
	ranges := make([]derRange, len(enc.Entries))
	names := make([][]byte, len(enc.Names))
	for i, n := range enc.Names {
		names[i] = []byte(n)
	}
	for i, e := range enc.Entries {
		raw, err := asn1.Marshal(encodeEntry(e))
		if err != nil {
			return nil, errors.Wrap(err, "marshaling dataset entry")
		}
		ranges[i] = derRange{Start: len(data), End: len(data) + len(raw)}
		data = append(data, raw...)
	}

	wire := derDataset{
		Metadata: derMetadata{Version: 1},
		Lookup: derLookupTable{
			IDs:    enc.IDs,
			Names:  names,
			Ranges: ranges,
		},
		Phases: derPhaseTable{
			ConstantDegFixed:    int64Slice(toFixedSlice(d.Phases.ConstantDeg)),
			RatePerCenturyFixed: int64Slice(toFixedSlice(d.Phases.RatePerCentury)),
		},
		Data: data,
	}
	out, err := asn1.Marshal(wire)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling dataset")
	}
	return out, nil
}

func int64Slice(v []int64) []int64 { return v }

// Unmarshal decodes a DER-encoded dataset produced by Marshal into a
// dataset bounded to capacity entries.
func Unmarshal(buf []byte, capacity int) (*Dataset, error) {
	var wire derDataset
	rest, err := asn1.Unmarshal(buf, &wire)
	if err != nil {
		return nil, errors.Wrap(kernelerr.ErrMalformedFile, err.Error())
	}
	if len(rest) != 0 {
		return nil, errors.Wrap(kernelerr.ErrMalformedFile, "trailing bytes after dataset DER structure")
	}

	idN, nameN, rangeN := len(wire.Lookup.IDs), len(wire.Lookup.Names), len(wire.Lookup.Ranges)
	n := idN
	if nameN < n {
		n = nameN
	}
	if rangeN < n {
		n = rangeN
	}

	d := NewDataset(capacity)
	d.Phases = PhaseAngleTable{
		ConstantDeg:    fromFixedSlice(wire.Phases.ConstantDegFixed),
		RatePerCentury: fromFixedSlice(wire.Phases.RatePerCenturyFixed),
	}

	var firstErr error
	for i := 0; i < n; i++ {
		rng := wire.Lookup.Ranges[i]
		if rng.Start < 0 || rng.End > len(wire.Data) || rng.Start > rng.End {
			if firstErr == nil {
				firstErr = errors.Wrap(kernelerr.ErrMalformedFile, "dataset entry byte range out of bounds")
			}
			continue
		}
		var de derEntry
		if _, err := asn1.Unmarshal(wire.Data[rng.Start:rng.End], &de); err != nil {
			if firstErr == nil {
				firstErr = errors.Wrap(kernelerr.ErrMalformedFile, err.Error())
			}
			continue
		}
		if err := d.Append(string(wire.Lookup.Names[i]), decodeEntry(de)); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if idN != nameN || idN != rangeN {
		if firstErr == nil {
			firstErr = errors.Wrap(kernelerr.ErrIntegrityMismatch, "dataset lookup table id/name/range cardinality mismatch")
		}
	}
	return d, firstErr
}
