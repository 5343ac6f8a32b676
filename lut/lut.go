// Package lut implements a bounded-capacity bidirectional lookup table
// (key-by-id and key-by-name), used by the planetary-constants dataset.
//
// Generalized from a fixed-size indexed metadata array (index/pointer/type
// triples keyed by a fixed-width name field) into a generic bounded map
// with an explicit integrity check and a tolerant encode/decode contract.
package lut

import (
	"github.com/pkg/errors"

	"github.com/haldring/daffodil/internal/kernelerr"
	"github.com/haldring/daffodil/internal/xlog"
)

// MaxEntries is the default capacity used when a caller has no more
// specific bound to supply.
const MaxEntries = 32

// Table is a bounded-capacity, bidirectional id<->name lookup table over
// entries of type E.
type Table[E any] struct {
	capacity int
	byID     map[int]E
	byName   map[string]E
	ids      []int
	names    []string
}

// New returns an empty table that rejects inserts once it holds capacity
// entries. A non-positive capacity falls back to MaxEntries.
func New[E any](capacity int) *Table[E] {
	if capacity <= 0 {
		capacity = MaxEntries
	}
	return &Table[E]{capacity: capacity, byID: map[int]E{}, byName: map[string]E{}}
}

// Len returns the number of entries currently stored.
func (t *Table[E]) Len() int { return len(t.ids) }

// Append inserts a new (id, name, entry) triple. Fails with
// kernelerr.ErrLookupFull if the table is already at capacity.
func (t *Table[E]) Append(id int, name string, e E) error {
	if len(t.ids) >= t.capacity {
		return errors.Wrapf(kernelerr.ErrLookupFull, "cannot insert id=%d name=%q: table holds %d entries", id, name, t.capacity)
	}
	t.byID[id] = e
	t.byName[name] = e
	t.ids = append(t.ids, id)
	t.names = append(t.names, name)
	return nil
}

// ByID looks up an entry by numeric id.
func (t *Table[E]) ByID(id int) (E, bool) {
	e, ok := t.byID[id]
	return e, ok
}

// ByName looks up an entry by textual name.
func (t *Table[E]) ByName(name string) (E, bool) {
	e, ok := t.byName[name]
	return e, ok
}

// CheckIntegrity asserts both sides have equal cardinality. It does not
// compare value equality (E may not be comparable); cardinality parity is
// the documented invariant.
func (t *Table[E]) CheckIntegrity() bool {
	return len(t.byID) == len(t.byName) && len(t.byID) == len(t.ids)
}

// Encoded is the three-parallel-sequence serialization form: ids, names,
// and value entries.
type Encoded[E any] struct {
	IDs     []int
	Names   []string
	Entries []E
}

// Encode emits the three parallel sequences backing this table.
func (t *Table[E]) Encode() Encoded[E] {
	entries := make([]E, len(t.ids))
	for i, id := range t.ids {
		entries[i] = t.byID[id]
	}
	return Encoded[E]{IDs: append([]int(nil), t.ids...), Names: append([]string(nil), t.names...), Entries: entries}
}

// Decode rebuilds a table of the given capacity from an Encoded form. A
// skewed table (unequal id and name cardinality, e.g. truncated by a prior
// partial write) is tolerated: the id side and the name side are loaded
// independently, each capped only by its own length against Entries, so
// neither axis is truncated by a shortfall on the other. Decode logs a
// warning via xlog and returns kernelerr.ErrIntegrityMismatch alongside
// the best-effort table.
func Decode[E any](enc Encoded[E], capacity int) (*Table[E], error) {
	t := New[E](capacity)
	idN, nameN, entryN := len(enc.IDs), len(enc.Names), len(enc.Entries)
	skewed := idN != nameN || idN != entryN

	idLim := idN
	if entryN < idLim {
		idLim = entryN
	}
	for i := 0; i < idLim; i++ {
		t.byID[enc.IDs[i]] = enc.Entries[i]
		t.ids = append(t.ids, enc.IDs[i])
	}

	nameLim := nameN
	if entryN < nameLim {
		nameLim = entryN
	}
	for i := 0; i < nameLim; i++ {
		t.byName[enc.Names[i]] = enc.Entries[i]
		t.names = append(t.names, enc.Names[i])
	}

	if skewed {
		xlog.Warnf("lookup table decode: id count %d, name count %d, entry count %d — loading available sides independently", idN, nameN, entryN)
		return t, errors.Wrap(kernelerr.ErrIntegrityMismatch, "lookup table id/name cardinality mismatch on decode")
	}
	return t, nil
}
