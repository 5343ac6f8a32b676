// Package bytesio is a positional accessor over an immutable byte buffer.
// Its scalar and record accessors neither copy nor allocate; DoublesAt
// allocates the slice it returns. It is the lowest layer of the engine:
// the daf package reads kernel files through a Reader, and segment
// evaluators receive the []float64 element arrays it decodes.
//
// Each Reader's ByteOrder is fixed at construction time from the kernel
// file's own magic string, so no buffer is ever mutated to fix its
// endianness.
package bytesio

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/haldring/daffodil/internal/kernelerr"
)

// Reader is a positional view over an immutable byte slice. Every accessor
// except DoublesAt returns either a value type or a sub-slice of the
// original buffer without allocating.
type Reader struct {
	buf   []byte
	order binary.ByteOrder
}

// New wraps buf for reading in the given byte order. buf is never copied or
// mutated; the caller must keep it alive for the Reader's lifetime.
func New(buf []byte, order binary.ByteOrder) *Reader {
	return &Reader{buf: buf, order: order}
}

// Len returns the number of bytes in the underlying buffer.
func (r *Reader) Len() int { return len(r.buf) }

// Order returns the byte order the reader was constructed with.
func (r *Reader) Order() binary.ByteOrder { return r.order }

func (r *Reader) bounds(off, n int) error {
	if off < 0 || n < 0 || off+n > len(r.buf) {
		return errors.Wrapf(kernelerr.ErrMalformedFile,
			"out-of-bounds read: offset %d length %d buffer size %d", off, n, len(r.buf))
	}
	return nil
}

// Float64At reads an IEEE-754 double at byte offset off.
func (r *Reader) Float64At(off int) (float64, error) {
	if err := r.bounds(off, 8); err != nil {
		return 0, err
	}
	return math.Float64frombits(r.order.Uint64(r.buf[off : off+8])), nil
}

// Int32At reads a 4-byte signed integer at byte offset off.
func (r *Reader) Int32At(off int) (int32, error) {
	if err := r.bounds(off, 4); err != nil {
		return 0, err
	}
	return int32(r.order.Uint32(r.buf[off : off+4])), nil
}

// Uint32At reads a 4-byte unsigned integer at byte offset off.
func (r *Reader) Uint32At(off int) (uint32, error) {
	if err := r.bounds(off, 4); err != nil {
		return 0, err
	}
	return r.order.Uint32(r.buf[off : off+4]), nil
}

// StringAt reads a fixed-length textual record at byte offset off, with
// trailing spaces and NUL bytes trimmed (the convention used by both DAF
// name records and JPL title/constant-name records).
func (r *Reader) StringAt(off, length int) (string, error) {
	if err := r.bounds(off, length); err != nil {
		return "", err
	}
	raw := r.buf[off : off+length]
	end := len(raw)
	for end > 0 && (raw[end-1] == ' ' || raw[end-1] == 0) {
		end--
	}
	return string(raw[:end]), nil
}

// DoublesAt decodes n float64 values starting at byte offset off into a
// newly allocated []float64 that does not alias the buffer. Because the
// source bytes may need swapping relative to host order, this is the one
// accessor that allocates; it is used on the segment data path, while
// record-sized directories and headers use the scalar accessors above,
// which do not allocate.
func (r *Reader) DoublesAt(off, n int) ([]float64, error) {
	if err := r.bounds(off, n*8); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float64frombits(r.order.Uint64(r.buf[off+i*8 : off+i*8+8]))
	}
	return out, nil
}

// Record returns the raw bytes of the idx'th fixed-size record (1-indexed,
// matching the DAF convention that "double array addresses are 1-indexed").
// recordLen is typically 1024 for DAF files.
func (r *Reader) Record(idx, recordLen int) ([]byte, error) {
	off := (idx - 1) * recordLen
	if err := r.bounds(off, recordLen); err != nil {
		return nil, err
	}
	return r.buf[off : off+recordLen], nil
}

// OrderFromMagic inspects a DAF file record's 8-byte magic/architecture
// field and returns the byte order it announces. Recognizes the
// "LTL-IEEE" and "BIG-IEEE" tags; any other value is a malformed file.
func OrderFromMagic(magic string) (binary.ByteOrder, error) {
	switch {
	case contains(magic, "LTL-IEEE"):
		return binary.LittleEndian, nil
	case contains(magic, "BIG-IEEE"):
		return binary.BigEndian, nil
	default:
		return nil, errors.Wrapf(kernelerr.ErrMalformedFile, "unrecognized endianness tag %q", magic)
	}
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
