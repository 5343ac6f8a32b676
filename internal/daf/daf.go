// Package daf parses the DAF ("double-precision array file") container
// format: the 1024-byte file record, the doubly-linked chain of summary
// records, and the parallel name records. It performs no interpretation of
// summary integer fields beyond exposing them — the caller supplies the
// matching summary shape (ephemeris or orientation flavor).
package daf

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/haldring/daffodil/internal/bytesio"
	"github.com/haldring/daffodil/internal/kernelerr"
)

const recordLen = 1024

// Flavor distinguishes an ephemeris-flavored DAF (SPK) from an
// orientation-flavored one (BPC).
type Flavor int

const (
	FlavorUnknown Flavor = iota
	FlavorEphemeris
	FlavorOrientation
)

// FileRecord is the parsed 1024-byte file record at the head of every DAF.
type FileRecord struct {
	Flavor       Flavor
	ND           int // doubles per summary (typically 2)
	NI           int // integers per summary (typically 6)
	InternalName string
	FirstSummary int32 // record index of first summary record
	LastSummary  int32 // record index of last summary record
	FirstFree    int32 // first free double-array address
}

// Summary is one decoded summary-record entry: ND doubles followed by NI
// integers, plus its paired name-record text.
type Summary struct {
	Name    string
	Doubles []float64
	Ints    []int32
}

// File is a parsed DAF container over an immutable byte buffer.
type File struct {
	r    *bytesio.Reader
	Hdr  FileRecord
}

// Open parses buf's file record and validates the summary-record chain
// pointers, but does not eagerly decode every summary (Summaries is lazy).
func Open(buf []byte) (*File, error) {
	if len(buf) < recordLen {
		return nil, errors.Wrapf(kernelerr.ErrMalformedFile, "file too short for a DAF file record: %d bytes", len(buf))
	}
	magic := string(buf[:8])
	order, err := bytesio.OrderFromMagic(magic)
	if err != nil {
		// Fall back: the first 8 bytes might be "DAF/SPK " etc rather than
		// the endian tag directly; the tag lives at bytes 88-96 in the
		// canonical layout. Try that before giving up.
		if len(buf) >= 96 {
			order, err = bytesio.OrderFromMagic(string(buf[88:96]))
		}
		if err != nil {
			return nil, err
		}
	}
	r := bytesio.New(buf, order)

	archTag := strings.TrimSpace(magic)
	var flavor Flavor
	switch {
	case strings.Contains(archTag, "SPK"), strings.HasPrefix(archTag, "DAF/SPK"):
		flavor = FlavorEphemeris
	case strings.Contains(archTag, "PCK"), strings.HasPrefix(archTag, "DAF/PCK"):
		flavor = FlavorOrientation
	default:
		flavor = FlavorUnknown
	}

	nd, err := r.Int32At(8)
	if err != nil {
		return nil, err
	}
	ni, err := r.Int32At(12)
	if err != nil {
		return nil, err
	}
	name, err := r.StringAt(16, 60)
	if err != nil {
		return nil, err
	}
	first, err := r.Int32At(76)
	if err != nil {
		return nil, err
	}
	last, err := r.Int32At(80)
	if err != nil {
		return nil, err
	}
	free, err := r.Int32At(84)
	if err != nil {
		return nil, err
	}

	if nd < 0 || ni < 0 || nd > 64 || ni > 64 {
		return nil, errors.Wrapf(kernelerr.ErrMalformedFile, "implausible summary shape nd=%d ni=%d", nd, ni)
	}
	if first < 1 || last < first {
		return nil, errors.Wrapf(kernelerr.ErrMalformedFile, "inconsistent summary record pointers first=%d last=%d", first, last)
	}

	return &File{
		r: r,
		Hdr: FileRecord{
			Flavor:       flavor,
			ND:           int(nd),
			NI:           int(ni),
			InternalName: name,
			FirstSummary: first,
			LastSummary:  last,
			FirstFree:    free,
		},
	}, nil
}

// Reader exposes the underlying byte reader, e.g. for segment evaluators
// that need to pull an element array out of the file's double array by
// 1-indexed address.
func (f *File) Reader() *bytesio.Reader { return f.r }

// summaryWords is the number of doubles consumed by one packed summary:
// ND doubles plus NI integers, the integers packed two-per-double-slot on
// DAF's double-word boundary (ceil(NI/2) extra double-slots).
func (f *File) summaryWords() int {
	return f.Hdr.ND + (f.Hdr.NI+1)/2
}

// Summaries walks the doubly-linked summary-record chain and returns every
// decoded (name, summary) pair in file order. Each summary record is a
// control triple (next, prev, nsum) of doubles followed by up to 25 packed
// summaries; immediately following every summary record is a parallel name
// record of the same nsum count, each name a fixed-width text field of
// length summaryWords()*8 bytes (the DAF convention that the name field
// is exactly as wide as one packed summary).
func (f *File) Summaries() ([]Summary, error) {
	var out []Summary
	recIdx := int(f.Hdr.FirstSummary)
	nameWidth := f.summaryWords() * 8

	seen := map[int]bool{}
	for recIdx != 0 {
		if seen[recIdx] {
			return nil, errors.Wrapf(kernelerr.ErrMalformedFile, "cyclic summary-record chain at record %d", recIdx)
		}
		seen[recIdx] = true

		ctrl, err := f.r.Record(recIdx, recordLen)
		if err != nil {
			return nil, errors.Wrap(err, "reading summary control record")
		}
		ctrlReader := bytesio.New(ctrl, f.r.Order())
		next, err := ctrlReader.Float64At(0)
		if err != nil {
			return nil, err
		}
		nsumF, err := ctrlReader.Float64At(16)
		if err != nil {
			return nil, err
		}
		nsum := int(nsumF)
		if nsum < 0 || nsum > 25 {
			return nil, errors.Wrapf(kernelerr.ErrMalformedFile, "implausible summary count %d in record %d", nsum, recIdx)
		}

		nameRec, err := f.r.Record(recIdx+1, recordLen)
		if err != nil {
			return nil, errors.Wrap(err, "reading paired name record")
		}

		words := f.summaryWords()
		for i := 0; i < nsum; i++ {
			base := 24 + i*words*8
			sumReader := bytesio.New(ctrl[base:], f.r.Order())
			doubles := make([]float64, f.Hdr.ND)
			for d := 0; d < f.Hdr.ND; d++ {
				v, err := sumReader.Float64At(d * 8)
				if err != nil {
					return nil, err
				}
				doubles[d] = v
			}
			ints := make([]int32, f.Hdr.NI)
			intBase := f.Hdr.ND * 8
			for ii := 0; ii < f.Hdr.NI; ii++ {
				v, err := sumReader.Int32At(intBase + ii*4)
				if err != nil {
					return nil, err
				}
				ints[ii] = v
			}
			nameOff := i * nameWidth
			if nameOff+nameWidth > len(nameRec) {
				return nil, errors.Wrapf(kernelerr.ErrMalformedFile, "name record too short for summary %d", i)
			}
			name := strings.TrimSpace(strings.Trim(string(nameRec[nameOff:nameOff+nameWidth]), "\x00"))
			out = append(out, Summary{Name: name, Doubles: doubles, Ints: ints})
		}

		recIdx = int(next)
	}
	return out, nil
}
