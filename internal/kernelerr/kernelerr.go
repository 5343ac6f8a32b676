// Package kernelerr defines the error taxonomy shared by every subsystem of
// the engine: byte reading, DAF parsing, segment evaluation, frame-tree
// resolution, and almanac composition. Every error a caller can observe
// traces back to one of the sentinels below.
package kernelerr

import "errors"

// Kind classifies a returned error into one of the engine's error
// categories. Use Classify to recover a Kind from an arbitrary error value.
type Kind int

const (
	// KindUnknown is returned by Classify for errors not produced by this
	// package (e.g. a raw os.Open failure that was never wrapped).
	KindUnknown Kind = iota
	KindMalformedFile
	KindMalformedSegment
	KindOutOfCoverage
	KindNoLoadedData
	KindDisjointRoots
	KindMaxRecursionDepth
	KindLookupFull
	KindIntegrityMismatch
	KindAberrationParameter
)

func (k Kind) String() string {
	switch k {
	case KindMalformedFile:
		return "MalformedFile"
	case KindMalformedSegment:
		return "MalformedSegment"
	case KindOutOfCoverage:
		return "OutOfCoverage"
	case KindNoLoadedData:
		return "NoLoadedData"
	case KindDisjointRoots:
		return "DisjointRoots"
	case KindMaxRecursionDepth:
		return "MaxRecursionDepth"
	case KindLookupFull:
		return "LookupFull"
	case KindIntegrityMismatch:
		return "IntegrityMismatch"
	case KindAberrationParameter:
		return "AberrationParameter"
	default:
		return "Unknown"
	}
}

// Sentinel errors. Wrap these with errors.Wrap/fmt.Errorf("...: %w", ...) at
// call sites; Classify unwraps back to the sentinel via errors.Is.
var (
	ErrMalformedFile        = errors.New("malformed file")
	ErrMalformedSegment     = errors.New("malformed segment")
	ErrOutOfCoverage        = errors.New("epoch outside segment coverage")
	ErrNoLoadedData         = errors.New("no kernels loaded in almanac")
	ErrDisjointRoots        = errors.New("frames share no common ancestor")
	ErrMaxRecursionDepth    = errors.New("path to root exceeds MAX_TREE_DEPTH")
	ErrLookupFull           = errors.New("lookup table at capacity")
	ErrIntegrityMismatch    = errors.New("lookup table id/name cardinality mismatch")
	ErrAberrationParameter  = errors.New("invalid stellar aberration parameters")
)

var sentinelOrder = []struct {
	err  error
	kind Kind
}{
	{ErrMalformedFile, KindMalformedFile},
	{ErrMalformedSegment, KindMalformedSegment},
	{ErrOutOfCoverage, KindOutOfCoverage},
	{ErrNoLoadedData, KindNoLoadedData},
	{ErrDisjointRoots, KindDisjointRoots},
	{ErrMaxRecursionDepth, KindMaxRecursionDepth},
	{ErrLookupFull, KindLookupFull},
	{ErrIntegrityMismatch, KindIntegrityMismatch},
	{ErrAberrationParameter, KindAberrationParameter},
}

// Classify recovers the Kind of a (possibly wrapped) error produced by this
// module. It returns KindUnknown if err does not wrap any sentinel here.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, s := range sentinelOrder {
		if errors.Is(err, s.err) {
			return s.kind
		}
	}
	return KindUnknown
}
