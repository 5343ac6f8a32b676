package almanac

import (
	"github.com/pkg/errors"

	"github.com/haldring/daffodil/internal/daf"
	"github.com/haldring/daffodil/internal/kernelerr"
)

// ephemerisSummary is the decoded shape of an SPK summary: two doubles
// (start/end epoch) followed by six integers (target, center, frame,
// type, element start/end index).
type ephemerisSummary struct {
	Start, End                   float64
	Target, Center, Frame, Type  int
	EltStart, EltEnd             int
}

func decodeEphemerisSummary(s daf.Summary) (ephemerisSummary, error) {
	if len(s.Doubles) < 2 || len(s.Ints) < 6 {
		return ephemerisSummary{}, errors.Wrap(kernelerr.ErrMalformedFile, "ephemeris summary shape mismatch")
	}
	return ephemerisSummary{
		Start:    s.Doubles[0],
		End:      s.Doubles[1],
		Target:   int(s.Ints[0]),
		Center:   int(s.Ints[1]),
		Frame:    int(s.Ints[2]),
		Type:     int(s.Ints[3]),
		EltStart: int(s.Ints[4]),
		EltEnd:   int(s.Ints[5]),
	}, nil
}

// orientationSummary is the decoded shape of a BPC summary: two doubles
// (start/end epoch) followed by five integers (frame id, inertial
// reference frame id, type, element start/end index).
type orientationSummary struct {
	Start, End                     float64
	FrameID, InertialFrameID, Type int
	EltStart, EltEnd               int
}

func decodeOrientationSummary(s daf.Summary) (orientationSummary, error) {
	if len(s.Doubles) < 2 || len(s.Ints) < 5 {
		return orientationSummary{}, errors.Wrap(kernelerr.ErrMalformedFile, "orientation summary shape mismatch")
	}
	return orientationSummary{
		Start:           s.Doubles[0],
		End:             s.Doubles[1],
		FrameID:         int(s.Ints[0]),
		InertialFrameID: int(s.Ints[1]),
		Type:            int(s.Ints[2]),
		EltStart:        int(s.Ints[3]),
		EltEnd:          int(s.Ints[4]),
	}, nil
}

// elementSlice pulls the segment's element array out of f's double array by
// 1-indexed address (DAF double array addresses are 1-indexed).
func elementSlice(f *daf.File, startAddr, endAddr int) ([]float64, error) {
	if endAddr < startAddr {
		return nil, errors.Wrap(kernelerr.ErrMalformedSegment, "segment end index precedes start index")
	}
	n := endAddr - startAddr + 1
	return f.Reader().DoublesAt((startAddr-1)*8, n)
}
