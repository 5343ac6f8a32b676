package almanac

import (
	"encoding/binary"
	"math"
)

// buildSyntheticSPK hand-assembles a one-summary ephemeris-flavored DAF:
// file record, summary control+data record, name record, and the element
// double array appended immediately after (addressed by the summary's
// 1-indexed start/end element index), mirroring the layout internal/daf
// parses.
func buildSyntheticSPK(target, center, frame, typ int, start, end float64, elements []float64) []byte {
	const nd, ni = 2, 6
	header := make([]byte, 1024*3)

	copy(header[0:8], "DAF/SPK ")
	binary.LittleEndian.PutUint32(header[8:12], nd)
	binary.LittleEndian.PutUint32(header[12:16], ni)
	copy(header[16:76], "TEST-SPK")
	binary.LittleEndian.PutUint32(header[76:80], 2)
	binary.LittleEndian.PutUint32(header[80:84], 2)
	binary.LittleEndian.PutUint32(header[84:88], 100)
	copy(header[88:96], "LTL-IEEE")

	ctrl := header[1024:2048]
	binary.LittleEndian.PutUint64(ctrl[0:8], math.Float64bits(0))
	binary.LittleEndian.PutUint64(ctrl[8:16], math.Float64bits(0))
	binary.LittleEndian.PutUint64(ctrl[16:24], math.Float64bits(1))

	base := 24
	binary.LittleEndian.PutUint64(ctrl[base:base+8], math.Float64bits(start))
	binary.LittleEndian.PutUint64(ctrl[base+8:base+16], math.Float64bits(end))

	startAddr := len(header)/8 + 1
	endAddr := startAddr + len(elements) - 1

	intBase := base + nd*8
	ints := []int32{int32(target), int32(center), int32(frame), int32(typ), int32(startAddr), int32(endAddr)}
	for i, v := range ints {
		binary.LittleEndian.PutUint32(ctrl[intBase+i*4:intBase+i*4+4], uint32(v))
	}

	nameRec := header[2048:3072]
	copy(nameRec[0:nd*8+ni*4], "TEST SEGMENT")

	out := append(header, make([]byte, len(elements)*8)...)
	for i, v := range elements {
		binary.LittleEndian.PutUint64(out[len(header)+i*8:len(header)+i*8+8], math.Float64bits(v))
	}
	return out
}

// buildSyntheticBPC mirrors buildSyntheticSPK for an orientation-flavored
// DAF (NI=5: frame id, inertial frame id, type, element start/end).
func buildSyntheticBPC(frameID, inertialFrameID, typ int, start, end float64, elements []float64) []byte {
	const nd, ni = 2, 5
	header := make([]byte, 1024*3)

	copy(header[0:8], "DAF/PCK ")
	binary.LittleEndian.PutUint32(header[8:12], nd)
	binary.LittleEndian.PutUint32(header[12:16], ni)
	copy(header[16:76], "TEST-BPC")
	binary.LittleEndian.PutUint32(header[76:80], 2)
	binary.LittleEndian.PutUint32(header[80:84], 2)
	binary.LittleEndian.PutUint32(header[84:88], 100)
	copy(header[88:96], "LTL-IEEE")

	ctrl := header[1024:2048]
	binary.LittleEndian.PutUint64(ctrl[0:8], math.Float64bits(0))
	binary.LittleEndian.PutUint64(ctrl[8:16], math.Float64bits(0))
	binary.LittleEndian.PutUint64(ctrl[16:24], math.Float64bits(1))

	base := 24
	binary.LittleEndian.PutUint64(ctrl[base:base+8], math.Float64bits(start))
	binary.LittleEndian.PutUint64(ctrl[base+8:base+16], math.Float64bits(end))

	startAddr := len(header)/8 + 1
	endAddr := startAddr + len(elements) - 1

	intBase := base + nd*8
	ints := []int32{int32(frameID), int32(inertialFrameID), int32(typ), int32(startAddr), int32(endAddr)}
	for i, v := range ints {
		binary.LittleEndian.PutUint32(ctrl[intBase+i*4:intBase+i*4+4], uint32(v))
	}

	nameRec := header[2048:3072]
	copy(nameRec[0:nd*8+ni*4], "TEST FRAME")

	out := append(header, make([]byte, len(elements)*8)...)
	for i, v := range elements {
		binary.LittleEndian.PutUint64(out[len(header)+i*8:len(header)+i*8+8], math.Float64bits(v))
	}
	return out
}

// constantChebyPosition builds a single-record type-2 element array whose
// position is the constant (x, y, z) throughout [start, end].
func constantChebyPosition(x, y, z, start, end float64) []float64 {
	half := (end - start) / 2
	mid := start + half
	return []float64{
		mid, half,
		x, 0,
		y, 0,
		z, 0,
		start, end - start, 2, 1,
	}
}

// zeroAngleChebyEuler builds a single-record type-2 orientation element
// array whose RA/Dec/PM angles are all zero throughout [start, end].
func zeroAngleChebyEuler(start, end float64) []float64 {
	half := (end - start) / 2
	mid := start + half
	return []float64{
		mid, half,
		0, 0,
		0, 0,
		0, 0,
		start, end - start, 2, 1,
	}
}
