package dtype

import (
	"encoding/binary"
	"math"
)

// TypedCopy copies n samples from src (base srcBase, stride srcStride,
// type srcType) into dst (base dstBase, stride dstStride, type dstType),
// converting the numeric representation when the types differ.
//
// Strides are signed byte offsets between consecutive samples and may be
// negative. Sample i is always addressed as an absolute offset into the
// full slice, srcBase+i*srcStride (and dstBase+i*dstStride), never by
// reslicing src or dst to a forward-only starting point first — that is
// what lets a negative stride walk backward from the base without the
// index going out of the slice's bounds. src and dst must each be large
// enough to contain every sample the stride pattern touches.
//
// When srcType == dstType this degenerates to a strided byte copy.
// Otherwise every sample is converted through float64: narrowing to an
// integer type saturates at the destination's range, and float-to-integer
// conversion truncates toward zero.
func TypedCopy(src []byte, srcBase, srcStride int, srcType Type, dst []byte, dstBase, dstStride int, dstType Type, n int) {
	if n <= 0 {
		return
	}
	if srcType == dstType {
		copyStrided(src, srcBase, srcStride, dst, dstBase, dstStride, srcType.Size(), n)
		return
	}

	srcComplex, dstComplex := srcType.IsComplex(), dstType.IsComplex()
	for i := 0; i < n; i++ {
		sp := srcBase + i*srcStride
		dp := dstBase + i*dstStride

		re := decodeComponent(src[sp:], srcType)
		convertComponent(dst[dp:], dstType, re)

		if dstComplex {
			var im float64
			if srcComplex {
				im = decodeComponent(src[sp+srcType.ComponentSize():], srcType)
			}
			convertComponent(dst[dp+dstType.ComponentSize():], dstType, im)
		}
	}
}

// copyStrided performs the same-type strided byte copy path, addressing
// both sides from their base offset rather than a reslice so a negative
// stride stays in bounds.
func copyStrided(src []byte, srcBase, srcStride int, dst []byte, dstBase, dstStride, size, n int) {
	if srcStride == size && dstStride == size {
		copy(dst[dstBase:dstBase+n*size], src[srcBase:srcBase+n*size])
		return
	}
	for i := 0; i < n; i++ {
		sp := srcBase + i*srcStride
		dp := dstBase + i*dstStride
		copy(dst[dp:dp+size], src[sp:sp+size])
	}
}

// convertComponent writes v into one real/imaginary component of dstType
// at the start of dst, applying saturating narrowing (integer
// destinations) or truncation toward zero (float->integer).
func convertComponent(dst []byte, dstType Type, v float64) {
	isFloat, signed, width := componentKind(dstType)
	if isFloat {
		switch width {
		case 4:
			binary.NativeEndian.PutUint32(dst, math.Float32bits(float32(v)))
		case 8:
			binary.NativeEndian.PutUint64(dst, math.Float64bits(v))
		}
		return
	}

	v = math.Trunc(v)
	if signed {
		putSignedSaturating(dst, width, v)
	} else {
		putUnsignedSaturating(dst, width, v)
	}
}

func putSignedSaturating(dst []byte, width int, v float64) {
	var lo, hi float64
	switch width {
	case 1:
		lo, hi = math.MinInt8, math.MaxInt8
	case 2:
		lo, hi = math.MinInt16, math.MaxInt16
	case 4:
		lo, hi = math.MinInt32, math.MaxInt32
	}
	v = clamp(v, lo, hi)
	switch width {
	case 1:
		dst[0] = byte(int8(v))
	case 2:
		binary.NativeEndian.PutUint16(dst, uint16(int16(v)))
	case 4:
		binary.NativeEndian.PutUint32(dst, uint32(int32(v)))
	}
}

func putUnsignedSaturating(dst []byte, width int, v float64) {
	var hi float64
	switch width {
	case 1:
		hi = math.MaxUint8
	case 2:
		hi = math.MaxUint16
	case 4:
		hi = math.MaxUint32
	}
	v = clamp(v, 0, hi)
	switch width {
	case 1:
		dst[0] = byte(uint8(v))
	case 2:
		binary.NativeEndian.PutUint16(dst, uint16(v))
	case 4:
		binary.NativeEndian.PutUint32(dst, uint32(v))
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// decodeComponent reads one real (or, for a complex type, real/imaginary)
// component as a float64.
func decodeComponent(src []byte, t Type) float64 {
	isFloat, signed, width := componentKind(t)
	if isFloat {
		switch width {
		case 4:
			return float64(math.Float32frombits(binary.NativeEndian.Uint32(src)))
		case 8:
			return math.Float64frombits(binary.NativeEndian.Uint64(src))
		}
	}
	switch width {
	case 1:
		if signed {
			return float64(int8(src[0]))
		}
		return float64(src[0])
	case 2:
		if signed {
			return float64(int16(binary.NativeEndian.Uint16(src)))
		}
		return float64(binary.NativeEndian.Uint16(src))
	case 4:
		if signed {
			return float64(int32(binary.NativeEndian.Uint32(src)))
		}
		return float64(binary.NativeEndian.Uint32(src))
	}
	return 0
}

// componentKind classifies the real/imaginary component representation
// of t: whether it is IEEE float, whether it is signed (for integers),
// and its width in bytes.
func componentKind(t Type) (isFloat, signed bool, width int) {
	switch t {
	case Byte:
		return false, false, 1
	case Int16, CInt16:
		return false, true, 2
	case UInt16:
		return false, false, 2
	case Int32, CInt32:
		return false, true, 4
	case UInt32:
		return false, false, 4
	case Float32, CFloat32:
		return true, false, 4
	case Float64, CFloat64:
		return true, false, 8
	}
	return false, false, 0
}
