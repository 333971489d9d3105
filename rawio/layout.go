// LayoutProbe classifies the on-disk interleaving of a set of bands
// sharing one stream purely from their declared geometry — no I/O is
// performed.
package rawio

import "unsafe"

// Interleaving identifies the on-disk storage pattern bands sharing a
// stream can fall into.
type Interleaving int

const (
	Unknown Interleaving = iota
	BIP          // pixel-interleaved: R,G,B,R,G,B,...
	BIL          // line-interleaved: one full scanline per band, then the next
	BSQ          // band-sequential: each band's entire plane contiguous
)

// String names the interleaving for diagnostics.
func (i Interleaving) String() string {
	switch i {
	case BIP:
		return "BIP"
	case BIL:
		return "BIL"
	case BSQ:
		return "BSQ"
	default:
		return "UNKNOWN"
	}
}

// LayoutInfo is the result of ProbeLayout.
type LayoutInfo struct {
	Interleaving Interleaving
	NumBands     int
	PixelStride  int32
	LineStride   int64
	BandOffset   int64
	LittleEndian bool
}

// ProbeLayout derives the on-disk interleaving category from an ordered
// list of band descriptors sharing one underlying stream. It performs
// no I/O: the classification is a pure function of the bands' declared
// geometry.
func ProbeLayout(bands []*Band) LayoutInfo {
	if len(bands) == 0 {
		return LayoutInfo{Interleaving: Unknown}
	}
	first := bands[0]
	info := LayoutInfo{
		Interleaving: Unknown,
		NumBands:     len(bands),
		PixelStride:  first.cfg.PixelStride,
		LineStride:   first.cfg.LineStride,
		LittleEndian: nativeOrderToLittleEndian(first.cfg.NativeOrder),
	}

	if len(bands) == 1 {
		return info
	}

	for _, band := range bands[1:] {
		if band.cfg.PixelStride != first.cfg.PixelStride ||
			band.cfg.LineStride != first.cfg.LineStride ||
			band.cfg.NativeOrder != first.cfg.NativeOrder ||
			band.cfg.SampleType != first.cfg.SampleType {
			return info // Unknown
		}
	}

	bandOffset := int64(bands[1].cfg.ImageOffset) - int64(first.cfg.ImageOffset)
	for i, band := range bands {
		want := int64(i) * bandOffset
		got := int64(band.cfg.ImageOffset) - int64(first.cfg.ImageOffset)
		if got != want {
			return info // Unknown
		}
	}
	info.BandOffset = bandOffset

	size := int64(first.cfg.SampleType.Size())
	width := int64(first.cfg.Width)
	height := int64(first.cfg.Height)
	n := int64(len(bands))
	pixelStride := int64(first.cfg.PixelStride)
	lineStride := first.cfg.LineStride

	switch {
	case pixelStride == n*size && lineStride == pixelStride*width && bandOffset == size:
		info.Interleaving = BIP
	case pixelStride == size && lineStride == size*n*width && bandOffset == size*width:
		info.Interleaving = BIL
	case pixelStride == size && lineStride == size*width && bandOffset == lineStride*height:
		info.Interleaving = BSQ
	default:
		info.Interleaving = Unknown
	}
	return info
}

var hostIsLittleEndian = func() bool {
	var x uint16 = 1
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// nativeOrderToLittleEndian reports the wire byte order as little-endian
// iff native_order equals the host's own endianness.
func nativeOrderToLittleEndian(nativeOrder bool) bool {
	if hostIsLittleEndian {
		return nativeOrder
	}
	return !nativeOrder
}
