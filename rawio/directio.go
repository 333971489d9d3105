package rawio

import (
	"fmt"

	"github.com/robert-malhotra/rawraster/internal/dtype"
)

// RWMode selects the direction of a DirectIO call.
type RWMode int

const (
	Read RWMode = iota
	Write
)

// DestGeometry describes the caller's user-space buffer for a
// rectangular read or write: a (possibly strided, possibly
// sub-sampled) view of bw×bh samples of bufType.
type DestGeometry struct {
	Data       []byte
	BW, BH     int
	BufType    dtype.Type
	PixelSpace int64
	LineSpace  int64
}

// ProgressFunc is polled between scanlines of a rectangular operation.
// Returning false requests cancellation; the engine never checks mid-
// scanline.
type ProgressFunc func(fraction float64) bool

// DirectIO performs a rectangular read or write of the src rectangle
// (x, y, w, h) against dst, bypassing the scanline cache when the fast
// path's preconditions hold and falling back to the block-based path
// (ReadBlock/WriteBlock through the scanline cache) otherwise. Only
// nearest-neighbour resampling is supported when bw != w or bh != h.
func (b *Band) DirectIO(rw RWMode, x, y, w, h int, dst DestGeometry, progress ProgressFunc) error {
	if !b.usable {
		return fmt.Errorf("direct I/O: %w", ErrBandUnusable)
	}
	if w <= 0 || h <= 0 || dst.BW <= 0 || dst.BH <= 0 {
		return fmt.Errorf("%w: empty request rectangle", ErrGeometryInvalid)
	}

	if b.directIOEligible(w, h, y) {
		return b.directIOFast(rw, x, y, w, h, dst, progress)
	}
	return b.directIOFallback(rw, x, y, w, h, dst, progress)
}

// directIOEligible implements the fast-path gate: pixel_stride must be
// non-negative, and either ONE_BIG_READ is forced or the scanline is
// large, the horizontal window is narrow, and little of it is already
// resident in an outer block cache.
func (b *Band) directIOEligible(w, h, y int) bool {
	if b.cfg.PixelStride < 0 {
		return false
	}
	if b.config.OneBigRead != nil {
		return *b.config.OneBigRead
	}

	scanlineBytes := int64(b.cfg.PixelStride)*(int64(b.cfg.Width)-1) + int64(b.cfg.SampleType.Size())
	if scanlineBytes < b.config.ScanlineSizeThreshold {
		return false
	}
	coverage := float64(w) / float64(b.cfg.Width)
	if coverage >= b.config.HorizontalCoverageThresh {
		return false
	}
	cached := b.residentFractionOf(y, y+h)
	return cached < b.config.CachedScanlineThreshold
}

func (b *Band) directIOFast(rw RWMode, x, y, w, h int, dst DestGeometry, progress ProgressFunc) error {
	size := int64(b.cfg.SampleType.Size())
	contiguous := w == int(b.cfg.Width) && w == dst.BW && h == dst.BH &&
		dst.BufType == b.cfg.SampleType &&
		int64(b.cfg.PixelStride) == size &&
		dst.PixelSpace == size &&
		dst.LineSpace == dst.PixelSpace*int64(w)

	if contiguous {
		return b.directIOContiguous(rw, y, w, h, dst)
	}
	return b.directIOGeneral(rw, x, y, w, h, dst, progress)
}

// directIOContiguous issues one stream call for the whole rectangle.
func (b *Band) directIOContiguous(rw RWMode, y, w, h int, dst DestGeometry) error {
	off := int64(b.cfg.ImageOffset) + int64(y)*b.cfg.LineStride
	n := w * h * b.cfg.SampleType.Size()
	buf := dst.Data[:n]

	switch rw {
	case Read:
		got, err := b.cfg.Stream.ReadAt(buf, off)
		if err != nil && got == 0 {
			if !b.cfg.SparseTolerant {
				return fmt.Errorf("direct read: %w: %v (got %d of %d bytes)", ErrRead, err, got, n)
			}
			zeroTail(buf, 0)
		} else if got < n {
			if !b.cfg.SparseTolerant {
				return fmt.Errorf("direct read: %w: %v (got %d of %d bytes)", ErrRead, err, got, n)
			}
			zeroTail(buf, got)
		}
		if !b.cfg.NativeOrder && b.cfg.SampleType.Size() > 1 {
			dtype.SwapBuffer(buf, b.cfg.SampleType, b.cfg.SampleType.Size(), w*h)
		}
	case Write:
		if !b.cfg.NativeOrder && b.cfg.SampleType.Size() > 1 {
			dtype.SwapBuffer(buf, b.cfg.SampleType, b.cfg.SampleType.Size(), w*h)
		}
		got, err := b.cfg.Stream.WriteAt(buf, off)
		if !b.cfg.NativeOrder && b.cfg.SampleType.Size() > 1 {
			dtype.SwapBuffer(buf, b.cfg.SampleType, b.cfg.SampleType.Size(), w*h)
		}
		if err != nil || got < n {
			return fmt.Errorf("direct write: %w: %v (wrote %d of %d bytes)", ErrWrite, err, got, n)
		}
		b.cache.MarkDirty()
	}
	return nil
}

// directIOGeneral processes scanlines top-to-bottom, supporting
// nearest-neighbour sub-sampling and a strided user buffer.
func (b *Band) directIOGeneral(rw RWMode, x, y, w, h int, dst DestGeometry, progress ProgressFunc) error {
	pixelStride := int(b.cfg.PixelStride)
	sampleSize := b.cfg.SampleType.Size()
	rowBytes := w * pixelStride
	if rowBytes < w*sampleSize {
		rowBytes = w * sampleSize
	}
	scratch := make([]byte, rowBytes)
	resampling := w != dst.BW || h != dst.BH

	for iLine := 0; iLine < dst.BH; iLine++ {
		srcY := y + iLine*h/dst.BH
		rowOffset := int64(b.cfg.ImageOffset) + int64(srcY)*b.cfg.LineStride + int64(x)*int64(pixelStride)

		userRow := dst.Data[int64(iLine)*dst.LineSpace:]

		switch rw {
		case Read:
			got, err := b.cfg.Stream.ReadAt(scratch, rowOffset)
			if err != nil && got == 0 {
				if !b.cfg.SparseTolerant {
					return fmt.Errorf("direct read row %d: %w: %v", iLine, ErrRead, err)
				}
				zeroTail(scratch, 0)
			} else if got < len(scratch) {
				if !b.cfg.SparseTolerant {
					return fmt.Errorf("direct read row %d: %w: %v", iLine, ErrRead, err)
				}
				zeroTail(scratch, got)
			}
			if !b.cfg.NativeOrder && sampleSize > 1 {
				dtype.SwapBuffer(scratch, b.cfg.SampleType, pixelStride, w)
			}
			copyRow(scratch, pixelStride, userRow, int(dst.PixelSpace), dst.BufType, b.cfg.SampleType, w, dst.BW, resampling)

		case Write:
			if pixelStride > sampleSize {
				if got, err := b.cfg.Stream.ReadAt(scratch, rowOffset); err != nil && got == 0 {
					return fmt.Errorf("direct write row %d: pre-read: %w: %v", iLine, ErrWrite, err)
				}
				if !b.cfg.NativeOrder && sampleSize > 1 {
					dtype.SwapBuffer(scratch, b.cfg.SampleType, pixelStride, w)
				}
			}
			copyRowToScratch(userRow, int(dst.PixelSpace), dst.BufType, scratch, pixelStride, b.cfg.SampleType, w, dst.BW, resampling)

			if !b.cfg.NativeOrder && sampleSize > 1 {
				dtype.SwapBuffer(scratch, b.cfg.SampleType, pixelStride, w)
			}
			got, err := b.cfg.Stream.WriteAt(scratch, rowOffset)
			if !b.cfg.NativeOrder && sampleSize > 1 {
				dtype.SwapBuffer(scratch, b.cfg.SampleType, pixelStride, w)
			}
			if err != nil || got < len(scratch) {
				return fmt.Errorf("direct write row %d: %w: %v", iLine, ErrWrite, err)
			}
			b.cache.MarkDirty()
		}

		if progress != nil {
			if !progress(float64(iLine+1) / float64(dst.BH)) {
				return fmt.Errorf("direct I/O cancelled at row %d: %w", iLine, ErrCancelled)
			}
		}
	}
	return nil
}

// copyRow copies a just-read scanline into the caller's user-space row,
// applying nearest-neighbour horizontal sub-sampling when resampling.
func copyRow(srcRow []byte, srcStride int, dstRow []byte, dstStride int, dstType, srcType dtype.Type, w, bw int, resampling bool) {
	if !resampling {
		dtype.TypedCopy(srcRow, 0, srcStride, srcType, dstRow, 0, dstStride, dstType, w)
		return
	}
	for iPixel := 0; iPixel < bw; iPixel++ {
		srcX := iPixel * w / bw
		dtype.TypedCopy(srcRow, srcX*srcStride, srcStride, srcType, dstRow, iPixel*dstStride, dstStride, dstType, 1)
	}
}

// copyRowToScratch is copyRow's write-direction mirror: user row into
// on-disk scratch row.
func copyRowToScratch(srcRow []byte, srcStride int, srcType dtype.Type, dstRow []byte, dstStride int, dstType dtype.Type, w, bw int, resampling bool) {
	if !resampling {
		dtype.TypedCopy(srcRow, 0, srcStride, srcType, dstRow, 0, dstStride, dstType, w)
		return
	}
	for iPixel := 0; iPixel < w; iPixel++ {
		srcX := iPixel * bw / w
		dtype.TypedCopy(srcRow, srcX*srcStride, srcStride, srcType, dstRow, iPixel*dstStride, dstStride, dstType, 1)
	}
}

// directIOFallback delegates to the block-based path, one ReadBlock or
// WriteBlock call per covered scanline, applying the same nearest-
// neighbour resampling as the fast path's general case.
func (b *Band) directIOFallback(rw RWMode, x, y, w, h int, dst DestGeometry, progress ProgressFunc) error {
	sampleSize := b.cfg.SampleType.Size()
	line := make([]byte, int(b.cfg.Width)*sampleSize)
	resampling := w != dst.BW || h != dst.BH

	for iLine := 0; iLine < dst.BH; iLine++ {
		srcY := y + iLine*h/dst.BH
		userRow := dst.Data[int64(iLine)*dst.LineSpace:]

		switch rw {
		case Read:
			if err := b.ReadBlock(srcY, line); err != nil {
				return fmt.Errorf("direct I/O fallback read row %d: %w", iLine, err)
			}
			copyRow(line[x*sampleSize:], sampleSize, userRow, int(dst.PixelSpace), dst.BufType, b.cfg.SampleType, w, dst.BW, resampling)
		case Write:
			if err := b.ReadBlock(srcY, line); err != nil {
				return fmt.Errorf("direct I/O fallback pre-read row %d: %w", iLine, err)
			}
			copyRowToScratch(userRow, int(dst.PixelSpace), dst.BufType, line[x*sampleSize:], sampleSize, b.cfg.SampleType, w, dst.BW, resampling)
			if err := b.WriteBlock(srcY, line); err != nil {
				return fmt.Errorf("direct I/O fallback write row %d: %w", iLine, err)
			}
		}

		if progress != nil {
			if !progress(float64(iLine+1) / float64(dst.BH)) {
				return fmt.Errorf("direct I/O cancelled at row %d: %w", iLine, ErrCancelled)
			}
		}
	}
	return nil
}

// zeroTail zeroes buf[from:], mirroring ScanlineCache's sparse-tolerant
// short-read policy so the fast path and the cache-backed fallback agree
// on a sparse file's unread tail.
func zeroTail(buf []byte, from int) {
	for i := from; i < len(buf); i++ {
		buf[i] = 0
	}
}
