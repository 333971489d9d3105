package rawio

import "fmt"

// Dataset is an ordered collection of bands sharing multi-band
// rectangular I/O and layout introspection. Bands need not share a
// stream; RasterIO issues one DirectIO call per band without checking
// whether the bands share a stream or how they are interleaved.
type Dataset struct {
	bands  []*Band
	config Config
}

// NewDataset wraps an ordered list of bands. Band order determines the
// order rectangular multi-band I/O visits them and the order
// MultiBandRouter writes into an interleaved user buffer.
func NewDataset(bands []*Band, opts ...DatasetOption) *Dataset {
	options := defaultDatasetOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Dataset{bands: bands, config: *options.config}
}

// Bands returns the dataset's bands in caller-supplied order.
func (d *Dataset) Bands() []*Band { return d.bands }

// RawBinaryLayout classifies the on-disk interleaving of the dataset's
// bands (see ProbeLayout).
func (d *Dataset) RawBinaryLayout() LayoutInfo {
	return ProbeLayout(d.bands)
}

// MultiBandDestGeometry describes an interleaved user-space buffer for
// reading or writing several bands in one call: dst.PixelSpace and
// dst.LineSpace describe one band's plane, and BandSpace is the byte
// stride between corresponding pixels of consecutive bands.
type MultiBandDestGeometry struct {
	DestGeometry
	BandSpace int64
}

// RasterIO performs a rectangular, multi-band read or write across all
// of the dataset's bands. When the bands are pixel-interleaved
// (RawBinaryLayout reports BIP), the request needs no resampling, and
// every band individually accepts the DirectIO fast path, each band's
// DirectIO call writes directly into the interleaved buffer with no
// intervening copy. When any of those conditions fails, the same
// per-band loop still runs, but each band now takes its own
// fast-path-or-cache decision independently, which still produces a
// correct result.
//
// Band order follows Bands(). An error from any band aborts the
// sequence and is returned; writes already issued for earlier bands are
// not rolled back.
func (d *Dataset) RasterIO(rw RWMode, x, y, w, h int, dst MultiBandDestGeometry, progress ProgressFunc) error {
	n := len(d.bands)
	if n == 0 {
		return nil
	}

	for i, band := range d.bands {
		sub := bandSubProgress(progress, i, n)
		bandDst := dst.DestGeometry
		bandDst.Data = dst.Data[int64(i)*dst.BandSpace:]

		if err := band.DirectIO(rw, x, y, w, h, bandDst, sub); err != nil {
			return fmt.Errorf("raster I/O band %d: %w", i, err)
		}
	}
	return nil
}

// bandSubProgress wraps progress with band i's scaled sub-range
// [i/n, (i+1)/n].
func bandSubProgress(progress ProgressFunc, i, n int) ProgressFunc {
	if progress == nil {
		return nil
	}
	return func(fraction float64) bool {
		scaled := (float64(i) + fraction) / float64(n)
		return progress(scaled)
	}
}

// Flush commits every band's pending writes, returning the first error
// encountered. It does not stop at the first error: every band gets a
// chance to flush.
func (d *Dataset) Flush() error {
	var firstErr error
	for i, band := range d.bands {
		if err := band.Flush(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("flushing band %d: %w", i, err)
		}
	}
	return firstErr
}

// Close closes every band, returning the first error encountered.
func (d *Dataset) Close() error {
	var firstErr error
	for i, band := range d.bands {
		if err := band.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing band %d: %w", i, err)
		}
	}
	return firstErr
}
