package rawio

import "errors"

// Sentinel errors, one per kind of failure this package reports. Call
// sites wrap these with fmt.Errorf("...: %w", ErrX) so errors.Is recovers
// the kind while the underlying stream error is preserved — the same
// discipline go-hdf5's hdf5/errors.go and hdf5/file.go use.
var (
	// ErrGeometryInvalid marks a band whose declared offsets, strides, or
	// dimensions fail geometry validation or the preflight size check.
	ErrGeometryInvalid = errors.New("rawio: invalid band geometry")
	// ErrSeek, ErrRead, ErrWrite, ErrClose are underlying stream failures.
	ErrSeek  = errors.New("rawio: seek failed")
	ErrRead  = errors.New("rawio: read failed")
	ErrWrite = errors.New("rawio: write failed")
	ErrClose = errors.New("rawio: close failed")
	// ErrOutOfMemory marks allocation failure for a scanline or scratch buffer.
	ErrOutOfMemory = errors.New("rawio: out of memory")
	// ErrCancelled marks a progress callback that requested abort.
	ErrCancelled = errors.New("rawio: cancelled")
	// ErrUnsupported marks an operation this engine cannot perform, such
	// as a resample mode other than nearest-neighbour on the fast path.
	ErrUnsupported = errors.New("rawio: unsupported operation")
	// ErrBandUnusable is returned by every block or rectangular I/O call
	// on a band whose construction failed geometry validation; the band
	// is permanently unusable for I/O from that point on.
	ErrBandUnusable = errors.New("rawio: band is unusable")
)
