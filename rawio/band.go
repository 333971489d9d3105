// Package rawio implements the core of a generic raw-binary raster access
// engine: address arithmetic and I/O for a rectangular, multi-band image
// stored as raw pixel samples in one or more byte streams.
//
// The package exposes two exported types: [Band], one channel's
// geometry plus block- and rectangular-oriented I/O, and [Dataset], a
// collection of bands sharing multi-band rectangular I/O and layout
// introspection. Format-specific header parsing, block caching,
// overview selection, and virtual-filesystem handles are the job of an
// external caller — this package only does the address arithmetic and
// the bytes.
package rawio

import (
	"fmt"
	"math"
	"math/big"

	"github.com/robert-malhotra/rawraster/internal/dtype"
	"github.com/robert-malhotra/rawraster/internal/scanline"
)

// BandConfig is the immutable geometry a [Band] is constructed from.
type BandConfig struct {
	Stream      Stream
	OwnsStream  bool
	ImageOffset uint64
	PixelStride int32
	LineStride  int64
	SampleType  dtype.Type
	NativeOrder bool
	Width       uint32
	Height      uint32

	// SparseTolerant opts the band into a short-read/seek-failure
	// zero-fill policy instead of surfacing an error, used for formats
	// (e.g. ENVI-style sparse rasters) known to omit trailing data.
	SparseTolerant bool
}

// Band is one channel of a raster: a 2-D array of samples of one scalar
// type, addressed by the geometry in BandConfig.
type Band struct {
	cfg    BandConfig
	config Config
	cache  *scanline.Cache

	usable       bool
	constructErr error

	// EXPANSION C.1: pass-through metadata, opaque to the core.
	colorTable    *ColorTable
	colorInterp   ColorInterp
	categoryNames []string
	hasNoData     bool
	noDataValue   float64
	scale         float64
	offset        float64
	unitType      string

	// EXPANSION C.3: resident-scanline-fraction hook for the
	// ONE_BIG_READ heuristic; nil means "assume nothing is resident."
	residentFraction func(yStart, yEnd int) float64
}

// NewBand constructs a band. If cfg fails geometry validation, NewBand
// still returns a non-nil *Band (so pass-through metadata accessors and
// Close remain usable) along with a non-nil error wrapping
// [ErrGeometryInvalid]; every subsequent block/raster I/O call on that
// band returns [ErrBandUnusable].
func NewBand(cfg BandConfig, opts ...BandOption) (*Band, error) {
	options := defaultBandOptions()
	for _, opt := range opts {
		opt(options)
	}

	cfg.SparseTolerant = cfg.SparseTolerant || options.sparseTolerant
	b := &Band{
		cfg:         cfg,
		config:      *options.config,
		scale:       1.0,
		colorInterp: ColorUndefined,
	}

	if err := validateGeometry(cfg); err != nil {
		b.usable = false
		b.constructErr = fmt.Errorf("constructing band: %w", err)
		return b, b.constructErr
	}

	b.cache = scanline.New(scanline.Config{
		Stream:         cfg.Stream,
		ImageOffset:    cfg.ImageOffset,
		PixelStride:    cfg.PixelStride,
		LineStride:     cfg.LineStride,
		Width:          cfg.Width,
		SampleType:     cfg.SampleType,
		NativeOrder:    cfg.NativeOrder,
		SparseTolerant: cfg.SparseTolerant,
	})
	b.usable = true
	return b, nil
}

// validateGeometry checks a band's geometry invariants using arbitrary-
// precision arithmetic so a malformed header (an expected adversarial
// input) is rejected with a checked error instead of silently wrapping or
// panicking on overflow.
func validateGeometry(cfg BandConfig) error {
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("%w: width and height must be positive (got %dx%d)", ErrGeometryInvalid, cfg.Width, cfg.Height)
	}
	const maxDim = 1 << 31 // platform-independent maximum dimension
	if cfg.Width >= maxDim || cfg.Height >= maxDim {
		return fmt.Errorf("%w: dimensions %dx%d exceed maximum %d", ErrGeometryInvalid, cfg.Width, cfg.Height, maxDim)
	}
	if !cfg.SampleType.Valid() {
		return fmt.Errorf("%w: unknown sample type %v", ErrGeometryInvalid, cfg.SampleType)
	}
	if cfg.Stream == nil {
		return fmt.Errorf("%w: nil stream", ErrGeometryInvalid)
	}

	sampleSize := big.NewInt(int64(cfg.SampleType.Size()))
	imageOffset := new(big.Int).SetUint64(cfg.ImageOffset)
	lineStride := big.NewInt(cfg.LineStride)
	pixelStride := big.NewInt(int64(cfg.PixelStride))
	heightM1 := big.NewInt(int64(cfg.Height) - 1)
	widthM1 := big.NewInt(int64(cfg.Width) - 1)

	lineSpan := new(big.Int).Mul(lineStride, heightM1)
	pixelSpan := new(big.Int).Mul(pixelStride, widthM1)

	zero := big.NewInt(0)
	smallest := new(big.Int).Set(imageOffset)
	smallest.Add(smallest, minBig(zero, lineSpan))
	smallest.Add(smallest, minBig(zero, pixelSpan))

	largest := new(big.Int).Set(imageOffset)
	largest.Add(largest, maxBig(zero, lineSpan))
	largest.Add(largest, maxBig(zero, pixelSpan))
	largest.Add(largest, sampleSize)
	largest.Sub(largest, big.NewInt(1))

	if smallest.Sign() < 0 {
		return fmt.Errorf("%w: smallest addressed offset %s is negative", ErrGeometryInvalid, smallest)
	}
	maxI63 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 63), big.NewInt(1))
	if largest.Cmp(maxI63) > 0 {
		return fmt.Errorf("%w: largest addressed offset %s exceeds 2^63-1", ErrGeometryInvalid, largest)
	}

	lineSizeBig := new(big.Int).Mul(new(big.Int).Abs(pixelStride), widthM1)
	lineSizeBig.Add(lineSizeBig, sampleSize)
	if lineSizeBig.Cmp(big.NewInt(math.MaxInt32)) > 0 {
		return fmt.Errorf("%w: |pixel_stride|*(width-1)+size(t) = %s overflows int32", ErrGeometryInvalid, lineSizeBig)
	}

	return nil
}

func minBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func maxBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Usable reports whether the band passed construction-time validation.
func (b *Band) Usable() bool { return b.usable }

// ConstructError returns the error captured at construction time, or nil
// if the band is usable.
func (b *Band) ConstructError() error { return b.constructErr }

// Width returns the band's pixel width.
func (b *Band) Width() uint32 { return b.cfg.Width }

// Height returns the band's pixel height.
func (b *Band) Height() uint32 { return b.cfg.Height }

// SampleType returns the band's declared sample type.
func (b *Band) SampleType() dtype.Type { return b.cfg.SampleType }

// PixelStride returns the band's declared pixel stride.
func (b *Band) PixelStride() int32 { return b.cfg.PixelStride }

// LineStride returns the band's declared line stride.
func (b *Band) LineStride() int64 { return b.cfg.LineStride }

// ImageOffset returns the band's declared image offset.
func (b *Band) ImageOffset() uint64 { return b.cfg.ImageOffset }

// NativeOrder reports whether samples are stored in host byte order.
func (b *Band) NativeOrder() bool { return b.cfg.NativeOrder }

// Close releases the band's resources, closing the underlying stream if
// the band owns it, and flushing any pending writes first.
func (b *Band) Close() error {
	var flushErr error
	if b.usable {
		flushErr = b.Flush()
	}
	if b.cfg.OwnsStream {
		if err := b.cfg.Stream.Close(); err != nil {
			if flushErr != nil {
				return fmt.Errorf("closing band (after flush error %v): %w", flushErr, ErrClose)
			}
			return fmt.Errorf("closing band: %w: %v", ErrClose, err)
		}
	}
	return flushErr
}

// Flush commits any pending dirty scanline to the stream. Idempotent.
func (b *Band) Flush() error {
	if !b.usable {
		return nil
	}
	return b.cache.Flush()
}

// SetResidentFractionHook installs the callback DirectIO's ONE_BIG_READ
// heuristic uses to estimate what fraction of the requested scanlines
// are already resident in an outer block cache. Passing nil reverts to
// "assume nothing resident."
func (b *Band) SetResidentFractionHook(fn func(yStart, yEnd int) float64) {
	b.residentFraction = fn
}

func (b *Band) residentFractionOf(yStart, yEnd int) float64 {
	if b.residentFraction == nil {
		return 0
	}
	return b.residentFraction(yStart, yEnd)
}
