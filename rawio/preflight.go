package rawio

import (
	"fmt"
	"math"
	"math/big"
)

// PreflightParams is the declared geometry Preflight sanity-checks
// before any band is constructed.
type PreflightParams struct {
	Width, Height uint32
	NumBands      int
	SampleSize    int
	PixelStride   int32
	LineStride    int64
	HeaderSize    uint64
	BandOffset    int64
	Stream        Stream

	// Force runs the size check even if the cheap trigger conditions
	// below are not met.
	Force bool
}

// Preflight runs memory and file-size sanity checks against a declared
// geometry before any band backed by it is constructed. It never
// allocates memory; its only side effect on the stream is one Size()
// call, following go-hdf5's idiom of never surprising a caller with
// hidden I/O.
func Preflight(p PreflightParams, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Step 2: memory-cap check, independent of the size-check trigger.
	lineSize := new(big.Int).Mul(big.NewInt(int64(absI32(p.PixelStride))), big.NewInt(int64(p.Width)-1))
	lineSize.Add(lineSize, big.NewInt(int64(p.SampleSize)))
	if p.NumBands <= 0 {
		return fmt.Errorf("%w: band count must be positive", ErrGeometryInvalid)
	}
	cap := new(big.Int).SetInt64(math.MaxInt32)
	cap.Div(cap, big.NewInt(cfg.MemoryCapDivisor))
	cap.Div(cap, big.NewInt(int64(p.NumBands)))
	if lineSize.Cmp(cap) > 0 {
		return fmt.Errorf("%w: scanline size %s exceeds memory cap %s for %d bands", ErrOutOfMemory, lineSize, cap, p.NumBands)
	}

	// Step 1: size-check trigger.
	triggered := p.NumBands > cfg.BandCountThreshold ||
		int64(p.PixelStride)*int64(p.Width) > cfg.PreflightScanlineByteSize ||
		p.Force

	runSizeCheck := triggered
	if cfg.CheckFileSize != nil {
		runSizeCheck = *cfg.CheckFileSize
	}
	if !runSizeCheck {
		return nil
	}

	zero := big.NewInt(0)
	expected := new(big.Int).SetUint64(p.HeaderSize)
	expected.Add(expected, new(big.Int).Mul(big.NewInt(int64(p.NumBands-1)), big.NewInt(p.BandOffset)))
	lineSpan := new(big.Int).Mul(big.NewInt(p.LineStride), big.NewInt(int64(p.Height)-1))
	pixelSpan := new(big.Int).Mul(big.NewInt(int64(p.PixelStride)), big.NewInt(int64(p.Width)-1))
	expected.Add(expected, maxBig(zero, lineSpan))
	expected.Add(expected, maxBig(zero, pixelSpan))
	expected.Add(expected, big.NewInt(int64(p.SampleSize)))

	maxI64 := new(big.Int).SetInt64(math.MaxInt64)
	if expected.Cmp(maxI64) > 0 || expected.Sign() < 0 {
		return fmt.Errorf("%w: file too small (declared geometry exceeds 64-bit range)", ErrGeometryInvalid)
	}

	actual, err := p.Stream.Size()
	if err != nil {
		return fmt.Errorf("preflight: determining file size: %w", err)
	}

	half := new(big.Int).Div(expected, big.NewInt(2))
	if big.NewInt(actual).Cmp(half) < 0 {
		return fmt.Errorf("%w: file too small (actual %d bytes, expected at least %s, 50%% tolerance for sparse formats)",
			ErrGeometryInvalid, actual, half)
	}
	return nil
}

func absI32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
