package rawio

import (
	"fmt"

	"github.com/robert-malhotra/rawraster/internal/dtype"
)

// ReadBlock reads scanline y into out, a tightly-packed native-byte-order
// buffer of width*SampleType().Size() bytes.
func (b *Band) ReadBlock(y int, out []byte) error {
	if !b.usable {
		return fmt.Errorf("read block %d: %w", y, ErrBandUnusable)
	}
	if err := b.cache.AccessLine(int64(y)); err != nil {
		return fmt.Errorf("%w: %v", ErrRead, err)
	}
	size := b.cfg.SampleType.Size()
	width := int(b.cfg.Width)
	if len(out) < width*size {
		return fmt.Errorf("read block %d: output buffer too small (%d < %d)", y, len(out), width*size)
	}
	dtype.TypedCopy(b.cache.Buf(), b.cache.StartOffset(), int(b.cfg.PixelStride), b.cfg.SampleType,
		out, 0, size, b.cfg.SampleType, width)
	return nil
}

// WriteBlock writes in, a tightly-packed native-byte-order buffer of
// width*SampleType().Size() bytes, to scanline y.
func (b *Band) WriteBlock(y int, in []byte) error {
	if !b.usable {
		return fmt.Errorf("write block %d: %w", y, ErrBandUnusable)
	}
	size := b.cfg.SampleType.Size()
	width := int(b.cfg.Width)
	if len(in) < width*size {
		return fmt.Errorf("write block %d: input buffer too small (%d < %d)", y, len(in), width*size)
	}

	// Pre-read to preserve neighbouring bands' samples when the scanline
	// is not tightly packed (pixel-interleaved storage).
	if absInt32(b.cfg.PixelStride) > int32(size) {
		if err := b.cache.AccessLine(int64(y)); err != nil {
			return fmt.Errorf("write block %d: pre-read: %w: %v", y, ErrWrite, err)
		}
	}

	dtype.TypedCopy(in, 0, size, b.cfg.SampleType,
		b.cache.Buf(), b.cache.StartOffset(), int(b.cfg.PixelStride), b.cfg.SampleType, width)

	if err := b.cache.WriteLine(int64(y)); err != nil {
		return fmt.Errorf("write block %d: %w: %v", y, ErrWrite, err)
	}
	return nil
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
