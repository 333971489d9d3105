// Package scanline implements the per-band scanline cache: one
// scanline-sized buffer per band, loaded on demand, with the byte-swap
// pipeline folded into the load/store path.
package scanline

import (
	"fmt"

	"github.com/robert-malhotra/rawraster/internal/dtype"
)

// ByteStream is the minimal read/write/flush surface the cache needs. Any
// rawio.Stream satisfies it structurally.
type ByteStream interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	Flush() error
}

// Config describes the immutable band geometry the cache operates over.
type Config struct {
	Stream         ByteStream
	ImageOffset    uint64
	PixelStride    int32
	LineStride     int64
	Width          uint32
	SampleType     dtype.Type
	NativeOrder    bool
	SparseTolerant bool // short reads/seek failures zero-fill instead of erroring
}

// Cache owns one scanline buffer for a band and implements its
// load-on-demand access.
type Cache struct {
	cfg Config

	buf         []byte
	startOffset int // byte offset into buf of logical pixel (0, y)
	loadedY     int64
	dirty       bool
}

// New allocates the scanline buffer for cfg. lineSize is assumed to
// already be validated by the band constructor's geometry invariant
// checks — New never itself re-derives an overflow check.
func New(cfg Config) *Cache {
	pixelStride := int(cfg.PixelStride)
	width := int(cfg.Width)
	sampleSize := cfg.SampleType.Size()

	var lineSize, startOffset int
	if pixelStride >= 0 {
		lineSize = pixelStride*(width-1) + sampleSize
		startOffset = 0
	} else {
		lineSize = -pixelStride*(width-1) + sampleSize
		startOffset = -pixelStride * (width - 1)
	}

	return &Cache{
		cfg:         cfg,
		buf:         make([]byte, lineSize),
		startOffset: startOffset,
		loadedY:     -1,
	}
}

// LineSize returns the allocated scanline buffer length in bytes.
func (c *Cache) LineSize() int { return len(c.buf) }

// StartPointer returns the buffer slice beginning at logical pixel
// (0, loadedY), reconstructed as a base slice plus offset rather than a
// second aliasing pointer. Only safe for indexing forward (increasing
// pixel index) from pixel 0; a negative pixel_stride addresses earlier
// pixels at lower buffer offsets than startOffset, which this subslice
// cannot reach. Callers that must index both directions (TypedCopy with
// a possibly-negative stride) should use Buf and StartOffset instead.
func (c *Cache) StartPointer() []byte { return c.buf[c.startOffset:] }

// Buf returns the cache's full underlying scanline buffer, addressed
// from byte 0 regardless of pixel_stride's sign.
func (c *Cache) Buf() []byte { return c.buf }

// StartOffset returns the byte offset into Buf of logical pixel
// (0, loadedY): base + i*pixel_stride for pixel i stays within
// [0, len(Buf())) for every legal i, including a negative stride.
func (c *Cache) StartOffset() int { return c.startOffset }

// LoadedY returns the currently cached scanline, or -1 if none is
// loaded.
func (c *Cache) LoadedY() int64 { return c.loadedY }

// Dirty reports whether a stream-level flush is pending.
func (c *Cache) Dirty() bool { return c.dirty }

// MarkDirty flags that a stream-level flush is owed.
func (c *Cache) MarkDirty() { c.dirty = true }

// readStart computes the file offset of the leftmost byte of scanline y.
// WriteLine uses the same formula.
func (c *Cache) readStart(y int64) int64 {
	off := int64(c.cfg.ImageOffset) + c.cfg.LineStride*y
	if c.cfg.PixelStride < 0 {
		off += int64(c.cfg.PixelStride) * int64(c.cfg.Width-1)
	}
	return off
}

// AccessLine ensures the cache buffer holds the raw bytes of scanline y
// in native byte order.
func (c *Cache) AccessLine(y int64) error {
	if c.loadedY == y {
		return nil
	}
	if c.dirty {
		if err := c.cfg.Stream.Flush(); err != nil {
			return fmt.Errorf("flushing stream before reloading scanline: %w", err)
		}
		c.dirty = false
	}

	start := c.readStart(y)
	if start < 0 {
		return fmt.Errorf("scanline %d: computed negative file offset %d", y, start)
	}

	n, err := c.cfg.Stream.ReadAt(c.buf, start)
	if err != nil && n == 0 {
		if c.cfg.SparseTolerant {
			zeroFill(c.buf, 0)
			c.loadedY = y
			return nil
		}
		return fmt.Errorf("reading scanline %d: %w", y, err)
	}
	if n < len(c.buf) {
		if !c.cfg.SparseTolerant {
			return fmt.Errorf("short read of scanline %d: got %d of %d bytes", y, n, len(c.buf))
		}
		zeroFill(c.buf, n)
	}

	c.swapToNative()
	c.loadedY = y
	return nil
}

// WriteLine writes the current buffer contents back to scanline y,
// byte-swapping to on-disk order around the write and back to native
// order afterward so the cache stays coherent for subsequent reads.
func (c *Cache) WriteLine(y int64) error {
	c.swapFromNative()
	start := c.readStart(y)
	if start < 0 {
		c.swapToNative()
		return fmt.Errorf("scanline %d: computed negative file offset %d", y, start)
	}
	n, err := c.cfg.Stream.WriteAt(c.buf, start)
	c.swapToNative()
	if err != nil {
		return fmt.Errorf("writing scanline %d: %w", y, err)
	}
	if n < len(c.buf) {
		return fmt.Errorf("short write of scanline %d: wrote %d of %d bytes", y, n, len(c.buf))
	}
	c.loadedY = y
	c.dirty = true
	return nil
}

// Flush commits any pending stream-level flush: dirty means "stream-level
// flush pending", always honoured here. Idempotent.
func (c *Cache) Flush() error {
	if !c.dirty {
		return nil
	}
	if err := c.cfg.Stream.Flush(); err != nil {
		return fmt.Errorf("flushing scanline cache: %w", err)
	}
	c.dirty = false
	return nil
}

func (c *Cache) swapToNative() {
	if c.cfg.NativeOrder || c.cfg.SampleType.Size() == 1 {
		return
	}
	dtype.SwapBuffer(c.buf, c.cfg.SampleType, absInt(int(c.cfg.PixelStride)), int(c.cfg.Width))
}

func (c *Cache) swapFromNative() {
	c.swapToNative() // the swap is its own inverse
}

func zeroFill(buf []byte, from int) {
	for i := from; i < len(buf); i++ {
		buf[i] = 0
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
