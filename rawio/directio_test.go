package rawio_test

import (
	"testing"

	"github.com/robert-malhotra/rawraster/internal/dtype"
	"github.com/robert-malhotra/rawraster/rawio"
)

func TestDirectIOSubSampling(t *testing.T) {
	const w, h = 1000, 1000
	disk := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			disk[y*w+x] = byte((x + y) % 256)
		}
	}
	st := newMemStream(disk)

	one := true
	cfg := rawio.DefaultConfig()
	cfg.OneBigRead = &one
	band, err := rawio.NewBand(rawio.BandConfig{
		Stream: st, PixelStride: 1, LineStride: w,
		SampleType: dtype.Byte, NativeOrder: true,
		Width: w, Height: h,
	}, rawio.WithConfig(cfg))
	if err != nil {
		t.Fatalf("NewBand: %v", err)
	}

	const outW, outH = 500, 500
	out := make([]byte, outW*outH)
	if err := band.DirectIO(rawio.Read, 0, 0, w, h, rawio.DestGeometry{
		Data: out, BW: outW, BH: outH, BufType: dtype.Byte,
		PixelSpace: 1, LineSpace: outW,
	}, nil); err != nil {
		t.Fatalf("DirectIO: %v", err)
	}

	for j := 0; j < outH; j++ {
		for i := 0; i < outW; i++ {
			srcX := i * w / outW
			srcY := j * h / outH
			want := disk[srcY*w+srcX]
			got := out[j*outW+i]
			if got != want {
				t.Fatalf("out[%d,%d] = %d, want %d (src %d,%d)", i, j, got, want, srcX, srcY)
			}
		}
	}
}

func TestDirectIOFastAndFallbackAgree(t *testing.T) {
	const w, h = 1200, 4
	disk := make([]byte, w*h)
	for i := range disk {
		disk[i] = byte(i % 251)
	}

	runRead := func(force *bool) []byte {
		st := newMemStream(append([]byte(nil), disk...))
		cfg := rawio.DefaultConfig()
		cfg.OneBigRead = force
		band, err := rawio.NewBand(rawio.BandConfig{
			Stream: st, PixelStride: 1, LineStride: w,
			SampleType: dtype.Byte, NativeOrder: true,
			Width: w, Height: h,
		}, rawio.WithConfig(cfg))
		if err != nil {
			t.Fatalf("NewBand: %v", err)
		}
		out := make([]byte, w*h)
		if err := band.DirectIO(rawio.Read, 0, 0, w, h, rawio.DestGeometry{
			Data: out, BW: w, BH: h, BufType: dtype.Byte,
			PixelSpace: 1, LineSpace: w,
		}, nil); err != nil {
			t.Fatalf("DirectIO: %v", err)
		}
		return out
	}

	on, off := true, false
	fast := runRead(&on)
	slow := runRead(&off)
	if len(fast) != len(slow) {
		t.Fatalf("length mismatch: %d != %d", len(fast), len(slow))
	}
	for i := range fast {
		if fast[i] != slow[i] {
			t.Fatalf("byte %d: fast=%d slow=%d", i, fast[i], slow[i])
		}
	}
}

// TestDirectIOSparseFastAndFallbackAgree checks that a sparse-tolerant
// band reading past the physical end of its stream gets the same
// zero-filled result whether DirectIO takes the fast path (one big read
// that comes back short) or falls back to the scanline cache (one short
// or empty read per scanline).
func TestDirectIOSparseFastAndFallbackAgree(t *testing.T) {
	const w, h = 100, 10
	disk := make([]byte, w*h/2) // only the first half of the declared image is present
	for i := range disk {
		disk[i] = byte(i % 251)
	}

	runRead := func(force *bool) []byte {
		st := newMemStream(append([]byte(nil), disk...))
		cfg := rawio.DefaultConfig()
		cfg.OneBigRead = force
		band, err := rawio.NewBand(rawio.BandConfig{
			Stream: st, PixelStride: 1, LineStride: w,
			SampleType: dtype.Byte, NativeOrder: true,
			Width: w, Height: h, SparseTolerant: true,
		}, rawio.WithConfig(cfg))
		if err != nil {
			t.Fatalf("NewBand: %v", err)
		}
		out := make([]byte, w*h)
		if err := band.DirectIO(rawio.Read, 0, 0, w, h, rawio.DestGeometry{
			Data: out, BW: w, BH: h, BufType: dtype.Byte,
			PixelSpace: 1, LineSpace: w,
		}, nil); err != nil {
			t.Fatalf("DirectIO: %v", err)
		}
		return out
	}

	on, off := true, false
	fast := runRead(&on)
	slow := runRead(&off)
	if len(fast) != len(slow) {
		t.Fatalf("length mismatch: %d != %d", len(fast), len(slow))
	}
	for i := range fast {
		if fast[i] != slow[i] {
			t.Fatalf("byte %d: fast=%d slow=%d (both should zero-fill past EOF)", i, fast[i], slow[i])
		}
		want := byte(0)
		if i < len(disk) {
			want = disk[i]
		}
		if fast[i] != want {
			t.Fatalf("byte %d = %d, want %d", i, fast[i], want)
		}
	}
}
