package scanline

import (
	"fmt"
	"testing"

	"github.com/robert-malhotra/rawraster/internal/dtype"
)

type fakeStream struct {
	data      []byte
	flushes   int
	forceFail bool
}

func (f *fakeStream) ReadAt(p []byte, off int64) (int, error) {
	if f.forceFail || off < 0 || off >= int64(len(f.data)) {
		return 0, fmt.Errorf("read at %d: out of range", off)
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, fmt.Errorf("short read")
	}
	return n, nil
}

func (f *fakeStream) WriteAt(p []byte, off int64) (int, error) {
	end := off + int64(len(p))
	if end > int64(len(f.data)) {
		grown := make([]byte, end)
		copy(grown, f.data)
		f.data = grown
	}
	return copy(f.data[off:end], p), nil
}

func (f *fakeStream) Flush() error {
	f.flushes++
	return nil
}

func TestAccessLineLoadsAndCaches(t *testing.T) {
	st := &fakeStream{data: make([]byte, 40)}
	for i := range st.data {
		st.data[i] = byte(i)
	}
	c := New(Config{
		Stream: st, PixelStride: 1, LineStride: 10,
		Width: 10, SampleType: dtype.Byte, NativeOrder: true,
	})

	if err := c.AccessLine(2); err != nil {
		t.Fatalf("AccessLine: %v", err)
	}
	want := st.data[20:30]
	got := c.StartPointer()[:10]
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, got[i], want[i])
		}
	}
	if c.LoadedY() != 2 {
		t.Errorf("LoadedY = %d, want 2", c.LoadedY())
	}

	if err := c.AccessLine(2); err != nil {
		t.Fatalf("re-access same line: %v", err)
	}
}

func TestWriteLineMarksDirtyAndFlushes(t *testing.T) {
	st := &fakeStream{data: make([]byte, 10)}
	c := New(Config{
		Stream: st, PixelStride: 1, LineStride: 10,
		Width: 10, SampleType: dtype.Byte, NativeOrder: true,
	})
	copy(c.StartPointer(), []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	if err := c.WriteLine(0); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	if !c.Dirty() {
		t.Fatal("expected Dirty() after WriteLine")
	}
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if c.Dirty() {
		t.Fatal("Flush should clear dirty")
	}
	if st.flushes != 1 {
		t.Errorf("stream flushes = %d, want 1", st.flushes)
	}
	if err := c.Flush(); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
	if st.flushes != 1 {
		t.Errorf("second Flush should be a no-op, stream flushes = %d", st.flushes)
	}
}

func TestSparseTolerantZeroFillsOnShortRead(t *testing.T) {
	st := &fakeStream{data: make([]byte, 5)}
	c := New(Config{
		Stream: st, PixelStride: 1, LineStride: 10,
		Width: 10, SampleType: dtype.Byte, NativeOrder: true,
		SparseTolerant: true,
	})
	if err := c.AccessLine(0); err != nil {
		t.Fatalf("AccessLine with sparse tolerance: %v", err)
	}
	for i, b := range c.StartPointer()[:10] {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
}

func TestNegativePixelStrideStartOffset(t *testing.T) {
	c := New(Config{
		PixelStride: -1, LineStride: 10, ImageOffset: 9,
		Width: 10, SampleType: dtype.Byte, NativeOrder: true,
		Stream: &fakeStream{data: make([]byte, 10)},
	})
	if c.LineSize() != 10 {
		t.Errorf("LineSize = %d, want 10", c.LineSize())
	}
	if c.StartOffset() != 9 {
		t.Errorf("StartOffset = %d, want 9", c.StartOffset())
	}
}
