package dtype

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSizes(t *testing.T) {
	tests := []struct {
		typ  Type
		size int
	}{
		{Byte, 1},
		{Int16, 2},
		{UInt16, 2},
		{Int32, 4},
		{UInt32, 4},
		{Float32, 4},
		{Float64, 8},
		{CInt16, 4},
		{CInt32, 8},
		{CFloat32, 8},
		{CFloat64, 16},
	}
	for _, tt := range tests {
		if got := tt.typ.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.typ, got, tt.size)
		}
	}
}

func TestComponentSize(t *testing.T) {
	if CFloat64.ComponentSize() != 8 {
		t.Errorf("CFloat64 component size = %d, want 8", CFloat64.ComponentSize())
	}
	if Float32.ComponentSize() != 4 {
		t.Errorf("Float32 component size = %d, want 4 (non-complex == Size)", Float32.ComponentSize())
	}
}

func TestIsComplex(t *testing.T) {
	for _, typ := range []Type{CInt16, CInt32, CFloat32, CFloat64} {
		if !typ.IsComplex() {
			t.Errorf("%s should be complex", typ)
		}
	}
	for _, typ := range []Type{Byte, Int16, UInt16, Int32, UInt32, Float32, Float64} {
		if typ.IsComplex() {
			t.Errorf("%s should not be complex", typ)
		}
	}
}

// TestSwapBufferInvolution checks that swap(swap(buf)) == buf.
func TestSwapBufferInvolution(t *testing.T) {
	for _, typ := range []Type{Int16, UInt16, Int32, UInt32, Float32, Float64, CInt16, CInt32, CFloat32, CFloat64} {
		size := typ.Size()
		n := 5
		stride := size + 3 // deliberately non-tight to exercise stride handling
		buf := make([]byte, (n-1)*stride+size)
		for i := range buf {
			buf[i] = byte(i*7 + 1)
		}
		orig := append([]byte(nil), buf...)

		SwapBuffer(buf, typ, stride, n)
		if string(buf) == string(orig) && size > 1 {
			t.Fatalf("%s: swap did not change buffer", typ)
		}
		SwapBuffer(buf, typ, stride, n)
		if string(buf) != string(orig) {
			t.Errorf("%s: swap(swap(buf)) != buf", typ)
		}
	}
}

func TestSwapBufferSingleByteNoop(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	orig := append([]byte(nil), buf...)
	SwapBuffer(buf, Byte, 1, 4)
	if string(buf) != string(orig) {
		t.Errorf("Byte swap should be a no-op")
	}
}

func TestTypedCopySameType(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, 8)
	TypedCopy(src, 0, 2, UInt16, dst, 0, 2, UInt16, 4)
	if string(dst) != string(src) {
		t.Errorf("same-type copy mismatch: %v != %v", dst, src)
	}
}

func TestTypedCopyNegativeStride(t *testing.T) {
	// src laid out 0..9, read backwards via negative stride from the last byte.
	// base is an index into the full slice, not a reslice, so the walk
	// never indexes before 0.
	src := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	dst := make([]byte, 10)
	TypedCopy(src, 9, -1, Byte, dst, 0, 1, Byte, 10)
	want := []byte{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestTypedCopySaturatingNarrow(t *testing.T) {
	src := make([]byte, 4*3)
	vals := []int32{-1, 300, 100}
	for i, v := range vals {
		binary.NativeEndian.PutUint32(src[i*4:], uint32(v))
	}
	dst := make([]byte, 3)
	TypedCopy(src, 0, 4, Int32, dst, 0, 1, Byte, 3)
	want := []byte{0, 255, 100}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestTypedCopyFloatTruncatesTowardZero(t *testing.T) {
	src := make([]byte, 8*2)
	binary.NativeEndian.PutUint64(src[0:], math.Float64bits(3.9))
	binary.NativeEndian.PutUint64(src[8:], math.Float64bits(-3.9))
	dst := make([]byte, 4*2)
	TypedCopy(src, 0, 8, Float64, dst, 0, 4, Int32, 2)
	v0 := int32(binary.NativeEndian.Uint32(dst[0:]))
	v1 := int32(binary.NativeEndian.Uint32(dst[4:]))
	if v0 != 3 {
		t.Errorf("3.9 -> %d, want 3", v0)
	}
	if v1 != -3 {
		t.Errorf("-3.9 -> %d, want -3", v1)
	}
}

func TestTypedCopyComplexRoundTrip(t *testing.T) {
	src := make([]byte, 8) // one CFloat32: real, imag
	binary.NativeEndian.PutUint32(src[0:], math.Float32bits(1.5))
	binary.NativeEndian.PutUint32(src[4:], math.Float32bits(-2.5))

	dst := make([]byte, 16) // one CFloat64
	TypedCopy(src, 0, 8, CFloat32, dst, 0, 16, CFloat64, 1)

	re := math.Float64frombits(binary.NativeEndian.Uint64(dst[0:]))
	im := math.Float64frombits(binary.NativeEndian.Uint64(dst[8:]))
	if re != 1.5 || im != -2.5 {
		t.Errorf("got (%v, %v), want (1.5, -2.5)", re, im)
	}
}

func TestTypedCopyNegativeStrideBothSides(t *testing.T) {
	// Both src and dst walk backward from their respective last element.
	src := []byte{0, 1, 2, 3, 4}
	dst := make([]byte, 5)
	TypedCopy(src, 4, -1, Byte, dst, 4, -1, Byte, 5)
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], src[i])
		}
	}
}
