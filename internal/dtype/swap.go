package dtype

// SwapBuffer reverses the byte order of n elements of type t, laid out in
// buf starting at buf[0] with a byte stride of stride between
// consecutive elements. It is a no-op for single-byte types: callers are
// expected to skip the call entirely when t.Size() == 1, but SwapBuffer
// also tolerates being called in that case.
//
// For complex types, the real and imaginary halves are swapped
// independently as two interleaved scalar streams of width
// t.ComponentSize().
func SwapBuffer(buf []byte, t Type, stride, n int) {
	if n <= 0 {
		return
	}
	w := t.ComponentSize()
	if w <= 1 {
		return
	}
	if t.IsComplex() {
		swapScalar(buf, w, stride, n)
		swapScalar(buf[w:], w, stride, n)
		return
	}
	swapScalar(buf, w, stride, n)
}

// swapScalar reverses the w bytes of each of n elements spaced stride
// bytes apart, starting at buf[0].
func swapScalar(buf []byte, w, stride, n int) {
	switch w {
	case 2:
		for i := 0; i < n; i++ {
			p := i * stride
			buf[p], buf[p+1] = buf[p+1], buf[p]
		}
	case 4:
		for i := 0; i < n; i++ {
			p := i * stride
			buf[p], buf[p+1], buf[p+2], buf[p+3] =
				buf[p+3], buf[p+2], buf[p+1], buf[p]
		}
	case 8:
		for i := 0; i < n; i++ {
			p := i * stride
			buf[p], buf[p+1], buf[p+2], buf[p+3], buf[p+4], buf[p+5], buf[p+6], buf[p+7] =
				buf[p+7], buf[p+6], buf[p+5], buf[p+4], buf[p+3], buf[p+2], buf[p+1], buf[p]
		}
	default:
		for i := 0; i < n; i++ {
			p := i * stride
			for lo, hi := 0, w-1; lo < hi; lo, hi = lo+1, hi-1 {
				buf[p+lo], buf[p+hi] = buf[p+hi], buf[p+lo]
			}
		}
	}
}
