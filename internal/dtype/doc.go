// Package dtype enumerates the primitive raster sample types and provides
// the byte-order and strided-conversion primitives the rest of the engine
// is built on.
//
// # Sample types
//
// [Type] covers the eleven scalar and complex-pair kinds a band can be
// made of: Byte, Int16, UInt16, Int32, UInt32, Float32, Float64, and
// their complex counterparts CInt16, CInt32, CFloat32, CFloat64. A
// complex sample stores two real components contiguously, real first;
// [Type.ComponentSize] gives the width of each half.
//
// # Byte order
//
// [SwapBuffer] reverses the byte order of a strided run of same-sized
// elements in place; for complex types it swaps the real and imaginary
// halves independently as two interleaved scalar streams. It is a no-op
// for single-byte types.
//
// # Strided numeric conversion
//
// [TypedCopy] copies n samples from one strided buffer to another,
// converting between any two [Type] values. When the types match this is
// a strided memcopy; otherwise each sample is converted through float64,
// with saturating narrowing for integer destinations and truncation
// toward zero for float-to-integer conversion. Negative strides index
// backward from the given base and are fully supported.
package dtype
