// Package dtype enumerates the primitive sample types a raster band can be
// made of and provides the low-level byte-order and strided-copy routines
// the rest of the engine builds on.
package dtype

import "fmt"

// Type identifies the scalar (or complex-pair) representation of one
// sample. Complex types lay out two real components contiguously, real
// component first.
type Type int

const (
	Byte Type = iota
	Int16
	UInt16
	Int32
	UInt32
	Float32
	Float64
	CInt16
	CInt32
	CFloat32
	CFloat64
)

// String returns a short name for the type, used in error messages.
func (t Type) String() string {
	switch t {
	case Byte:
		return "Byte"
	case Int16:
		return "Int16"
	case UInt16:
		return "UInt16"
	case Int32:
		return "Int32"
	case UInt32:
		return "UInt32"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case CInt16:
		return "CInt16"
	case CInt32:
		return "CInt32"
	case CFloat32:
		return "CFloat32"
	case CFloat64:
		return "CFloat64"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Size returns size(t) in bytes.
func (t Type) Size() int {
	switch t {
	case Byte:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32, CInt16:
		return 4
	case Float64, CInt32, CFloat32:
		return 8
	case CFloat64:
		return 16
	default:
		return 0
	}
}

// IsComplex reports whether t is a two-component complex type.
func (t Type) IsComplex() bool {
	switch t {
	case CInt16, CInt32, CFloat32, CFloat64:
		return true
	default:
		return false
	}
}

// ComponentSize returns size(t)/2 for complex types; for real types it
// equals Size().
func (t Type) ComponentSize() int {
	if !t.IsComplex() {
		return t.Size()
	}
	return t.Size() / 2
}

// Valid reports whether t is one of the eleven known sample types.
func (t Type) Valid() bool {
	return t >= Byte && t <= CFloat64
}
