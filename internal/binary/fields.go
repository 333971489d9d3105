package binary

import "fmt"

// Uint32LE reads a 4-byte little-endian field at offset off within buf,
// the shape a BMP file header's bfOffBits/biWidth/biHeight fields need
// that golang.org/x/image/bmp's decoder does not expose.
func Uint32LE(buf []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(buf) {
		return 0, fmt.Errorf("field at offset %d: buffer too short (%d bytes)", off, len(buf))
	}
	return uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24, nil
}

// Uint16LE reads a 2-byte little-endian field at offset off within buf.
func Uint16LE(buf []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(buf) {
		return 0, fmt.Errorf("field at offset %d: buffer too short (%d bytes)", off, len(buf))
	}
	return uint16(buf[off]) | uint16(buf[off+1])<<8, nil
}

// Int32LE reads a 4-byte little-endian signed field, used for BMP's
// biHeight which is negative for a top-down bitmap.
func Int32LE(buf []byte, off int) (int32, error) {
	v, err := Uint32LE(buf, off)
	return int32(v), err
}
