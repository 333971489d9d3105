// Package binary provides small fixed-width binary helpers for
// format-driver code (cmd/rawprobe's BMP header reader) that sits
// outside the rawio package's own byte-order pipeline, plus a
// Fletcher-32 checksum used by cmd/rawbench's sanity digest.
package binary

// Fletcher32 computes the Fletcher-32 checksum: the input is treated as
// a sequence of 16-bit words in little-endian order, zero-padded by one
// byte if the length is odd.
func Fletcher32(data []byte) uint32 {
	var sum1, sum2 uint32

	length := len(data)
	i := 0
	for ; i+1 < length; i += 2 {
		word := uint32(data[i]) | uint32(data[i+1])<<8
		sum1 = (sum1 + word) % 65535
		sum2 = (sum2 + sum1) % 65535
	}
	if i < length {
		word := uint32(data[i])
		sum1 = (sum1 + word) % 65535
		sum2 = (sum2 + sum1) % 65535
	}

	return (sum2 << 16) | sum1
}

// VerifyFletcher32 verifies data against an expected Fletcher-32 checksum.
func VerifyFletcher32(data []byte, expected uint32) bool {
	return Fletcher32(data) == expected
}
