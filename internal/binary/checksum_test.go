package binary

import "testing"

func TestFletcher32(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", []byte{}},
		{"single byte", []byte{0x01}},
		{"two bytes", []byte{0x01, 0x02}},
		{"four bytes", []byte{0x01, 0x02, 0x03, 0x04}},
		{"hello", []byte("hello")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result1 := Fletcher32(tt.input)
			result2 := Fletcher32(tt.input)
			if result1 != result2 {
				t.Errorf("Fletcher32 not consistent: got 0x%08x then 0x%08x", result1, result2)
			}
		})
	}

	if result := Fletcher32([]byte{}); result != 0 {
		t.Errorf("Fletcher32(empty) should be 0, got 0x%08x", result)
	}
}

func TestFletcher32OddLength(t *testing.T) {
	odd := []byte{0x01, 0x02, 0x03}
	even := []byte{0x01, 0x02, 0x03, 0x00}

	if Fletcher32(odd) != Fletcher32(even) {
		t.Errorf("Fletcher32 should pad odd-length input: odd=0x%08x, even=0x%08x",
			Fletcher32(odd), Fletcher32(even))
	}
}

func TestVerifyFletcher32(t *testing.T) {
	data := []byte("test data for verification")
	checksum := Fletcher32(data)

	if !VerifyFletcher32(data, checksum) {
		t.Error("VerifyFletcher32 should return true for matching checksum")
	}
	if VerifyFletcher32(data, checksum+1) {
		t.Error("VerifyFletcher32 should return false for non-matching checksum")
	}
}

func BenchmarkFletcher32(b *testing.B) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Fletcher32(data)
	}
}
