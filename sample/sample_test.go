package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCU8Midpoint(t *testing.T) {
	out := Normalize(CU8, []byte{128, 128})
	assert.Equal(t, []IQ{{I: 0, Q: 0}}, out)
}

func TestNormalizeCU8FullScale(t *testing.T) {
	out := Normalize(CU8, []byte{255, 0})
	assert.Equal(t, int16(127*256), out[0].I)
	assert.Equal(t, int16(-128*256), out[0].Q)
}

func TestNormalizeCS8(t *testing.T) {
	out := Normalize(CS8, []byte{127, 0x80})
	assert.Equal(t, int16(127*256), out[0].I)
	assert.Equal(t, int16(-128*256), out[0].Q)
}

func TestNormalizeCS16RoundTrip(t *testing.T) {
	out := Normalize(CS16, []byte{0x34, 0x12, 0xCD, 0xAB})
	assert.Equal(t, int16(0x1234), out[0].I)
	assert.Equal(t, int16(-0x5433), out[0].Q) // bit pattern 0xABCD
}

func TestNormalizeCF32FullScale(t *testing.T) {
	// 1.0f little-endian = 00 00 80 3F
	out := Normalize(CF32, []byte{0x00, 0x00, 0x80, 0x3F, 0x00, 0x00, 0x00, 0x00})
	assert.Equal(t, int16(32767), out[0].I)
	assert.Equal(t, int16(0), out[0].Q)
}
