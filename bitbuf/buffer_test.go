package bitbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func pushBits(b *Buffer, bits ...byte) {
	for _, bit := range bits {
		b.AddBit(bit)
	}
}

func TestAddBitTruncatesAtCMax(t *testing.T) {
	b := New(4, 4)
	pushBits(b, 1, 1, 1, 1, 1, 1) // 6 bits requested, only 4 fit
	assert.Equal(t, 4, b.BitsInRow(0))
}

func TestAddSyncDiscardsPastRMax(t *testing.T) {
	b := New(2, 8)
	b.AddSync() // row 1
	b.AddSync() // would be row 2, discarded (RMax=2)
	assert.Equal(t, 2, b.NumRows())
}

// Testable Property 3: search finds the first occurrence and is
// idempotent when re-searching from the returned index.
func TestSearchIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bits := rapid.SliceOfN(rapid.IntRange(0, 1), 8, 64).Draw(t, "bits")
		patLen := rapid.IntRange(1, 4).Draw(t, "patlen")
		pat := rapid.SliceOfN(rapid.IntRange(0, 1), patLen, patLen).Draw(t, "pat")

		b := New(1, len(bits)+8)
		for _, v := range bits {
			b.AddBit(byte(v))
		}
		patBuf := make([]byte, (patLen+7)/8)
		for i, v := range pat {
			if v != 0 {
				patBuf[i>>3] |= 0x80 >> uint(i&7)
			}
		}

		first := b.Search(0, 0, patBuf, patLen)
		if first == b.BitsInRow(0) {
			return // no match; nothing more to check
		}
		second := b.Search(0, first, patBuf, patLen)
		assert.Equal(t, first, second)
	})
}

// Testable Property 4: Manchester round-trip.
func TestManchesterRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bits := rapid.SliceOfN(rapid.IntRange(0, 1), 1, 32).Draw(t, "bits")

		b := New(1, len(bits)*2+8)
		prev := byte(0)
		for _, v := range bits {
			bit := byte(v)
			if bit != 0 {
				b.AddBit(1)
				b.AddBit(0)
			} else {
				b.AddBit(0)
				b.AddBit(1)
			}
			prev = bit
		}
		_ = prev

		dest := make([]byte, (len(bits)+7)/8)
		consumed := b.ManchesterDecode(0, 0, dest, len(bits))
		assert.Equal(t, len(bits)*2, consumed)
		for i, v := range bits {
			got := (dest[i>>3] >> uint(7-i&7)) & 1
			assert.Equal(t, byte(v), got)
		}
	})
}

// S3: encoding bits 1010 1100 as Manchester (1 -> 10, 0 -> 01, the
// first bit of each pair is the data bit) gives 10 01 10 01 10 10 01 01;
// decoding that yields 1010 1100.
func TestManchesterS3Vector(t *testing.T) {
	manchester := []byte{1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 1, 0, 0, 1, 0, 1}
	b := New(1, 32)
	pushBits(b, manchester...)
	dest := make([]byte, 1)
	consumed := b.ManchesterDecode(0, 0, dest, 8)
	assert.Equal(t, 16, consumed)
	assert.Equal(t, byte(0b10101100), dest[0])
}

// S5: four rows all equal to 0x2D D4 90 F0 12 34 56 78, min_count=3,
// min_bits=64 -> row 0.
func TestFindRepeatedRowS5Vector(t *testing.T) {
	row := []byte{0x2D, 0xD4, 0x90, 0xF0, 0x12, 0x34, 0x56, 0x78}
	b := New(8, 64)
	for r := 0; r < 4; r++ {
		for _, byt := range row {
			for bit := 7; bit >= 0; bit-- {
				b.AddBit((byt >> uint(bit)) & 1)
			}
		}
		if r < 3 {
			b.AddSync()
		}
	}
	assert.Equal(t, 0, b.FindRepeatedRow(3, 64))
}

func TestInvert(t *testing.T) {
	b := New(1, 8)
	pushBits(b, 1, 0, 1, 1)
	b.Invert()
	buf := make([]byte, 1)
	b.ExtractBytes(0, 0, 4, buf)
	assert.Equal(t, byte(0b0100_0000), buf[0])
}

func TestExtractBytesShortRow(t *testing.T) {
	b := New(1, 16)
	pushBits(b, 1, 1, 0)
	buf := make([]byte, 1)
	n := b.ExtractBytes(0, 0, 8, buf)
	assert.Equal(t, 3, n)
}
