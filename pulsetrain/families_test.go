package pulsetrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManchesterZerobitBasic(t *testing.T) {
	// Half-bit width 100us. Implicit leading 0, then three pulse=100
	// gap=100 segments each append one 1-level then one 0-level,
	// giving levels 0,1,0,1,0,1,0 and pairs (0,1),(0,1),(0,1) -> bit 0
	// each time.
	list := newList(1_000_000, [][2]int{
		{100, 100},
		{100, 100},
		{100, 100},
	})
	p := Params{ShortWidth: 100, ResetLimit: 1_000_000, Tolerance: 10}
	buf := Decode(ManchesterZerobit, list, p, 0, 0)
	got := extractRowBits(buf, 0)
	assert.Equal(t, []byte{0, 0, 0}, got)
}

func TestPIWMBasic(t *testing.T) {
	list := newList(1_000_000, [][2]int{
		{500, 1000},
	})
	p := Params{ShortWidth: 500, LongWidth: 1000, ResetLimit: 1_000_000, Tolerance: 50}
	buf := Decode(PIWM, list, p, 0, 0)
	got := extractRowBits(buf, 0)
	assert.Equal(t, []byte{0, 1}, got)
}

func TestNRZSBasic(t *testing.T) {
	list := newList(1_000_000, [][2]int{
		{1000, 1000},
	})
	p := Params{ShortWidth: 1000, ResetLimit: 1_000_000, Tolerance: 50}
	buf := Decode(NRZS, list, p, 0, 0)
	got := extractRowBits(buf, 0)
	assert.Equal(t, []byte{1, 0}, got)
}

func TestDMCBasic(t *testing.T) {
	list := newList(1_000_000, [][2]int{
		{1000, 500}, // pulse=long(1000)->0, gap=2*short(500)->1
	})
	p := Params{ShortWidth: 500, LongWidth: 1000, ResetLimit: 1_000_000, Tolerance: 50}
	buf := Decode(DMC, list, p, 0, 0)
	got := extractRowBits(buf, 0)
	assert.Equal(t, []byte{0, 1}, got)
}

func TestDifferentialManchesterBasic(t *testing.T) {
	// levels = [0,1,0]: one complete pair (0,1), which differ -> a
	// mid-bit transition -> bit 0. The trailing unpaired level is
	// dropped until a following segment completes it.
	list := newList(1_000_000, [][2]int{
		{100, 100},
	})
	p := Params{ShortWidth: 100, ResetLimit: 1_000_000, Tolerance: 10}
	buf := Decode(DifferentialManchester, list, p, 0, 0)
	got := extractRowBits(buf, 0)
	assert.Equal(t, []byte{0}, got)
}
