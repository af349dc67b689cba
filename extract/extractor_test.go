package extract

import (
	"testing"

	"github.com/sdrcore/rfsense/pulse"
	"github.com/stretchr/testify/assert"
)

// Testable Property 5: pulse-extractor invariant. Alternating HIGH of
// exactly P ticks and LOW of exactly G ticks (G < reset_limit) yields
// pulse list [(P,G), (P,G), ...].
func TestAlternatingPulseGapInvariant(t *testing.T) {
	const P = 20
	const G = 30
	const cycles = 5

	cfg := DefaultConfig(ModeOOK)
	cfg.ResetLimitTicks = 10000
	ex := New(cfg, 1_000_000)

	track := make([]int16, 0, (P+G)*(cycles+1))
	for c := 0; c < cycles+1; c++ {
		for i := 0; i < P; i++ {
			track = append(track, 1000)
		}
		for i := 0; i < G; i++ {
			track = append(track, 0)
		}
	}

	ex.Process(track, 0, 1000, func(*pulse.List) {})

	list := ex.List()
	assert.GreaterOrEqual(t, list.Len(), cycles)
	for i := 0; i < cycles; i++ {
		assert.Equal(t, P, list.Segments[i].PulseTicks, "segment %d pulse", i)
		assert.Equal(t, G, list.Segments[i].GapTicks, "segment %d gap", i)
	}
}

func TestResetFinalisesList(t *testing.T) {
	cfg := DefaultConfig(ModeOOK)
	cfg.ResetLimitTicks = 50
	ex := New(cfg, 1_000_000)

	track := make([]int16, 0)
	for i := 0; i < 20; i++ {
		track = append(track, 1000)
	}
	for i := 0; i < 100; i++ { // exceeds reset limit
		track = append(track, 0)
	}

	var finalisedLens []int
	ex.Process(track, 0, 1000, func(l *pulse.List) {
		finalisedLens = append(finalisedLens, l.Len())
	})

	assert.Equal(t, []int{1}, finalisedLens)
	assert.Equal(t, 0, ex.List().Len())
}

func TestSquelchSuppresses(t *testing.T) {
	cfg := DefaultConfig(ModeOOK)
	cfg.ResetLimitTicks = 10000
	cfg.SquelchMarginDB = 100 // unreachable margin
	ex := New(cfg, 1_000_000)

	track := make([]int16, 200)
	for i := range track {
		if i%40 < 20 {
			track[i] = 1000
		}
	}
	ex.Process(track, 0, 1000, func(*pulse.List) {})
	assert.Equal(t, 0, ex.List().Len())
}
