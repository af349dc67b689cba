package pulsetrain

import (
	"github.com/sdrcore/rfsense/bitbuf"
	"github.com/sdrcore/rfsense/pulse"
)

// decodeDMC implements DMC: half-bit-width ShortWidth, full-bit-width
// LongWidth. Two successive ShortWidth periods produce a level
// transition (bit 1); one LongWidth period keeps the level (bit 0).
// Unlike Differential Manchester, the symbol alphabet here is the raw
// run length itself rather than a pair of half-bit levels, so DMC is
// decoded directly from consecutive (pulse, gap) run lengths without
// an intermediate half-bit expansion.
func decodeDMC(list *pulse.List, p Params, buf *bitbuf.Buffer) {
	classify := func(d float64) (bit byte, ok bool) {
		switch {
		case matches(d, p.LongWidth, p.Tolerance):
			return 0, true
		case matches(d, 2*p.ShortWidth, p.Tolerance):
			return 1, true
		}
		return 0, false
	}

	for i := range list.Segments {
		pulseUS := list.PulseMicros(i)
		gapUS := list.GapMicros(i)

		if bit, ok := classify(pulseUS); ok {
			buf.AddBit(bit)
		} else {
			buf.AddSync()
		}

		switch gapBoundary(gapUS, p) {
		case gapFinalize:
			return
		case gapSync:
			buf.AddSync()
			continue
		}

		if bit, ok := classify(gapUS); ok {
			buf.AddBit(bit)
		} else {
			buf.AddSync()
		}
	}
}
