package pulsetrain

import (
	"github.com/sdrcore/rfsense/bitbuf"
	"github.com/sdrcore/rfsense/pulse"
)

// decodeDifferentialManchester implements Differential Manchester: a
// bit boundary falls at every clock (ShortWidth); a mid-bit transition
// encodes 0, its absence encodes 1. Unlike classic Manchester, the
// decoded value depends only on whether consecutive half-bit levels
// differ, not on their absolute value.
func decodeDifferentialManchester(list *pulse.List, p Params, buf *bitbuf.Buffer) {
	levels := []byte{0}

	flush := func() {
		for i := 0; i+1 < len(levels); i += 2 {
			if levels[i] != levels[i+1] {
				buf.AddBit(0) // mid-bit transition present
			} else {
				buf.AddBit(1) // no transition
			}
		}
		levels = levels[:0]
	}

	for i := range list.Segments {
		pulseUS := list.PulseMicros(i)
		gapUS := list.GapMicros(i)

		nPulse := roundDiv(pulseUS, p.ShortWidth)
		for b := 0; b < nPulse; b++ {
			levels = append(levels, 1)
		}

		switch gapBoundary(gapUS, p) {
		case gapFinalize:
			flush()
			return
		case gapSync:
			flush()
			buf.AddSync()
			continue
		}

		nGap := roundDiv(gapUS, p.ShortWidth)
		for b := 0; b < nGap; b++ {
			levels = append(levels, 0)
		}
	}
	flush()
}
