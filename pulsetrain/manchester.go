package pulsetrain

import (
	"github.com/sdrcore/rfsense/bitbuf"
	"github.com/sdrcore/rfsense/pulse"
)

// decodeManchesterZerobit implements classic Manchester coding with an
// implicit leading 0 bit: every half-bit-width (ShortWidth) edge
// counts, and a pulse or gap near twice ShortWidth denotes a 0->0 or
// 1->1 transition (no mid-bit edge). Decoding works by expanding each
// segment into its half-bit run of levels, with an implicit leading 0
// level, then applying the standard Manchester pairing rule: each pair
// of half-bits must differ, and the first of the pair is the data bit.
func decodeManchesterZerobit(list *pulse.List, p Params, buf *bitbuf.Buffer) {
	levels := []byte{0} // implicit leading 0 bit

	flush := func() {
		for i := 0; i+1 < len(levels); i += 2 {
			if levels[i] == levels[i+1] {
				// Manchester violation: close the row and continue
				// with the next pair of half-bits.
				buf.AddSync()
				continue
			}
			buf.AddBit(levels[i])
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
