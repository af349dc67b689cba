package pulsetrain

import (
	"github.com/sdrcore/rfsense/bitbuf"
	"github.com/sdrcore/rfsense/pulse"
)

// decodePIWM implements Pulse-Interval-Width Modulation: both the
// pulse and the gap carry one symbol each, independently: ShortWidth
// -> 0, LongWidth -> 1. Used by a handful of infrared-derived OOK
// protocols where both halves of the cell are informative.
func decodePIWM(list *pulse.List, p Params, buf *bitbuf.Buffer) {
	emit := func(d float64) bool {
		switch {
		case matches(d, p.ShortWidth, p.Tolerance):
			buf.AddBit(0)
			return true
		case matches(d, p.LongWidth, p.Tolerance):
			buf.AddBit(1)
			return true
		}
		return false
	}

	for i := range list.Segments {
		pulseUS := list.PulseMicros(i)
		gapUS := list.GapMicros(i)

		if !emit(pulseUS) {
			buf.AddSync()
		}

		switch gapBoundary(gapUS, p) {
		case gapFinalize:
			return
		case gapSync:
			buf.AddSync()
			continue
		}

		if !emit(gapUS) {
			buf.AddSync()
		}
	}
}
