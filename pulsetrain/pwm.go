package pulsetrain

import (
	"github.com/sdrcore/rfsense/bitbuf"
	"github.com/sdrcore/rfsense/pulse"
)

// decodePWM implements Pulse Width Modulation: the gap is fixed and
// carries no information; the pulse encodes the bit. pulse ~=
// ShortWidth -> 0, pulse ~= LongWidth -> 1. An optional sync pulse of
// width SyncWidth produces AddSync without emitting a data bit. A gap
// beyond GapLimit closes the row; beyond ResetLimit (or the
// terminating infinite gap) finalises the buffer.
func decodePWM(list *pulse.List, p Params, buf *bitbuf.Buffer) {
	for i := range list.Segments {
		pulseUS := list.PulseMicros(i)
		gapUS := list.GapMicros(i)

		switch {
		case p.SyncWidth > 0 && matches(pulseUS, p.SyncWidth, p.Tolerance):
			buf.AddSync()
		case matches(pulseUS, p.ShortWidth, p.Tolerance):
			buf.AddBit(0)
		case matches(pulseUS, p.LongWidth, p.Tolerance):
			buf.AddBit(1)
		default:
			buf.AddSync()
		}

		if applyGapBoundary(gapUS, p, buf) {
			return
		}
	}
}
