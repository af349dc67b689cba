package pulsetrain

import (
	"github.com/sdrcore/rfsense/bitbuf"
	"github.com/sdrcore/rfsense/pulse"
)

// decodePPM implements Pulse Position Modulation: the pulse width is
// fixed and carries no information; the gap encodes the bit. gap ~=
// ShortWidth -> 0, gap ~= LongWidth -> 1, gap > GapLimit -> a new row
// (sync) rather than a data bit. A gap beyond ResetLimit (or the
// terminating infinite gap) finalises the buffer.
func decodePPM(list *pulse.List, p Params, buf *bitbuf.Buffer) {
	for i := range list.Segments {
		gapUS := list.GapMicros(i)

		switch gapBoundary(gapUS, p) {
		case gapFinalize:
			return
		case gapSync:
			buf.AddSync()
			continue
		}

		switch {
		case matches(gapUS, p.ShortWidth, p.Tolerance):
			buf.AddBit(0)
		case matches(gapUS, p.LongWidth, p.Tolerance):
			buf.AddBit(1)
		default:
			// Neither width matches within tolerance: treat as a
			// desynchronising event and close the row.
			buf.AddSync()
		}
	}
}
