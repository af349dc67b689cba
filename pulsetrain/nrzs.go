package pulsetrain

import (
	"github.com/sdrcore/rfsense/bitbuf"
	"github.com/sdrcore/rfsense/pulse"
)

// decodeNRZS implements NRZ-S with the same bit-per-ShortWidth emission
// and the same gap handling as PCM: a gap beyond GapLimit starts a new
// row (via AddSync) and a gap beyond ResetLimit ends decoding. NRZ-S
// devices normally set GapLimit equal to ShortWidth, so that any gap
// longer than one unit interval starts a new row.
func decodeNRZS(list *pulse.List, p Params, buf *bitbuf.Buffer) {
	for i := range list.Segments {
		pulseUS := list.PulseMicros(i)
		gapUS := list.GapMicros(i)

		n := roundDiv(pulseUS, p.ShortWidth)
		for b := 0; b < n; b++ {
			buf.AddBit(1)
		}

		switch gapBoundary(gapUS, p) {
		case gapFinalize:
			return
		case gapSync:
			buf.AddSync()
			continue
		}

		ng := roundDiv(gapUS, p.ShortWidth)
		for b := 0; b < ng; b++ {
			buf.AddBit(0)
		}
	}
}
