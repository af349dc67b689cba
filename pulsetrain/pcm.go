package pulsetrain

import (
	"github.com/sdrcore/rfsense/bitbuf"
	"github.com/sdrcore/rfsense/pulse"
)

// decodePCM implements the PCM family: both pulse and gap are integer
// multiples of ShortWidth. One bit is emitted per ShortWidth-ticks
// interval: 1 while in-pulse, 0 while in-gap. NRZ is the LongWidth==
// ShortWidth special case.
func decodePCM(list *pulse.List, p Params, buf *bitbuf.Buffer) {
	for i := range list.Segments {
		pulseUS := list.PulseMicros(i)
		gapUS := list.GapMicros(i)

		n := roundDiv(pulseUS, p.ShortWidth)
		for b := 0; b < n; b++ {
			buf.AddBit(1)
		}

		if action := gapBoundary(gapUS, p); action == gapFinalize {
			return
		} else if action == gapSync {
			buf.AddSync()
			continue
		}
		ng := roundDiv(gapUS, p.ShortWidth)
		for b := 0; b < ng; b++ {
			buf.AddBit(0)
		}
	}
}
