package pulsetrain

import (
	"github.com/sdrcore/rfsense/bitbuf"
	"github.com/sdrcore/rfsense/pulse"
)

// Decode runs the state machine for modulation m over list with the
// given device params, returning the assembled bit buffer. rMax/cMax
// size the returned buffer; pass 0 for either to use bitbuf's
// defaults.
func Decode(m Modulation, list *pulse.List, p Params, rMax, cMax int) *bitbuf.Buffer {
	buf := bitbuf.New(rMax, cMax)
	switch m {
	case PCM:
		decodePCM(list, p, buf)
	case PPM:
		decodePPM(list, p, buf)
	case PWM:
		decodePWM(list, p, buf)
	case ManchesterZerobit:
		decodeManchesterZerobit(list, p, buf)
	case DifferentialManchester:
		decodeDifferentialManchester(list, p, buf)
	case PIWM:
		decodePIWM(list, p, buf)
	case NRZS:
		decodeNRZS(list, p, buf)
	case DMC:
		decodeDMC(list, p, buf)
	}
	return buf
}
