// Package pulsetrain implements the state-machine family that converts
// a pulse.List into a bitbuf.Buffer, one state machine per modulation
// scheme (C6): PCM, PPM, PWM, Manchester-zerobit, Differential
// Manchester, PIWM, NRZ-S, and DMC.
//
// Every decoder shares the same tolerance contract: a measured
// duration d matches a target T iff |d-T| <= tolerance. All widths are
// in microseconds; pulse.List segment durations are converted via the
// list's sample rate before matching.
package pulsetrain

// Modulation names one of the eight supported pulse-train families.
type Modulation int

const (
	PCM Modulation = iota
	PPM
	PWM
	ManchesterZerobit
	DifferentialManchester
	PIWM
	NRZS
	DMC
)

// Params bundles the per-device timing parameters a pulse-train
// decoder needs, all in microseconds. Devices hold Params by value, and
// decoders receive a copy by value, with no pointer back to the owning
// device descriptor.
type Params struct {
	ShortWidth float64
	LongWidth  float64
	ResetLimit float64
	GapLimit   float64
	SyncWidth  float64
	Tolerance  float64
}

// matches reports whether measured duration d is within tolerance t of
// target T.
func matches(d, target, tolerance float64) bool {
	diff := d - target
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
