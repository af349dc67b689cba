// Package extract implements the pulse extractor (C5): a Schmitt-trigger
// slicer over either the AM track (OOK mode) or the FM track (FSK mode)
// that segments a demod track into a pulse.List, with squelch and
// reset-limit finalisation.
package extract

import (
	"math"

	"github.com/sdrcore/rfsense/pulse"
)

// Mode selects which track the extractor slices on.
type Mode int

const (
	// ModeOOK slices the AM envelope: above the high threshold is a
	// pulse, below the low threshold is a gap.
	ModeOOK Mode = iota
	// ModeFSK slices the FM deviation on its sign: deviation >= 0 is
	// HIGH, below 0 is LOW. The comparison is against zero, not against
	// a rolling mean of the deviation.
	ModeFSK
)

// Config configures one extractor instance.
type Config struct {
	Mode Mode

	// ResetLimitTicks: a gap exceeding this finalises the pulse list.
	ResetLimitTicks int

	// MinPulseTicks is carried in the configuration but Process does
	// not read it: pulses of every length, down to one tick, start a
	// new segment.
	MinPulseTicks int

	// SquelchMarginDB: OOK mode is suppressed while the estimated SNR,
	// 20*log10(signal level / noise floor) computed from the linear
	// demod.Stats levels, falls below this margin (in dB).
	SquelchMarginDB float64

	// FSKSeparationMargin: FSK mode is suppressed while the rolling
	// mark/space separation (peak-to-peak FM deviation over a short
	// window) falls below this margin, in raw FM-track units.
	FSKSeparationMargin float64
}

// DefaultConfig returns the squelch/debounce constants from the
// newest-variant tuning observed in the source material (see
// spec.md §9's Open Question on scattered squelch constants).
func DefaultConfig(mode Mode) Config {
	return Config{
		Mode:                mode,
		ResetLimitTicks:     0, // caller must size this to their protocol
		MinPulseTicks:       2,
		SquelchMarginDB:     3.0,
		FSKSeparationMargin: 1500,
	}
}

type state int

const (
	stateLow state = iota
	stateHigh
)

// Extractor is a single Schmitt-trigger slicer session. It is not safe
// for concurrent use; one Extractor per channel/subchannel.
type Extractor struct {
	cfg Config

	st state

	pulseTicks int
	gapTicks   int
	haveFirst  bool // have we seen the first LOW->HIGH edge yet?

	sampleOffset int64

	// FSK rolling mark/space separation tracker.
	fskMeanAbs float64

	out *pulse.List
}

// New creates an Extractor writing into a fresh pulse.List at the
// given sample rate.
func New(cfg Config, sampleRate int) *Extractor {
	return &Extractor{
		cfg: cfg,
		st:  stateLow,
		out: pulse.New(sampleRate),
	}
}

// List returns the pulse.List accumulated so far. Ownership stays with
// the Extractor until Take is called.
func (e *Extractor) List() *pulse.List {
	return e.out
}

// Take detaches and returns the accumulated pulse.List, replacing it
// with a fresh empty one at the same sample rate. Call this when a
// finalised list is handed off to the pulse-train decoder.
func (e *Extractor) Take() *pulse.List {
	l := e.out
	e.out = pulse.New(l.SampleRate)
	return l
}

// squelchOpen reports whether extraction should proceed given the
// current demod stats, per §4.4's squelch contract.
func (e *Extractor) squelchOpen(noiseFloor, signalLevel float64) bool {
	switch e.cfg.Mode {
	case ModeOOK:
		snrDB := 20 * math.Log10(math.Max(signalLevel, 1)/math.Max(noiseFloor, 1))
		return snrDB >= e.cfg.SquelchMarginDB
	case ModeFSK:
		return e.fskMeanAbs >= e.cfg.FSKSeparationMargin
	}
	return true
}

// Process slices one block of demod-track samples. For OOK mode pass
// the AM track and the caller's current noiseFloor/signalLevel
// estimates (e.g. from demod.Stats); for FSK mode pass the FM track
// (noiseFloor/signalLevel then only feed each segment's RSSI and noise
// metadata, converted to dB relative to full scale, 32768). Finalised
// pulse lists (those
// that hit a reset gap) are returned via the finalised callback; the
// in-progress list remains available via List/Take.
func (e *Extractor) Process(track []int16, noiseFloor, signalLevel float64, finalised func(*pulse.List)) {
	if !e.squelchOpen(noiseFloor, signalLevel) {
		e.sampleOffset += int64(len(track))
		return
	}

	span := signalLevel - noiseFloor
	threshHigh := noiseFloor + 0.60*span
	threshLow := noiseFloor + 0.40*span
	rssiDB := 20 * math.Log10(math.Max(signalLevel, 1)/32768)
	noiseDB := 20 * math.Log10(math.Max(noiseFloor, 1)/32768)

	for _, v := range track {
		var above, below bool
		switch e.cfg.Mode {
		case ModeOOK:
			av := float64(v)
			if av < 0 {
				av = -av
			}
			above = av >= threshHigh
			below = av <= threshLow
		case ModeFSK:
			av := float64(v)
			if av < 0 {
				av = -av
			}
			e.fskMeanAbs += 0.01 * (av - e.fskMeanAbs)
			above = v >= 0
			below = v < 0
		}

		// Schmitt trigger: only cross state on a decisive reading;
		// readings inside the hysteresis band hold the prior state.
		high := e.st == stateHigh
		if above {
			high = true
		} else if below {
			high = false
		}

		switch e.st {
		case stateLow:
			if high {
				// LOW->HIGH transition: close the previous gap
				// together with the preceding pulse, append the pair.
				if e.haveFirst {
					e.out.Append(e.pulseTicks, e.gapTicks, 0, rssiDB, noiseDB, e.sampleOffset-int64(e.pulseTicks+e.gapTicks))
				}
				e.haveFirst = true
				e.pulseTicks = 1
				e.gapTicks = 0
				e.st = stateHigh
			} else {
				e.gapTicks++
				if e.cfg.ResetLimitTicks > 0 && e.gapTicks > e.cfg.ResetLimitTicks {
					e.finaliseOnReset(finalised)
				}
			}
		case stateHigh:
			if high {
				e.pulseTicks++
			} else {
				e.st = stateLow
				e.gapTicks = 1
			}
		}
		e.sampleOffset++
	}
}

// finaliseOnReset closes out the in-progress list (the last pulse is
// recorded with an infinite terminating gap) and hands it to the
// caller, then starts a fresh empty list.
func (e *Extractor) finaliseOnReset(finalised func(*pulse.List)) {
	if e.haveFirst {
		e.out.Append(e.pulseTicks, pulse.InfiniteGap, 0, 0, 0, e.sampleOffset-int64(e.pulseTicks))
	}
	finalised(e.Take())
	e.haveFirst = false
	e.pulseTicks = 0
	e.gapTicks = 0
	e.st = stateLow
}
