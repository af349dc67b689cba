// Package demod turns a block of complex I/Q samples into the AM and
// FM demod tracks the pulse extractor consumes, plus the running
// baseline/noise statistics the extractor and the Schmitt-trigger
// slicer thresholds are derived from.
//
// The Demodulator is lossless across sample-buffer boundaries: filter
// state and the last sample needed by the FM cross-product
// discriminator persist between calls to Process. Reset clears that
// state.
package demod

import "math"

// Sample is one normalised signed-16-bit I/Q sample, matching the
// internal representation spec.md §3 mandates.
type Sample struct {
	I, Q int16
}

// Config controls the demodulator's filter time constants.
type Config struct {
	// ShortestPulseSamples is the shortest pulse width, in samples,
	// the registered modulation scheme can produce. The AM low-pass
	// pole is derived from roughly half of this.
	ShortestPulseSamples int

	// NoiseFloorAlpha / SignalLevelAlpha are the exponential-smoothing
	// factors (0,1) for the rolling noise-floor minimum and
	// signal-level maximum trackers. Smaller is slower to adapt.
	NoiseFloorAlpha  float64
	SignalLevelAlpha float64
}

// DefaultConfig returns reasonable defaults for a ~100us shortest
// pulse at a 250 kHz-class sample rate.
func DefaultConfig() Config {
	return Config{
		ShortestPulseSamples: 25,
		NoiseFloorAlpha:      0.0002,
		SignalLevelAlpha:     0.02,
	}
}

// Demodulator holds per-channel filter and baseline-tracking state. A
// distinct Demodulator is required per concurrently processed SDR
// channel.
type Demodulator struct {
	cfg Config

	// DC blocking, independent per rail, cancels tuner DC-offset bias
	// before it reaches the magnitude/discriminator stages.
	dcI, dcQ   float64
	dcBlockAlp float64

	// AM low-pass state.
	amLPF     float64
	amLPFAlp  float64
	amInit    bool
	noiseFloor  float64
	signalLevel float64

	// FM discriminator state.
	lastI, lastQ int16
	haveLast     bool
	fmLPF        float64
	fmLPFAlp     float64
	fmInit       bool
}

// New creates a Demodulator with the given configuration.
func New(cfg Config) *Demodulator {
	d := &Demodulator{cfg: cfg}
	// Pole at ~0.5x the shortest pulse, in samples: 1 - exp(-1/tau).
	tau := math.Max(1, float64(cfg.ShortestPulseSamples)/2)
	d.amLPFAlp = 1 - math.Exp(-1/tau)
	d.fmLPFAlp = d.amLPFAlp
	d.dcBlockAlp = 0.0001
	d.noiseFloor = 0
	d.signalLevel = 0
	return d
}

// Reset clears all filter and baseline-tracking state, as if the
// Demodulator had just been created; use this after a tuning change or
// stream discontinuity.
func (d *Demodulator) Reset() {
	d.dcI, d.dcQ = 0, 0
	d.amLPF = 0
	d.amInit = false
	d.haveLast = false
	d.fmLPF = 0
	d.fmInit = false
	d.noiseFloor = 0
	d.signalLevel = 0
}

// Stats is the set of running statistics the demodulator maintains
// across calls to Process.
type Stats struct {
	DCOffsetI, DCOffsetQ float64
	NoiseFloor           float64 // smoothed AM minimum
	SignalLevel          float64 // smoothed AM maximum
	ThresholdMid         float64 // slicing threshold: midpoint of the two above
}

// Process demodulates one block of N samples, writing N values to am
// and fm (both must already be sized for len(in)). Returns the updated
// running statistics.
func (d *Demodulator) Process(in []Sample, am, fm []int16) Stats {
	for n, s := range in {
		// DC blocking per rail.
		d.dcI += d.dcBlockAlp * (float64(s.I) - d.dcI)
		d.dcQ += d.dcBlockAlp * (float64(s.Q) - d.dcQ)
		fi := float64(s.I) - d.dcI
		fq := float64(s.Q) - d.dcQ

		// AM: alpha-max-beta-min magnitude approximation.
		ai, aq := math.Abs(fi), math.Abs(fq)
		var mag float64
		if ai > aq {
			mag = ai + 0.5*aq
		} else {
			mag = aq + 0.5*ai
		}
		if !d.amInit {
			d.amLPF = mag
			d.amInit = true
		} else {
			d.amLPF += d.amLPFAlp * (mag - d.amLPF)
		}
		am[n] = clampInt16(d.amLPF)

		// Baseline/noise tracking: exponentially smoothed min/max of
		// the AM track.
		if d.amLPF < d.noiseFloor {
			d.noiseFloor += d.cfg.NoiseFloorAlpha * (d.amLPF - d.noiseFloor)
		} else {
			d.noiseFloor += d.cfg.NoiseFloorAlpha * 0.1 * (d.amLPF - d.noiseFloor)
		}
		if d.amLPF > d.signalLevel {
			d.signalLevel += d.cfg.SignalLevelAlpha * (d.amLPF - d.signalLevel)
		} else {
			d.signalLevel += d.cfg.SignalLevelAlpha * 0.1 * (d.amLPF - d.signalLevel)
		}

		// FM: integer cross-product discriminator.
		var dev float64
		curI, curQ := int16(fi), int16(fq)
		if d.haveLast {
			// Im(z[n] * conj(z[n-1])) = I[n]*Q[n-1]... sign convention:
			// Im(z[n]*conj(z[n-1])) = Qn*In_1 - In*Qn_1, scaled by a
			// reciprocal magnitude estimate so the result is roughly
			// independent of signal amplitude.
			cross := float64(curQ)*float64(d.lastI) - float64(curI)*float64(d.lastQ)
			denom := mag*mag + 1
			dev = cross / denom * 16384
		}
		d.lastI, d.lastQ = curI, curQ
		d.haveLast = true

		if !d.fmInit {
			d.fmLPF = dev
			d.fmInit = true
		} else {
			d.fmLPF += d.fmLPFAlp * (dev - d.fmLPF)
		}
		fm[n] = clampInt16(d.fmLPF)
	}

	mid := (d.noiseFloor + d.signalLevel) / 2
	return Stats{
		DCOffsetI:   d.dcI,
		DCOffsetQ:   d.dcQ,
		NoiseFloor:  d.noiseFloor,
		SignalLevel: d.signalLevel,
		ThresholdMid: mid,
	}
}

func clampInt16(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
