// Package pulse implements the Pulse List data model: an ordered,
// finite sequence of (pulse, gap) segments measured in integer sample
// periods, with parallel per-segment metadata (carrier offset, RSSI,
// noise floor, start offset).
package pulse

import "math"

// Segment is one (pulse, gap) pair plus its metadata. GapTicks may be
// math.MaxInt32 to signify a terminating, reset-triggering gap.
type Segment struct {
	PulseTicks int
	GapTicks   int

	// FreqOffset is the average carrier offset over the segment, in
	// raw FM-track units (the FSK case); zero for OOK captures.
	FreqOffset int

	RSSIdB  float64
	NoiseDB float64

	StartSample int64
}

// InfiniteGap marks a terminating gap (reset to end-of-capture).
const InfiniteGap = math.MaxInt32

// List is the ordered Pulse List produced by the pulse extractor for
// one capture window, between two resets (or between start-of-capture
// and the first reset).
type List struct {
	SampleRate int

	Segments []Segment
}

// New creates an empty pulse list at the given sample rate.
func New(sampleRate int) *List {
	return &List{SampleRate: sampleRate}
}

// Append adds a (pulseTicks, gapTicks) segment with the given
// FM carrier-offset estimate and RSSI in dB.
func (l *List) Append(pulseTicks, gapTicks, freqOffset int, rssiDB, noiseDB float64, startSample int64) {
	l.Segments = append(l.Segments, Segment{
		PulseTicks:  pulseTicks,
		GapTicks:    gapTicks,
		FreqOffset:  freqOffset,
		RSSIdB:      rssiDB,
		NoiseDB:     noiseDB,
		StartSample: startSample,
	})
}

// Reset discards all accumulated segments, as happens when the
// extractor sees a gap exceeding the configured reset limit.
func (l *List) Reset() {
	l.Segments = l.Segments[:0]
}

// Len returns the number of segments in the list.
func (l *List) Len() int {
	return len(l.Segments)
}

// PulseMicros converts segment i's pulse duration to microseconds.
func (l *List) PulseMicros(i int) float64 {
	return float64(l.Segments[i].PulseTicks) * 1e6 / float64(l.SampleRate)
}

// GapMicros converts segment i's gap duration to microseconds. A gap
// of InfiniteGap ticks converts to +Inf.
func (l *List) GapMicros(i int) float64 {
	if l.Segments[i].GapTicks >= InfiniteGap {
		return math.Inf(1)
	}
	return float64(l.Segments[i].GapTicks) * 1e6 / float64(l.SampleRate)
}

// MicrosToTicks converts a microsecond duration to sample ticks at
// this list's sample rate.
func (l *List) MicrosToTicks(us float64) int {
	return int(us*float64(l.SampleRate)/1e6 + 0.5)
}
