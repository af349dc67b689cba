// Package pipeline wires the signal-to-record chain together and
// runs it under the two-goroutine concurrency model: an ingest/decode
// goroutine that never blocks on output, handing finished records to a
// bounded queue drained by a single output goroutine per device.
package pipeline

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sdrcore/rfsense/demod"
	"github.com/sdrcore/rfsense/dispatch"
	"github.com/sdrcore/rfsense/extract"
	"github.com/sdrcore/rfsense/pulse"
	"github.com/sdrcore/rfsense/sample"
	"github.com/sdrcore/rfsense/sink"
)

// Stats is a point-in-time snapshot of one Device's operational
// counters.
type Stats struct {
	Blocks  int
	Lists   int
	Decoded int
	Dropped int
}

// counters is the mutex-guarded live accumulator Device updates;
// Device.Stats copies it out into a plain Stats snapshot.
type counters struct {
	mu      sync.Mutex
	blocks  int
	lists   int
	decoded int
}

func (c *counters) snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Blocks: c.blocks, Lists: c.lists, Decoded: c.decoded}
}

// Device runs one SDR channel's ingest/decode goroutine and output
// goroutine pair.
type Device struct {
	Demod     *demod.Demodulator
	Extractor *extract.Extractor
	Registry  *dispatch.Registry
	Sinks     []sink.Sink
	RMax      int
	CMax      int

	queue  *sink.Queue
	logger *log.Logger
	stats  counters

	wg sync.WaitGroup
}

// NewDevice assembles a Device. queueCapacity bounds the number of
// in-flight records between the ingest and output goroutines; a full
// queue drops the oldest record.
func NewDevice(d *demod.Demodulator, e *extract.Extractor, r *dispatch.Registry, sinks []sink.Sink, queueCapacity int, logger *log.Logger) *Device {
	return &Device{
		Demod:     d,
		Extractor: e,
		Registry:  r,
		Sinks:     sinks,
		queue:     sink.NewQueue(queueCapacity),
		logger:    logger,
	}
}

// Run starts the output goroutine and processes blocks from in until
// ctx is cancelled or in closes, at which point it drains the
// in-flight pulse list, stops the output goroutine, and returns.
func (dv *Device) Run(ctx context.Context, in <-chan []sample.IQ) {
	dv.wg.Add(1)
	go dv.outputLoop()

	am := make([]int16, 0)
	fm := make([]int16, 0)

	for {
		select {
		case <-ctx.Done():
			dv.finish()
			return
		case block, ok := <-in:
			if !ok {
				dv.finish()
				return
			}
			dv.ingest(block, &am, &fm)
		}
	}
}

func (dv *Device) ingest(block []sample.IQ, am, fm *[]int16) {
	if cap(*am) < len(block) {
		*am = make([]int16, len(block))
		*fm = make([]int16, len(block))
	}
	*am = (*am)[:len(block)]
	*fm = (*fm)[:len(block)]

	in := make([]demod.Sample, len(block))
	for i, s := range block {
		in[i] = demod.Sample{I: s.I, Q: s.Q}
	}

	stats := dv.Demod.Process(in, *am, *fm)
	dv.stats.mu.Lock()
	dv.stats.blocks++
	dv.stats.mu.Unlock()

	track := *am
	if dv.Extractor == nil {
		return
	}
	dv.Extractor.Process(track, stats.NoiseFloor, stats.SignalLevel, func(list *pulse.List) {
		dv.stats.mu.Lock()
		dv.stats.lists++
		dv.stats.mu.Unlock()
		dv.decode(list)
	})
}

func (dv *Device) decode(list *pulse.List) {
	results := dispatch.Dispatch(dv.Registry, list, dv.RMax, dv.CMax)
	for _, r := range results {
		dv.stats.mu.Lock()
		dv.stats.decoded++
		dv.stats.mu.Unlock()
		dv.queue.Push(r.Record)
	}
}

func (dv *Device) finish() {
	if dv.Extractor != nil {
		if list := dv.Extractor.Take(); list.Len() > 0 {
			dv.decode(list)
		}
	}
	dv.queue.Close()
	dv.wg.Wait()
}

func (dv *Device) outputLoop() {
	defer dv.wg.Done()
	for {
		rec, ok := dv.queue.Pop()
		if !ok {
			return
		}
		for _, s := range dv.Sinks {
			if err := s.PrintRecord(rec); err != nil && dv.logger != nil {
				dv.logger.Error("sink write failed", "err", err)
			}
		}
	}
}

// Stats returns a snapshot of the device's operational counters,
// including the queue's current Dropped count.
func (dv *Device) Stats() Stats {
	s := dv.stats.snapshot()
	s.Dropped = dv.queue.Dropped
	return s
}
