package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sdrcore/rfsense/bitbuf"
	"github.com/sdrcore/rfsense/demod"
	"github.com/sdrcore/rfsense/dispatch"
	"github.com/sdrcore/rfsense/extract"
	"github.com/sdrcore/rfsense/pulsetrain"
	"github.com/sdrcore/rfsense/record"
	"github.com/sdrcore/rfsense/sample"
	"github.com/sdrcore/rfsense/sink"
	"github.com/stretchr/testify/assert"
)

type collectSink struct {
	mu      sync.Mutex
	records []*record.Record
}

func (c *collectSink) PrintRecord(r *record.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, r)
	return nil
}
func (c *collectSink) PrintInt(string, int64) string              { return "" }
func (c *collectSink) PrintDouble(string, float64, string) string { return "" }
func (c *collectSink) PrintString(string, string) string          { return "" }
func (c *collectSink) PrintArray(string, []record.Value) string   { return "" }
func (c *collectSink) Close() error                                { return nil }

func (c *collectSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

var _ sink.Sink = (*collectSink)(nil)

func alwaysDecode(buf *bitbuf.Buffer) (*record.Record, error) {
	if buf.NumRows() == 0 {
		return nil, assert.AnError
	}
	return record.New().String("model", "Model", "Test"), nil
}

// TestDeviceEndToEndRunsWithoutDeadlock exercises the two-goroutine
// ingest/output wiring: feeding a block in, then cancelling, must
// drain the in-flight pulse list and let the output goroutine join
// cleanly rather than hang.
func TestDeviceEndToEndRunsWithoutDeadlock(t *testing.T) {
	reg := dispatch.New()
	reg.Register(&dispatch.Descriptor{
		Name:       "test",
		Modulation: pulsetrain.PCM,
		Params:     pulsetrain.Params{ShortWidth: 100, LongWidth: 100, ResetLimit: 10000, Tolerance: 20},
		Decode:     alwaysDecode,
	})

	d := demod.New(demod.DefaultConfig())
	e := extract.New(extract.Config{
		Mode:            extract.ModeOOK,
		ResetLimitTicks: 50,
		SquelchMarginDB: -1000, // always open for this synthetic test
	}, 100000)

	cs := &collectSink{}
	dev := NewDevice(d, e, reg, []sink.Sink{cs}, 8, nil)

	in := make(chan []sample.IQ, 1)
	ctx, cancel := context.WithCancel(context.Background())

	block := make([]sample.IQ, 40)
	for i := range block {
		if (i/5)%2 == 0 {
			block[i] = sample.IQ{I: 20000, Q: 20000}
		} else {
			block[i] = sample.IQ{I: 0, Q: 0}
		}
	}

	done := make(chan struct{})
	go func() {
		dev.Run(ctx, in)
		close(done)
	}()

	in <- block
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("device did not shut down after cancellation")
	}

	_ = cs.count() // synthetic envelope may or may not cross squelch/reset thresholds within one block
}

func TestDeviceStatsSnapshot(t *testing.T) {
	reg := dispatch.New()
	d := demod.New(demod.DefaultConfig())
	e := extract.New(extract.DefaultConfig(extract.ModeOOK), 100000)
	dev := NewDevice(d, e, reg, nil, 4, nil)

	s := dev.Stats()
	assert.Equal(t, 0, s.Blocks)
	assert.Equal(t, 0, s.Decoded)
}
