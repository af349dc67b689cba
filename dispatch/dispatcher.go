package dispatch

import (
	"github.com/sdrcore/rfsense/pulse"
	"github.com/sdrcore/rfsense/pulsetrain"
	"github.com/sdrcore/rfsense/record"
	"github.com/sdrcore/rfsense/rferrs"
)

// Result is one descriptor's successful outcome from a Dispatch call:
// Record is non-nil. Dispatch never sets Reject; a descriptor whose
// Decode returns an error or a nil record yields no Result.
type Result struct {
	Device string
	Record *record.Record
	Reject *rferrs.DecodeReject
}

// Dispatch runs list through every enabled descriptor's pulse-train
// decoder and second-stage Decode, in registration order. Under the
// default first-match-wins policy it stops and returns a single
// successful Result as soon as one is found. With Registry.ProbeAll
// set, it instead probes every enabled descriptor and returns a
// Result for each one that succeeded.
func Dispatch(r *Registry, list *pulse.List, rMax, cMax int) []Result {
	var results []Result
	for _, d := range r.Entries() {
		if d.Disabled {
			continue
		}
		buf := pulsetrain.Decode(d.Modulation, list, d.Params, rMax, cMax)
		rec, err := d.Decode(buf)
		if err != nil {
			continue
		}
		if rec == nil {
			continue
		}
		results = append(results, Result{Device: d.Name, Record: rec})
		if !r.ProbeAll {
			return results
		}
	}
	return results
}
