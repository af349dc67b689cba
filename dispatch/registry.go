// Package dispatch implements Protocol dispatch (C7): probing a
// decoded bit buffer against a registry of device descriptors and
// returning the first (or, in ProbeAll mode, every) successful
// decode.
package dispatch

import (
	"github.com/sdrcore/rfsense/bitbuf"
	"github.com/sdrcore/rfsense/pulsetrain"
	"github.com/sdrcore/rfsense/record"
)

// Decoder is a device's second-stage decode function: given the bit
// buffer produced by running its Modulation/Params through pulsetrain,
// it either returns a populated Record or a *rferrs.DecodeReject
// explaining why the buffer isn't this device after all.
type Decoder func(buf *bitbuf.Buffer) (*record.Record, error)

// Descriptor is a Device Descriptor: the modulation parameters needed
// to run the pulse-train decoder, plus the device-specific second
// stage that validates and extracts fields from the resulting bits.
type Descriptor struct {
	Name       string
	Modulation pulsetrain.Modulation
	Params     pulsetrain.Params
	Decode     Decoder
	Disabled   bool

	// OutputFields lists the record field keys this device's Decode
	// may emit, in the order a Decode call populates them.
	OutputFields []string
}

// Registry is a flat, ordered collection of device descriptors.
// Registration order is probe order.
type Registry struct {
	entries []*Descriptor

	// ProbeAll overrides the default first-match-wins policy: when
	// true, every enabled descriptor is probed and every successful
	// decode is returned, instead of stopping at the first match.
	ProbeAll bool
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Register appends a device descriptor. Descriptors are probed in
// registration order.
func (r *Registry) Register(d *Descriptor) {
	r.entries = append(r.entries, d)
}

// Enable and Disable toggle a registered descriptor by name; disabled
// descriptors are skipped by Dispatch.
func (r *Registry) Enable(name string)  { r.setDisabled(name, false) }
func (r *Registry) Disable(name string) { r.setDisabled(name, true) }

func (r *Registry) setDisabled(name string, disabled bool) {
	for _, d := range r.entries {
		if d.Name == name {
			d.Disabled = disabled
		}
	}
}

// Entries returns the registered descriptors in registration order.
func (r *Registry) Entries() []*Descriptor {
	return r.entries
}
