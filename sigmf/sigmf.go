// Package sigmf writes captured I/Q samples in the SigMF archive
// convention: a tar containing a JSON ".sigmf-meta" sidecar and a raw
// ".sigmf-data" sample file.
package sigmf

import (
	"archive/tar"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sdrcore/rfsense/sample"
)

// GlobalMeta mirrors the SigMF "global" object's fields this pipeline
// can populate without hardware-specific metadata.
type GlobalMeta struct {
	Datatype      string `json:"core:datatype"`
	SampleRate    uint32 `json:"core:sample_rate"`
	Version       string `json:"core:version"`
	Description   string `json:"core:description,omitempty"`
}

// CaptureMeta mirrors one entry of the SigMF "captures" array.
type CaptureMeta struct {
	SampleStart int64  `json:"core:sample_start"`
	Frequency   uint32 `json:"core:frequency,omitempty"`
	DateTime    string `json:"core:datetime,omitempty"`
}

// Meta is the top-level ".sigmf-meta" document.
type Meta struct {
	Global   GlobalMeta    `json:"global"`
	Captures []CaptureMeta `json:"captures"`
}

// NewMeta builds a Meta for a capture of iq samples at sampleRate Hz
// tuned to centerHz, stamped with the given time.
func NewMeta(sampleRate, centerHz uint32, at time.Time) *Meta {
	return &Meta{
		Global: GlobalMeta{
			Datatype:   "ci16_le",
			SampleRate: sampleRate,
			Version:    "1.0.0",
		},
		Captures: []CaptureMeta{{
			SampleStart: 0,
			Frequency:   centerHz,
			DateTime:    at.UTC().Format(time.RFC3339Nano),
		}},
	}
}

// WriteArchive writes name+".sigmf-meta" and name+".sigmf-data" as two
// entries of a tar stream.
func WriteArchive(w io.Writer, name string, meta *Meta, iq []sample.IQ) error {
	tw := tar.NewWriter(w)

	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	if err := writeTarEntry(tw, name+".sigmf-meta", metaJSON); err != nil {
		return err
	}

	data := make([]byte, len(iq)*4)
	for i, s := range iq {
		binary.LittleEndian.PutUint16(data[4*i:], uint16(s.I))
		binary.LittleEndian.PutUint16(data[4*i+2:], uint16(s.Q))
	}
	if err := writeTarEntry(tw, name+".sigmf-data", data); err != nil {
		return err
	}

	return tw.Close()
}

func writeTarEntry(tw *tar.Writer, name string, body []byte) error {
	hdr := &tar.Header{
		Name: name,
		Mode: 0644,
		Size: int64(len(body)),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("sigmf: write header %s: %w", name, err)
	}
	_, err := tw.Write(body)
	return err
}

// ReadArchive reads the meta and raw data sample payload out of a
// SigMF tar stream produced by WriteArchive.
func ReadArchive(r io.Reader) (*Meta, []sample.IQ, error) {
	tr := tar.NewReader(r)
	var meta *Meta
	var iq []sample.IQ

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		body, err := io.ReadAll(tr)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case len(hdr.Name) > len(".sigmf-meta") && hdr.Name[len(hdr.Name)-len(".sigmf-meta"):] == ".sigmf-meta":
			meta = &Meta{}
			if err := json.Unmarshal(body, meta); err != nil {
				return nil, nil, err
			}
		case len(hdr.Name) > len(".sigmf-data") && hdr.Name[len(hdr.Name)-len(".sigmf-data"):] == ".sigmf-data":
			iq = make([]sample.IQ, len(body)/4)
			for i := range iq {
				iq[i].I = int16(binary.LittleEndian.Uint16(body[4*i:]))
				iq[i].Q = int16(binary.LittleEndian.Uint16(body[4*i+2:]))
			}
		}
	}
	return meta, iq, nil
}
