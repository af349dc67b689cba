// Package catalog holds the small set of worked device decoders used
// to exercise dispatch end-to-end. The full device catalog (hundreds
// of decoders in the original system) is out of scope; these are
// reference implementations of the second stage every catalog entry
// would need.
package catalog

import (
	"fmt"

	"github.com/sdrcore/rfsense/bitbuf"
	"github.com/sdrcore/rfsense/bitops"
	"github.com/sdrcore/rfsense/dispatch"
	"github.com/sdrcore/rfsense/pulsetrain"
	"github.com/sdrcore/rfsense/record"
	"github.com/sdrcore/rfsense/rferrs"
)

const (
	f007thPreamble0 = 0x01
	f007thPreamble1 = 0x45
	f007thFrameBits = 64 // 2 preamble + 5 payload + 1 trailer bytes
)

// F007THParams is the PWM timing for the Ambient Weather F007TH
// outdoor temperature/humidity sensor: short pulse encodes 0, long
// pulse encodes 1, fixed inter-bit gap.
func F007THParams() pulsetrain.Params {
	return pulsetrain.Params{
		ShortWidth: 500,
		LongWidth:  1500,
		GapLimit:   1500,
		ResetLimit: 4000,
		Tolerance:  200,
	}
}

// F007THDescriptor returns the dispatch.Descriptor wiring this
// device's modulation parameters to its second-stage decode.
func F007THDescriptor() *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:       "Ambient Weather F007TH",
		Modulation: pulsetrain.PWM,
		Params:     F007THParams(),
		Decode:     decodeF007TH,
		OutputFields: []string{
			"model", "id", "channel", "battery_ok", "temperature_F", "humidity", "mic",
		},
	}
}

func decodeF007TH(buf *bitbuf.Buffer) (*record.Record, error) {
	const name = "Ambient Weather F007TH"

	for row := 0; row < buf.NumRows(); row++ {
		if buf.BitsInRow(row) < f007thFrameBits {
			continue
		}
		frame := make([]byte, f007thFrameBits/8)
		buf.ExtractBytes(row, 0, f007thFrameBits, frame)

		if frame[0] != f007thPreamble0 || frame[1] != f007thPreamble1 {
			continue
		}

		payload := frame[2:7]
		trailer := frame[7]

		mic := bitops.LFSRDigest8(payload, 5, 0x98, 0x3E) ^ 0x64
		if mic != trailer {
			return nil, &rferrs.DecodeReject{Device: name, Kind: rferrs.RejectMIC,
				Detail: fmt.Sprintf("want %#02x got %#02x", trailer, mic)}
		}

		b0, b1, b2, b3, b4 := payload[0], payload[1], payload[2], payload[3], payload[4]

		channel := int(b0 & 0x07)
		batteryOK := b0&0x80 != 0

		raw := int(b2)<<8 | int(b3)
		tempF := float64(raw-900) / 10.0

		humidity := int(b4 & 0x7F)
		if humidity > 100 {
			return nil, &rferrs.DecodeReject{Device: name, Kind: rferrs.RejectSanity,
				Detail: fmt.Sprintf("humidity %d%% out of range", humidity)}
		}

		rec := record.New().
			String("model", "Model", name).
			Int("id", "ID", int64(b1)).
			Int("channel", "Channel", int64(channel)).
			Int("battery_ok", "Battery OK", boolToInt(batteryOK)).
			Double("temperature_F", "Temperature", tempF, "%.1f").
			Int("humidity", "Humidity", int64(humidity)).
			Int("mic", "Integrity", 1)
		return rec, nil
	}

	return nil, &rferrs.DecodeReject{Device: name, Kind: rferrs.RejectEarly, Detail: "no preamble match"}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
