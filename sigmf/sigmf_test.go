package sigmf

import (
	"bytes"
	"testing"
	"time"

	"github.com/sdrcore/rfsense/sample"
	"github.com/stretchr/testify/assert"
)

func TestWriteReadArchiveRoundTrip(t *testing.T) {
	meta := NewMeta(250000, 433920000, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	iq := []sample.IQ{{I: 100, Q: -100}, {I: 32767, Q: -32768}}

	var buf bytes.Buffer
	assert.NoError(t, WriteArchive(&buf, "capture", meta, iq))

	gotMeta, gotIQ, err := ReadArchive(&buf)
	assert.NoError(t, err)
	assert.Equal(t, meta.Global.SampleRate, gotMeta.Global.SampleRate)
	assert.Equal(t, meta.Global.Datatype, gotMeta.Global.Datatype)
	assert.Equal(t, iq, gotIQ)
}
