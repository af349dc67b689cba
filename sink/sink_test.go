package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sdrcore/rfsense/record"
	"github.com/stretchr/testify/assert"
)

func sampleRecord() *record.Record {
	return record.New().
		String("model", "Model", "Acme-X").
		Int("id", "ID", 42).
		Double("temperature_F", "Temperature", 72.5, "%.1f")
}

func TestKVPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	k := NewKV(&buf, nil)
	assert.NoError(t, k.PrintRecord(sampleRecord()))
	line := buf.String()
	assert.True(t, strings.Contains(line, "model=Acme-X"))
	assert.True(t, strings.Contains(line, "id=42"))
	assert.True(t, strings.Contains(line, "temperature_F=72.5"))
}

func TestKVQuotesSpaces(t *testing.T) {
	var buf bytes.Buffer
	k := NewKV(&buf, nil)
	r := record.New().String("model", "Model", "Acme X")
	assert.NoError(t, k.PrintRecord(r))
	assert.Contains(t, buf.String(), `model="Acme X"`)
}

func TestJSONPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSON(&buf)
	assert.NoError(t, j.PrintRecord(sampleRecord()))

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Acme-X", decoded["model"])
	assert.Equal(t, float64(42), decoded["id"])
	assert.Equal(t, 72.5, decoded["temperature_F"])

	// map decoding above can't see key order; check the raw bytes keep
	// the record's insertion order instead of json.Marshal's alphabetical
	// sort (model, id, temperature_F would otherwise come out as
	// id, model, temperature_F).
	line := strings.TrimRight(buf.String(), "\n")
	wantOrder := `{"model":"Acme-X","id":42,"temperature_F":72.5}`
	assert.Equal(t, wantOrder, line)
}

func TestQueueDropsOldestWhenFull(t *testing.T) {
	q := NewQueue(2)
	q.Push(record.New().Int("n", "N", 1))
	q.Push(record.New().Int("n", "N", 2))
	q.Push(record.New().Int("n", "N", 3))

	assert.Equal(t, 1, q.Dropped)

	r, ok := q.Pop()
	assert.True(t, ok)
	f, _ := r.Get("n")
	assert.Equal(t, int64(2), f.Value.Int)
}

func TestQueueCloseDrainsThenStops(t *testing.T) {
	q := NewQueue(4)
	q.Push(record.New().Int("n", "N", 1))
	q.Close()

	_, ok := q.Pop()
	assert.True(t, ok)

	_, ok = q.Pop()
	assert.False(t, ok)
}
