package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/sdrcore/rfsense/record"
)

// JSON writes one JSON object per record, one object per line.
type JSON struct {
	w io.Writer
}

// NewJSON wraps w as a JSON-lines Sink.
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

func (j *JSON) PrintRecord(r *record.Record) error {
	b, err := marshalRecord(r)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = j.w.Write(b)
	return err
}

// marshalRecord renders r as a JSON object with keys in Fields()
// order: the core defines traversal order, and json.Marshal on a map
// would silently re-sort it alphabetically.
func marshalRecord(r *record.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalValue(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(v record.Value) ([]byte, error) {
	switch v.Kind {
	case record.KindInt:
		return json.Marshal(v.Int)
	case record.KindDouble:
		return json.Marshal(v.Double)
	case record.KindString:
		return json.Marshal(v.Str)
	case record.KindRecord:
		return marshalRecord(v.Rec)
	case record.KindArray:
		return marshalArray(v.Array)
	default:
		return json.Marshal(nil)
	}
}

func marshalArray(vs []record.Value) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range vs {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := marshalValue(v)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (j *JSON) PrintInt(_ string, v int64) string {
	return strconv.FormatInt(v, 10)
}

func (j *JSON) PrintDouble(_ string, v float64, formatHint string) string {
	if formatHint != "" {
		return fmt.Sprintf(formatHint, v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (j *JSON) PrintString(_ string, v string) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func (j *JSON) PrintArray(_ string, vs []record.Value) string {
	b, _ := marshalArray(vs)
	return string(b)
}

func (j *JSON) Close() error {
	if c, ok := j.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
