package sink

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sdrcore/rfsense/record"
)

// KV writes records as teacher-style "key=value" lines, one field per
// key=value pair, fields space-separated, record terminated by a
// newline.
type KV struct {
	w      io.Writer
	logger *log.Logger
}

// NewKV wraps w as a key=value Sink. logger receives a debug line per
// record for operational visibility; pass nil to disable it.
func NewKV(w io.Writer, logger *log.Logger) *KV {
	return &KV{w: w, logger: logger}
}

func (k *KV) PrintRecord(r *record.Record) error {
	var b strings.Builder
	for i, f := range r.Fields() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(k.printValue(f))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(k.w, b.String())
	if k.logger != nil {
		k.logger.Debug("record written", "fields", len(r.Fields()))
	}
	return err
}

func (k *KV) printValue(f record.Field) string {
	switch f.Value.Kind {
	case record.KindInt:
		return k.PrintInt(f.Key, f.Value.Int)
	case record.KindDouble:
		return k.PrintDouble(f.Key, f.Value.Double, f.FormatHint)
	case record.KindString:
		return k.PrintString(f.Key, f.Value.Str)
	case record.KindArray:
		return k.PrintArray(f.Key, f.Value.Array)
	case record.KindRecord:
		var parts []string
		for _, nested := range f.Value.Rec.Fields() {
			parts = append(parts, nested.Key+"="+k.printValue(nested))
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return ""
	}
}

func (k *KV) PrintInt(_ string, v int64) string {
	return fmt.Sprintf("%d", v)
}

func (k *KV) PrintDouble(_ string, v float64, formatHint string) string {
	if formatHint != "" {
		return fmt.Sprintf(formatHint, v)
	}
	return fmt.Sprintf("%f", v)
}

func (k *KV) PrintString(_ string, v string) string {
	if strings.ContainsAny(v, " \t\n\"") {
		return fmt.Sprintf("%q", v)
	}
	return v
}

func (k *KV) PrintArray(key string, vs []record.Value) string {
	var parts []string
	for _, v := range vs {
		switch v.Kind {
		case record.KindInt:
			parts = append(parts, k.PrintInt(key, v.Int))
		case record.KindDouble:
			parts = append(parts, k.PrintDouble(key, v.Double, ""))
		case record.KindString:
			parts = append(parts, k.PrintString(key, v.Str))
		}
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (k *KV) Close() error {
	if c, ok := k.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
