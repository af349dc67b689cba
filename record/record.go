// Package record implements the Data Record (C8): an insertion-ordered
// chain of (key, pretty key, value, format hint) fields emitted by
// protocol decoders and consumed by output sinks.
//
// The original C implementation models this as a singly-linked list of
// heap-allocated nodes with an explicit free-recursively contract.
// Here a Record simply holds its Fields in a slice; Go's garbage
// collector reclaims everything reachable from a discarded Record, so
// there is no Free method.
package record

// Kind tags the type of a Field's value.
type Kind int

const (
	KindInt Kind = iota
	KindDouble
	KindString
	KindRecord
	KindArray
)

// Value is a tagged union: exactly one of the fields matching Kind is
// meaningful.
type Value struct {
	Kind Kind

	Int    int64
	Double float64
	Str    string
	Rec    *Record

	// Array holds a homogeneous sequence of values when Kind ==
	// KindArray; ArrayKind names the element kind.
	Array     []Value
	ArrayKind Kind
}

// IntValue, DoubleValue, StringValue, and RecordValue construct a
// Value of the matching kind.
func IntValue(v int64) Value        { return Value{Kind: KindInt, Int: v} }
func DoubleValue(v float64) Value   { return Value{Kind: KindDouble, Double: v} }
func StringValue(v string) Value    { return Value{Kind: KindString, Str: v} }
func RecordValue(v *Record) Value   { return Value{Kind: KindRecord, Rec: v} }
func ArrayValue(k Kind, vs []Value) Value {
	return Value{Kind: KindArray, Array: vs, ArrayKind: k}
}

// Field is one (key, pretty key, value, format hint) entry in a
// Record's insertion-ordered chain.
type Field struct {
	Key, PrettyKey string
	Value          Value
	FormatHint     string
}

// Record is an append-only, insertion-ordered chain of Fields.
type Record struct {
	fields []Field
}

// New creates an empty Record.
func New() *Record {
	return &Record{}
}

// Fields returns the Record's fields in insertion order. The returned
// slice must not be mutated by the caller.
func (r *Record) Fields() []Field {
	return r.fields
}

// add appends a field and returns the Record, so builder calls chain.
func (r *Record) add(key, pretty string, v Value, formatHint string) *Record {
	r.fields = append(r.fields, Field{Key: key, PrettyKey: pretty, Value: v, FormatHint: formatHint})
	return r
}

// Int appends an integer-valued field.
func (r *Record) Int(key, pretty string, v int64) *Record {
	return r.add(key, pretty, IntValue(v), "")
}

// Double appends a double-valued field with an optional printf-style
// format hint (e.g. "%.1f"); an empty hint leaves formatting to the
// sink's default.
func (r *Record) Double(key, pretty string, v float64, formatHint string) *Record {
	return r.add(key, pretty, DoubleValue(v), formatHint)
}

// String appends a string-valued field.
func (r *Record) String(key, pretty, v string) *Record {
	return r.add(key, pretty, StringValue(v), "")
}

// Nested appends a field whose value is itself a Record.
func (r *Record) Nested(key, pretty string, v *Record) *Record {
	return r.add(key, pretty, RecordValue(v), "")
}

// ArrayField appends a homogeneous array-valued field.
func (r *Record) ArrayField(key, pretty string, kind Kind, vs []Value) *Record {
	return r.add(key, pretty, ArrayValue(kind, vs), "")
}

// Get returns the first field with the given key, if any.
func (r *Record) Get(key string) (Field, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
