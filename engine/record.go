package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ============================================================================
// RECORD — Ordered result row
// ============================================================================
// Field order is significant: pie/bar/scatter/line read the first field as
// the category (x) and the second as the value (y). Go maps drop key order,
// so records decode JSON objects token by token.
// ============================================================================

// Field is a single key/value pair of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is one row of a result set with ordered fields.
type Record struct {
	fields []Field
}

// NewRecord builds a Record from fields in order. Later duplicates overwrite
// the value of an earlier key but keep its position.
func NewRecord(fields ...Field) Record {
	r := Record{fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		r.set(f.Key, f.Value)
	}
	return r
}

func (r *Record) set(key string, value any) {
	for i := range r.fields {
		if r.fields[i].Key == key {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// Field returns the field at position i.
func (r Record) Field(i int) (Field, bool) {
	if i < 0 || i >= len(r.fields) {
		return Field{}, false
	}
	return r.fields[i], true
}

// Value returns the value at position i, or nil when the record is shorter.
func (r Record) Value(i int) any {
	f, _ := r.Field(i)
	return f.Value
}

// Get looks a value up by key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the field keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the fields in order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// UnmarshalJSON decodes a JSON object preserving key order.
// Numbers decode as json.Number.
func (r *Record) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		r.fields = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record: expected JSON object, got %v", tok)
	}

	out := Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("record: expected string key, got %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("record: field %q: %w", key, err)
		}
		out.set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}

// MarshalJSON encodes the record as a JSON object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("record: field %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ============================================================================
// COERCION — No validation, garbage in / garbage out
// ============================================================================

// ToNumber converts numeric values to float64. Anything else, including nil
// and numeric-looking strings, is returned unchanged.
func ToNumber(v any) any {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n
	default:
		return v
	}
}

// Float returns v as float64 when it is numeric after coercion.
func Float(v any) (float64, bool) {
	f, ok := ToNumber(v).(float64)
	return f, ok
}

// DisplayString renders a value as a category label.
func DisplayString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(v)
	}
}
