// Package record assembles the final key/value record of a completed
// session and applies out-of-band field overrides as RFC6902 patches.
package record

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/hirekit/slotflow/schema"
)

// Field is one resolved key/value pair.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Record holds the collected values in schema field order.
type Record []Field

// Assemble orders collected by the schema's field order, skipping keys
// that never resolved.
func Assemble(fields []schema.FieldSpec, collected map[string]string) Record {
	out := make(Record, 0, len(collected))
	for _, f := range fields {
		if v, ok := collected[f.Key]; ok {
			out = append(out, Field{Key: f.Key, Value: v})
		}
	}
	return out
}

// Get returns the value for key.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Map flattens the record. Ordering is lost; use MarshalJSON when the
// consumer cares about field order.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r))
	for _, f := range r {
		m[f.Key] = f.Value
	}
	return m
}

// MarshalJSON renders a JSON object whose keys keep schema order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := sonic.Marshal(f.Key)
		if err != nil {
			return nil, fmt.Errorf("marshal record key: %w", err)
		}
		v, err := sonic.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal record value: %w", err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
