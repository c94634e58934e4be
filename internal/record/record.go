// Package record defines the secret entry model and the ordered store it
// lives in. A record is an ordered mapping from field name to a scalar
// value; the "property" field is its unique identifier within a store.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PropertyField is the mandatory identifier field every record carries.
const PropertyField = "property"

var (
	// ErrMissingProperty is returned when a record lacks a non-empty
	// string property field.
	ErrMissingProperty = errors.New("record is missing a non-empty property field")
	// ErrDuplicateProperty is returned when an insert would collide with
	// an existing record's property.
	ErrDuplicateProperty = errors.New("record with this property already exists")
	// ErrNotFound is returned when no record carries the requested property.
	ErrNotFound = errors.New("record not found")
)

// Field is a (name, value) pair in a record's display order.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered, schema-free field set. Field insertion order is
// preserved for stable display and JSON round-trips.
type Record struct {
	names  []string
	fields map[string]Value
}

// New returns an empty record.
func New() *Record {
	return &Record{fields: make(map[string]Value)}
}

// Set stores a field value. New names append to the field order; existing
// names keep their position.
func (r *Record) Set(name string, v Value) {
	if _, ok := r.fields[name]; !ok {
		r.names = append(r.names, name)
	}
	r.fields[name] = v
}

// Get returns the named field value.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Property returns the record's identifier, or "" when the property field
// is absent or not a string.
func (r *Record) Property() string {
	v, ok := r.fields[PropertyField]
	if !ok {
		return ""
	}
	s, _ := v.Text()
	return s
}

// Validate checks that the record carries a non-empty string property.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Property()) == "" {
		return ErrMissingProperty
	}
	return nil
}

// Fields returns the record's fields in insertion order.
func (r *Record) Fields() []Field {
	out := make([]Field, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, Field{Name: name, Value: r.fields[name]})
	}
	return out
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.names)
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	out := New()
	for _, name := range r.names {
		out.Set(name, r.fields[name])
	}
	return out
}

// Merge copies the incoming record's fields over this one. Same-named
// fields are overwritten, fields present only here are preserved, and the
// property field keeps its current value: a record's identity never
// changes through a merge.
func (r *Record) Merge(in *Record) {
	for _, f := range in.Fields() {
		if f.Name == PropertyField {
			continue
		}
		r.Set(f.Name, f.Value)
	}
}

// MarshalJSON writes the record as a JSON object with fields in insertion
// order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.fields[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeObject reads one JSON object from the decoder into a Record,
// preserving the source field order. The decoder must be positioned at an
// object open brace and configured with UseNumber.
func decodeObject(dec *json.Decoder) (*Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	rec := New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		val, err := valueFromToken(valTok)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		rec.Set(key, val)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}
