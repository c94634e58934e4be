package record

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the JSON types a field value can carry.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
)

// Value is a tagged field value. Records are schema-free, so a value is
// one of the JSON scalar types rather than a fixed Go type. Numbers are
// carried as json.Number so they serialize back byte-exact.
type Value struct {
	kind Kind
	str  string
	num  json.Number
	b    bool
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric value.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, num: n}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Null returns the JSON null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Kind returns the value's type tag.
func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the underlying string and true when the value is a string.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == KindString
}

// Display renders the value for terminal output: booleans lower-case,
// null as "null", numbers as written in the source document.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num.String()
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}

// MarshalJSON writes the value in its original JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return []byte(v.num.String()), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNull:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.kind)
	}
}

// valueFromToken converts a json.Token produced by a json.Decoder with
// UseNumber into a Value. Arrays and objects are not valid field values.
func valueFromToken(tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("field values must be scalars, got %v", tok)
	}
}
