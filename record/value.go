package record

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Value is a decoded column value. It is a closed set: only the types in this
// file implement it.
//
// All implementations are comparable, so two values can be compared with ==.
type Value interface {
	json.Marshaler
	isValue()
}

// Null is SQL NULL.
type Null struct{}

// String is text already converted to UTF-8.
type String string

// Int is an unscaled integer.
type Int int64

// Decimal is a fixed point (scaled integer, INT128, DECFLOAT) number rendered
// as a string to keep its precision.
type Decimal string

// Float is an IEEE float, Bits is 32 or 64.
type Float struct {
	Value float64
	Bits  int
}

// Bool is a BOOLEAN.
type Bool bool

// Temporal is a rendered DATE/TIME/TIMESTAMP (optionally with time zone).
type Temporal string

// BlobRef is the "high:low" id of a BLOB.
type BlobRef string

// Hex is binary (OCTETS) data in upper case hex.
type Hex string

var (
	_ Value = Null{}
	_ Value = String("")
	_ Value = Int(0)
	_ Value = Decimal("")
	_ Value = Float{}
	_ Value = Bool(false)
	_ Value = Temporal("")
	_ Value = BlobRef("")
	_ Value = Hex("")
)

func (Null) isValue()     {}
func (String) isValue()   {}
func (Int) isValue()      {}
func (Decimal) isValue()  {}
func (Float) isValue()    {}
func (Bool) isValue()     {}
func (Temporal) isValue() {}
func (BlobRef) isValue()  {}
func (Hex) isValue()      {}

func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func (v String) MarshalJSON() ([]byte, error) { return marshalString(string(v)) }

func (v Int) MarshalJSON() ([]byte, error) { return strconv.AppendInt(nil, int64(v), 10), nil }

func (v Decimal) MarshalJSON() ([]byte, error) { return marshalString(string(v)) }

func (v Float) MarshalJSON() ([]byte, error) {
	// JSON has no representation for them.
	if math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
		return []byte("null"), nil
	}
	bits := v.Bits
	if bits != 32 {
		bits = 64
	}
	return json.Marshal(json.Number(strconv.FormatFloat(v.Value, 'g', -1, bits)))
}

func (v Bool) MarshalJSON() ([]byte, error) { return strconv.AppendBool(nil, bool(v)), nil }

func (v Temporal) MarshalJSON() ([]byte, error) { return marshalString(string(v)) }

func (v BlobRef) MarshalJSON() ([]byte, error) { return marshalString(string(v)) }

func (v Hex) MarshalJSON() ([]byte, error) { return marshalString(string(v)) }

// marshalString encodes s without HTML escaping.
func marshalString(s string) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
