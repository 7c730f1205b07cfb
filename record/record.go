package record

import (
	"bytes"
)

// Record is an ordered mapping of field name to Value. JSON keys keep the
// column order.
type Record struct {
	names  []string
	values map[string]Value
}

// New creates an empty Record.
func New() *Record {
	return &Record{
		values: map[string]Value{},
	}
}

// Set sets the value of a field. Setting an existing field keeps its position.
func (r *Record) Set(name string, v Value) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Get returns the value of a field.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns field names in column order.
func (r *Record) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.names)
}

// ChangedFields returns fields of r which are absent from old or whose value
// differs, in column order of r.
func (r *Record) ChangedFields(old *Record) []string {
	ret := []string{}
	for _, name := range r.names {
		oldV, ok := old.Get(name)
		if !ok || oldV != r.values[name] {
			ret = append(ret, name)
		}
	}
	return ret
}

func (r *Record) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalString(name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := r.values[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
