package record

import (
	"github.com/huangjunwen/fbcanal/charset"
	"github.com/huangjunwen/fbcanal/fbtypes"
)

// Field is one column of a record delivered by the host.
type Field interface {
	Name() string

	// Type is the SQL type tag.
	Type() fbtypes.SQLType

	SubType() int

	// Scale is the decimal scale of numeric types (<= 0).
	Scale() int

	// Length is the byte length of the value (TEXT: the padded length).
	Length() int

	Charset() charset.ID

	// Data is the value in the host's native layout, nil for NULL.
	Data() []byte
}

// Source is a record delivered by the host.
type Source interface {
	// Count returns the number of field descriptors; 0 means the record format
	// was not found.
	Count() int

	// Field returns the i-th field, or nil if the field is not materialized
	// (e.g. computed fields).
	Field(i int) Field
}

// RawField is a plain Field.
type RawField struct {
	FieldName    string
	FieldType    fbtypes.SQLType
	FieldSubType int
	FieldScale   int
	FieldLength  int
	FieldCharset charset.ID
	FieldData    []byte
}

// RawRecord is a plain Source, nil elements are fields that are not materialized.
type RawRecord []*RawField

var (
	_ Field  = (*RawField)(nil)
	_ Source = RawRecord(nil)
)

func (f *RawField) Name() string          { return f.FieldName }
func (f *RawField) Type() fbtypes.SQLType { return f.FieldType }
func (f *RawField) SubType() int          { return f.FieldSubType }
func (f *RawField) Scale() int            { return f.FieldScale }
func (f *RawField) Length() int           { return f.FieldLength }
func (f *RawField) Charset() charset.ID   { return f.FieldCharset }
func (f *RawField) Data() []byte          { return f.FieldData }

func (r RawRecord) Count() int { return len(r) }

func (r RawRecord) Field(i int) Field {
	// Avoid returning a non-nil interface holding a nil pointer.
	if r[i] == nil {
		return nil
	}
	return r[i]
}
