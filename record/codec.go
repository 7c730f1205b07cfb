// Package record decodes Firebird records delivered by the replication stream
// into ordered JSON objects.
package record

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"strings"

	perrors "github.com/pkg/errors"

	"github.com/huangjunwen/fbcanal/charset"
	"github.com/huangjunwen/fbcanal/fbtypes"
)

// Transcoder converts text of a charset into UTF-8. *charset.Cache implements it.
type Transcoder interface {
	ToUTF8(id charset.ID, src []byte) (string, error)
}

var (
	_ Transcoder = (*charset.Cache)(nil)
)

// Decoder turns host records into Records. It is not safe for concurrent use.
type Decoder struct {
	transcoder Transcoder
	numeric    fbtypes.NumericFormatter
	temporal   fbtypes.TemporalDecoder
}

// DecoderOption configures Decoder.
type DecoderOption func(*Decoder)

// WithNumericFormatter replaces the INT128/DECFLOAT formatter.
func WithNumericFormatter(numeric fbtypes.NumericFormatter) DecoderOption {
	return func(d *Decoder) {
		d.numeric = numeric
	}
}

// WithTemporalDecoder replaces the date/time decoder.
func WithTemporalDecoder(temporal fbtypes.TemporalDecoder) DecoderOption {
	return func(d *Decoder) {
		d.temporal = temporal
	}
}

// NewDecoder creates a Decoder. If transcoder is nil a new charset.Cache with
// the default factory is used. Formatting services default to fbtypes.Util.
func NewDecoder(transcoder Transcoder, opts ...DecoderOption) *Decoder {
	if transcoder == nil {
		transcoder = charset.NewCache(nil)
	}
	util := fbtypes.NewUtil()
	d := &Decoder{
		transcoder: transcoder,
		numeric:    util,
		temporal:   util,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode decodes all materialized fields of src. Either the whole record is
// decoded or nil is returned with the first error.
func (d *Decoder) Decode(src Source) (*Record, error) {
	ret := New()
	for i := 0; i < src.Count(); i++ {
		field := src.Field(i)
		// Computed fields are not materialized.
		if field == nil {
			continue
		}
		v, err := d.DecodeField(field)
		if err != nil {
			return nil, perrors.Wrapf(err, "field %q", field.Name())
		}
		ret.Set(field.Name(), v)
	}
	return ret, nil
}

// DecodeField decodes a single field.
func (d *Decoder) DecodeField(field Field) (Value, error) {
	data := field.Data()
	if data == nil {
		return Null{}, nil
	}

	typ := field.Type().Normalize()
	switch typ {
	case fbtypes.SQLText:
		b, err := need(data, field.Length(), typ)
		if err != nil {
			return nil, err
		}
		if field.Charset() == charset.Octets {
			return hexOf(b), nil
		}
		return d.text(field.Charset(), trimPad(b))

	case fbtypes.SQLVarying:
		prefix, err := need(data, 2, typ)
		if err != nil {
			return nil, err
		}
		n := int(binary.LittleEndian.Uint16(prefix))
		b, err := need(data[2:], n, typ)
		if err != nil {
			return nil, err
		}
		if field.Charset() == charset.Octets {
			return hexOf(b), nil
		}
		return d.text(field.Charset(), b)

	case fbtypes.SQLShort:
		b, err := need(data, fbtypes.SizeShort, typ)
		if err != nil {
			return nil, err
		}
		return scaled(int64(int16(binary.LittleEndian.Uint16(b))), field.Scale()), nil

	case fbtypes.SQLLong:
		b, err := need(data, fbtypes.SizeLong, typ)
		if err != nil {
			return nil, err
		}
		return scaled(int64(int32(binary.LittleEndian.Uint32(b))), field.Scale()), nil

	case fbtypes.SQLInt64:
		b, err := need(data, fbtypes.SizeInt64, typ)
		if err != nil {
			return nil, err
		}
		return scaled(int64(binary.LittleEndian.Uint64(b)), field.Scale()), nil

	case fbtypes.SQLInt128:
		b, err := need(data, fbtypes.SizeInt128, typ)
		if err != nil {
			return nil, err
		}
		s, err := d.numeric.FormatInt128(b, field.Scale())
		if err != nil {
			return nil, err
		}
		return Decimal(trimPad([]byte(s))), nil

	case fbtypes.SQLDec16:
		b, err := need(data, fbtypes.SizeDec16, typ)
		if err != nil {
			return nil, err
		}
		s, err := d.numeric.FormatDecFloat16(b)
		if err != nil {
			return nil, err
		}
		return Decimal(strings.TrimRight(s, " \x00")), nil

	case fbtypes.SQLDec34:
		b, err := need(data, fbtypes.SizeDec34, typ)
		if err != nil {
			return nil, err
		}
		s, err := d.numeric.FormatDecFloat34(b)
		if err != nil {
			return nil, err
		}
		return Decimal(strings.TrimRight(s, " \x00")), nil

	case fbtypes.SQLFloat:
		b, err := need(data, fbtypes.SizeFloat, typ)
		if err != nil {
			return nil, err
		}
		return Float{Value: float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), Bits: 32}, nil

	case fbtypes.SQLDouble, fbtypes.SQLDFloat:
		b, err := need(data, fbtypes.SizeDouble, typ)
		if err != nil {
			return nil, err
		}
		return Float{Value: math.Float64frombits(binary.LittleEndian.Uint64(b)), Bits: 64}, nil

	case fbtypes.SQLTimestamp:
		b, err := need(data, fbtypes.SizeTimestamp, typ)
		if err != nil {
			return nil, err
		}
		date, t := fbtypes.ReadTimestamp(b)
		return Temporal(d.temporal.DecodeDate(date).String() + " " + d.temporal.DecodeTime(t).String()), nil

	case fbtypes.SQLTypeDate:
		b, err := need(data, fbtypes.SizeDate, typ)
		if err != nil {
			return nil, err
		}
		return Temporal(d.temporal.DecodeDate(int32(binary.LittleEndian.Uint32(b))).String()), nil

	case fbtypes.SQLTypeTime:
		b, err := need(data, fbtypes.SizeTime, typ)
		if err != nil {
			return nil, err
		}
		return Temporal(d.temporal.DecodeTime(binary.LittleEndian.Uint32(b)).String()), nil

	case fbtypes.SQLTimestampTz, fbtypes.SQLTimestampTzEx:
		b, err := need(data, fbtypes.SizeTimestampTz, typ)
		if err != nil {
			return nil, err
		}
		date, clock, zone, err := d.temporal.DecodeTimestampTz(fbtypes.ReadTimestampTz(b))
		if err != nil {
			return nil, err
		}
		return Temporal(date.String() + " " + clock.String() + " " + zone), nil

	case fbtypes.SQLTimeTz, fbtypes.SQLTimeTzEx:
		b, err := need(data, fbtypes.SizeTimeTz, typ)
		if err != nil {
			return nil, err
		}
		clock, zone, err := d.temporal.DecodeTimeTz(fbtypes.ReadTimeTz(b))
		if err != nil {
			return nil, err
		}
		return Temporal(clock.String() + " " + zone), nil

	case fbtypes.SQLBoolean:
		b, err := need(data, fbtypes.SizeBoolean, typ)
		if err != nil {
			return nil, err
		}
		return Bool(b[0] != 0), nil

	case fbtypes.SQLBlob, fbtypes.SQLQuad:
		b, err := need(data, fbtypes.SizeQuad, typ)
		if err != nil {
			return nil, err
		}
		// NOTE: Only the reference, the content (if enabled) comes as a STORE BLOB event.
		return BlobRef(fbtypes.QuadFromBytes(b).String()), nil

	case fbtypes.SQLArray:
		return nil, perrors.Wrap(ErrUnsupportedType, "ARRAY is not supported")

	default:
		return nil, perrors.Wrapf(ErrUnsupportedType, "unknown datatype %s", typ)
	}
}

func (d *Decoder) text(cs charset.ID, b []byte) (Value, error) {
	var (
		s   string
		err error
	)
	if cs.IsPassthrough() {
		s, err = charset.Passthrough(cs, b)
	} else {
		s, err = d.transcoder.ToUTF8(cs, b)
	}
	if err != nil {
		return nil, err
	}
	return String(s), nil
}

func scaled(v int64, scale int) Value {
	if scale == 0 {
		return Int(v)
	}
	return Decimal(fbtypes.FormatScaled(v, scale))
}

func need(data []byte, n int, typ fbtypes.SQLType) ([]byte, error) {
	if n < 0 || len(data) < n {
		return nil, perrors.Wrapf(ErrMalformedField, "%s needs %d bytes but got %d", typ, n, len(data))
	}
	return data[:n], nil
}

func trimPad(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == ' ' {
		end--
	}
	return b[:end]
}

func hexOf(b []byte) Hex {
	return Hex(strings.ToUpper(hex.EncodeToString(b)))
}
