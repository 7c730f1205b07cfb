package fbtypes

import (
	"encoding/binary"
	"math/big"

	"github.com/shopspring/decimal"
)

// NumericFormatter renders the numeric types that have no native Go counterpart.
type NumericFormatter interface {
	// FormatInt128 renders a native FB_I128 with the given (non-positive) scale.
	FormatInt128(b []byte, scale int) (string, error)

	// FormatDecFloat16 renders a native FB_DEC16 (IEEE 754 decimal64, DPD).
	FormatDecFloat16(b []byte) (string, error)

	// FormatDecFloat34 renders a native FB_DEC34 (IEEE 754 decimal128, DPD).
	FormatDecFloat34(b []byte) (string, error)
}

// FormatScaled renders an integer with a decimal scale as a fixed point string
// with exactly -scale fractional digits, e.g. (12345, -2) => "123.45" and
// (-5, -2) => "-0.05".
func FormatScaled(v int64, scale int) string {
	return formatDecimal(decimal.New(v, int32(scale)), scale)
}

func (u *Util) FormatInt128(b []byte, scale int) (string, error) {
	return formatDecimal(decimal.NewFromBigInt(Int128FromBytes(b), int32(scale)), scale), nil
}

func (u *Util) FormatDecFloat16(b []byte) (string, error) {
	return decodeDecimal64(binary.LittleEndian.Uint64(b[0:8])).String(), nil
}

func (u *Util) FormatDecFloat34(b []byte) (string, error) {
	lo := binary.LittleEndian.Uint64(b[0:8])
	hi := binary.LittleEndian.Uint64(b[8:16])
	return decodeDecimal128(hi, lo).String(), nil
}

// Int128FromBytes reads a native (little-endian, two's complement) FB_I128.
func Int128FromBytes(b []byte) *big.Int {
	lo := binary.LittleEndian.Uint64(b[0:8])
	hi := int64(binary.LittleEndian.Uint64(b[8:16]))

	ret := big.NewInt(hi)
	ret.Lsh(ret, 64)
	return ret.Add(ret, new(big.Int).SetUint64(lo))
}

func formatDecimal(d decimal.Decimal, scale int) string {
	if scale < 0 {
		return d.StringFixed(int32(-scale))
	}
	return d.String()
}
