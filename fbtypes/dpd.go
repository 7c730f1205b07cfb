package fbtypes

import (
	"strconv"
	"strings"
)

// decFloat is an unpacked IEEE 754 decimal floating point value.
type decFloat struct {
	negative bool
	special  string // "Infinity", "NaN", "sNaN" or empty for finite values
	digits   string // coefficient digits without leading zeros, "0" for zero
	exponent int
}

const (
	dec64Bias       = 398
	dec64ExpBits    = 8
	dec64Declets    = 5
	dec128Bias      = 6176
	dec128ExpBits   = 12
	dec128Declets   = 11
	combinationBits = 5
)

// decodeDecimal64 unpacks a decimal64 in densely packed decimal encoding.
func decodeDecimal64(v uint64) decFloat {
	top := uint32(v >> (64 - 1 - combinationBits - dec64ExpBits))
	declets := make([]uint32, dec64Declets)
	for i := range declets {
		shift := uint(10 * (dec64Declets - 1 - i))
		declets[i] = uint32(v>>shift) & 0x3FF
	}
	return unpackDecimal(top, dec64ExpBits, dec64Bias, declets)
}

// decodeDecimal128 unpacks a decimal128 (given as its high and low 64 bits) in
// densely packed decimal encoding.
func decodeDecimal128(hi, lo uint64) decFloat {
	top := uint32(hi >> (64 - 1 - combinationBits - dec128ExpBits))
	declets := make([]uint32, dec128Declets)
	for i := range declets {
		// Declet i occupies bits [pos, pos+10) of the 128-bit word.
		pos := uint(10 * (dec128Declets - 1 - i))
		var d uint64
		switch {
		case pos >= 64:
			d = hi >> (pos - 64)
		case pos+10 <= 64:
			d = lo >> pos
		default:
			d = lo>>pos | hi<<(64-pos)
		}
		declets[i] = uint32(d) & 0x3FF
	}
	return unpackDecimal(top, dec128ExpBits, dec128Bias, declets)
}

// unpackDecimal decodes the sign/combination/exponent continuation prefix
// (top, right aligned) and the coefficient continuation declets.
func unpackDecimal(top uint32, expBits uint, bias int, declets []uint32) decFloat {
	ret := decFloat{}
	expCont := top & (1<<expBits - 1)
	comb := (top >> expBits) & 0x1F
	ret.negative = (top>>(expBits+combinationBits))&1 == 1

	var expMSB, msd uint32
	switch {
	case comb>>1 == 0xF:
		if comb&1 == 0 {
			ret.special = "Infinity"
		} else if expCont>>(expBits-1)&1 == 1 {
			ret.special = "sNaN"
		} else {
			ret.special = "NaN"
		}
		return ret
	case comb>>3 == 0x3:
		expMSB = (comb >> 1) & 0x3
		msd = 8 + comb&1
	default:
		expMSB = comb >> 3
		msd = comb & 0x7
	}

	sb := strings.Builder{}
	sb.WriteByte(byte('0' + msd))
	for _, declet := range declets {
		d2, d1, d0 := unpackDeclet(declet)
		sb.WriteByte(byte('0' + d2))
		sb.WriteByte(byte('0' + d1))
		sb.WriteByte(byte('0' + d0))
	}
	ret.digits = strings.TrimLeft(sb.String(), "0")
	if ret.digits == "" {
		ret.digits = "0"
	}
	ret.exponent = int(expMSB<<expBits|expCont) - bias
	return ret
}

// unpackDeclet decodes 10 DPD bits into 3 decimal digits.
func unpackDeclet(d uint32) (d2, d1, d0 uint32) {
	bit := func(i uint) uint32 { return (d >> i) & 1 }
	p, q, r := bit(9), bit(8), bit(7)
	s, t, u := bit(6), bit(5), bit(4)
	v, w, x, y := bit(3), bit(2), bit(1), bit(0)

	pqr := p<<2 | q<<1 | r
	stu := s<<2 | t<<1 | u
	wxy := w<<2 | x<<1 | y

	if v == 0 {
		return pqr, stu, wxy
	}
	switch w<<1 | x {
	case 0:
		return pqr, stu, 8 + y
	case 1:
		return pqr, 8 + u, s<<2 | t<<1 | y
	case 2:
		return 8 + r, stu, p<<2 | q<<1 | y
	}
	switch s<<1 | t {
	case 0:
		return 8 + r, 8 + u, p<<2 | q<<1 | y
	case 1:
		return 8 + r, p<<2 | q<<1 | u, 8 + y
	case 2:
		return pqr, 8 + u, 8 + y
	}
	return 8 + r, 8 + u, 8 + y
}

// String renders the value with the IEEE 754 to-scientific-string rules, the
// form the engine itself prints DECFLOAT values in.
func (f decFloat) String() string {
	sign := ""
	if f.negative {
		sign = "-"
	}
	if f.special != "" {
		return sign + f.special
	}

	digits := f.digits
	adjusted := f.exponent + len(digits) - 1

	if f.exponent <= 0 && adjusted >= -6 {
		if f.exponent == 0 {
			return sign + digits
		}
		point := len(digits) + f.exponent
		if point > 0 {
			return sign + digits[:point] + "." + digits[point:]
		}
		return sign + "0." + strings.Repeat("0", -point) + digits
	}

	ret := sign + digits[:1]
	if len(digits) > 1 {
		ret += "." + digits[1:]
	}
	ret += "E"
	if adjusted >= 0 {
		ret += "+"
	}
	return ret + strconv.Itoa(adjusted)
}
