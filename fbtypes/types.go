// Package fbtypes holds Firebird wire types and the default implementations of
// the formatting services the record codec depends on: date/time decomposition
// (with time zones) and INT128/DECFLOAT rendering.
package fbtypes

import (
	"fmt"
)

// SQLType is a Firebird SQL type tag (the nullable bit removed).
type SQLType uint32

// Firebird SQL type tags.
const (
	SQLVarying       SQLType = 448
	SQLText          SQLType = 452
	SQLDouble        SQLType = 480
	SQLFloat         SQLType = 482
	SQLLong          SQLType = 496
	SQLShort         SQLType = 500
	SQLTimestamp     SQLType = 510
	SQLBlob          SQLType = 520
	SQLDFloat        SQLType = 530
	SQLArray         SQLType = 540
	SQLQuad          SQLType = 550
	SQLTypeTime      SQLType = 560
	SQLTypeDate      SQLType = 570
	SQLInt64         SQLType = 580
	SQLTimestampTzEx SQLType = 32748
	SQLTimeTzEx      SQLType = 32750
	SQLInt128        SQLType = 32752
	SQLTimestampTz   SQLType = 32754
	SQLTimeTz        SQLType = 32756
	SQLDec16         SQLType = 32760
	SQLDec34         SQLType = 32762
	SQLBoolean       SQLType = 32764
	SQLNull          SQLType = 32766
)

var sqlTypeNames = map[SQLType]string{
	SQLVarying:       "VARYING",
	SQLText:          "TEXT",
	SQLDouble:        "DOUBLE",
	SQLFloat:         "FLOAT",
	SQLLong:          "LONG",
	SQLShort:         "SHORT",
	SQLTimestamp:     "TIMESTAMP",
	SQLBlob:          "BLOB",
	SQLDFloat:        "D_FLOAT",
	SQLArray:         "ARRAY",
	SQLQuad:          "QUAD",
	SQLTypeTime:      "TIME",
	SQLTypeDate:      "DATE",
	SQLInt64:         "INT64",
	SQLTimestampTzEx: "TIMESTAMP_TZ_EX",
	SQLTimeTzEx:      "TIME_TZ_EX",
	SQLInt128:        "INT128",
	SQLTimestampTz:   "TIMESTAMP_TZ",
	SQLTimeTz:        "TIME_TZ",
	SQLDec16:         "DEC16",
	SQLDec34:         "DEC34",
	SQLBoolean:       "BOOLEAN",
	SQLNull:          "NULL",
}

// Normalize clears the nullable flag (lowest bit) of a raw tag.
func (t SQLType) Normalize() SQLType {
	return t &^ 1
}

func (t SQLType) String() string {
	if name, ok := sqlTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SQLTYPE(%d)", uint32(t))
}

// Byte sizes of fixed-width Firebird values.
const (
	SizeShort       = 2
	SizeLong        = 4
	SizeInt64       = 8
	SizeInt128      = 16
	SizeFloat       = 4
	SizeDouble      = 8
	SizeDate        = 4
	SizeTime        = 4
	SizeTimestamp   = 8
	SizeTimeTz      = 6
	SizeTimestampTz = 10
	SizeQuad        = 8
	SizeDec16       = 8
	SizeDec34       = 16
	SizeBoolean     = 1
)
