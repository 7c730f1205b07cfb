package fbtypes

import (
	"encoding/binary"
	"fmt"
)

// Quad is ISC_QUAD, the 64-bit composite id of a BLOB.
type Quad struct {
	High int32
	Low  uint32
}

// QuadFromBytes reads a native (little-endian) ISC_QUAD.
func QuadFromBytes(b []byte) Quad {
	return Quad{
		High: int32(binary.LittleEndian.Uint32(b[0:4])),
		Low:  binary.LittleEndian.Uint32(b[4:8]),
	}
}

// String returns "high:low", the reference used both in records and in
// STORE BLOB events.
func (q Quad) String() string {
	return fmt.Sprintf("%d:%d", q.High, q.Low)
}
