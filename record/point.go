package record

import (
	"encoding/binary"
	"math"
)

// PointSize is the serialized width of a Point.
const PointSize = 12

// Point is a single time-series sample.
type Point struct {
	Timestamp uint64
	Value     float32
}

// PointCodec encodes Points as little-endian timestamp (8 bytes) followed by
// the IEEE-754 bits of the value (4 bytes).
type PointCodec struct{}

var _ Codec[Point, uint64] = PointCodec{}

func (PointCodec) Size() int { return PointSize }

func (PointCodec) Key(p Point) uint64 { return p.Timestamp }

func (PointCodec) Put(dst []byte, p Point) {
	_ = dst[PointSize-1] // bounds check hint
	binary.LittleEndian.PutUint64(dst[0:8], p.Timestamp)
	binary.LittleEndian.PutUint32(dst[8:12], math.Float32bits(p.Value))
}

func (PointCodec) Get(src []byte) Point {
	_ = src[PointSize-1]
	return Point{
		Timestamp: binary.LittleEndian.Uint64(src[0:8]),
		Value:     math.Float32frombits(binary.LittleEndian.Uint32(src[8:12])),
	}
}
