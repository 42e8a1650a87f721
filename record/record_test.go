package record

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointCodec_RoundTrip(t *testing.T) {
	c := PointCodec{}
	points := []Point{
		{},
		{Timestamp: 561324, Value: 461.546},
		{Timestamp: math.MaxUint64, Value: float32(math.Inf(-1))},
		{Timestamp: 1, Value: -0.0},
		{Timestamp: 42, Value: math.SmallestNonzeroFloat32},
	}

	buf := make([]byte, c.Size())
	for _, p := range points {
		c.Put(buf, p)
		assert.Equal(t, p, c.Get(buf))
	}
}

func TestPointCodec_Layout(t *testing.T) {
	c := PointCodec{}
	buf := make([]byte, PointSize)
	c.Put(buf, Point{Timestamp: 0x0102030405060708, Value: 1})

	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buf[:8])
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, buf[8:])
	assert.Equal(t, uint64(0x0102030405060708), c.Key(c.Get(buf)))
}

func TestPointCodec_NaN(t *testing.T) {
	c := PointCodec{}
	buf := make([]byte, PointSize)
	c.Put(buf, Point{Timestamp: 7, Value: float32(math.NaN())})

	got := c.Get(buf)
	assert.Equal(t, uint64(7), got.Timestamp)
	assert.True(t, math.IsNaN(float64(got.Value)))
}

func TestWriteRead(t *testing.T) {
	c := PointCodec{}
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, c, Point{Timestamp: 1, Value: 1.5}))
	require.NoError(t, Write(&buf, c, Point{Timestamp: 2, Value: 2.5}))
	assert.Equal(t, 2*PointSize, buf.Len())

	p, err := Read(&buf, c)
	require.NoError(t, err)
	assert.Equal(t, Point{Timestamp: 1, Value: 1.5}, p)

	p, err = Read(&buf, c)
	require.NoError(t, err)
	assert.Equal(t, Point{Timestamp: 2, Value: 2.5}, p)

	_, err = Read(&buf, c)
	assert.ErrorIs(t, err, io.EOF)
}

func TestRead_Truncated(t *testing.T) {
	_, err := Read(bytes.NewReader(make([]byte, PointSize-1)), PointCodec{})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
