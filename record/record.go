package record

import (
	"cmp"
	"io"
)

// Codec describes how values of a record kind map to fixed-width bytes.
//
// Put must write exactly Size() bytes and Get must consume exactly Size()
// bytes; Get(Put(v)) == v for every value a table persists. Neither method
// validates its input.
type Codec[T any, K cmp.Ordered] interface {
	// Size returns the serialized width. It must not change between calls.
	Size() int
	// Key extracts the sort key of v.
	Key(v T) K
	// Put serializes v into dst[:Size()].
	Put(dst []byte, v T)
	// Get deserializes a value from src[:Size()].
	Get(src []byte) T
}

// Write serializes v and writes it to w.
func Write[T any, K cmp.Ordered](w io.Writer, c Codec[T, K], v T) error {
	buf := make([]byte, c.Size())
	c.Put(buf, v)
	_, err := w.Write(buf)
	return err
}

// Read reads exactly one record from r.
//
// It returns io.EOF if r is empty and io.ErrUnexpectedEOF if r ends inside a
// record.
func Read[T any, K cmp.Ordered](r io.Reader, c Codec[T, K]) (T, error) {
	buf := make([]byte, c.Size())
	if _, err := io.ReadFull(r, buf); err != nil {
		var zero T
		return zero, err
	}
	return c.Get(buf), nil
}
