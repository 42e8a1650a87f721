package buffer

import (
	"cmp"
	"io"

	"github.com/hupe1980/ffdb/record"
)

// Heap stages serialized records in a byte area reserved once at
// construction.
//
// Push encodes directly into the reserved array past the logical length and
// only then extends the length, so growth never zeroes memory.
type Heap[T any, K cmp.Ordered] struct {
	codec record.Codec[T, K]
	size  int
	buf   []byte
}

// NewHeap returns a Heap holding up to capacity bytes of records encoded with
// c. A capacity smaller than one record is raised to one record.
func NewHeap[T any, K cmp.Ordered](c record.Codec[T, K], capacity int) *Heap[T, K] {
	size := c.Size()
	if capacity < size {
		capacity = size
	}
	return &Heap[T, K]{
		codec: c,
		size:  size,
		buf:   make([]byte, 0, capacity),
	}
}

// Push encodes v behind the staged records.
//
// It reports true once another record would not fit. Pushing into a buffer
// that cannot take v returns (true, ErrBufferFull) and leaves the staged
// bytes unchanged.
func (h *Heap[T, K]) Push(v T) (bool, error) {
	n := len(h.buf)
	end := n + h.size
	if end > cap(h.buf) {
		return true, ErrBufferFull
	}
	h.codec.Put(h.buf[n:end], v)
	h.buf = h.buf[:end]
	return end+h.size > cap(h.buf), nil
}

// FlushInto writes the staged bytes to w in a single call and resets the
// buffer. On error nothing is discarded.
func (h *Heap[T, K]) FlushInto(w io.Writer) error {
	if len(h.buf) == 0 {
		return nil
	}
	n, err := w.Write(h.buf)
	if err != nil {
		return err
	}
	if n != len(h.buf) {
		return io.ErrShortWrite
	}
	h.buf = h.buf[:0]
	return nil
}

// Bytes returns the staged bytes. The slice is only valid until the next
// Push or FlushInto.
func (h *Heap[T, K]) Bytes() []byte { return h.buf }

func (h *Heap[T, K]) Len() int { return len(h.buf) }

func (h *Heap[T, K]) Cap() int { return cap(h.buf) }
