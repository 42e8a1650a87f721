package buffer

import (
	"cmp"
	"io"

	"github.com/hupe1980/ffdb/record"
)

// Unbuffered stages at most one record. Every push must be followed by a
// flush, which makes it the zero-staging baseline.
type Unbuffered[T any, K cmp.Ordered] struct {
	codec   record.Codec[T, K]
	pending T
	ok      bool
}

// NewUnbuffered returns an Unbuffered for records encoded with c.
func NewUnbuffered[T any, K cmp.Ordered](c record.Codec[T, K]) *Unbuffered[T, K] {
	return &Unbuffered[T, K]{codec: c}
}

// Push stages v and always reports true.
//
// If a record is still pending because its flush failed, Push returns
// (true, ErrBufferFull) and keeps the pending record, as Heap does.
func (u *Unbuffered[T, K]) Push(v T) (bool, error) {
	if u.ok {
		return true, ErrBufferFull
	}
	u.pending = v
	u.ok = true
	return true, nil
}

// FlushInto writes the pending record, if any, and clears the slot.
func (u *Unbuffered[T, K]) FlushInto(w io.Writer) error {
	if !u.ok {
		return nil
	}
	if err := record.Write(w, u.codec, u.pending); err != nil {
		return err
	}
	var zero T
	u.pending = zero
	u.ok = false
	return nil
}

// Pending reports whether a record is waiting to be flushed.
func (u *Unbuffered[T, K]) Pending() bool { return u.ok }

func (u *Unbuffered[T, K]) Len() int {
	if u.ok {
		return u.codec.Size()
	}
	return 0
}

func (u *Unbuffered[T, K]) Cap() int { return u.codec.Size() }
