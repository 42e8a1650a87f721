package buffer

import (
	"errors"
	"io"
)

// ErrBufferFull is returned by Push when a previous push already asked for a
// flush and the buffer was not drained.
var ErrBufferFull = errors.New("buffer: full, flush required")

// Buffer is an in-memory staging area for records of type T.
// Implementations are not safe for concurrent use.
type Buffer[T any] interface {
	// Push stages v. mustFlush reports whether the caller has to drain the
	// buffer before the next push.
	Push(v T) (mustFlush bool, err error)
	// FlushInto writes all staged records to w in push order and empties
	// the buffer.
	FlushInto(w io.Writer) error
	// Len returns the number of staged bytes.
	Len() int
	// Cap returns the staging capacity in bytes.
	Cap() int
}
