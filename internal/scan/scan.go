// Package scan implements the chunked first-match search over a stream of
// fixed-width records.
package scan

import (
	"cmp"
	"errors"
	"io"

	"github.com/hupe1980/ffdb/record"
)

// ErrNotMonotonic is returned by Verify when the predicate turns false again
// after having been true.
var ErrNotMonotonic = errors.New("predicate is not monotonic over record order")

// maxChunkBytes bounds the chunk buffer. Chunk size does not affect results.
const maxChunkBytes = 64 << 20

func chunkBytes(chunkRecords, size int) int {
	chunkRecords = max(chunkRecords, 1)
	chunkRecords = min(chunkRecords, max(maxChunkBytes/size, 1))
	return chunkRecords * size
}

// Result describes the outcome of First.
type Result struct {
	// Index is the zero-based position of the first matching record.
	Index int64
	// Found reports whether any record matched.
	Found bool
	// ChunksRead counts chunk reads that returned data.
	ChunksRead int
	// ChunksSkipped counts chunks discarded after testing their last record.
	ChunksSkipped int
	// Decoded counts records deserialized.
	Decoded int64
}

// First returns the position of the first record in r whose key satisfies
// pred.
//
// pred must be false for a prefix of the stream and true for the rest. Under
// that precondition a chunk whose last record fails pred holds no match, so
// only one record per such chunk is decoded. Trailing bytes that do not form
// a whole record are ignored. chunkRecords below 1 is treated as 1 and very
// large values are capped.
func First[T any, K cmp.Ordered](r io.Reader, c record.Codec[T, K], chunkRecords int, pred func(K) bool) (Result, error) {
	size := c.Size()
	buf := make([]byte, chunkBytes(chunkRecords, size))

	var res Result
	var base int64
	for {
		n, err := io.ReadFull(r, buf)
		last := false
		switch {
		case errors.Is(err, io.EOF):
			return res, nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			last = true
		case err != nil:
			return res, err
		}
		res.ChunksRead++

		count := n / size
		if count > 0 {
			res.Decoded++
			if !pred(c.Key(c.Get(buf[(count-1)*size:]))) {
				res.ChunksSkipped++
			} else {
				for i := 0; i < count; i++ {
					res.Decoded++
					if pred(c.Key(c.Get(buf[i*size:]))) {
						res.Index = base + int64(i)
						res.Found = true
						return res, nil
					}
				}
			}
			base += int64(count)
		}

		if last {
			return res, nil
		}
	}
}

// Verify scans every record of r and returns the position of the first one
// satisfying pred. It fails with ErrNotMonotonic if a later record does not.
func Verify[T any, K cmp.Ordered](r io.Reader, c record.Codec[T, K], chunkRecords int, pred func(K) bool) (int64, bool, error) {
	size := c.Size()
	buf := make([]byte, chunkBytes(chunkRecords, size))

	var (
		pos   int64
		first int64 = -1
	)
	for {
		n, err := io.ReadFull(r, buf)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, false, err
		}

		for off := 0; off+size <= n; off += size {
			ok := pred(c.Key(c.Get(buf[off:])))
			switch {
			case ok && first < 0:
				first = pos
			case !ok && first >= 0:
				return 0, false, ErrNotMonotonic
			}
			pos++
		}

		if err != nil {
			break
		}
	}

	if first < 0 {
		return 0, false, nil
	}
	return first, true, nil
}
