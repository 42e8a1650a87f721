package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how an archive payload is encoded.
type Compression uint8

const (
	// None stores the record file unchanged.
	None Compression = 0
	// LZ4 stores an lz4 frame stream (fast, good for warm data).
	LZ4 Compression = 1
	// Zstd stores a zstd stream (better ratio, good for cold data).
	Zstd Compression = 2
)

// ErrUnknownCompression is returned for an unsupported compression byte.
var ErrUnknownCompression = errors.New("archive: unknown compression")

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

func (c Compression) valid() bool {
	return c <= Zstd
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// newEncoder wraps w so that writes are compressed with c. Closing the
// returned writer flushes the stream but does not close w.
func newEncoder(w io.Writer, c Compression, level zstd.EncoderLevel) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(level))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
}

// newDecoder wraps r so that reads return the decompressed payload. The
// returned release func frees decoder resources.
func newDecoder(r io.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case None:
		return r, func() {}, nil
	case LZ4:
		return lz4.NewReader(r), func() {}, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
}
