package archive

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/ffdb"
	"github.com/hupe1980/ffdb/blobstore"
	"github.com/hupe1980/ffdb/internal/fs"
	"github.com/hupe1980/ffdb/internal/scan"
	"github.com/hupe1980/ffdb/record"
)

// Reader streams the decoded record bytes of an archive.
type Reader struct {
	r           io.Reader
	blob        blobstore.Blob
	body        io.ReadCloser
	release     func()
	compression Compression
}

// Open opens archive name in store for reading.
func Open(ctx context.Context, store blobstore.BlobStore, name string) (*Reader, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", name, err)
	}

	r, err := newReader(ctx, blob)
	if err != nil {
		_ = blob.Close()
		return nil, fmt.Errorf("archive: open %s: %w", name, err)
	}
	return r, nil
}

func newReader(ctx context.Context, blob blobstore.Blob) (*Reader, error) {
	if blob.Size() < headerSize {
		return nil, ErrInvalidHeader
	}

	var header [headerSize]byte
	if _, err := blob.ReadAt(ctx, header[:], 0); err != nil {
		return nil, err
	}
	if !bytes.Equal(header[:3], magic[:]) {
		return nil, ErrInvalidHeader
	}
	c := Compression(header[3])
	if !c.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, header[3])
	}

	body, err := blob.ReadRange(ctx, headerSize, blob.Size()-headerSize)
	if err != nil {
		return nil, err
	}
	if blob.Size() == headerSize {
		return &Reader{r: body, blob: blob, body: body, release: func() {}, compression: c}, nil
	}

	dec, release, err := newDecoder(body, c)
	if err != nil {
		_ = body.Close()
		return nil, err
	}

	return &Reader{
		r:           dec,
		blob:        blob,
		body:        body,
		release:     release,
		compression: c,
	}, nil
}

func (r *Reader) Read(p []byte) (int, error) { return r.r.Read(p) }

// Compression returns the payload encoding of the archive.
func (r *Reader) Compression() Compression { return r.compression }

// Close releases the decoder and the underlying blob.
func (r *Reader) Close() error {
	r.release()
	err := r.body.Close()
	if cerr := r.blob.Close(); err == nil {
		err = cerr
	}
	return err
}

// Search returns the position of the first archived record whose key
// satisfies pred, scanning chunkRecords records at a time.
//
// pred must be false for a prefix of the records and true for the rest, as
// for Table.SearchFirst.
func Search[T any, K cmp.Ordered](ctx context.Context, store blobstore.BlobStore, name string, codec record.Codec[T, K], chunkRecords int, pred func(K) bool) (int64, bool, error) {
	r, err := Open(ctx, store, name)
	if err != nil {
		return 0, false, err
	}
	defer r.Close()

	res, err := scan.First(r, codec, chunkRecords, pred)
	if err != nil {
		return 0, false, fmt.Errorf("archive: search %s: %w", name, err)
	}
	return res.Index, res.Found, nil
}

// Restore writes archive name to the record file of the table at base and
// creates an empty index file, replacing existing files and creating the
// parent directory if needed. The table can then be opened with ffdb.Open.
func Restore(ctx context.Context, store blobstore.BlobStore, name, base string) (int64, error) {
	r, err := Open(ctx, store, name)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	if err := fs.Default.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return 0, err
	}

	flag := os.O_RDWR | os.O_CREATE | os.O_TRUNC

	recordPath := ffdb.RecordPath(base)
	f, err := fs.Default.OpenFile(recordPath, flag, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("archive: restore %s: %w", name, err)
	}

	idx, err := fs.Default.OpenFile(ffdb.IndexPath(base), flag, 0o644)
	if err != nil {
		return 0, err
	}
	if err := idx.Close(); err != nil {
		return 0, err
	}

	return n, nil
}
