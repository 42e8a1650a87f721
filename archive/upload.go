package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/ffdb"
	"github.com/hupe1980/ffdb/blobstore"
	"github.com/hupe1980/ffdb/internal/fs"
	"github.com/hupe1980/ffdb/resource"
	"golang.org/x/sync/errgroup"
)

const headerSize = 4

var magic = [3]byte{'F', 'F', 'A'}

// ErrInvalidHeader is returned when a blob does not start with an archive
// header.
var ErrInvalidHeader = errors.New("archive: invalid header")

// Info describes an uploaded archive.
type Info struct {
	Name        string
	Compression Compression
	// RecordBytes is the size of the record file that was archived.
	RecordBytes int64
}

// Upload archives the record file of the table at base as blob name.
//
// Only the bytes present when Upload starts are archived, so a table that
// is still open should be flushed first. The blob is discarded if the
// upload fails.
func Upload(ctx context.Context, store blobstore.BlobStore, name, base string, optFns ...Option) (Info, error) {
	o := applyOptions(optFns)
	if !o.compression.valid() {
		return Info{}, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(o.compression))
	}

	path := ffdb.RecordPath(base)
	f, err := fs.Default.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Info{}, err
	}
	size := st.Size()

	w, err := store.Create(ctx, name)
	if err != nil {
		return Info{}, fmt.Errorf("archive: create %s: %w", name, err)
	}

	var src io.Reader = io.NewSectionReader(f, 0, size)
	if o.resources != nil {
		src = resource.NewRateLimitedReader(ctx, src, o.resources)
	}

	if err := writeArchive(w, src, size, o); err != nil {
		abort(w)
		return Info{}, fmt.Errorf("archive: upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return Info{}, fmt.Errorf("archive: upload %s: %w", name, err)
	}

	return Info{Name: name, Compression: o.compression, RecordBytes: size}, nil
}

func writeArchive(w io.Writer, src io.Reader, size int64, o options) error {
	header := [headerSize]byte{magic[0], magic[1], magic[2], byte(o.compression)}
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	// An empty table is stored as a bare header for every compression.
	if size == 0 {
		return nil
	}

	enc, err := newEncoder(w, o.compression, o.zstdLevel)
	if err != nil {
		return err
	}
	if _, err := io.Copy(enc, src); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func abort(w blobstore.WritableBlob) {
	if a, ok := w.(blobstore.Aborter); ok {
		_ = a.Abort()
		return
	}
	_ = w.Close()
}

// UploadAll archives several tables concurrently. tables maps blob names to
// table base paths. The first failure cancels the remaining uploads.
func UploadAll(ctx context.Context, store blobstore.BlobStore, tables map[string]string, optFns ...Option) ([]Info, error) {
	o := applyOptions(optFns)

	g, ctx := errgroup.WithContext(ctx)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}

	infos := make([]Info, len(tables))
	i := 0
	for name, base := range tables {
		slot := i
		i++
		g.Go(func() error {
			if err := o.resources.AcquireBackground(ctx); err != nil {
				return err
			}
			defer o.resources.ReleaseBackground()

			info, err := Upload(ctx, store, name, base, optFns...)
			if err != nil {
				return err
			}
			infos[slot] = info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return infos, nil
}
