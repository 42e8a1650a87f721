package ffdb

import (
	"cmp"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hupe1980/ffdb/buffer"
	ffs "github.com/hupe1980/ffdb/internal/fs"
	"github.com/hupe1980/ffdb/record"
	"github.com/hupe1980/ffdb/resource"
)

const (
	// RecordExt is the extension of the record file.
	RecordExt = ".table"
	// IndexExt is the extension of the reserved index file.
	IndexExt = ".index"
)

// RecordPath returns the record file path for base. Any extension on base
// is replaced.
func RecordPath(base string) string {
	return withExt(base, RecordExt)
}

// IndexPath returns the index file path for base. Any extension on base is
// replaced.
func IndexPath(base string) string {
	return withExt(base, IndexExt)
}

func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Table is an append-only file of fixed-size records of type T ordered by
// key K.
//
// A Table is not safe for concurrent use.
type Table[T any, K cmp.Ordered] struct {
	path    string
	codec   record.Codec[T, K]
	buf     buffer.Buffer[T]
	records ffs.File
	index   ffs.File
	opts    options
	logger  *Logger

	// end is the size of the committed prefix, always a whole number of
	// records. dirty is set when the file may hold bytes past end.
	end   int64
	dirty bool

	reserved int64
	closed   bool
}

// Open opens the table at path, creating its files if they do not exist.
// Records committed by earlier sessions are preserved and new records are
// appended after them.
func Open[T any, K cmp.Ordered](path string, codec record.Codec[T, K], buf buffer.Buffer[T], optFns ...Option) (*Table[T, K], error) {
	return open(path, codec, buf, false, optFns)
}

// Overwrite opens the table at path like Open, but truncates both files.
func Overwrite[T any, K cmp.Ordered](path string, codec record.Codec[T, K], buf buffer.Buffer[T], optFns ...Option) (*Table[T, K], error) {
	return open(path, codec, buf, true, optFns)
}

func open[T any, K cmp.Ordered](path string, codec record.Codec[T, K], buf buffer.Buffer[T], truncate bool, optFns []Option) (*Table[T, K], error) {
	opts := applyOptions(optFns)
	t := &Table[T, K]{
		path:   path,
		codec:  codec,
		buf:    buf,
		opts:   opts,
		logger: opts.logger.WithTable(RecordPath(path)),
	}

	err := t.openFiles(truncate)
	var records int64
	if err == nil {
		records, err = t.Count()
	}
	t.logger.LogOpen(context.Background(), truncate, records, err)
	if err != nil {
		_ = t.release()
		return nil, err
	}

	return t, nil
}

func (t *Table[T, K]) openFiles(truncate bool) error {
	if t.opts.resources != nil {
		n := int64(t.buf.Cap())
		if !t.opts.resources.TryAcquireMemory(n) {
			return ErrMemoryLimit
		}
		t.reserved = n
	}

	flag := os.O_RDWR | os.O_CREATE
	if truncate {
		flag |= os.O_TRUNC
	}

	var err error
	recordPath := RecordPath(t.path)
	if t.records, err = t.opts.fileSystem.OpenFile(recordPath, flag, t.opts.fileMode); err != nil {
		return opError("open", recordPath, err)
	}

	indexPath := IndexPath(t.path)
	if t.index, err = t.opts.fileSystem.OpenFile(indexPath, flag, t.opts.fileMode); err != nil {
		return opError("open", indexPath, err)
	}

	info, err := t.records.Stat()
	if err != nil {
		return opError("stat", recordPath, err)
	}
	rem := info.Size() % int64(t.codec.Size())
	t.end = info.Size() - rem
	if rem != 0 {
		t.dirty = true
		t.logger.Warn("record file ends with a partial record, dropping it on next flush",
			"size", info.Size(),
			"record_size", t.codec.Size(),
			"trailing_bytes", rem,
		)
	}

	return nil
}

// release closes any open handles and returns reserved memory. It keeps the
// first error.
func (t *Table[T, K]) release() error {
	var firstErr error
	if t.records != nil {
		if err := t.records.Close(); err != nil {
			firstErr = opError("close", RecordPath(t.path), err)
		}
		t.records = nil
	}
	if t.index != nil {
		if err := t.index.Close(); err != nil && firstErr == nil {
			firstErr = opError("close", IndexPath(t.path), err)
		}
		t.index = nil
	}
	if t.reserved > 0 {
		t.opts.resources.ReleaseMemory(t.reserved)
		t.reserved = 0
	}
	return firstErr
}

// Path returns the base path the table was opened with.
func (t *Table[T, K]) Path() string {
	return t.path
}

// Count returns the number of committed records. Staged records are not
// included.
func (t *Table[T, K]) Count() (int64, error) {
	if t.closed {
		return 0, ErrClosed
	}
	return t.end / int64(t.codec.Size()), nil
}

// Buffered returns the number of bytes staged in the buffer.
func (t *Table[T, K]) Buffered() int {
	return t.buf.Len()
}

// Push hands v to the buffer and writes the staged records to the end of the
// record file when the buffer asks for it.
func (t *Table[T, K]) Push(v T) error {
	if t.closed {
		return ErrClosed
	}

	start := time.Now()
	mustFlush, err := t.buf.Push(v)
	if errors.Is(err, buffer.ErrBufferFull) {
		// A record is still staged from an earlier failed flush.
		if err = t.flushBuffer(); err == nil {
			mustFlush, err = t.buf.Push(v)
		}
	}
	if err == nil && mustFlush {
		err = t.flushBuffer()
	}
	t.opts.metricsCollector.RecordPush(time.Since(start), err)

	return err
}

func (t *Table[T, K]) flushBuffer() error {
	n := t.buf.Len()
	start := time.Now()

	err := t.writeBuffer()
	duration := time.Since(start)

	t.opts.metricsCollector.RecordFlush(n, duration, err)
	t.logger.LogFlush(context.Background(), n, duration, err)

	return err
}

// writeBuffer appends the staged bytes at the committed end. A failed write
// is truncated away so a retry cannot duplicate records.
func (t *Table[T, K]) writeBuffer() error {
	recordPath := RecordPath(t.path)
	if t.dirty {
		if err := t.records.Truncate(t.end); err != nil {
			return opError("truncate", recordPath, err)
		}
		t.dirty = false
	}
	if _, err := t.records.Seek(t.end, io.SeekStart); err != nil {
		return opError("seek", recordPath, err)
	}

	var w io.Writer = t.records
	if t.opts.resources != nil {
		w = resource.NewRateLimitedWriter(context.Background(), w, t.opts.resources)
	}

	n := t.buf.Len()
	if err := t.buf.FlushInto(w); err != nil {
		if terr := t.records.Truncate(t.end); terr != nil {
			t.dirty = true
			err = errors.Join(err, terr)
		}
		return opError("write", recordPath, err)
	}
	t.end += int64(n)
	return nil
}

// Flush writes all staged records to the record file and syncs both files.
func (t *Table[T, K]) Flush() error {
	if t.closed {
		return ErrClosed
	}
	return t.flush()
}

func (t *Table[T, K]) flush() error {
	if err := t.flushBuffer(); err != nil {
		return err
	}
	if err := t.records.Sync(); err != nil {
		return opError("sync", RecordPath(t.path), err)
	}
	if err := t.index.Sync(); err != nil {
		return opError("sync", IndexPath(t.path), err)
	}
	return nil
}

// Close flushes staged records and closes both files. The table cannot be
// used afterwards.
//
// Both files are closed even if the flush fails; the first error is
// returned.
func (t *Table[T, K]) Close() error {
	if t.closed {
		return ErrClosed
	}

	err := t.flush()
	if cerr := t.release(); err == nil {
		err = cerr
	}
	t.closed = true

	t.logger.LogClose(context.Background(), t.end/int64(t.codec.Size()), err)
	return err
}

// Delete closes both files without flushing and removes them. Staged records
// are discarded. The table cannot be used afterwards.
func (t *Table[T, K]) Delete() error {
	if t.closed {
		return ErrClosed
	}

	discarded := t.buf.Len()
	err := t.release()
	t.closed = true

	for _, p := range []string{RecordPath(t.path), IndexPath(t.path)} {
		if rerr := t.opts.fileSystem.Remove(p); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) && err == nil {
			err = opError("remove", p, rerr)
		}
	}

	t.logger.LogDelete(context.Background(), discarded, err)
	return err
}
