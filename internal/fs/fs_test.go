package fs

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "subdir")
	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	fpath := filepath.Join(dir, "series.table")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	assert.Equal(t, fpath, f.Name())

	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	buf := make([]byte, 3)
	_, err = f.ReadAt(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, "llo", string(buf))

	require.NoError(t, f.Close())

	info, err = os.Stat(fpath)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	require.NoError(t, lfs.Remove(fpath))
	_, err = os.Stat(fpath)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS_WriteLimit(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule(".table", Fault{FailAfterBytes: 5})

	tmp := t.TempDir()
	f, err := ffs.OpenFile(filepath.Join(tmp, "a.table"), os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = f.Write([]byte("!"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, 0, n)

	// Unmatched files are untouched.
	g, err := ffs.OpenFile(filepath.Join(tmp, "a.index"), os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	defer g.Close()
	_, err = g.Write([]byte("hello world"))
	assert.NoError(t, err)
}

func TestFaultyFS_Operations(t *testing.T) {
	tmp := t.TempDir()
	custom := io.ErrClosedPipe

	ffs := NewFaultyFS(LocalFS{})
	ffs.AddRule(".table", Fault{
		FailAfterBytes: -1,
		FailOnRead:     true,
		FailOnSeek:     true,
		FailOnSync:     true,
		FailOnClose:    true,
		FailOnRemove:   true,
		Err:            custom,
	})

	path := filepath.Join(tmp, "b.table")
	f, err := ffs.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)

	_, err = f.Write([]byte("data"))
	require.NoError(t, err)

	_, err = f.Read(make([]byte, 1))
	assert.ErrorIs(t, err, custom)
	_, err = f.ReadAt(make([]byte, 1), 0)
	assert.ErrorIs(t, err, custom)
	_, err = f.Seek(0, io.SeekStart)
	assert.ErrorIs(t, err, custom)
	assert.ErrorIs(t, f.Sync(), custom)
	assert.ErrorIs(t, f.Close(), custom)
	assert.ErrorIs(t, ffs.Remove(path), custom)

	ffs.ClearRules()
	assert.NoError(t, ffs.Remove(path))
}

func TestFaultyFS_FailOnOpen(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule(".index", Fault{FailOnOpen: true, FailAfterBytes: -1})

	_, err := ffs.OpenFile(filepath.Join(t.TempDir(), "c.index"), os.O_CREATE|os.O_RDWR, 0o644)
	assert.ErrorIs(t, err, ErrInjected)

	var pe *os.PathError
	assert.ErrorAs(t, err, &pe)
}

func TestFaultyFS_LongestSuffixWins(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule("table", Fault{FailOnSync: true, FailAfterBytes: -1})
	ffs.AddRule("keep.table", NoFault)

	f, err := ffs.OpenFile(filepath.Join(t.TempDir(), "keep.table"), os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	defer f.Close()
	assert.NoError(t, f.Sync())
}

func TestFaultyFS_PartialWrite(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule(".table", Fault{FailAfterBytes: -1, PartialWrite: 3, PartialWriteCount: 1})

	path := filepath.Join(t.TempDir(), "a.table")
	f, err := ffs.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Write([]byte("hello"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, 3, n)

	// Only the first write is affected.
	n, err = f.Write([]byte("world"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "helworld", string(data))

	require.NoError(t, f.Truncate(3))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hel", string(data))
}

func TestFaultyFS_Truncate(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule(".table", Fault{FailAfterBytes: -1, FailOnTruncate: true})

	f, err := ffs.OpenFile(filepath.Join(t.TempDir(), "a.table"), os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	defer f.Close()

	assert.ErrorIs(t, f.Truncate(0), ErrInjected)
}
