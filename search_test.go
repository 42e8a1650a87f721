package ffdb

import (
	"os"
	"path/filepath"
	"testing"

	ffs "github.com/hupe1980/ffdb/internal/fs"
	"github.com/hupe1980/ffdb/record"
	"github.com/hupe1980/ffdb/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T, points []record.Point, optFns ...Option) *Table[record.Point, uint64] {
	t.Helper()

	tbl, err := Overwrite(filepath.Join(t.TempDir(), "t"), record.PointCodec{}, heap(16), optFns...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tbl.Close() })

	pushAll(t, tbl, points)
	require.NoError(t, tbl.Flush())
	return tbl
}

func TestSearchFirst_Empty(t *testing.T) {
	tbl := newTable(t, nil)

	_, found, err := tbl.SearchFirst(8, func(uint64) bool { return true })
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSearchFirst_TenRecordsChunkThree(t *testing.T) {
	tbl := newTable(t, testutil.SequentialPoints(1, 10))

	idx, found, err := tbl.SearchFirst(3, func(ts uint64) bool { return ts > 6 })
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(6), idx)
}

func TestSearchFirst_AlwaysTrueAndFalse(t *testing.T) {
	tbl := newTable(t, testutil.SequentialPoints(100, 199))

	idx, found, err := tbl.SearchFirst(7, func(uint64) bool { return true })
	require.NoError(t, err)
	assert.True(t, found)
	assert.Zero(t, idx)

	_, found, err = tbl.SearchFirst(7, func(uint64) bool { return false })
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSearchFirst_MatchesLinearScan(t *testing.T) {
	rng := testutil.NewRNG(4711)
	points := rng.SortedPoints(500, 1_700_000_000, 20)
	tbl := newTable(t, points)

	last := points[len(points)-1].Timestamp
	for _, chunk := range []int{0, 1, 2, 3, 16, 499, 500, 1024} {
		for i := 0; i < 50; i++ {
			target := points[0].Timestamp + uint64(rng.Intn(int(last-points[0].Timestamp)+10))

			want, wantFound := testutil.FirstAtOrAfter(points, target)
			got, found, err := tbl.SearchFirst(chunk, func(ts uint64) bool { return ts >= target })
			require.NoError(t, err)
			require.Equal(t, wantFound, found, "chunk=%d target=%d", chunk, target)
			if wantFound {
				assert.Equal(t, int64(want), got, "chunk=%d target=%d", chunk, target)
			}
		}
	}
}

func TestSearchFirst_IgnoresStaged(t *testing.T) {
	tbl, err := Overwrite(filepath.Join(t.TempDir(), "t"), record.PointCodec{}, heap(100))
	require.NoError(t, err)
	defer tbl.Close()

	pushAll(t, tbl, testutil.SequentialPoints(1, 5))
	_, found, err := tbl.SearchFirst(2, func(uint64) bool { return true })
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, tbl.Flush())
	idx, found, err := tbl.SearchFirst(2, func(ts uint64) bool { return ts >= 5 })
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(4), idx)
}

func TestSearchFirst_TrailingPartialRecord(t *testing.T) {
	base := filepath.Join(t.TempDir(), "t")

	tbl, err := Overwrite(base, record.PointCodec{}, unbuffered())
	require.NoError(t, err)
	pushAll(t, tbl, testutil.SequentialPoints(1, 4))
	require.NoError(t, tbl.Close())

	f, err := os.OpenFile(RecordPath(base), os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.Write([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	tbl, err = Open(base, record.PointCodec{}, unbuffered())
	require.NoError(t, err)

	idx, found, err := tbl.SearchFirst(3, func(ts uint64) bool { return ts >= 4 })
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(3), idx)

	_, found, err = tbl.SearchFirst(3, func(ts uint64) bool { return ts > 4 })
	require.NoError(t, err)
	assert.False(t, found)

	// New records replace the partial record instead of following it.
	pushAll(t, tbl, testutil.SequentialPoints(5, 8))

	idx, found, err = tbl.SearchFirst(3, func(ts uint64) bool { return ts >= 6 })
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(5), idx)

	n, err := tbl.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	require.NoError(t, tbl.Close())

	assert.Equal(t, testutil.SequentialPoints(1, 8), readRecords(t, base))
}

func TestOpen_PartialRecordDroppedOnFlush(t *testing.T) {
	base := filepath.Join(t.TempDir(), "t")
	require.NoError(t, os.WriteFile(RecordPath(base), []byte{1, 2, 3}, 0o644))

	tbl, err := Open(base, record.PointCodec{}, heap(4))
	require.NoError(t, err)

	n, err := tbl.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, tbl.Flush())
	require.NoError(t, tbl.Close())

	info, err := os.Stat(RecordPath(base))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestSearchFirst_ReadError(t *testing.T) {
	fsys := ffs.NewFaultyFS(nil)
	fsys.AddRule(RecordExt, ffs.Fault{FailOnRead: true, FailAfterBytes: -1})
	tbl := newTable(t, testutil.SequentialPoints(1, 10), withFileSystem(fsys))

	_, _, err := tbl.SearchFirst(3, func(uint64) bool { return true })
	assert.ErrorIs(t, err, ffs.ErrInjected)
}

func TestSearchFirst_MonotonicCheck(t *testing.T) {
	points := []record.Point{{Timestamp: 1}, {Timestamp: 9}, {Timestamp: 2}, {Timestamp: 10}}

	t.Run("disabled", func(t *testing.T) {
		tbl := newTable(t, points)

		// The chunk [1, 9] is scanned and 9 matches.
		idx, found, err := tbl.SearchFirst(2, func(ts uint64) bool { return ts > 5 })
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(1), idx)
	})

	t.Run("enabled", func(t *testing.T) {
		tbl := newTable(t, points, WithMonotonicCheck())

		_, _, err := tbl.SearchFirst(2, func(ts uint64) bool { return ts > 5 })
		assert.ErrorIs(t, err, ErrNotMonotonic)

		idx, found, err := tbl.SearchFirst(2, func(ts uint64) bool { return ts > 0 })
		require.NoError(t, err)
		assert.True(t, found)
		assert.Zero(t, idx)
	})
}
