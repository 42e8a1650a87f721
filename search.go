package ffdb

import (
	"context"
	"io"
	"time"

	"github.com/hupe1980/ffdb/internal/scan"
)

// SearchFirst returns the zero-based position of the first committed record
// whose key satisfies pred.
//
// The record file is read chunkRecords records at a time and only the last
// record of a chunk is tested before the chunk is either skipped or scanned
// from its start. pred must therefore be false for a prefix of the records
// and true for the rest. chunkRecords below 1 is treated as 1.
//
// Only committed records are searched; staged records and a trailing
// partial record are not.
func (t *Table[T, K]) SearchFirst(chunkRecords int, pred func(K) bool) (int64, bool, error) {
	if t.closed {
		return 0, false, ErrClosed
	}

	start := time.Now()
	res, err := t.searchFirst(chunkRecords, pred)
	t.opts.metricsCollector.RecordSearch(res.ChunksRead, res.ChunksSkipped, time.Since(start), err)
	t.logger.LogSearch(context.Background(), chunkRecords, res.Index, res.Found, err)
	if err != nil {
		return 0, false, err
	}

	return res.Index, res.Found, nil
}

func (t *Table[T, K]) searchFirst(chunkRecords int, pred func(K) bool) (scan.Result, error) {
	recordPath := RecordPath(t.path)
	size := t.end

	res, err := scan.First(io.NewSectionReader(t.records, 0, size), t.codec, chunkRecords, pred)
	if err != nil {
		return res, opError("search", recordPath, err)
	}

	if t.opts.monotonicCheck {
		first, found, err := scan.Verify(io.NewSectionReader(t.records, 0, size), t.codec, chunkRecords, pred)
		if err != nil {
			return res, opError("search", recordPath, err)
		}
		if found != res.Found || first != res.Index {
			return res, opError("search", recordPath, ErrNotMonotonic)
		}
	}

	return res, nil
}
