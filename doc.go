// Package ffdb provides an append-only flat-file store for fixed-size,
// ordered records.
//
// A Table owns two files derived from one base path: the record file
// (<base>.table) holding serialized records back to back, and an index file
// (<base>.index) that is created alongside it and reserved for future use.
// Records are pushed through a storage buffer (see package buffer) that
// decides when staged bytes are written to the end of the record file.
//
// # Quick Start
//
//	codec := record.PointCodec{}
//	buf := buffer.NewHeap[record.Point, uint64](codec, 64*1024)
//
//	tbl, _ := ffdb.Overwrite("./data/cpu", codec, buf)
//	defer tbl.Close()
//
//	for _, p := range points {
//	    _ = tbl.Push(p)
//	}
//	_ = tbl.Flush()
//
//	idx, found, _ := tbl.SearchFirst(1024, func(ts uint64) bool { return ts >= from })
//
// # Search
//
// SearchFirst reads the committed part of the record file in chunks and
// tests only the last record of each chunk. The predicate must be monotonic
// over record order (false for a prefix, true for the rest); records must
// be pushed in key order for that to hold. Staged records that were not yet
// flushed are invisible to searches.
//
// # Durability
//
// Flush writes the buffer and syncs both files. Close flushes before
// closing. Delete discards staged records and removes both files.
package ffdb
