// Package archive moves committed record files to a blob store and back.
//
// An archive is a 4-byte header followed by the raw record file, either as
// is or as a zstd or lz4 stream:
//
//	[ 'F' 'F' 'A' compression ][ payload ... ]
//
// Archives can be searched in place with the same chunked first-match scan
// a Table uses, or restored into a table on local disk.
//
//	store := blobstore.NewLocalStore("/mnt/cold")
//	_, err := archive.Upload(ctx, store, "cpu-2024-01", "./data/cpu", archive.WithCompression(archive.Zstd))
//	idx, found, err := archive.Search(ctx, store, "cpu-2024-01", record.PointCodec{}, 4096, pred)
package archive
