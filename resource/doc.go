// Package resource enforces process-wide limits for tables: staging memory,
// flush throughput and concurrent archive uploads.
//
// A single Controller is usually shared by every table a process opens:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   64 << 20,
//	    IOLimitBytesPerSec: 32 << 20,
//	})
//	t, err := ffdb.Open(path, codec, buf, ffdb.WithResourceController(rc))
package resource
