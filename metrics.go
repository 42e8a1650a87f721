package ffdb

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordPush is called after each push, including any flush it triggered.
	RecordPush(duration time.Duration, err error)

	// RecordFlush is called after each buffer flush. bytes is the number of
	// staged bytes handed to the record file.
	RecordFlush(bytes int, duration time.Duration, err error)

	// RecordSearch is called after each search. chunksRead counts chunk reads
	// and chunksSkipped counts chunks rejected after one decode.
	RecordSearch(chunksRead, chunksSkipped int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPush(time.Duration, error)             {}
func (NoopMetricsCollector) RecordFlush(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordSearch(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PushCount        atomic.Int64
	PushErrors       atomic.Int64
	PushTotalNanos   atomic.Int64
	FlushCount       atomic.Int64
	FlushErrors      atomic.Int64
	FlushBytes       atomic.Int64
	FlushTotalNanos  atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	ChunksRead       atomic.Int64
	ChunksSkipped    atomic.Int64
}

// RecordPush implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPush(duration time.Duration, err error) {
	b.PushCount.Add(1)
	b.PushTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PushErrors.Add(1)
	}
}

// RecordFlush implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFlush(bytes int, duration time.Duration, err error) {
	b.FlushCount.Add(1)
	b.FlushTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FlushErrors.Add(1)
		return
	}
	b.FlushBytes.Add(int64(bytes))
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(chunksRead, chunksSkipped int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	b.ChunksRead.Add(int64(chunksRead))
	b.ChunksSkipped.Add(int64(chunksSkipped))
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PushCount:      b.PushCount.Load(),
		PushErrors:     b.PushErrors.Load(),
		PushAvgNanos:   avg(b.PushTotalNanos.Load(), b.PushCount.Load()),
		FlushCount:     b.FlushCount.Load(),
		FlushErrors:    b.FlushErrors.Load(),
		FlushBytes:     b.FlushBytes.Load(),
		FlushAvgNanos:  avg(b.FlushTotalNanos.Load(), b.FlushCount.Load()),
		SearchCount:    b.SearchCount.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchAvgNanos: avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		ChunksRead:     b.ChunksRead.Load(),
		ChunksSkipped:  b.ChunksSkipped.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	PushCount      int64
	PushErrors     int64
	PushAvgNanos   int64
	FlushCount     int64
	FlushErrors    int64
	FlushBytes     int64
	FlushAvgNanos  int64
	SearchCount    int64
	SearchErrors   int64
	SearchAvgNanos int64
	ChunksRead     int64
	ChunksSkipped  int64
}
