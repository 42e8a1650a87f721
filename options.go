package ffdb

import (
	"log/slog"
	"os"

	"github.com/hupe1980/ffdb/internal/fs"
	"github.com/hupe1980/ffdb/resource"
)

type options struct {
	fileSystem       fs.FileSystem
	fileMode         os.FileMode
	metricsCollector MetricsCollector
	logger           *Logger
	resources        *resource.Controller
	monotonicCheck   bool
}

// Option configures Open and Overwrite.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &ffdb.BasicMetricsCollector{}
//	tbl, _ := ffdb.Open(path, codec, buf, ffdb.WithMetricsCollector(metrics))
//	// ... use tbl ...
//	stats := metrics.GetStats()
//	fmt.Printf("Flushes: %d, bytes: %d\n", stats.FlushCount, stats.FlushBytes)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := ffdb.NewJSONLogger(slog.LevelInfo)
//	tbl, _ := ffdb.Open(path, codec, buf, ffdb.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController reserves the buffer's staging capacity with rc for
// the lifetime of the table and throttles flush writes to rc's IO limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithMonotonicCheck makes SearchFirst re-scan the committed records and
// fail with ErrNotMonotonic when the predicate is not monotonic over them.
// Every search then reads the whole record file.
func WithMonotonicCheck() Option {
	return func(o *options) {
		o.monotonicCheck = true
	}
}

// WithFileMode sets the permission bits used when creating files.
// Defaults to 0644.
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode
	}
}

// withFileSystem replaces the file system used to open and remove files.
// Tests use it to inject faults.
func withFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fileSystem = fsys
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		fileSystem:       fs.Default,
		fileMode:         0o644,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
