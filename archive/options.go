package archive

import (
	"github.com/hupe1980/ffdb/resource"
	"github.com/klauspost/compress/zstd"
)

type options struct {
	compression Compression
	zstdLevel   zstd.EncoderLevel
	resources   *resource.Controller
	concurrency int
}

// Option configures uploads.
type Option func(*options)

// WithCompression selects the payload encoding. Defaults to None.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithZstdLevel sets the zstd encoder level. Defaults to zstd.SpeedDefault.
func WithZstdLevel(level zstd.EncoderLevel) Option {
	return func(o *options) {
		o.zstdLevel = level
	}
}

// WithResourceController throttles uploads to rc's IO limit. UploadAll also
// takes one of rc's background worker slots per upload.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithConcurrency caps the number of concurrent uploads in UploadAll.
// Zero or less means no cap beyond the resource controller.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		compression: None,
		zstdLevel:   zstd.SpeedDefault,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
