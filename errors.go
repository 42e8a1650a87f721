package ffdb

import (
	"errors"
	"fmt"

	"github.com/hupe1980/ffdb/internal/scan"
)

var (
	// ErrClosed is returned by operations on a closed or deleted table.
	ErrClosed = errors.New("table is closed")

	// ErrNotMonotonic is returned by SearchFirst when the monotonic check is
	// enabled and the predicate turns false again after having been true.
	ErrNotMonotonic = scan.ErrNotMonotonic

	// ErrMemoryLimit is returned by Open when the resource controller cannot
	// reserve the buffer's staging capacity.
	ErrMemoryLimit = errors.New("memory limit exceeded")
)

// OpError records a failed table operation and the file it touched.
//
// The underlying error can be accessed via errors.Unwrap.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("ffdb: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Path: path, Err: err}
}
