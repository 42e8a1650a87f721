// Package fs abstracts the file operations a table performs so tests can
// inject I/O failures.
//
//   - [File]: an open record or index file
//   - [FileSystem]: open, remove and stat
//   - [LocalFS]: the os-backed implementation used by default
//   - [FaultyFS]: wraps another FileSystem and fails selected operations
//
// Faults are matched by file name suffix, which lets a test break only the
// record file (".table") or only the index file (".index"):
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".table", fs.Fault{FailAfterBytes: 24})
//
// The package takes no context.Context: local file operations are not
// cancellable at the syscall level.
package fs
