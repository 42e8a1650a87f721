// Package buffer stages serialized records in memory before a table commits
// them to its record file.
//
// Two implementations are provided:
//
//   - [Unbuffered]: holds one record and asks for a flush after every push
//   - [Heap]: a fixed-capacity byte area that asks for a flush once the next
//     record would no longer fit
//
// Staged records are not visible to table searches until they are flushed.
package buffer
