// Package testutil provides testing utilities for ffdb.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for ordered
// record.Point sequences.
//
//	rng := testutil.NewRNG(seed)
//	points := rng.SortedPoints(1000, 1_700_000_000, 10)
package testutil
