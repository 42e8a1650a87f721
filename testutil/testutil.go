package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/ffdb/record"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// SortedPoints returns n points whose timestamps start at start and grow by a
// random step in [1, maxStep]. Values are uniform in [0, 1).
func (r *RNG) SortedPoints(n int, start uint64, maxStep int) []record.Point {
	if maxStep < 1 {
		maxStep = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]record.Point, n)
	ts := start
	for i := range points {
		points[i] = record.Point{Timestamp: ts, Value: r.rand.Float32()}
		ts += uint64(1 + r.rand.Intn(maxStep))
	}
	return points
}

// SequentialPoints returns points with timestamps from..to inclusive, each
// value equal to its timestamp.
func SequentialPoints(from, to uint64) []record.Point {
	if to < from {
		return nil
	}
	points := make([]record.Point, 0, to-from+1)
	for ts := from; ts <= to; ts++ {
		points = append(points, record.Point{Timestamp: ts, Value: float32(ts)})
	}
	return points
}

// FirstAtOrAfter returns the index of the first point with timestamp >= ts,
// found by linear scan.
func FirstAtOrAfter(points []record.Point, ts uint64) (int, bool) {
	for i, p := range points {
		if p.Timestamp >= ts {
			return i, true
		}
	}
	return 0, false
}
