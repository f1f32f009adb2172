package telemetry

import (
	"math"
	"sort"
)

// DistanceHistogram buckets the best-known distance of every creature ever
// observed, live or removed. Bucket index is floor(distance / width). When a
// creature's best advances across a bucket boundary its count moves buckets
// incrementally; totals are never rebuilt from scratch.
type DistanceHistogram struct {
	width float64

	best   map[uint64]float64
	counts map[int]int
}

// NewDistanceHistogram creates a histogram with the given bucket width.
func NewDistanceHistogram(width float64) *DistanceHistogram {
	if width <= 0 {
		panic("telemetry: histogram bucket width must be positive")
	}
	return &DistanceHistogram{
		width:  width,
		best:   make(map[uint64]float64),
		counts: make(map[int]int),
	}
}

// Observe folds one observation into the bucket counts.
func (h *DistanceHistogram) Observe(obs Observation) {
	prev, seen := h.best[obs.ID]
	if seen && obs.Distance <= prev {
		return
	}
	h.best[obs.ID] = obs.Distance

	bucket := h.bucket(obs.Distance)
	if !seen {
		h.counts[bucket]++
		return
	}
	prevBucket := h.bucket(prev)
	if prevBucket == bucket {
		return
	}
	h.counts[prevBucket]--
	if h.counts[prevBucket] == 0 {
		delete(h.counts, prevBucket)
	}
	h.counts[bucket]++
}

// Count returns the number of creatures whose best-known distance falls in
// [bucket*width, (bucket+1)*width).
func (h *DistanceHistogram) Count(bucket int) int {
	return h.counts[bucket]
}

// Total returns the number of creatures ever observed.
func (h *DistanceHistogram) Total() int {
	return len(h.best)
}

// Bucket holds one non-empty histogram bucket.
type Bucket struct {
	Index int
	Count int
}

// Buckets returns all non-empty buckets in ascending index order.
func (h *DistanceHistogram) Buckets() []Bucket {
	out := make([]Bucket, 0, len(h.counts))
	for idx, n := range h.counts {
		out = append(out, Bucket{Index: idx, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func (h *DistanceHistogram) bucket(d float64) int {
	return int(math.Floor(d / h.width))
}
