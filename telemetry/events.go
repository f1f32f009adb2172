// Package telemetry provides distance tracking, leaderboard and histogram
// bookkeeping, window stats, and CSV output for the population simulation.
package telemetry

// Observation is one entry of the append-only distance feed: a creature was
// observed at its current best distance at a given tick. The Leaderboard and
// the DistanceHistogram both fold over this feed independently; there is no
// shared mutable state between them.
type Observation struct {
	ID       uint64
	Distance float64
	Tick     int64
}

// Observer folds observations into some derived view of the feed.
type Observer interface {
	Observe(Observation)
}

// Feed fans observations out to its observers in registration order.
type Feed struct {
	observers []Observer
}

// NewFeed creates a feed with the given observers.
func NewFeed(observers ...Observer) *Feed {
	return &Feed{observers: observers}
}

// Attach registers an additional observer.
func (f *Feed) Attach(o Observer) {
	f.observers = append(f.observers, o)
}

// Publish appends one observation and folds it into every observer.
func (f *Feed) Publish(obs Observation) {
	for _, o := range f.observers {
		o.Observe(obs)
	}
}
