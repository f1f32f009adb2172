package telemetry

import "sort"

// Entry is one ranked leaderboard row.
type Entry struct {
	Rank     int
	ID       uint64
	Distance float64
}

// Leaderboard tracks the best observed distance for every creature ever
// seen, keyed by id. Entries survive creature removal: the value outlives
// the object. The exposed ranking is the top K by distance, descending,
// stable on ties by first-seen order.
type Leaderboard struct {
	size int

	best  map[uint64]float64
	order []uint64 // ids in first-seen order, for stable tie-breaking

	top []Entry
}

// NewLeaderboard creates a leaderboard exposing the given number of ranks.
func NewLeaderboard(size int) *Leaderboard {
	if size < 1 {
		size = 1
	}
	return &Leaderboard{
		size: size,
		best: make(map[uint64]float64),
	}
}

// Observe folds one observation into the persistent best map and refreshes
// the ranking.
func (l *Leaderboard) Observe(obs Observation) {
	prev, seen := l.best[obs.ID]
	if !seen {
		l.order = append(l.order, obs.ID)
		l.best[obs.ID] = obs.Distance
	} else if obs.Distance > prev {
		l.best[obs.ID] = obs.Distance
	} else {
		return
	}
	l.refresh()
}

// refresh recomputes the exposed top-K ranking.
func (l *Leaderboard) refresh() {
	ranked := make([]Entry, 0, len(l.order))
	for _, id := range l.order {
		ranked = append(ranked, Entry{ID: id, Distance: l.best[id]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance > ranked[j].Distance
	})
	if len(ranked) > l.size {
		ranked = ranked[:l.size]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	l.top = ranked
}

// Top returns the current ranking, best first. The slice is shared; callers
// must not mutate it.
func (l *Leaderboard) Top() []Entry {
	return l.top
}

// Best returns the best known distance for an id.
func (l *Leaderboard) Best(id uint64) (float64, bool) {
	d, ok := l.best[id]
	return d, ok
}

// Seen returns the number of distinct ids ever observed.
func (l *Leaderboard) Seen() int {
	return len(l.best)
}

// TopTotal returns the summed distance of the current ranking. Useful as a
// monotonicity probe: it never decreases.
func (l *Leaderboard) TopTotal() float64 {
	var total float64
	for _, e := range l.top {
		total += e.Distance
	}
	return total
}
