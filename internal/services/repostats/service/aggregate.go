package service

// Aggregate counts events per repository key for a single run.
// Keys remember the order they were first seen so ranking ties stay stable
type Aggregate struct {
	counts map[string]int
	order  []string
	total  int
}

// NewAggregate returns an empty aggregate
func NewAggregate() *Aggregate {
	return &Aggregate{counts: make(map[string]int)}
}

// Increment adds one event for key, inserting it with a count of one when new
func (a *Aggregate) Increment(key string) {
	if _, ok := a.counts[key]; !ok {
		a.order = append(a.order, key)
	}
	a.counts[key]++
	a.total++
}

// Count returns the events seen for key
func (a *Aggregate) Count(key string) int { return a.counts[key] }

// Len returns the number of distinct keys
func (a *Aggregate) Len() int { return len(a.order) }

// Total returns the number of events counted across all keys
func (a *Aggregate) Total() int { return a.total }
