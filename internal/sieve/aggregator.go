package sieve

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// Aggregator is the run-wide total of the workers' local counts. The zero
// value is ready to use. Add may be called from any number of goroutines.
//
// The padding keeps the lock off the cache lines of whatever the allocator
// places next to it.
type Aggregator struct {
	_     cpu.CacheLinePad
	mu    sync.Mutex
	total int64
	adds  int
	_     cpu.CacheLinePad
}

// Add folds delta into the total.
func (a *Aggregator) Add(delta int64) {
	a.mu.Lock()
	a.total += delta
	a.adds++
	a.mu.Unlock()
}

// Total returns the sum of every delta added so far.
func (a *Aggregator) Total() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// Adds returns the number of Add calls so far.
func (a *Aggregator) Adds() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.adds
}
