package sieve

import "fmt"

// Range is a half-open interval [Start, End) of candidate indices.
// A range with End <= Start is empty.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether the range holds no index.
func (r Range) Empty() bool { return r.End <= r.Start }

// Contains reports whether i lies inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// Overlaps reports whether both ranges share at least one index.
func (r Range) Overlaps(o Range) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Start < o.End && o.Start < r.End
}

func (r Range) String() string { return fmt.Sprintf("[%d, %d)", r.Start, r.End) }

// ChunkSize returns ceil(n / workers), the nominal width of every partition.
func ChunkSize(n, workers int) int {
	if workers < 1 || n <= 0 {
		return 0
	}
	return (n + workers - 1) / workers
}

// Partition returns the range owned by worker k out of workers for a store of
// n candidates.
//
// Worker k nominally owns [1 + k*c, 1 + (k+1)*c) with c = ceil(n/workers);
// index 0 is never assigned. The last worker's end is pinned to n so the tail
// is always covered. Both bounds are clamped to n, so workers past the end of
// the store receive an empty range instead of indices the store does not have.
func Partition(n, workers, k int) (Range, error) {
	if n < 0 {
		return Range{}, fmt.Errorf("%w: %d", ErrNegativeBound, n)
	}
	if workers < 1 {
		return Range{}, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	if k < 0 || k >= workers {
		return Range{}, fmt.Errorf("%w: %d not in [0, %d)", ErrWorkerIndex, k, workers)
	}

	chunk := ChunkSize(n, workers)
	start := 1 + k*chunk
	end := start + chunk
	if k == workers-1 {
		end = n
	}
	return Range{Start: min(start, n), End: min(end, n)}, nil
}

// Partitions returns the ranges of all workers, in worker order. Their union
// is [1, n) and no two of them overlap.
func Partitions(n, workers int) ([]Range, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	ranges := make([]Range, workers)
	for k := range ranges {
		r, err := Partition(n, workers, k)
		if err != nil {
			return nil, err
		}
		ranges[k] = r
	}
	return ranges, nil
}
