package sieve

import (
	"fmt"
	"slices"
	"unsafe"
)

// Marker is the classification state of a single candidate.
type Marker uint8

const (
	// Unmarked candidates are prime unless proven otherwise.
	Unmarked Marker = iota
	// Composite candidates have been proven non-prime.
	Composite
)

func (m Marker) String() string {
	switch m {
	case Unmarked:
		return "unmarked"
	case Composite:
		return "composite"
	default:
		return fmt.Sprintf("Marker(%d)", uint8(m))
	}
}

// MarkerBytes is the in-memory size of one marker.
const MarkerBytes = int(unsafe.Sizeof(Marker(0)))

// StoreBytes estimates the memory needed by a store of n candidates.
func StoreBytes(n int) uint64 {
	if n <= 0 {
		return 0
	}
	return uint64(n) * uint64(MarkerBytes)
}

// Store holds one marker per candidate index in [0, n). All markers start
// Unmarked.
//
// Workers never touch the store directly: Split hands out one Segment per
// worker, and the split is the only place where the disjointness of those
// segments is checked. Once the workers have joined, the store may be read
// through At.
type Store struct {
	cells []Marker
	split bool
}

// NewStore allocates a store for n candidates. A bound the runtime cannot
// allocate at all yields ErrStoreTooLarge; it does not protect against
// running out of memory on a bound it can allocate.
func NewStore(n int) (s *Store, err error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeBound, n)
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %d markers: %v", ErrStoreTooLarge, n, r)
		}
	}()
	return &Store{cells: make([]Marker, n)}, nil
}

// Len returns the number of candidates in the store.
func (s *Store) Len() int { return len(s.cells) }

// At returns the marker of candidate i. It must not be called while
// segments of the store are being written.
func (s *Store) At(i int) Marker { return s.cells[i] }

// Split transfers ownership of the given ranges to one segment each, in the
// order of ranges. Every range must lie within the store and no two non-empty
// ranges may overlap. A store can be split only once.
func (s *Store) Split(ranges []Range) ([]*Segment, error) {
	if s.split {
		return nil, ErrAlreadySplit
	}
	for _, r := range ranges {
		if r.Empty() {
			continue
		}
		if r.Start < 0 || r.End > len(s.cells) {
			return nil, fmt.Errorf("%w: %s with %d candidates", ErrOutOfBounds, r, len(s.cells))
		}
	}

	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b Range) int { return a.Start - b.Start })
	var prev Range
	for _, r := range sorted {
		if r.Empty() {
			continue
		}
		if prev.Overlaps(r) {
			return nil, fmt.Errorf("%w: %s and %s", ErrOverlap, prev, r)
		}
		prev = r
	}

	segments := make([]*Segment, len(ranges))
	for i, r := range ranges {
		seg := &Segment{rng: r}
		if !r.Empty() {
			seg.cells = s.cells[r.Start:r.End:r.End]
		}
		segments[i] = seg
	}
	s.split = true
	return segments, nil
}

// Segment is exclusive write access to one range of a store. Accessing an
// index outside the range panics.
type Segment struct {
	rng   Range
	cells []Marker
}

// Range returns the indices owned by the segment.
func (g *Segment) Range() Range { return g.rng }

// Get returns the marker of candidate i.
func (g *Segment) Get(i int) Marker { return g.cells[g.offset(i)] }

// Set stores the marker of candidate i.
func (g *Segment) Set(i int, m Marker) { g.cells[g.offset(i)] = m }

func (g *Segment) offset(i int) int {
	if !g.rng.Contains(i) {
		panic(fmt.Sprintf("sieve: index %d outside segment %s", i, g.rng))
	}
	return i - g.rng.Start
}
