package sieve

// Classify marks the composites of a segment in two passes.
//
// The parity pass settles the trivial cases: 1 is composite, 0 and 2 are
// left unmarked, every even candidate from 4 on is composite. The second pass
// trial-divides each remaining odd candidate i >= 3 by j = 3, 5, 7, ... while
// j < i and j*j <= i, and marks i composite on the first divisor found.
//
// Only indices inside the segment are read or written.
func Classify(seg *Segment) {
	r := seg.Range()
	for i := r.Start; i < r.End; i++ {
		switch {
		case i == 1:
			seg.Set(i, Composite)
		case i < 3:
			seg.Set(i, Unmarked)
		case i%2 == 0:
			seg.Set(i, Composite)
		}
	}

	for i := max(r.Start, 3); i < r.End; i++ {
		if seg.Get(i) == Composite {
			continue
		}
		if hasOddDivisor(i) {
			seg.Set(i, Composite)
		}
	}
}

// hasOddDivisor reports whether an odd divisor 3 <= j < i with j*j <= i
// divides i. The bound stays in integer arithmetic.
func hasOddDivisor(i int) bool {
	for j := 3; j < i && j*j <= i; j += 2 {
		if i%j == 0 {
			return true
		}
	}
	return false
}

// CountUnmarked returns how many candidates i > 1 of the segment are still
// unmarked. It has no side effects.
func CountUnmarked(seg *Segment) int {
	r := seg.Range()
	count := 0
	for i := max(r.Start, 2); i < r.End; i++ {
		if seg.Get(i) == Unmarked {
			count++
		}
	}
	return count
}
