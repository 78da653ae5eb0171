package sieve

// Work runs one worker's share of a run: classify the segment, count its
// primes and fold the local count into agg. The local count is also
// returned so callers can check it against the aggregated total.
func Work(seg *Segment, agg *Aggregator) int {
	Classify(seg)
	local := CountUnmarked(seg)
	agg.Add(int64(local))
	return local
}
