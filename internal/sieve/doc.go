// Package sieve implements the prime counting engine: a marker store shared
// by a fixed set of workers, the scheduler that hands each worker a disjoint
// slice of candidates, the per-candidate trial-division classifier, and the
// mutex-protected aggregator that combines the workers' local counts.
//
// Despite the name, the classifier is not a Sieve of Eratosthenes. Every
// candidate is tested independently by odd trial division up to its square
// root, which is what allows the candidate space to be cut into independent
// segments without any coordination between workers.
//
// A run follows a single fork-join generation:
//
//	store, _ := sieve.NewStore(n)
//	ranges, _ := sieve.Partitions(n, workers)
//	segments, _ := store.Split(ranges)
//	var agg sieve.Aggregator
//	for _, seg := range segments { // one goroutine each
//	    sieve.Classify(seg)
//	    agg.Add(int64(sieve.CountUnmarked(seg)))
//	}
//
// The orchestration package drives this loop concurrently.
package sieve
