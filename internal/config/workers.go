package config

import "runtime"

// Worker count resolution (highest priority first):
//   1. CLI flags (-t, --threads)
//   2. Environment variable PRIMECALC_THREADS
//   3. DefaultThreads
// A resolved value of 0 is then replaced by the hardware estimate below.

// ResolveWorkers replaces an automatic worker count (0) with the hardware
// estimate. Explicit counts are kept as they are, even when they exceed the
// number of candidates.
func ResolveWorkers(cfg AppConfig) AppConfig {
	if cfg.Threads == 0 {
		cfg.Threads = EstimateWorkers()
	}
	return cfg
}

// EstimateWorkers returns one worker per logical processor. Classification
// is CPU bound and never blocks, so more workers than processors only adds
// scheduling overhead.
func EstimateWorkers() int {
	return max(runtime.NumCPU(), 1)
}
