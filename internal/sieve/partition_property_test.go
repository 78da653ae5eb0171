package sieve

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestPartitionCompleteness_PropertyBased verifies that for any bound and
// worker count, every index of [1, n) is owned by exactly one worker and no
// worker owns anything else.
func TestPartitionCompleteness_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("partitions cover [1, n) exactly once", prop.ForAll(
		func(n, workers int) bool {
			ranges, err := Partitions(n, workers)
			if err != nil {
				t.Logf("Partitions(%d, %d): %v", n, workers, err)
				return false
			}
			owners := make([]int, n)
			for _, r := range ranges {
				if r.Empty() {
					continue
				}
				if r.Start < 1 || r.End > n {
					return false
				}
				for i := r.Start; i < r.End; i++ {
					owners[i]++
				}
			}
			for i, c := range owners {
				want := 1
				if i == 0 {
					want = 0
				}
				if c != want {
					t.Logf("n=%d workers=%d: index %d owned %d times", n, workers, i, c)
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 2000),
		gen.IntRange(1, 300),
	))

	properties.Property("ranges are contiguous and in worker order", prop.ForAll(
		func(n, workers int) bool {
			ranges, err := Partitions(n, workers)
			if err != nil {
				return false
			}
			for k := 1; k < len(ranges); k++ {
				if ranges[k].Start != ranges[k-1].End {
					return false
				}
			}
			return ranges[len(ranges)-1].End == max(n, 0)
		},
		gen.IntRange(1, 2000),
		gen.IntRange(1, 300),
	))

	properties.TestingRun(t)
}

// TestThreadCountInvariance_PropertyBased verifies that the prime count does
// not depend on how the candidates are divided.
func TestThreadCountInvariance_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("count is independent of worker count", prop.ForAll(
		func(n, workers int) bool {
			return countSequentially(t, n, workers) == countSequentially(t, n, 1)
		},
		gen.IntRange(0, 3000),
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t)
}

// TestTrialDivisionCorrectness_PropertyBased checks each classified odd
// candidate against the divisor definition.
func TestTrialDivisionCorrectness_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("odd markers agree with odd divisors", prop.ForAll(
		func(n, workers int) bool {
			store := classifyStore(t, n, workers)
			for i := 3; i < n; i += 2 {
				divisible := false
				for j := 3; j*j <= i; j++ {
					if i%j == 0 {
						divisible = true
						break
					}
				}
				if divisible != (store.At(i) == Composite) {
					t.Logf("n=%d: candidate %d marked %s, divisible=%v", n, i, store.At(i), divisible)
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 5000),
		gen.IntRange(1, 16),
	))

	properties.TestingRun(t)
}
