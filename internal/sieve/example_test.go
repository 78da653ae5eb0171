package sieve_test

import (
	"fmt"

	"github.com/agbru/primecalc/internal/sieve"
)

// ExamplePartitions shows how 100 candidates are divided among 8 workers.
func ExamplePartitions() {
	ranges, _ := sieve.Partitions(100, 8)
	for k, r := range ranges {
		fmt.Println(k, r)
	}
	// Output:
	// 0 [1, 14)
	// 1 [14, 27)
	// 2 [27, 40)
	// 3 [40, 53)
	// 4 [53, 66)
	// 5 [66, 79)
	// 6 [79, 92)
	// 7 [92, 100)
}

// ExampleWork runs every worker's share of a small store in turn.
func ExampleWork() {
	store, _ := sieve.NewStore(10)
	ranges, _ := sieve.Partitions(10, 3)
	segments, _ := store.Split(ranges)

	var agg sieve.Aggregator
	for _, seg := range segments {
		fmt.Println(seg.Range(), sieve.Work(seg, &agg))
	}
	fmt.Println("total", agg.Total())
	// Output:
	// [1, 5) 2
	// [5, 9) 2
	// [9, 10) 0
	// total 4
}
