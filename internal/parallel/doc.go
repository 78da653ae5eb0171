// Package parallel provides the structured fork-join primitive used to run a
// fixed set of workers: spawn them all at once, wait for every one of them,
// and surface the first failure. A panicking task is converted into an error
// instead of crashing the process.
package parallel
