package sieve

import "errors"

var (
	// ErrNegativeBound is returned when the candidate bound is below zero.
	ErrNegativeBound = errors.New("sieve: bound must be non-negative")
	// ErrInvalidWorkers is returned when the worker count is below one.
	ErrInvalidWorkers = errors.New("sieve: worker count must be at least 1")
	// ErrStoreTooLarge is returned when the runtime refuses to allocate a store.
	ErrStoreTooLarge = errors.New("sieve: store too large to allocate")
	// ErrWorkerIndex is returned when a worker index lies outside [0, workers).
	ErrWorkerIndex = errors.New("sieve: worker index out of range")
	// ErrOverlap is returned by Store.Split when two ranges share an index.
	ErrOverlap = errors.New("sieve: ranges overlap")
	// ErrOutOfBounds is returned by Store.Split when a range leaves the store.
	ErrOutOfBounds = errors.New("sieve: range outside store")
	// ErrAlreadySplit is returned when a store is split a second time.
	ErrAlreadySplit = errors.New("sieve: store already split")
)
