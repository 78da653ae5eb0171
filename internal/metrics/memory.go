package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by application
	Sys         uint64 // total bytes obtained from OS
	NumGC       uint32 // number of completed GC cycles
	HeapObjects uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics around a run so the
// marker store footprint can be reported.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
}

// HeapGrowth returns how many heap bytes were added between before and s,
// or zero if the heap shrank (a GC ran in between).
func (s MemorySnapshot) HeapGrowth(before MemorySnapshot) uint64 {
	if s.HeapAlloc <= before.HeapAlloc {
		return 0
	}
	return s.HeapAlloc - before.HeapAlloc
}

// GCCycles returns the number of GC cycles completed between before and s.
func (s MemorySnapshot) GCCycles(before MemorySnapshot) uint32 {
	return s.NumGC - before.NumGC
}
