package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemorySnapshot_HeapGrowth(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		before, after uint64
		want          uint64
	}{
		{"grew", 1000, 5000, 4000},
		{"unchanged", 1000, 1000, 0},
		{"shrank after GC", 5000, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MemorySnapshot{HeapAlloc: tt.after}.HeapGrowth(MemorySnapshot{HeapAlloc: tt.before})
			if got != tt.want {
				t.Errorf("HeapGrowth = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMemorySnapshot_GCCycles(t *testing.T) {
	t.Parallel()
	if got := (MemorySnapshot{NumGC: 7}).GCCycles(MemorySnapshot{NumGC: 4}); got != 3 {
		t.Errorf("GCCycles = %d, want 3", got)
	}
}
