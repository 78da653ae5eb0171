// Package progress defines the update messages workers emit while a run is
// in flight. It is a leaf package shared by the orchestration layer and the
// CLI and TUI front ends.
package progress

// Update reports the state of one worker. Value is 0 when the worker starts
// and 1 once its segment is classified and counted.
type Update struct {
	// WorkerIndex is the index of the worker in [0, workers).
	WorkerIndex int
	// Value is the worker's progress, from 0.0 to 1.0.
	Value float64
	// Start and End delimit the worker's candidate range.
	Start, End int
	// LocalCount is the worker's prime count, set when Value reaches 1.
	LocalCount int
}

// Done reports whether the update marks the end of the worker's share.
func (u Update) Done() bool { return u.Value >= 1.0 }

// Callback is a function a worker calls to report progress.
type Callback func(Update)

// ChannelCallback returns a Callback that forwards updates to ch without ever
// blocking the caller. Updates are dropped when ch is full.
func ChannelCallback(ch chan<- Update) Callback {
	if ch == nil {
		return func(Update) {}
	}
	return func(u Update) {
		select {
		case ch <- u:
		default:
		}
	}
}
