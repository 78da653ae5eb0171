// Package orchestration owns the lifecycle of a counting run: it validates
// the inputs, allocates the marker store, forks one worker per partition,
// joins them and checks the reduced total. It decouples that logic from
// presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
