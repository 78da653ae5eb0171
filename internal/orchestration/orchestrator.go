package orchestration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/parallel"
	"github.com/agbru/primecalc/internal/progress"
	"github.com/agbru/primecalc/internal/sieve"
)

const tracerName = "github.com/agbru/primecalc/internal/orchestration"

// ProgressBufferMultiplier sizes the progress channel: every worker sends
// exactly one start and one completion update, so a buffer of
// workers*ProgressBufferMultiplier never drops an update.
const ProgressBufferMultiplier = 2

// ErrInconsistentTotal reports that the aggregated total disagrees with the
// sum of the joined local counts. It indicates a bug, never bad input.
var ErrInconsistentTotal = errors.New("aggregated total disagrees with worker counts")

// Orchestrator runs counting runs. It holds only collaborators; every run
// allocates its own store and aggregator, so one Orchestrator may serve
// several runs in sequence or concurrently.
type Orchestrator struct {
	logger      logging.Logger
	metrics     *metrics.RunMetrics
	memory      *metrics.MemoryCollector
	tracer      trace.Tracer
	memoryLimit uint64

	// beforeWork, when set, runs at the start of every worker. Tests use it
	// to inject worker failures.
	beforeWork func(index int) error
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for run and worker events.
func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records every run in m.
func WithMetrics(m *metrics.RunMetrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// DefaultMemoryLimit bounds the marker store when no limit is configured.
const DefaultMemoryLimit uint64 = 4 << 30

// WithMemoryLimit rejects runs whose marker store would need more than
// limit bytes. Zero disables the check; without this option the limit is
// DefaultMemoryLimit.
func WithMemoryLimit(limit uint64) Option {
	return func(o *Orchestrator) { o.memoryLimit = limit }
}

// WithTracer overrides the tracer obtained from the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.tracer = t
		}
	}
}

// New creates an Orchestrator. Without options it logs nothing, records no
// metrics, traces through the global otel provider and caps the store at
// DefaultMemoryLimit.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:      logging.NewNopLogger(),
		memory:      metrics.NewMemoryCollector(),
		tracer:      otel.Tracer(tracerName),
		memoryLimit: DefaultMemoryLimit,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunName returns the display name of a run with the given worker count.
func RunName(workers int) string {
	if workers == 1 {
		return "1 worker"
	}
	return fmt.Sprintf("%d workers", workers)
}

// Run counts the primes in [0, n) with exactly workers workers.
//
// The inputs are validated and the store is allocated before any worker is
// forked. Once forked, workers always run to completion: ctx is consulted
// only before the fork. If any worker fails or panics the run is aborted and
// no count is returned. Progress updates are sent to progressChan without
// blocking; it may be nil and is never closed by Run.
func (o *Orchestrator) Run(ctx context.Context, n, workers int, progressChan chan<- progress.Update) (RunResult, error) {
	result := RunResult{Name: RunName(workers), N: n, Workers: workers}
	fail := func(reason string, err error) (RunResult, error) {
		o.metrics.RunFailed(reason)
		result.Err = err
		return result, err
	}

	if n < 0 {
		return fail("config", apperrors.ValidationError{Field: "n", Message: sieve.ErrNegativeBound.Error()})
	}
	if workers < 1 {
		return fail("config", apperrors.ValidationError{Field: "workers", Message: sieve.ErrInvalidWorkers.Error()})
	}
	if need := sieve.StoreBytes(n); o.memoryLimit > 0 && need > o.memoryLimit {
		return fail("memory", apperrors.MemoryError{Requested: need, Limit: o.memoryLimit})
	}
	if err := ctx.Err(); err != nil {
		return fail("canceled", fmt.Errorf("run not started: %w", err))
	}

	ctx, span := o.tracer.Start(ctx, "primecalc.run", trace.WithAttributes(
		attribute.Int("primecalc.n", n),
		attribute.Int("primecalc.workers", workers),
	))
	defer span.End()

	before := o.memory.Snapshot()
	store, err := sieve.NewStore(n)
	if errors.Is(err, sieve.ErrStoreTooLarge) {
		return o.abort(span, fail, "memory", apperrors.MemoryError{Requested: sieve.StoreBytes(n), Limit: o.memoryLimit})
	}
	if err != nil {
		return o.abort(span, fail, "store", err)
	}
	ranges, err := sieve.Partitions(n, workers)
	if err != nil {
		return o.abort(span, fail, "partition", err)
	}
	segments, err := store.Split(ranges)
	if err != nil {
		return o.abort(span, fail, "partition", err)
	}

	o.logger.Debug("run started",
		logging.Int("n", n),
		logging.Int("workers", workers),
		logging.Int("chunk", sieve.ChunkSize(n, workers)),
		logging.Uint64("store_bytes", sieve.StoreBytes(n)))

	var agg sieve.Aggregator
	report := progress.ChannelCallback(progressChan)
	start := time.Now()
	perWorker, err := parallel.ForkJoin(ctx, workers, func(ctx context.Context, index int) (WorkerResult, error) {
		return o.work(ctx, index, segments[index], &agg, report)
	})
	result.Duration = time.Since(start)

	if err != nil {
		var pe *parallel.PanicError
		if errors.As(err, &pe) {
			err = apperrors.WorkerError{Worker: pe.Index, Cause: pe}
		}
		o.logger.Error("run aborted", err, logging.Int("n", n), logging.Int("workers", workers))
		return o.abort(span, fail, "worker", err)
	}

	var sum int64
	for _, w := range perWorker {
		sum += int64(w.LocalCount)
	}
	if total := agg.Total(); total != sum || agg.Adds() != workers {
		err := fmt.Errorf("%w: total %d, sum of %d local counts %d", ErrInconsistentTotal, total, agg.Adds(), sum)
		return o.abort(span, fail, "internal", err)
	}

	result.Total = sum
	result.PerWorker = perWorker
	o.metrics.ObserveRun(n, workers, sum, result.Duration)
	span.SetAttributes(attribute.Int64("primecalc.primes", sum))

	after := o.memory.Snapshot()
	o.logger.Debug("run finished",
		logging.Int64("primes", sum),
		logging.Duration("duration", result.Duration),
		logging.Uint64("heap_growth", after.HeapGrowth(before)),
		logging.Int("gc_cycles", int(after.GCCycles(before))))
	return result, nil
}

// work is the body of one worker: Classifier, then Local Counter, then
// Aggregator.Add, bracketed by a start and a completion update.
func (o *Orchestrator) work(ctx context.Context, index int, seg *sieve.Segment, agg *sieve.Aggregator, report progress.Callback) (WorkerResult, error) {
	rng := seg.Range()
	_, span := o.tracer.Start(ctx, "primecalc.worker", trace.WithAttributes(
		attribute.Int("primecalc.worker", index),
		attribute.Int("primecalc.range.start", rng.Start),
		attribute.Int("primecalc.range.end", rng.End),
	))
	defer span.End()

	report(progress.Update{WorkerIndex: index, Value: 0, Start: rng.Start, End: rng.End})
	if o.beforeWork != nil {
		if err := o.beforeWork(index); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "worker failed to start")
			return WorkerResult{}, apperrors.WorkerError{Worker: index, Cause: err}
		}
	}

	start := time.Now()
	local := sieve.Work(seg, agg)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int("primecalc.local_count", local))
	report(progress.Update{WorkerIndex: index, Value: 1, Start: rng.Start, End: rng.End, LocalCount: local})
	o.metrics.ObserveWorker(index, rng.Len(), elapsed)
	o.logger.Debug("worker finished",
		logging.Int("worker", index),
		logging.String("range", rng.String()),
		logging.Int("primes", local),
		logging.Duration("duration", elapsed))

	return WorkerResult{Index: index, Range: rng, LocalCount: local, Duration: elapsed}, nil
}

func (o *Orchestrator) abort(span trace.Span, fail func(string, error) (RunResult, error), reason string, err error) (RunResult, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	return fail(reason, err)
}
