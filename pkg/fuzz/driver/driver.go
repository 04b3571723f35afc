// Package driver implements the worker pool and shared atomic counters that
// every fuzzer façade method runs its per-iteration callback through: spec.md
// §5's concurrency and resource model, translated onto goroutines.
package driver

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/mutator"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/target"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/transport"
	"github.com/jihwankim/pcfuzz/pkg/reporting"
)

// Seed is the fixed base seed spec.md §5 mandates for reproducibility.
const Seed = 42

// CallerFactory constructs one of the two Callers a worker's ThreadContext
// owns (Driver.Reference and Driver.Variant). Separate factories (rather than
// a single "spawn both" function) let identity/sha256 pass real child-process
// factories while cip20 — which has no reference-side implementation at
// all — passes a nil reference factory, matching spec.md §4.5's "method availability
// depends on target capabilities."
type CallerFactory func(workerIndex int) (*transport.Caller, error)

// IterFunc is one fuzzer-façade iteration: draw input, run it, report
// whether the iteration counts as failed.
type IterFunc func(m *mutator.Mutator, ctx *target.ThreadContext) (failed bool)

// Driver owns the worker pool and the shared atomic counters spec.md §5
// names: iteration count, failed-iteration count, and the stop flag.
type Driver struct {
	Threads   int
	Reference CallerFactory
	Variant   CallerFactory
	Metrics   *Metrics
	Logger    *reporting.Logger

	iterations       atomic.Int64
	failedIterations atomic.Int64
	stop             atomic.Bool
}

// New constructs a Driver. reference/variant may be nil when a target has no
// child-process side on that slot (cip20 has no reference implementation).
func New(threads int, reference, variant CallerFactory) *Driver {
	if threads <= 0 {
		threads = 4
	}
	return &Driver{
		Threads:   threads,
		Reference: reference,
		Variant:   variant,
		Logger:    reporting.NewLogger(reporting.LoggerConfig{Level: reporting.LogLevelInfo, Format: reporting.LogFormatText}),
	}
}

// Iterations returns the current iteration count.
func (d *Driver) Iterations() int64 { return d.iterations.Load() }

// FailedIterations returns the current failed-iteration count.
func (d *Driver) FailedIterations() int64 { return d.failedIterations.Load() }

// Stop sets the stop flag. Safe to call from a signal handler goroutine.
func (d *Driver) Stop() { d.stop.Store(true) }

func (d *Driver) stopped() bool { return d.stop.Load() }

// Run spawns Threads workers, each with a private ThreadContext and a
// Mutator seeded Seed+workerIndex, and blocks until every worker has exited
// (after ctx is done, or at once if no worker could start). Every
// worker runs iterFn in a tight loop, checking the stop flag at each
// iteration boundary (never mid-iteration), per spec.md §5's "Mid-iteration
// errors that race the stop flag are suppressed" rule — iterFn itself never
// observes cancellation, only the loop around it does.
func (d *Driver) Run(ctx context.Context, iterFn IterFunc) {
	var wg sync.WaitGroup

	go func() {
		<-ctx.Done()
		d.Stop()
	}()

	progressDone := make(chan struct{})
	go runProgress(d, progressDone)

	for i := 0; i < d.Threads; i++ {
		wg.Add(1)
		go d.worker(i, iterFn, &wg)
	}

	wg.Wait()
	d.Stop()
	<-progressDone
}

func (d *Driver) worker(index int, iterFn IterFunc, wg *sync.WaitGroup) {
	defer wg.Done()

	tctx, err := d.newThreadContext(index)
	if err != nil {
		d.Logger.Error("worker failed to start", "worker", index, "err", err)
		return
	}
	defer tctx.Close() //nolint:errcheck

	m := mutator.New(Seed + int64(index))

	for !d.stopped() {
		failed := iterFn(m, tctx)
		if d.stopped() {
			// Suppress mid-iteration results that raced shutdown: the
			// iteration is not counted at all, matching spec.md §5.
			return
		}
		d.iterations.Add(1)
		if failed {
			d.failedIterations.Add(1)
		}
		if d.Metrics != nil {
			d.Metrics.Observe(failed)
		}
	}
}

func (d *Driver) newThreadContext(index int) (*target.ThreadContext, error) {
	tctx := &target.ThreadContext{}
	if d.Reference != nil {
		ref, err := d.Reference(index)
		if err != nil {
			return nil, err
		}
		tctx.Reference = ref
	}
	if d.Variant != nil {
		variant, err := d.Variant(index)
		if err != nil {
			tctx.Close() //nolint:errcheck
			return nil, err
		}
		tctx.Variant = variant
	}
	return tctx, nil
}
