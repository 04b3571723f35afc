// Package fuzzer is the façade spec.md §4.5 describes: four run modes built
// on top of a target and the shared driver worker pool. Where the reference
// implementation monomorphizes a generic Fuzzer<T>, this holds a factory
// closure instead, called once per run and shared by every worker — one
// concrete target per process (spec.md §6
// wires exactly one target per entry point), so there is nothing a type
// parameter would buy over a closure, matching the teacher's existing
// preference for closures over generics (pkg/fuzz/generator.go's
// BuildScenario).
package fuzzer

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/driver"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/mutator"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/target"
)

// Config is the façade's configuration, spec.md §4.5's verbose_errors and
// threads fields.
type Config struct {
	VerboseErrors bool
	Threads       int
}

// DefaultConfig matches spec.md §4.5's defaults.
func DefaultConfig() Config {
	return Config{VerboseErrors: false, Threads: 4}
}

// Factory builds one Target instance. Targets carry no per-thread state
// (spec.md §4.3), so in practice every worker can share a single instance,
// but a factory keeps the door open for targets that do want worker-local
// state without changing this package's shape.
type Factory func() target.Target

// Fuzzer drives one target through the four run modes spec.md §4.5 names.
type Fuzzer struct {
	NewTarget Factory
	Config    Config
	Driver    *driver.Driver
}

// New constructs a Fuzzer. reference/variant are the two child-process
// factories handed to the driver; either may be nil for targets with no
// child-process side on that slot.
func New(newTarget Factory, cfg Config, reference, variant driver.CallerFactory) *Fuzzer {
	return &Fuzzer{
		NewTarget: newTarget,
		Config:    cfg,
		Driver:    driver.New(cfg.Threads, reference, variant),
	}
}

// Run executes the "valid, no control" mode: any experimental communication
// error is a failure; with VerboseErrors set, prints the hex-encoded input
// and the error.
func (f *Fuzzer) Run(ctx context.Context) {
	t := f.NewTarget()
	f.Driver.Run(ctx, func(m *mutator.Mutator, tctx *target.ThreadContext) bool {
		serialized := t.GenerateSerialized(m)
		results := t.RunExperimental(tctx, serialized)

		failed := false
		for _, r := range results {
			if r.IsErr() {
				failed = true
				if f.Config.VerboseErrors {
					fmt.Printf("Error on input:\n%s\n%s\n", hex.EncodeToString(serialized), r.Err)
				}
			}
		}
		return failed
	})
}

// RunAgainstControl executes spec.md §4.5's control-comparison mode: requires
// a ControlTarget.
func (f *Fuzzer) RunAgainstControl(ctx context.Context) error {
	ct, ok := f.NewTarget().(target.ControlTarget)
	if !ok {
		return fmt.Errorf("fuzzer: target does not support control comparison")
	}

	f.Driver.Run(ctx, func(m *mutator.Mutator, tctx *target.ThreadContext) bool {
		serialized := ct.GenerateSerialized(m)
		comparisons := target.Compare(ct, tctx, serialized)

		failed := false
		for _, c := range comparisons {
			if c != nil {
				failed = true
				if f.Config.VerboseErrors {
					fmt.Printf("Error on input:\n%s\n%s\n", hex.EncodeToString(serialized), c)
				}
			}
		}
		return failed
	})
	return nil
}

// RunInvalid executes spec.md §4.5's invalid-input mode: requires an
// InvalidTarget. The experimental outcome is discarded entirely — only a
// harness panic would count as failure, and iterFn never panics on a
// well-formed CommunicationResult, so every iteration here reports Ok.
func (f *Fuzzer) RunInvalid(ctx context.Context) error {
	it, ok := f.NewTarget().(target.InvalidTarget)
	if !ok {
		return fmt.Errorf("fuzzer: target does not support invalid generation")
	}

	f.Driver.Run(ctx, func(m *mutator.Mutator, tctx *target.ThreadContext) bool {
		serialized := it.GenerateInvalidSerialized(m)
		_ = it.RunExperimental(tctx, serialized)
		return false
	})
	return nil
}

// RunMixed executes spec.md §4.5's mixed mode: with probability 0.1 per
// iteration run the invalid path, otherwise the valid-against-control path.
// Requires both ControlTarget and InvalidTarget.
func (f *Fuzzer) RunMixed(ctx context.Context) error {
	t := f.NewTarget()
	ct, ok := t.(target.ControlTarget)
	if !ok {
		return fmt.Errorf("fuzzer: target does not support control comparison")
	}
	it, ok := t.(target.InvalidTarget)
	if !ok {
		return fmt.Errorf("fuzzer: target does not support invalid generation")
	}

	const invalidChance = 0.1
	f.Driver.Run(ctx, func(m *mutator.Mutator, tctx *target.ThreadContext) bool {
		if m.Chance(invalidChance) {
			serialized := it.GenerateInvalidSerialized(m)
			_ = it.RunExperimental(tctx, serialized)
			return false
		}

		serialized := ct.GenerateSerialized(m)
		comparisons := target.Compare(ct, tctx, serialized)
		failed := false
		for _, c := range comparisons {
			if c != nil {
				failed = true
				if f.Config.VerboseErrors {
					fmt.Printf("Error on input:\n%s\n%s\n", hex.EncodeToString(serialized), c)
				}
			}
		}
		return failed
	})
	return nil
}
