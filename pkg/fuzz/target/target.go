// Package target defines the capability-set contract every precompile
// target implements, and ThreadContext, the per-worker pair of long-lived
// child-process handles. Go has no trait-with-default-methods the way the
// reference implementation's Rust does, so the optional capabilities
// (control computation, invalid generation) are expressed as separate
// interfaces a caller type-asserts for, and Compare is a free function
// shared by every target rather than a default trait method.
package target

import (
	"bytes"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/fuzzerr"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/mutator"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/transport"
)

// ThreadContext holds one worker's two long-lived child-process handles,
// one per implementation under test. Created at worker startup, closed at
// worker shutdown; never shared across workers.
type ThreadContext struct {
	Reference *transport.Caller
	Variant   *transport.Caller
}

// Close kills both child processes. Safe to call even if either handle is nil.
func (c *ThreadContext) Close() error {
	var err error
	if c.Reference != nil {
		if e := c.Reference.Close(); e != nil {
			err = e
		}
	}
	if c.Variant != nil {
		if e := c.Variant.Close(); e != nil {
			err = e
		}
	}
	return err
}

// Target is the capability set every fuzzer target must implement: a short
// identifying name, structured generation via a Mutator, deterministic
// serialization, and invocation against both implementations under test in
// fixed order (reference first, then variant).
type Target interface {
	// Name is the target's short identifier ("identity", "sha256", "cip20").
	Name() string

	// GenerateSerialized draws a structured Intermediate and returns its
	// deterministic binary encoding in one step.
	GenerateSerialized(m *mutator.Mutator) []byte

	// RunExperimental invokes one entry per implementation under test, in
	// fixed order (reference first, then variant), returning one result per
	// implementation.
	RunExperimental(ctx *ThreadContext, serialized []byte) []CommunicationResult
}

// CommunicationResult pairs an optional successful byte result with the
// communication error that occurred instead, if any. Exactly one of Bytes or
// Err is meaningful for any given result — the zero value (both nil) never
// occurs in practice since RunExperimental always sets one.
type CommunicationResult struct {
	Bytes []byte
	Err   error
}

// Ok builds a successful CommunicationResult.
func Ok(b []byte) CommunicationResult { return CommunicationResult{Bytes: b} }

// Fail builds a failed CommunicationResult.
func Fail(err error) CommunicationResult { return CommunicationResult{Err: err} }

// IsErr reports whether this result is a failure.
func (r CommunicationResult) IsErr() bool { return r.Err != nil }

// RunOne invokes one Caller and wraps its outcome as a CommunicationResult.
// Every byte-vector/selector-multiplexed target shares this instead of
// duplicating the error-wrapping per target.
func RunOne(caller *transport.Caller, address byte, input []byte) CommunicationResult {
	b, err := caller.RunPrecompile(address, input)
	if err != nil {
		return Fail(err)
	}
	return Ok(b)
}

// RunBoth invokes reference then variant, in that fixed order, at the given
// address.
func RunBoth(ctx *ThreadContext, address byte, input []byte) []CommunicationResult {
	return []CommunicationResult{
		RunOne(ctx.Reference, address, input),
		RunOne(ctx.Variant, address, input),
	}
}

// ControlTarget is the optional capability for targets carrying an in-process
// reference computation. RunControl is given the already-serialized bytes so
// both byte-vector targets (identity, SHA-256) and structured targets
// (CIP-20) can implement it without a second Intermediate type.
type ControlTarget interface {
	Target
	RunControl(serialized []byte) ([]byte, error)
}

// InvalidTarget is the optional capability for targets that can produce
// deliberately pathological input designed to exercise error paths without
// crashing the harness.
type InvalidTarget interface {
	Target
	GenerateInvalidSerialized(m *mutator.Mutator) []byte
}

// Compare runs serialized through both implementations under test and the
// control, and returns one ComparisonError (or nil for a match) per
// experimental result — reused by every ControlTarget rather than
// duplicated per-target.
func Compare(t ControlTarget, ctx *ThreadContext, serialized []byte) []*fuzzerr.ComparisonError {
	experimental := t.RunExperimental(ctx, serialized)
	controlBytes, controlErr := t.RunControl(serialized)

	results := make([]*fuzzerr.ComparisonError, len(experimental))
	for i, exp := range experimental {
		results[i] = compareOne(exp, controlBytes, controlErr)
	}
	return results
}

// compareOne implements the exact truth table of the comparison algorithm:
// remote errors compare against control error strings; I/O errors and any
// other combination degrade to NoComp since the two sides are incomparable.
func compareOne(exp CommunicationResult, controlBytes []byte, controlErr error) *fuzzerr.ComparisonError {
	if exp.Err == nil {
		if controlErr == nil {
			if bytes.Equal(exp.Bytes, controlBytes) {
				return nil
			}
			return fuzzerr.OkNotEqual(exp.Bytes, controlBytes)
		}
		return fuzzerr.RightErr(exp.Bytes, controlErr.Error())
	}

	remote, ok := fuzzerr.AsRemoteError(exp.Err)
	if !ok {
		// IoError, or any other transport failure: the two sides are
		// incomparable.
		return fuzzerr.NoComp
	}

	if controlErr == nil {
		return fuzzerr.LeftErr(remote.Msg, controlBytes)
	}
	if remote.Msg == controlErr.Error() {
		return nil
	}
	return fuzzerr.ErrNotEqual(remote.Msg, controlErr.Error())
}
