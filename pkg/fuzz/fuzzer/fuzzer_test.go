package fuzzer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/mutator"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/target"
)

// fakeTarget is an in-process stand-in with no child processes: it always
// reports the experimental side as equal to the control, exercising the
// façade's plumbing without needing a real helper binary.
type fakeTarget struct{}

func (fakeTarget) Name() string { return "fake" }

func (fakeTarget) GenerateSerialized(m *mutator.Mutator) []byte { return m.Bytes() }

func (fakeTarget) RunExperimental(ctx *target.ThreadContext, serialized []byte) []target.CommunicationResult {
	return []target.CommunicationResult{target.Ok(append([]byte(nil), serialized...))}
}

func (fakeTarget) RunControl(serialized []byte) ([]byte, error) {
	return append([]byte(nil), serialized...), nil
}

func (fakeTarget) GenerateInvalidSerialized(m *mutator.Mutator) []byte {
	return m.Bytes()
}

var (
	_ target.ControlTarget = fakeTarget{}
	_ target.InvalidTarget = fakeTarget{}
)

func runBriefly(t *testing.T, fn func(ctx context.Context) error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)
	assert.NoError(t, fn(ctx))
}

func TestRunAgainstControlAllOk(t *testing.T) {
	f := New(func() target.Target { return fakeTarget{} }, Config{Threads: 1}, nil, nil)
	runBriefly(t, f.RunAgainstControl)
	assert.Greater(t, f.Driver.Iterations(), int64(0))
	assert.Equal(t, int64(0), f.Driver.FailedIterations())
}

func TestRunInvalidNeverFails(t *testing.T) {
	f := New(func() target.Target { return fakeTarget{} }, Config{Threads: 1}, nil, nil)
	runBriefly(t, f.RunInvalid)
	assert.Equal(t, int64(0), f.Driver.FailedIterations())
}

func TestRunMixedNeverFails(t *testing.T) {
	f := New(func() target.Target { return fakeTarget{} }, Config{Threads: 1}, nil, nil)
	runBriefly(t, f.RunMixed)
	assert.Equal(t, int64(0), f.Driver.FailedIterations())
}

func TestRunAgainstControlRejectsUnsupportedTarget(t *testing.T) {
	f := New(func() target.Target { return plainTarget{} }, Config{Threads: 1}, nil, nil)
	err := f.RunAgainstControl(context.Background())
	assert.Error(t, err)
}

type plainTarget struct{}

func (plainTarget) Name() string                                { return "plain" }
func (plainTarget) GenerateSerialized(m *mutator.Mutator) []byte { return m.Bytes() }
func (plainTarget) RunExperimental(ctx *target.ThreadContext, serialized []byte) []target.CommunicationResult {
	return []target.CommunicationResult{target.Ok(serialized)}
}
