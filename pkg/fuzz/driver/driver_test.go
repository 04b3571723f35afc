package driver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/mutator"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/target"
)

func TestRunCountsIterationsAndStopsOnCancel(t *testing.T) {
	d := New(2, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	d.Run(ctx, func(m *mutator.Mutator, tctx *target.ThreadContext) bool {
		return false
	})

	assert.Greater(t, d.Iterations(), int64(0))
	assert.Equal(t, int64(0), d.FailedIterations())
}

func TestRunCountsFailedIterations(t *testing.T) {
	d := New(1, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	d.Run(ctx, func(m *mutator.Mutator, tctx *target.ThreadContext) bool {
		return true
	})

	assert.Equal(t, d.Iterations(), d.FailedIterations())
	assert.Greater(t, d.Iterations(), int64(0))
}
