package mutator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministicWithSameSeed(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 64; i++ {
		assert.Equal(t, a.Uint32(), b.Uint32())
	}
}

func TestBytesWithinBound(t *testing.T) {
	m := New(1)
	for i := 0; i < 32; i++ {
		b := m.BytesN(16)
		assert.LessOrEqual(t, len(b), 16)
	}
}

func TestIntRangeBounds(t *testing.T) {
	m := New(2)
	for i := 0; i < 256; i++ {
		v := m.IntRange(10, 20)
		assert.GreaterOrEqual(t, v, 10)
		assert.Less(t, v, 20)
	}
}

func TestWeightedIntRangeBounds(t *testing.T) {
	m := New(3)
	for i := 0; i < 256; i++ {
		v := m.WeightedIntRange(0, 100, true)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 100)
	}
}

func TestChanceDistribution(t *testing.T) {
	m := New(4)
	hits := 0
	const trials = 20000
	for i := 0; i < trials; i++ {
		if m.Chance(0.1) {
			hits++
		}
	}
	ratio := float64(hits) / float64(trials)
	assert.InDelta(t, 0.1, ratio, 0.02)
}

func TestTruncatedKeyNeverExceeds32(t *testing.T) {
	m := New(5)
	for i := 0; i < 64; i++ {
		assert.LessOrEqual(t, len(m.TruncatedKey()), 32)
	}
}
