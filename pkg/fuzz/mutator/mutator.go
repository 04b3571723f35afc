// Package mutator implements the seeded random generation primitives shared
// by every target's Intermediate generator: bounded integer draws (plain and
// weighted), byte-sequence draws, and Bernoulli probability gates.
//
// The distributions are plain uniform draws over math/rand, generalized from
// the triangular/log-uniform/weighted-choice helpers the teacher's fault
// sampler used for chaos-parameter selection — here there is no "near
// threshold" bias to reproduce, just bounded and weighted integer ranges.
package mutator

import "math/rand"

// defaultMaxBytes bounds the length of an unconstrained byte-sequence draw.
const defaultMaxBytes = 256

// Mutator is a seeded pseudo-random source. It is not safe for concurrent
// use — each worker owns a private Mutator seeded off the shared base seed.
type Mutator struct {
	rng *rand.Rand
}

// New returns a Mutator seeded deterministically from seed.
func New(seed int64) *Mutator {
	return &Mutator{rng: rand.New(rand.NewSource(seed))} //nolint:gosec
}

// Bytes draws a byte slice whose length is itself randomly chosen in
// [0, defaultMaxBytes]. This is the "arbitrary-length vector with the
// mutator's default length distribution" the generic byte-vector targets use.
func (m *Mutator) Bytes() []byte {
	return m.BytesN(defaultMaxBytes)
}

// BytesN draws a byte slice of random length in [0, max].
func (m *Mutator) BytesN(max int) []byte {
	n := m.rng.Intn(max + 1)
	buf := make([]byte, n)
	m.rng.Read(buf) //nolint:errcheck
	return buf
}

// FixedBytes fills dst with random bytes, in place.
func (m *Mutator) FixedBytes(dst []byte) {
	m.rng.Read(dst) //nolint:errcheck
}

// Uint8 draws a uniform random byte.
func (m *Mutator) Uint8() uint8 { return uint8(m.rng.Intn(256)) }

// Uint16 draws a uniform random uint16.
func (m *Mutator) Uint16() uint16 { return uint16(m.rng.Intn(1 << 16)) }

// Uint32 draws a uniform random uint32.
func (m *Mutator) Uint32() uint32 { return m.rng.Uint32() }

// Uint48 draws a uniform random 48-bit value, returned widened to uint64.
func (m *Mutator) Uint48() uint64 {
	return uint64(m.rng.Int63n(1 << 48))
}

// IntRange draws a uniform integer in [min, max).
func (m *Mutator) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + m.rng.Intn(max-min)
}

// WeightedIntRange draws an integer in [min, max). When weighted is true the
// draw is biased toward the lower end of the range (a triangular-ish skew),
// mirroring the teacher's weighted-range option for favoring
// near-one-extreme values; when false it is a plain uniform draw.
func (m *Mutator) WeightedIntRange(min, max int, weighted bool) int {
	if max <= min {
		return min
	}
	if !weighted {
		return m.IntRange(min, max)
	}
	span := max - min
	u := m.rng.Float64() * m.rng.Float64() // skews toward 0
	return min + int(u*float64(span))
}

// Chance is a Bernoulli gate: returns true with probability p.
func (m *Mutator) Chance(p float64) bool {
	return m.rng.Float64() < p
}

// TruncatedKey draws an unconstrained byte slice then truncates it to at
// most 32 bytes, matching the Blake2s/Blake2Xs key generation rule (BLAKE2s
// accepts keys of at most 32 bytes, and the wire format carries key_length
// in a single byte).
func (m *Mutator) TruncatedKey() []byte {
	key := m.Bytes()
	if len(key) > 32 {
		key = key[:32]
	}
	return key
}
