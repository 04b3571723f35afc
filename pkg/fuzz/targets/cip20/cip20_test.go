package cip20

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/mutator"
)

func TestRunControlSha3256KnownVector(t *testing.T) {
	p := New()
	out, err := p.RunControl([]byte{sha3_256Selector})
	require.NoError(t, err)
	assert.Equal(t, "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a", hex.EncodeToString(out))
}

func TestRunControlUnknownSelector(t *testing.T) {
	p := New()
	_, err := p.RunControl([]byte{0x7f})
	assert.Error(t, err)
}

func TestRunControlEmptyInput(t *testing.T) {
	p := New()
	_, err := p.RunControl(nil)
	assert.Error(t, err)
}

// TestBlake2sMismatchDetection reproduces scenario 4 of spec.md §8: an "abc"
// preimage under a minimal Blake2s parameter block, with one byte of the
// experimental reply flipped, must not equal the control output — the
// comparison-algorithm truth table (exercised end to end in
// pkg/fuzz/target) then classifies this as OkNotEqual.
func TestBlake2sMismatchDetection(t *testing.T) {
	args := Blake2sArgs{
		HashLength:  32,
		Fanout:      1,
		Depth:       1,
		InnerLength: 1,
		Preimage:    []byte("abc"),
	}
	serialized := append([]byte{blake2sSelector}, args.serialize()...)

	p := New()
	control, err := p.RunControl(serialized)
	require.NoError(t, err)
	require.Len(t, control, 32)

	experimental := append([]byte(nil), control...)
	experimental[0] ^= 0xFF

	assert.NotEqual(t, control, experimental)
}

func TestRunControlBlake2sDeterministic(t *testing.T) {
	args := Blake2sArgs{HashLength: 32, InnerLength: 1, Preimage: []byte("abc")}
	serialized := append([]byte{blake2sSelector}, args.serialize()...)

	p := New()
	out1, err := p.RunControl(serialized)
	require.NoError(t, err)
	out2, err := p.RunControl(serialized)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

// TestDecodeRoundTripsGeneratedArgs checks wire-format round-tripping by
// re-serializing the decoded struct rather than comparing structs directly:
// decode turns a zero-length key/preimage slice into nil while generation
// may produce a non-nil empty slice, which would make a direct struct
// comparison flaky without affecting the wire bytes at all.
func TestDecodeRoundTripsGeneratedArgs(t *testing.T) {
	m := mutator.New(1)
	for i := 0; i < 20; i++ {
		serialized := genBlake2sArgs(m).serialize()
		decoded, err := decodeBlake2sArgs(serialized)
		require.NoError(t, err)
		assert.Equal(t, serialized, decoded.serialize())

		serializedXs := genBlake2XsArgs(m).serialize()
		decodedXs, err := decodeBlake2XsArgs(serializedXs)
		require.NoError(t, err)
		assert.Equal(t, serializedXs, decodedXs.serialize())
	}
}

func TestGenerateInvalidSerializedNeverPanics(t *testing.T) {
	p := New()
	m := mutator.New(2)
	assert.NotPanics(t, func() {
		for i := 0; i < 200; i++ {
			_ = p.GenerateInvalidSerialized(m)
		}
	})
}

func TestGenerateSerializedDeterministicWithSameSeed(t *testing.T) {
	p := New()
	a := p.GenerateSerialized(mutator.New(7))
	b := p.GenerateSerialized(mutator.New(7))
	assert.Equal(t, a, b)
}
