package identity

import (
	"testing"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/mutator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunControlIsIdentity(t *testing.T) {
	p := New()
	input := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	out, err := p.RunControl(input)
	require.NoError(t, err)
	assert.Equal(t, input, out)

	// Returned slice must not alias the input.
	out[0] = 0x00
	assert.Equal(t, byte(0xDE), input[0])
}

func TestGenerateSerializedDeterministicWithSameSeed(t *testing.T) {
	p := New()
	a := p.GenerateSerialized(mutator.New(7))
	b := p.GenerateSerialized(mutator.New(7))
	assert.Equal(t, a, b)
}

func TestName(t *testing.T) {
	assert.Equal(t, "identity", New().Name())
}
