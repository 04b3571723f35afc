package sha256

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunControlKnownVector(t *testing.T) {
	p := New()
	out, err := p.RunControl(nil)
	require.NoError(t, err)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(out))
}

func TestName(t *testing.T) {
	assert.Equal(t, "sha256", New().Name())
}
